package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required"`
}

// LoginRequest binds both the OAuth2-style form and plain JSON.
// Username carries the email.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ItemCreateRequest struct {
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
}

type ItemUpdateRequest struct {
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	Category    string          `json:"category"`
}

type InventoryPatchRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

type OrderLine struct {
	ItemID uint `json:"item_id" validate:"required"`
	Qty    int  `json:"qty"     validate:"required,gt=0"`
}

type OrderCreateRequest struct {
	UserID uint        `json:"user_id"`
	Items  []OrderLine `json:"items" validate:"required,min=1,dive"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderLineDetail is an OrderItem annotated with the item display
// name, joined at read time.
type OrderLineDetail struct {
	ItemID    uint            `json:"item_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type FullOrderResponse struct {
	ID          uint               `json:"id"`
	UserID      uint               `json:"user_id"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []OrderLineDetail  `json:"items"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DailySalesResponse struct {
	Date        string          `json:"date"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	OrdersCount int64           `json:"orders_count"`
}

type WeeklySalesResponse struct {
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	WeeklySales decimal.Decimal `json:"weekly_sales"`
}

type RangeSalesResponse struct {
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type TopItemRow struct {
	Item    string `json:"item"`
	QtySold int64  `json:"qty_sold"`
}

type LowStockRow struct {
	Item  string `json:"item"`
	Stock int    `json:"stock"`
	Unit  string `json:"unit"`
}
