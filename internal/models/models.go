package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the closed set of account roles. Authorization goes through
// AllowedFor rather than comparing raw strings in handlers.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleManager  Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleManager:
		return true
	}
	return false
}

// AllowedFor reports whether the role is in the allowed set.
func (r Role) AllowedFor(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// OrderStatus is the order state machine. completed and cancelled are
// terminal; "created" is never a valid transition target.
type OrderStatus string

const (
	StatusCreated   OrderStatus = "created"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var transitions = map[OrderStatus][]OrderStatus{
	StatusCreated:   {StatusPreparing, StatusReady, StatusCompleted, StatusCancelled},
	StatusPreparing: {StatusPreparing, StatusReady, StatusCompleted, StatusCancelled},
	StatusReady:     {StatusPreparing, StatusReady, StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         Role      `gorm:"not null"                 json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Item struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `json:"category"`
	IsActive    bool            `gorm:"default:true"                json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Inventory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	ItemID    uint      `gorm:"uniqueIndex;not null"      json:"item_id"`
	Stock     int       `gorm:"not null;check:stock >= 0" json:"stock"`
	Unit      string    `gorm:"default:pcs"               json:"unit"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the singular table name used by the schema.
func (Inventory) TableName() string { return "inventory" }

type Order struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID      uint            `gorm:"index;not null"              json:"user_id"`
	Status      OrderStatus     `gorm:"not null"                    json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID"          json:"items,omitempty"`
}

// OrderItem records a line with the unit price captured at order time.
// The snapshot is never recomputed from Item after creation.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	ItemID    uint            `gorm:"not null"                    json:"item_id"`
	Qty       int             `gorm:"not null;check:qty > 0"      json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
