package httpserver

import (
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/aqynbek/restaurant-backoffice/internal/events"
	"github.com/aqynbek/restaurant-backoffice/internal/logging"
	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/repo"
	"github.com/aqynbek/restaurant-backoffice/internal/service"
)

// PublishFunc emits a domain event, best effort. Failures are logged
// and never fail the request.
type PublishFunc func(c echo.Context, topic, key string, event map[string]interface{})

type Deps struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *events.Producer
	ES        *elasticsearch.Client
	ESIndex   string
}

// Register wires repositories, services and handlers onto the echo
// instance.
func Register(e *echo.Echo, d *Deps) {
	r := repo.New(d.DB)

	publish := func(c echo.Context, topic, key string, event map[string]interface{}) {
		if d.Producer == nil {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := d.Producer.PublishEvent(ctx, topic, key, event); err != nil {
			logging.FromContext(c.Request().Context()).Warn("event_publish_error", "topic", topic, "error", err)
		}
	}

	authH := &AuthHTTP{
		Svc:     &service.AuthService{Repo: r, JWTSecret: d.JWTSecret},
		Publish: publish,
	}
	catalogH := &CatalogHTTP{
		Svc:     &service.CatalogService{Repo: r},
		Publish: publish,
		ES:      d.ES,
		Index:   d.ESIndex,
	}
	orderH := &OrderHTTP{
		Svc:     &service.OrderService{Repo: r},
		Publish: publish,
	}
	reportH := &ReportHTTP{
		Svc: &service.ReportService{Repo: r},
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	authn := Authenticate(d.JWTSecret)
	managerOnly := RequireRoles(models.RoleManager)

	auth := e.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.GET("/users", authH.ListUsers, authn, managerOnly)

	items := e.Group("/items")
	items.GET("", catalogH.ListItems)
	if d.ES != nil {
		items.GET("/search", catalogH.SearchItems)
	}
	items.GET("/:id", catalogH.GetItem)
	items.POST("", catalogH.CreateItem, authn, managerOnly)
	items.PUT("/:id", catalogH.UpdateItem, authn, managerOnly)
	items.DELETE("/:id", catalogH.DeactivateItem, authn, managerOnly)
	items.PATCH("/inventory/:id", catalogH.PatchInventory, authn, managerOnly)

	orders := e.Group("/orders", authn)
	orders.POST("", orderH.PlaceOrder, RequireRoles(models.RoleCustomer, models.RoleManager))
	orders.GET("/:id", orderH.GetOrder)
	orders.PATCH("/:id/status", orderH.UpdateStatus, RequireRoles(models.RoleStaff, models.RoleManager))

	reports := e.Group("/reports", authn, managerOnly)
	reports.GET("/daily-sales", reportH.DailySales)
	reports.GET("/weekly-sales", reportH.WeeklySales)
	reports.GET("/top-items", reportH.TopItems)
	reports.GET("/low-stock", reportH.LowStock)
	reports.GET("/range-sales", reportH.RangeSales)
}
