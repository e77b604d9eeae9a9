package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"cafeteria/internal/session"
	"cafeteria/internal/testutil"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	menuRepo  repository.MenuRepository
	orderRepo repository.OrderRepository
	store     *session.MemoryStore
	catalog   CatalogService
	orders    OrderService
	users     UserService
	favorites FavoriteService
	ratings   RatingService
	checkout  CheckoutService
	reports   ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	store := session.NewMemoryStore(time.Hour)

	f := &fixture{db: db, menuRepo: menuRepo, orderRepo: orderRepo, store: store}
	f.catalog = NewCatalogService(menuRepo, 5)
	f.orders = NewOrderService(db, menuRepo, orderRepo, repository.NewOrderItemRepository(db), models.OrderPending)
	f.users = NewUserService(userRepo)
	f.favorites = NewFavoriteService(repository.NewFavoriteRepository(db), menuRepo)
	f.ratings = NewRatingService(repository.NewRatingRepository(db), orderRepo)
	f.checkout = NewCheckoutService(menuRepo, f.orders, store, store)
	f.reports = NewReportService(orderRepo, menuRepo, f.users, store, 5)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(name string, qty int, price string) models.CartLine {
	return models.CartLine{ItemName: name, Quantity: qty, UnitPrice: dec(price)}
}
