package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout         = "2006-01-02"
	defaultSalesWindow = 7
)

type DashboardStats struct {
	TodayOrders    int             `json:"today_orders"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	MenuItems      int64           `json:"menu_items"`
	LowStockItems  int64           `json:"low_stock_items"`
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
}

type DailySales struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Sales(ctx context.Context, start, end time.Time) ([]DailySales, error)
	Reconciliations(ctx context.Context) ([]models.Reconciliation, error)
}

type reportService struct {
	orderRepo         repository.OrderRepository
	menuRepo          repository.MenuRepository
	users             UserService
	reconciliations   ReconciliationStore
	lowStockThreshold int
	now               func() time.Time
}

func NewReportService(orderRepo repository.OrderRepository, menuRepo repository.MenuRepository, users UserService, reconciliations ReconciliationStore, lowStockThreshold int) ReportService {
	return &reportService{
		orderRepo:         orderRepo,
		menuRepo:          menuRepo,
		users:             users,
		reconciliations:   reconciliations,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *reportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	today := startOfDay(s.now())
	orders, err := s.orderRepo.GetByDateRange(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, storageError("dashboard orders", err)
	}

	stats := &DashboardStats{TodayRevenue: decimal.Zero}
	for _, o := range orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		stats.TodayOrders++
		stats.TodayRevenue = stats.TodayRevenue.Add(o.TotalAmount)
	}

	if stats.MenuItems, err = s.menuRepo.Count(ctx); err != nil {
		return nil, storageError("count menu items", err)
	}
	if stats.LowStockItems, err = s.menuRepo.CountLowStock(ctx, s.lowStockThreshold); err != nil {
		return nil, storageError("count low stock", err)
	}
	if stats.TotalCustomers, err = s.users.CountCustomers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.Count(ctx); err != nil {
		return nil, storageError("count orders", err)
	}
	return stats, nil
}

// Sales groups non-cancelled orders by UTC day for the inclusive range
// [start, end], newest day first. Zero bounds select the last seven days.
func (s *reportService) Sales(ctx context.Context, start, end time.Time) ([]DailySales, error) {
	if end.IsZero() {
		end = s.now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultSalesWindow)
	}
	from, to := startOfDay(start), startOfDay(end).AddDate(0, 0, 1)
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: start date is after end date", ErrValidation)
	}

	orders, err := s.orderRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, storageError("sales report", err)
	}

	byDay := make(map[string]*DailySales)
	for _, o := range orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		day := o.CreatedAt.UTC().Format(dateLayout)
		row, ok := byDay[day]
		if !ok {
			row = &DailySales{Date: day, Revenue: decimal.Zero}
			byDay[day] = row
		}
		row.Orders++
		row.Revenue = row.Revenue.Add(o.TotalAmount)
	}

	sales := make([]DailySales, 0, len(byDay))
	for _, row := range byDay {
		sales = append(sales, *row)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Date > sales[j].Date })
	return sales, nil
}

func (s *reportService) Reconciliations(ctx context.Context) ([]models.Reconciliation, error) {
	records, err := s.reconciliations.PendingReconciliations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return records, nil
}
