package services

import (
	"context"

	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const recentLimit = 5

// monthlySales is a fixed placeholder series; it is not derived from
// stored orders.
var monthlySales = []models.SalesPoint{
	{Name: "Jan", Sales: 4000, Orders: 240},
	{Name: "Feb", Sales: 3000, Orders: 198},
	{Name: "Mar", Sales: 5000, Orders: 300},
	{Name: "Apr", Sales: 4500, Orders: 278},
	{Name: "May", Sales: 6000, Orders: 389},
	{Name: "Jun", Sales: 5500, Orders: 349},
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.DashboardSnapshot, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	log           *logger.Logger
}

func NewDashboardService(dashboardRepo repository.DashboardRepository, log *logger.Logger) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo, log: log.With("service", "dashboard")}
}

// GetDashboard runs every aggregate concurrently against the store. The
// first failure cancels the others and fails the whole snapshot.
func (s *dashboardService) GetDashboard(ctx context.Context) (*models.DashboardSnapshot, error) {
	ctx, span := otel.Tracer("store_manager/services").Start(ctx, "dashboard.snapshot")
	defer span.End()

	snapshot := &models.DashboardSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(traced(gctx, "total_revenue", func(ctx context.Context) (err error) {
		snapshot.KPI.TotalRevenue, err = s.dashboardRepo.TotalRevenue(ctx)
		return err
	}))
	g.Go(traced(gctx, "total_orders", func(ctx context.Context) (err error) {
		snapshot.KPI.TotalOrders, err = s.dashboardRepo.CountOrders(ctx)
		return err
	}))
	g.Go(traced(gctx, "products_sold", func(ctx context.Context) (err error) {
		snapshot.KPI.ProductsSold, err = s.dashboardRepo.ProductsSold(ctx)
		return err
	}))
	g.Go(traced(gctx, "active_users", func(ctx context.Context) (err error) {
		snapshot.KPI.ActiveUsers, err = s.dashboardRepo.CountActiveCustomers(ctx)
		return err
	}))
	g.Go(traced(gctx, "recent_orders", func(ctx context.Context) (err error) {
		snapshot.RecentOrders, err = s.dashboardRepo.RecentOrders(ctx, recentLimit)
		return err
	}))
	g.Go(traced(gctx, "recent_products", func(ctx context.Context) (err error) {
		snapshot.RecentProducts, err = s.dashboardRepo.RecentProducts(ctx, recentLimit)
		return err
	}))
	g.Go(traced(gctx, "inventory_by_category", func(ctx context.Context) (err error) {
		snapshot.InventoryData, err = s.dashboardRepo.InventoryByCategory(ctx)
		return err
	}))

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dashboard aggregation failed")
		s.log.Error("dashboard aggregation failed", "error", err)
		return nil, err
	}

	snapshot.SalesData = append([]models.SalesPoint(nil), monthlySales...)
	span.SetAttributes(
		attribute.Int64("dashboard.total_orders", snapshot.KPI.TotalOrders),
		attribute.Int("dashboard.categories", len(snapshot.InventoryData)),
	)
	return snapshot, nil
}

func traced(ctx context.Context, name string, fn func(context.Context) error) func() error {
	return func() error {
		ctx, span := otel.Tracer("store_manager/services").Start(ctx, "dashboard."+name)
		defer span.End()
		if err := fn(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		return nil
	}
}
