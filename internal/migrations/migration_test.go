package migrations

import (
	"context"
	"testing"

	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"
	"store_manager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsCreatesAdminOnce(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	opts := Options{AdminUsername: "admin", AdminPassword: "admin"}

	require.NoError(t, RunMigrations(ctx, db, testutil.Logger(t), opts))
	require.NoError(t, RunMigrations(ctx, db, testutil.Logger(t), opts))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsActive)
	assert.True(t, users[0].IsStaff)

	userService := services.NewUserService(repository.NewUserRepository(db))
	_, err := userService.Authenticate(ctx, "admin", "admin")
	assert.NoError(t, err)

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.Zero(t, products)
}

func TestSeedDemoDataFeedsDashboard(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)

	require.NoError(t, RunMigrations(ctx, db, log, Options{SeedDemoData: true}))

	dashboard := services.NewDashboardService(repository.NewDashboardRepository(db), log)
	snapshot, err := dashboard.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, "875.47", snapshot.KPI.TotalRevenue.StringFixed(2))
	assert.EqualValues(t, 3, snapshot.KPI.TotalOrders)
	assert.EqualValues(t, 7, snapshot.KPI.ProductsSold)
	assert.EqualValues(t, 3, snapshot.KPI.ActiveUsers)
	require.Len(t, snapshot.RecentOrders, 3)
	assert.Equal(t, "ORD-2024-003", snapshot.RecentOrders[0].ID)
	assert.Equal(t, []models.CategoryStock{
		{Name: "Electronics", Stock: 230},
		{Name: "Food & Beverage", Stock: 200},
		{Name: "Sports", Stock: 0},
	}, snapshot.InventoryData)

	order, err := repository.NewOrderRepository(db).GetByID(ctx, "ORD-2024-001")
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "199.99", order.Items[0].PriceAtPurchase.StringFixed(2))
	assert.Equal(t, "Wireless Headphones Pro", order.Items[0].ProductName)
	assert.Equal(t, "123 Main St, New York, NY 10001", order.ShippingAddress)
}

func TestSeedDemoDataSkipsNonEmptyStore(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedProduct(t, db, "PRD-X", "Home", 1, "1.00")

	require.NoError(t, SeedDemoData(ctx, db, testutil.Logger(t)))

	var customers int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	assert.Zero(t, customers)
}
