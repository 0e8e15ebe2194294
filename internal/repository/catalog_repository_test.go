package repository

import (
	"context"
	"testing"

	"store_manager/internal/apperrors"
	"store_manager/internal/models"
	"store_manager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductListFilters(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	p1 := testutil.SeedProduct(t, db, "PRD-1", "Electronics", 10, "1.00")
	p2 := testutil.SeedProduct(t, db, "PRD-2", "Electronics", 10, "1.00")
	p3 := testutil.SeedProduct(t, db, "PRD-3", "Sports", 0, "1.00")
	require.NoError(t, db.Model(p1).Updates(map[string]interface{}{
		"name": "Wireless Headphones Pro", "sku": "WHP-001", "supplier": "AudioCo",
	}).Error)
	require.NoError(t, db.Model(p2).Updates(map[string]interface{}{
		"description": "Fitness tracking 100%", "status": "low-stock",
	}).Error)
	require.NoError(t, db.Model(p3).Updates(map[string]interface{}{
		"status": "out-of-stock", "supplier": "AudioCo",
	}).Error)

	repo := NewProductRepository(db)
	cases := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"all", ProductFilter{}, []string{"PRD-1", "PRD-2", "PRD-3"}},
		{"category", ProductFilter{Category: "Electronics"}, []string{"PRD-1", "PRD-2"}},
		{"status", ProductFilter{Status: "out-of-stock"}, []string{"PRD-3"}},
		{"supplier", ProductFilter{Supplier: "AudioCo"}, []string{"PRD-1", "PRD-3"}},
		{"combined", ProductFilter{Category: "Electronics", Supplier: "AudioCo"}, []string{"PRD-1"}},
		{"search name", ProductFilter{Search: "headphones"}, []string{"PRD-1"}},
		{"search sku", ProductFilter{Search: "whp-0"}, []string{"PRD-1"}},
		{"search description", ProductFilter{Search: "FITNESS"}, []string{"PRD-2"}},
		{"search wildcard is literal", ProductFilter{Search: "100%"}, []string{"PRD-2"}},
		{"search percent alone", ProductFilter{Search: "%"}, []string{"PRD-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)
			got := []string{}
			for _, p := range products {
				got = append(got, p.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProductSKULookupAndNotFound(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, db, "PRD-1", "Electronics", 10, "1.00")
	require.NoError(t, db.Model(p).Update("sku", "SKU-1").Error)

	repo := NewProductRepository(db)
	got, err := repo.GetBySKU(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, "PRD-1", got.ID)

	_, err = repo.GetBySKU(ctx, "SKU-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.GetByID(ctx, "PRD-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "PRD-2"), apperrors.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProductsWithoutSKUDoNotCollide(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedProduct(t, db, "PRD-1", "", 1, "1.00")
	testutil.SeedProduct(t, db, "PRD-2", "", 1, "1.00")

	count, err := NewProductRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCustomerSearchAndUpdate(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedCustomer(t, db, "CUST-1", "active")
	c2 := testutil.SeedCustomer(t, db, "CUST-2", "inactive")
	require.NoError(t, db.Model(c2).Updates(map[string]interface{}{"name": "Jane Smith", "phone": "+1 (555) 234-5678"}).Error)

	repo := NewCustomerRepository(db)
	for search, want := range map[string][]string{
		"jane":        {"CUST-2"},
		"234-5678":    {"CUST-2"},
		"example.com": {"CUST-1", "CUST-2"},
		"nobody":      {},
	} {
		customers, err := repo.List(ctx, CustomerFilter{Search: search})
		require.NoError(t, err)
		got := []string{}
		for _, c := range customers {
			got = append(got, c.ID)
		}
		assert.Equal(t, want, got, search)
	}

	customer, err := repo.GetByEmail(ctx, "CUST-1@example.com")
	require.NoError(t, err)
	registered := customer.RegistrationDate
	customer.Status = string(models.CustomerBanned)
	require.NoError(t, repo.Update(ctx, customer))

	got, err := repo.GetByID(ctx, "CUST-1")
	require.NoError(t, err)
	assert.Equal(t, "banned", got.Status)
	assert.True(t, registered.Equal(got.RegistrationDate))

	exists, err := repo.Exists(ctx, "CUST-3")
	require.NoError(t, err)
	assert.False(t, exists)
}
