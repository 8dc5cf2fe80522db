package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplet-backend/models"
)

func TestMemoryStore_CreateUserAssignsSequentialIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := &models.User{Email: "a@example.com"}
	second := &models.User{Email: "b@example.com"}
	require.NoError(t, s.CreateUser(ctx, first))
	require.NoError(t, s.CreateUser(ctx, second))

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.NotNil(t, first.Orders)
	assert.NotNil(t, first.PurchasedItems)
}

func TestMemoryStore_CreateUserRejectsDuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@example.com"}))
	err := s.CreateUser(ctx, &models.User{Email: "a@example.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryStore_ReplaceUserDetectsStaleVersion(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{Email: "a@example.com"}
	require.NoError(t, s.CreateUser(ctx, user))

	// two readers take the same version
	first, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	second, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)

	first.Name = "first writer"
	require.NoError(t, s.ReplaceUser(ctx, first))

	second.Name = "second writer"
	assert.ErrorIs(t, s.ReplaceUser(ctx, second), ErrConflict)

	stored, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "first writer", stored.Name)
}

func TestMemoryStore_ReplaceUserBumpsVersion(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{Email: "a@example.com"}
	require.NoError(t, s.CreateUser(ctx, user))
	require.EqualValues(t, 0, user.Version)

	require.NoError(t, s.ReplaceUser(ctx, user))
	require.EqualValues(t, 1, user.Version)

	// the bumped version is accepted for the next write
	require.NoError(t, s.ReplaceUser(ctx, user))
}

func TestMemoryStore_GetUserReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{
		Email:  "a@example.com",
		Orders: []models.CartItem{{Product: models.Product{ID: 1}, Count: 1}},
	}
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	got.Orders[0].Count = 99

	again, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Orders[0].Count)
}

func TestMemoryStore_StatsAggregates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateProduct(ctx, &models.Product{Name: "mug", Price: 10, Stock: 3}))
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@example.com"}))
	require.NoError(t, s.InsertSoldProducts(ctx, []models.SoldProduct{
		{ProductID: 1, Quantity: 2, TotalAmount: 20},
		{ProductID: 1, Quantity: 1, TotalAmount: 10},
	}))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.InDelta(t, 30.0, stats.InventoryValue, 0.001)
	assert.InDelta(t, 30.0, stats.TotalSales, 0.001)
}
