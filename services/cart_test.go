package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplet-backend/models"
)

func line(id, count int) models.CartItem {
	return models.CartItem{
		Product: models.Product{ID: id, Name: "product", Price: 10, Stock: 100},
		Count:   count,
	}
}

func counts(items []models.CartItem) map[int]int {
	out := map[int]int{}
	for _, it := range items {
		out[it.ID] = it.Count
	}
	return out
}

func TestMergeOrders_AddsSharedCounts(t *testing.T) {
	local := []models.CartItem{line(1, 2)}
	db := []models.CartItem{line(1, 3), line(2, 1)}

	merged := MergeOrders(local, db)

	require.Len(t, merged, 2)
	assert.Equal(t, map[int]int{1: 5, 2: 1}, counts(merged))
	// stored lines keep their position, counts sum instead of max or replace
	assert.Equal(t, 1, merged[0].ID)
	assert.Equal(t, 5, merged[0].Count)
}

func TestMergeOrders_PreservesEveryIDOnce(t *testing.T) {
	local := []models.CartItem{line(1, 1), line(3, 4)}
	db := []models.CartItem{line(2, 2), line(3, 1)}

	merged := MergeOrders(local, db)

	require.Len(t, merged, 3)
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 5}, counts(merged))
}

func TestMergeOrders_EmptyInputs(t *testing.T) {
	db := []models.CartItem{line(7, 2)}

	assert.Equal(t, map[int]int{7: 2}, counts(MergeOrders(nil, db)))
	assert.Equal(t, map[int]int{7: 2}, counts(MergeOrders(db, nil)))
	assert.Empty(t, MergeOrders(nil, nil))
}

func TestMergeOrders_DoesNotMutateInputs(t *testing.T) {
	local := []models.CartItem{line(1, 2)}
	db := []models.CartItem{line(1, 3)}

	MergeOrders(local, db)

	assert.Equal(t, 2, local[0].Count)
	assert.Equal(t, 3, db[0].Count)
}

func TestAddItem_NewLineStartsAtOne(t *testing.T) {
	product := models.Product{ID: 1, Name: "mug", Price: 12, Stock: 3}

	orders, err := AddItem(nil, product)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, orders[0].Count)
	assert.Equal(t, "mug", orders[0].Name)
}

func TestAddItem_IncrementsExistingLine(t *testing.T) {
	product := models.Product{ID: 1, Stock: 3}
	cart := []models.CartItem{{Product: product, Count: 1}}

	orders, err := AddItem(cart, product)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Count)
}

func TestAddItem_RejectsExhaustedStock(t *testing.T) {
	product := models.Product{ID: 1, Stock: 0}

	orders, err := AddItem(nil, product)

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, orders)
}

func TestAddItem_RejectsIncrementPastStock(t *testing.T) {
	product := models.Product{ID: 1, Stock: 2}
	cart := []models.CartItem{{Product: product, Count: 2}}

	orders, err := AddItem(cart, product)

	assert.ErrorIs(t, err, ErrOutOfStock)
	// cart unchanged on rejection
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Count)
}

func TestDecreaseItem_DecrementsAboveOne(t *testing.T) {
	cart := []models.CartItem{line(1, 3)}

	orders, err := DecreaseItem(cart, 1)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Count)
}

func TestDecreaseItem_RemovesLineAtOne(t *testing.T) {
	cart := []models.CartItem{line(1, 1), line(2, 4)}

	orders, err := DecreaseItem(cart, 1)

	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 4}, counts(orders))
}

func TestDecreaseItem_UnknownProduct(t *testing.T) {
	cart := []models.CartItem{line(1, 1)}

	_, err := DecreaseItem(cart, 99)

	assert.ErrorIs(t, err, ErrNotInCart)
}

func TestRemoveItem_DropsWholeLine(t *testing.T) {
	cart := []models.CartItem{line(1, 5), line(2, 1)}

	orders := RemoveItem(cart, 1)

	assert.Equal(t, map[int]int{2: 1}, counts(orders))
}

func TestRemoveItem_AbsentIDIsNoop(t *testing.T) {
	cart := []models.CartItem{line(1, 5)}

	orders := RemoveItem(cart, 42)

	assert.Equal(t, map[int]int{1: 5}, counts(orders))
}

func TestSummarize_ChargesShippingUnderThreshold(t *testing.T) {
	cart := []models.CartItem{{Product: models.Product{ID: 1, Price: 20}, Count: 2}}

	summary := Summarize(cart)

	assert.InDelta(t, 40.0, summary.Subtotal, 0.001)
	assert.InDelta(t, 4.0, summary.Tax, 0.001)
	assert.InDelta(t, 10.0, summary.Shipping, 0.001)
	assert.InDelta(t, 54.0, summary.Total, 0.001)
}

func TestSummarize_FreeShippingOverThreshold(t *testing.T) {
	cart := []models.CartItem{{Product: models.Product{ID: 1, Price: 60}, Count: 2}}

	summary := Summarize(cart)

	assert.InDelta(t, 120.0, summary.Subtotal, 0.001)
	assert.InDelta(t, 0.0, summary.Shipping, 0.001)
	assert.InDelta(t, 132.0, summary.Total, 0.001)
}
