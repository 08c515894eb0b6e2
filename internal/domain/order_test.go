package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Decode(t *testing.T) {
	body := `{
		"id": 12,
		"status": "fulfillment_requested",
		"created_at": "2026-02-12T10:00:00Z",
		"items": [{"product_name": "Laptop", "unit_price": "1299.99", "quantity": 2}],
		"total_amount": "2599.98",
		"currency": "TND"
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(body), &o))

	assert.Equal(t, "12", o.ID.String())
	assert.True(t, o.Status.Is(OrderStatusFulfillmentRequested))
	assert.Equal(t, Amount(2599.98), o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.InDelta(t, 2599.98, o.Items[0].Subtotal(), 1e-9)
	assert.Equal(t, 2026, o.CreatedTime().Year())
}

func TestAmount_Decode(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`" 7 "`, 7},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(tt.in), &a), tt.in)
		assert.Equal(t, tt.want, a, tt.in)
	}

	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &a))
}

func TestSortNewestFirst(t *testing.T) {
	orders := []Order{
		{ID: NumericID(1), CreatedAt: "2026-01-01T10:00:00Z"},
		{ID: NumericID(2), CreatedAt: "2026-03-01T10:00:00Z"},
		{ID: NumericID(3), CreatedAt: "2026-02-01 09:30:00"},
	}

	sorted := SortNewestFirst(orders)

	require.Len(t, sorted, 3)
	assert.Equal(t, "2", sorted[0].ID.String())
	assert.Equal(t, "3", sorted[1].ID.String())
	assert.Equal(t, "1", sorted[2].ID.String())
	assert.Equal(t, "1", orders[0].ID.String(), "input is not reordered")
}

func TestOrderStatus_IsCaseInsensitive(t *testing.T) {
	assert.True(t, OrderStatus("Confirmed").Is(OrderStatusConfirmed))
	assert.False(t, OrderStatus("SHIPPED").Is(OrderStatusCompleted))
}
