package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OrderStatus is defined by the order management system; the set is open and
// unknown values are kept as-is.
type OrderStatus string

const (
	OrderStatusFulfillmentRequested OrderStatus = "FULFILLMENT_REQUESTED"
	OrderStatusConfirmed            OrderStatus = "CONFIRMED"
	OrderStatusCompleted            OrderStatus = "COMPLETED"
)

// Is compares case-insensitively; the backend is not consistent about casing.
func (s OrderStatus) Is(other OrderStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

func (s OrderStatus) String() string {
	return string(s)
}

// Amount is a money value that arrives either as a JSON number or as a
// numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode amount: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("decode amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode amount: %w", err)
	}
	*a = Amount(f)
	return nil
}

type OrderItem struct {
	ProductName string `json:"product_name"`
	UnitPrice   Amount `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

func (i OrderItem) Subtotal() float64 {
	return float64(i.UnitPrice) * float64(i.Quantity)
}

type Order struct {
	ID          ID          `json:"id"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"created_at"`
	Items       []OrderItem `json:"items"`
	TotalAmount Amount      `json:"total_amount"`
	Currency    string      `json:"currency"`
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// CreatedTime parses created_at. The zero time is returned when the value is
// missing or in an unknown layout.
func (o Order) CreatedTime() time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, o.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SortNewestFirst returns a copy of orders ordered by creation time, most
// recent first. Orders with equal or unparseable timestamps keep their
// relative order.
func SortNewestFirst(orders []Order) []Order {
	sorted := make([]Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedTime().After(sorted[j].CreatedTime())
	})
	return sorted
}
