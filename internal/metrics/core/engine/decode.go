package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shop-analytics-service/internal/metrics/core/domain"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when the raw input is not a JSON array of records.
var ErrInvalidInput = errors.New("invalid input: expected a JSON array of records")

// Accepted keys, in lookup order. Dotted keys address nested objects.
var (
	idKeys          = []string{"id"}
	customerIDKeys  = []string{"customerId", "customer_id", "customer.id"}
	createdAtKeys   = []string{"createdAt", "created_at", "date"}
	totalPriceKeys  = []string{"totalPrice", "total_price", "total"}
	lineItemsKeys   = []string{"lineItems", "line_items"}
	ordersCountKeys = []string{"ordersCount", "orders_count"}
	totalSpentKeys  = []string{"totalSpent", "total_spent"}
	regionKeys      = []string{"region", "default_address.province", "default_address.country"}
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DecodeOrders decodes a raw JSON array of orders. Items that are not objects
// are dropped; items with wrong-typed fields are kept with those fields zeroed.
// Both count as malformed.
func DecodeOrders(raw []byte) ([]domain.Order, int, error) {
	items, err := splitArray(raw)
	if err != nil {
		return nil, 0, err
	}

	orders := make([]domain.Order, 0, len(items))
	malformed := 0
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			malformed++
			continue
		}

		var d fieldDecoder
		o := domain.Order{
			ID:         d.id(obj, idKeys),
			CustomerID: d.id(obj, customerIDKeys),
			CreatedAt:  d.date(obj, createdAtKeys),
			TotalPrice: d.money(obj, totalPriceKeys),
			LineItems:  d.list(obj, lineItemsKeys),
		}
		if o.TotalPrice.IsNegative() {
			d.bad = true
			o.TotalPrice = decimal.Zero
		}
		if d.bad {
			malformed++
		}
		orders = append(orders, o)
	}
	return orders, malformed, nil
}

// DecodeCustomers decodes a raw JSON array of customers with the same
// tolerance rules as DecodeOrders.
func DecodeCustomers(raw []byte) ([]domain.Customer, int, error) {
	items, err := splitArray(raw)
	if err != nil {
		return nil, 0, err
	}

	customers := make([]domain.Customer, 0, len(items))
	malformed := 0
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			malformed++
			continue
		}

		var d fieldDecoder
		c := domain.Customer{
			ID:          d.id(obj, idKeys),
			CreatedAt:   d.date(obj, createdAtKeys),
			OrdersCount: d.count(obj, ordersCountKeys),
			TotalSpent:  d.optionalMoney(obj, totalSpentKeys),
			Region:      d.region(obj, regionKeys),
		}
		if c.OrdersCount < 0 {
			d.bad = true
			c.OrdersCount = 0
		}
		if c.TotalSpent.Valid && c.TotalSpent.Decimal.IsNegative() {
			d.bad = true
			c.TotalSpent = decimal.NullDecimal{}
		}
		if d.bad {
			malformed++
		}
		customers = append(customers, c)
	}
	return customers, malformed, nil
}

func splitArray(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidInput
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return items, nil
}

func asObject(item json.RawMessage) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// lookup returns the first present, non-null value among keys.
func lookup(obj map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, key := range keys {
		if v, ok := lookupPath(obj, key); ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func lookupPath(obj map[string]json.RawMessage, path string) (json.RawMessage, bool) {
	head, rest, nested := strings.Cut(path, ".")
	v, ok := obj[head]
	if !ok || !nested {
		return v, ok
	}
	child, ok := asObject(v)
	if !ok {
		return nil, false
	}
	return lookupPath(child, rest)
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

// fieldDecoder records whether any present field had the wrong shape.
type fieldDecoder struct {
	bad bool
}

func (d *fieldDecoder) id(obj map[string]json.RawMessage, keys []string) string {
	v, ok := lookup(obj, keys)
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}

	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		d.bad = true
		return ""
	}
	return n.String()
}

func (d *fieldDecoder) date(obj map[string]json.RawMessage, keys []string) time.Time {
	v, ok := lookup(obj, keys)
	if !ok {
		return time.Time{}
	}

	// MongoDB extended JSON: {"$date": "..."}
	if wrapped, ok := asObject(v); ok {
		if inner, ok := wrapped["$date"]; ok {
			v = inner
		}
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		var ms int64
		if err := json.Unmarshal(v, &ms); err != nil {
			d.bad = true
			return time.Time{}
		}
		return time.UnixMilli(ms).UTC()
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	d.bad = true
	return time.Time{}
}

func (d *fieldDecoder) money(obj map[string]json.RawMessage, keys []string) decimal.Decimal {
	nd := d.optionalMoney(obj, keys)
	if !nd.Valid {
		return decimal.Zero
	}
	return nd.Decimal
}

func (d *fieldDecoder) optionalMoney(obj map[string]json.RawMessage, keys []string) decimal.NullDecimal {
	v, ok := lookup(obj, keys)
	if !ok {
		return decimal.NullDecimal{}
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(bytes.TrimSpace(v)); err != nil {
		d.bad = true
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: amount, Valid: true}
}

func (d *fieldDecoder) count(obj map[string]json.RawMessage, keys []string) int {
	v, ok := lookup(obj, keys)
	if !ok {
		return 0
	}

	var n int
	if err := json.Unmarshal(v, &n); err == nil {
		return n
	}

	// some exports quote integers
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	d.bad = true
	return 0
}

func (d *fieldDecoder) list(obj map[string]json.RawMessage, keys []string) []json.RawMessage {
	v, ok := lookup(obj, keys)
	if !ok {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		d.bad = true
		return nil
	}
	return items
}

func (d *fieldDecoder) region(obj map[string]json.RawMessage, keys []string) string {
	for _, key := range keys {
		v, ok := lookupPath(obj, key)
		if !ok || isNull(v) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			d.bad = true
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
