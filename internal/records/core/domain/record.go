package domain

import (
	"encoding/json"
	"strings"
)

type Collection string

const (
	CollectionCustomers Collection = "customers"
	CollectionOrders    Collection = "orders"
	CollectionProducts  Collection = "products"
)

// Collections lists every collection the store serves, in route order.
var Collections = []Collection{CollectionCustomers, CollectionOrders, CollectionProducts}

// ParseCollection accepts the canonical name ("orders") and the legacy
// Shopify-prefixed one ("shopifyOrders").
func ParseCollection(name string) (Collection, bool) {
	for _, c := range Collections {
		if name == string(c) || name == c.LegacyName() {
			return c, true
		}
	}
	return "", false
}

// LegacyName is the name used by the original storefront export, e.g. "shopifyOrders".
func (c Collection) LegacyName() string {
	if c == "" {
		return ""
	}
	return "shopify" + strings.ToUpper(string(c[:1])) + string(c[1:])
}

type Record struct {
	Collection Collection
	ID         string
	Doc        json.RawMessage // raw JSON object, stored as-is
}
