package ports

import (
	"context"
	"encoding/json"
)

// RecordSourcePort returns the raw JSON array of one collection
// ("orders", "customers").
type RecordSourcePort interface {
	FetchCollection(ctx context.Context, collection string) (json.RawMessage, error)
}
