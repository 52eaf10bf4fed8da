package ports

import (
	"context"

	"shop-analytics-service/internal/records/core/domain"
)

type RecordWriterPort interface {
	// InsertRecord:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (collection, id) (idempotent)
	//   created = false, err != nil -> DB error
	InsertRecord(ctx context.Context, r *domain.Record) (created bool, err error)
}

type RecordReaderPort interface {
	// FetchCollection returns at most limit records, oldest first.
	FetchCollection(ctx context.Context, c domain.Collection, limit int) ([]domain.Record, error)
}
