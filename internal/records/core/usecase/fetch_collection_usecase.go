package usecase

import (
	"context"
	"errors"
	"fmt"

	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/ports"
)

// DefaultSampleSize matches the sample cap of the original storefront export.
const DefaultSampleSize = 25

var ErrFetchFailed = errors.New("fetch failed")

type FetchCollectionUseCase struct {
	reader     ports.RecordReaderPort
	sampleSize int
}

func NewFetchCollectionUseCase(reader ports.RecordReaderPort, sampleSize int) *FetchCollectionUseCase {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &FetchCollectionUseCase{reader: reader, sampleSize: sampleSize}
}

// Execute returns a bounded sample of the named collection. Any storage error is
// reported as ErrFetchFailed; callers decide how to degrade.
func (uc *FetchCollectionUseCase) Execute(ctx context.Context, name string) ([]domain.Record, error) {
	c, ok := domain.ParseCollection(name)
	if !ok {
		return nil, ErrInvalidCollection
	}

	records, err := uc.reader.FetchCollection(ctx, c, uc.sampleSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, c, err)
	}

	if len(records) > uc.sampleSize {
		records = records[:uc.sampleSize]
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}
