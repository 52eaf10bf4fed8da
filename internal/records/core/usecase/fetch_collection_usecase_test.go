package usecase_test

import (
	"context"
	"errors"
	"testing"

	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/usecase"
)

// fakeReader fakes RecordReaderPort for tests.
type fakeReader struct {
	FetchFn   func(ctx context.Context, c domain.Collection, limit int) ([]domain.Record, error)
	lastLimit int
	lastColl  domain.Collection
	called    bool
}

func (f *fakeReader) FetchCollection(ctx context.Context, c domain.Collection, limit int) ([]domain.Record, error) {
	f.called = true
	f.lastColl = c
	f.lastLimit = limit
	if f.FetchFn != nil {
		return f.FetchFn(ctx, c, limit)
	}
	return nil, nil
}

func TestFetchCollection_Success(t *testing.T) {
	reader := &fakeReader{
		FetchFn: func(ctx context.Context, c domain.Collection, limit int) ([]domain.Record, error) {
			return []domain.Record{
				{Collection: c, ID: "1", Doc: []byte(`{"id":1}`)},
				{Collection: c, ID: "2", Doc: []byte(`{"id":2}`)},
			}, nil
		},
	}

	uc := usecase.NewFetchCollectionUseCase(reader, 10)

	out, err := uc.Execute(context.Background(), "shopifyOrders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if reader.lastColl != domain.CollectionOrders {
		t.Fatalf("expected orders, got %s", reader.lastColl)
	}
	if reader.lastLimit != 10 {
		t.Fatalf("expected limit=10, got %d", reader.lastLimit)
	}
}

func TestFetchCollection_DefaultSampleSize(t *testing.T) {
	reader := &fakeReader{}
	uc := usecase.NewFetchCollectionUseCase(reader, 0)

	out, err := uc.Execute(context.Background(), "customers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.lastLimit != usecase.DefaultSampleSize {
		t.Fatalf("expected limit=%d, got %d", usecase.DefaultSampleSize, reader.lastLimit)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestFetchCollection_CapsOversizedResult(t *testing.T) {
	reader := &fakeReader{
		FetchFn: func(ctx context.Context, c domain.Collection, limit int) ([]domain.Record, error) {
			return make([]domain.Record, limit+5), nil
		},
	}
	uc := usecase.NewFetchCollectionUseCase(reader, 3)

	out, err := uc.Execute(context.Background(), "products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
}

func TestFetchCollection_InvalidCollection(t *testing.T) {
	reader := &fakeReader{}
	uc := usecase.NewFetchCollectionUseCase(reader, 5)

	_, err := uc.Execute(context.Background(), "refunds")
	if !errors.Is(err, usecase.ErrInvalidCollection) {
		t.Fatalf("expected ErrInvalidCollection, got %v", err)
	}
	if reader.called {
		t.Fatalf("reader must not be called for unknown collections")
	}
}

func TestFetchCollection_StorageErrorIsFetchFailed(t *testing.T) {
	dbErr := errors.New("connection refused")
	reader := &fakeReader{
		FetchFn: func(ctx context.Context, c domain.Collection, limit int) ([]domain.Record, error) {
			return nil, dbErr
		},
	}
	uc := usecase.NewFetchCollectionUseCase(reader, 5)

	_, err := uc.Execute(context.Background(), "orders")
	if !errors.Is(err, usecase.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
