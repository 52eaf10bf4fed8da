package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"shop-analytics-service/internal/records/core/domain"
)

// Fake repo
type fakeWriter struct {
	InsertCalls []*domain.Record
	Results     []bool
	Err         error
}

func (f *fakeWriter) InsertRecord(ctx context.Context, r *domain.Record) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	f.InsertCalls = append(f.InsertCalls, r)

	if len(f.Results) == 0 {
		// default: created
		return true, nil
	}

	res := f.Results[0]
	f.Results = f.Results[1:]
	return res, nil
}

// ------------------------------------------------------------
// SINGLE RECORD
// ------------------------------------------------------------

func TestStoreRecord_Created(t *testing.T) {
	repo := &fakeWriter{}
	uc := NewStoreRecordUseCase(repo)

	created, err := uc.Execute(context.Background(), StoreRecordInput{
		Collection: "orders",
		Doc:        json.RawMessage(`{ "id": 450789469, "total_price": "409.94" }`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true")
	}
	if len(repo.InsertCalls) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.InsertCalls))
	}

	r := repo.InsertCalls[0]
	if r.Collection != domain.CollectionOrders {
		t.Fatalf("expected collection orders, got %s", r.Collection)
	}
	if r.ID != "450789469" {
		t.Fatalf("expected id=450789469 (no float formatting), got %s", r.ID)
	}
	if string(r.Doc) != `{"id":450789469,"total_price":"409.94"}` {
		t.Fatalf("expected compacted doc, got %s", r.Doc)
	}
}

func TestStoreRecord_LegacyCollectionName(t *testing.T) {
	repo := &fakeWriter{}
	uc := NewStoreRecordUseCase(repo)

	_, err := uc.Execute(context.Background(), StoreRecordInput{
		Collection: "shopifyCustomers",
		Doc:        json.RawMessage(`{"id":"c-1"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.InsertCalls[0].Collection != domain.CollectionCustomers {
		t.Fatalf("expected customers, got %s", repo.InsertCalls[0].Collection)
	}
}

func TestStoreRecord_Duplicate(t *testing.T) {
	repo := &fakeWriter{Results: []bool{false}}
	uc := NewStoreRecordUseCase(repo)

	created, err := uc.Execute(context.Background(), StoreRecordInput{
		Collection: "orders",
		Doc:        json.RawMessage(`{"id":"o-1"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for duplicate")
	}
}

func TestStoreRecord_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		doc        string
		want       error
	}{
		{"unknown_collection", "invoices", `{"id":1}`, ErrInvalidCollection},
		{"not_an_object", "orders", `[1,2]`, ErrInvalidRecord},
		{"null_doc", "orders", `null`, ErrInvalidRecord},
		{"missing_id", "orders", `{"total_price":"1.00"}`, ErrInvalidRecord},
		{"empty_id", "orders", `{"id":"  "}`, ErrInvalidRecord},
		{"bool_id", "orders", `{"id":true}`, ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeWriter{}
			uc := NewStoreRecordUseCase(repo)

			_, err := uc.Execute(context.Background(), StoreRecordInput{
				Collection: tt.collection,
				Doc:        json.RawMessage(tt.doc),
			})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(repo.InsertCalls) != 0 {
				t.Fatalf("repo must not be called on invalid input")
			}
		})
	}
}

func TestStoreRecord_RepoError(t *testing.T) {
	repo := &fakeWriter{Err: errors.New("db down")}
	uc := NewStoreRecordUseCase(repo)

	_, err := uc.Execute(context.Background(), StoreRecordInput{
		Collection: "orders",
		Doc:        json.RawMessage(`{"id":"o-1"}`),
	})
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected db down, got %v", err)
	}
}

// ------------------------------------------------------------
// BULK
// ------------------------------------------------------------

func TestBulkStore_MixedResults(t *testing.T) {
	repo := &fakeWriter{Results: []bool{true, false, true}}
	uc := NewStoreRecordUseCase(repo)

	res, err := uc.BulkStore(context.Background(), BulkStoreRecordsInput{
		Records: []StoreRecordInput{
			{Collection: "orders", Doc: json.RawMessage(`{"id":1}`)},
			{Collection: "orders", Doc: json.RawMessage(`{"id":1}`)},
			{Collection: "orders", Doc: json.RawMessage(`{"id":2}`)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || res.Duplicates != 1 {
		t.Fatalf("expected created=2 duplicates=1, got %+v", res)
	}
}

func TestBulkStore_InvalidRecordAbortsBeforeWriting(t *testing.T) {
	repo := &fakeWriter{}
	uc := NewStoreRecordUseCase(repo)

	_, err := uc.BulkStore(context.Background(), BulkStoreRecordsInput{
		Records: []StoreRecordInput{
			{Collection: "orders", Doc: json.RawMessage(`{"id":1}`)},
			{Collection: "orders", Doc: json.RawMessage(`{"no_id":true}`)},
		},
	})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if len(repo.InsertCalls) != 0 {
		t.Fatalf("expected no inserts, got %d", len(repo.InsertCalls))
	}
}
