package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/ports"
)

var (
	ErrInvalidCollection = errors.New("invalid collection")
	ErrInvalidRecord     = errors.New("invalid record")
)

type StoreRecordUseCase struct {
	repo ports.RecordWriterPort
}

func NewStoreRecordUseCase(repo ports.RecordWriterPort) *StoreRecordUseCase {
	return &StoreRecordUseCase{repo: repo}
}

type StoreRecordInput struct {
	Collection string
	Doc        json.RawMessage
}

func (uc *StoreRecordUseCase) Execute(ctx context.Context, in StoreRecordInput) (bool, error) {
	r, err := uc.buildRecord(in)
	if err != nil {
		return false, err
	}

	created, err := uc.repo.InsertRecord(ctx, r)
	if err != nil {
		return false, err
	}
	return created, nil
}

type BulkStoreRecordsInput struct {
	Records []StoreRecordInput
}

type BulkStoreRecordsResult struct {
	Created    int
	Duplicates int
}

// BulkStore validates the whole batch before writing anything.
func (uc *StoreRecordUseCase) BulkStore(ctx context.Context, in BulkStoreRecordsInput) (BulkStoreRecordsResult, error) {
	var res BulkStoreRecordsResult

	records := make([]*domain.Record, 0, len(in.Records))
	for _, ri := range in.Records {
		r, err := uc.buildRecord(ri)
		if err != nil {
			return res, err
		}
		records = append(records, r)
	}

	for _, r := range records {
		ok, err := uc.repo.InsertRecord(ctx, r)
		if err != nil {
			return res, err
		}
		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreRecordUseCase) buildRecord(in StoreRecordInput) (*domain.Record, error) {
	c, ok := domain.ParseCollection(in.Collection)
	if !ok {
		return nil, ErrInvalidCollection
	}

	id, err := recordID(in.Doc)
	if err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, in.Doc); err != nil {
		return nil, ErrInvalidRecord
	}

	return &domain.Record{
		Collection: c,
		ID:         id,
		Doc:        compact.Bytes(),
	}, nil
}

// recordID extracts the document's "id", which storefront exports send either
// as a string or as a (large) integer.
func recordID(doc json.RawMessage) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(doc, &obj); err != nil || obj == nil {
		return "", ErrInvalidRecord
	}

	raw, ok := obj["id"]
	if !ok {
		return "", ErrInvalidRecord
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", ErrInvalidRecord
		}
		return s, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return "", ErrInvalidRecord
	}
	return n.String(), nil
}
