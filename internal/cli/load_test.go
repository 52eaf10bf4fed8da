package cli

import (
	"context"
	"errors"
	"io"
	"testing"

	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	seen map[string]bool
	err  error
}

func (f *fakeWriter) InsertRecord(_ context.Context, r *domain.Record) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	key := string(r.Collection) + "/" + r.ID
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

// ---- SUCCESS ----

func TestLoadRecords_CountsCreatedAndDuplicates(t *testing.T) {
	w := &fakeWriter{}
	raw := []byte(`[{"id":1,"total_price":"10.00"},{"id":2},{"id":1}]`)

	res, err := loadRecords(context.Background(), w, "orders", raw, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Duplicates)
	assert.True(t, w.seen["orders/1"])
}

func TestLoadRecords_LegacyCollectionName(t *testing.T) {
	w := &fakeWriter{}

	res, err := loadRecords(context.Background(), w, "shopifyCustomers", []byte(`[{"id":"c1"}]`), io.Discard)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.True(t, w.seen["customers/c1"])
}

func TestLoadRecords_EmptyArray(t *testing.T) {
	res, err := loadRecords(context.Background(), &fakeWriter{}, "orders", []byte(`[]`), io.Discard)

	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Duplicates)
}

// ---- ERRORS ----

func TestLoadRecords_NotAnArray(t *testing.T) {
	_, err := loadRecords(context.Background(), &fakeWriter{}, "orders", []byte(`{"id":1}`), io.Discard)

	assert.ErrorIs(t, err, ErrNotArray)
}

func TestLoadRecords_InvalidRecordStops(t *testing.T) {
	w := &fakeWriter{}

	res, err := loadRecords(context.Background(), w, "orders", []byte(`[{"id":1},{"name":"no id"},{"id":3}]`), io.Discard)

	assert.ErrorIs(t, err, usecase.ErrInvalidRecord)
	assert.Equal(t, 1, res.Created)
	assert.False(t, w.seen["orders/3"])
}

func TestLoadRecords_RepositoryError(t *testing.T) {
	dbErr := errors.New("db down")

	_, err := loadRecords(context.Background(), &fakeWriter{err: dbErr}, "orders", []byte(`[{"id":1}]`), io.Discard)

	assert.ErrorIs(t, err, dbErr)
}
