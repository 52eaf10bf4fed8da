package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop-analytics-service/internal/records/adapters/sqldb"
	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/ports"

	"github.com/lib/pq"
)

const DefaultTable = "records"

// PostgreSQL error codes
const pgErrUndefinedTable = "42P01"

var ErrSchemaMissing = errors.New("records table does not exist (run with store.auto_migrate)")

type RecordRepository struct {
	db    sqldb.DB
	table string // quoted identifier
}

func NewRecordRepository(db sqldb.DB, table string) *RecordRepository {
	if table == "" {
		table = DefaultTable
	}
	return &RecordRepository{db: db, table: pq.QuoteIdentifier(table)}
}

var (
	_ ports.RecordWriterPort = (*RecordRepository)(nil)
	_ ports.RecordReaderPort = (*RecordRepository)(nil)
)

// SQL templates; %s is the quoted table name.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS %s (
    id          BIGSERIAL PRIMARY KEY,
    collection  TEXT        NOT NULL,
    record_id   TEXT        NOT NULL,
    doc         JSONB       NOT NULL,
    inserted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (collection, record_id)
);
`

const insertRecordSQL = `
INSERT INTO %s (
    collection,
    record_id,
    doc
) VALUES (
    $1, $2, $3
)
ON CONFLICT (collection, record_id) DO NOTHING;
`

const fetchCollectionSQL = `
SELECT
    record_id,
    doc
FROM %s
WHERE collection = $1
ORDER BY id
LIMIT $2
`

// Migrate creates the records table when it does not exist yet.
func (r *RecordRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(schemaSQL, r.table)); err != nil {
		return fmt.Errorf("migrate %s: %w", r.table, err)
	}
	return nil
}

func (r *RecordRepository) InsertRecord(ctx context.Context, rec *domain.Record) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(insertRecordSQL, r.table),
		string(rec.Collection),
		rec.ID,
		[]byte(rec.Doc),
	)
	if err != nil {
		return false, translateError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func (r *RecordRepository) FetchCollection(ctx context.Context, c domain.Collection, limit int) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(fetchCollectionSQL, r.table), string(c), limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0, limit)
	for rows.Next() {
		var id string
		var doc []byte

		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}

		records = append(records, domain.Record{
			Collection: c,
			ID:         id,
			Doc:        doc,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgErrUndefinedTable {
		return fmt.Errorf("%w: %s", ErrSchemaMissing, strings.TrimSpace(pqErr.Message))
	}
	return err
}
