package mysql

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"shop-analytics-service/internal/records/adapters/sqldb"
	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/ports"

	mysqldrv "github.com/go-sql-driver/mysql"
)

const DefaultTable = "records"

// MySQL error numbers
const mysqlErrNoSuchTable = 1146

var (
	ErrInvalidTable  = errors.New("invalid table name")
	ErrSchemaMissing = errors.New("records table does not exist (run with store.auto_migrate)")
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type RecordRepository struct {
	db    sqldb.DB
	table string
}

// NewRecordRepository rejects table names that would need quoting beyond backticks.
func NewRecordRepository(db sqldb.DB, table string) (*RecordRepository, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNameRe.MatchString(table) {
		return nil, ErrInvalidTable
	}
	return &RecordRepository{db: db, table: "`" + table + "`"}, nil
}

var (
	_ ports.RecordWriterPort = (*RecordRepository)(nil)
	_ ports.RecordReaderPort = (*RecordRepository)(nil)
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS %s (
    id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    collection  VARCHAR(32)     NOT NULL,
    record_id   VARCHAR(191)    NOT NULL,
    doc         JSON            NOT NULL,
    inserted_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE KEY uq_collection_record (collection, record_id)
)
`

const insertRecordSQL = `
INSERT IGNORE INTO %s (
    collection,
    record_id,
    doc
) VALUES (
    ?, ?, ?
)
`

const fetchCollectionSQL = `
SELECT
    record_id,
    doc
FROM %s
WHERE collection = ?
ORDER BY id
LIMIT ?
`

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
		string(rec.Doc),
	)
	if err != nil {
		return false, translateError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// INSERT IGNORE reports 0 affected rows for a duplicate key
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
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlErrNoSuchTable {
		return fmt.Errorf("%w: %s", ErrSchemaMissing, myErr.Message)
	}
	return err
}
