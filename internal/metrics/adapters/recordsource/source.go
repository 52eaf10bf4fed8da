package recordsource

import (
	"bytes"
	"context"
	"encoding/json"

	"shop-analytics-service/internal/records/core/domain"
)

// FetchCollectionUseCase is the records context's read path.
type FetchCollectionUseCase interface {
	Execute(ctx context.Context, name string) ([]domain.Record, error)
}

// Source feeds the dashboard from the records context in the same process.
type Source struct {
	uc FetchCollectionUseCase
}

func New(uc FetchCollectionUseCase) *Source {
	return &Source{uc: uc}
}

// FetchCollection joins the stored documents into one JSON array.
func (s *Source) FetchCollection(ctx context.Context, collection string) (json.RawMessage, error) {
	records, err := s.uc.Execute(ctx, collection)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		if len(r.Doc) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(r.Doc)
	}
	buf.WriteByte(']')

	return json.RawMessage(buf.Bytes()), nil
}
