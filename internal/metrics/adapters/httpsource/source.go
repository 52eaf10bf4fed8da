package httpsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop-analytics-service/internal/records/core/domain"

	"github.com/gofiber/fiber/v2"
)

const DefaultTimeout = 5 * time.Second

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnexpectedStatus  = errors.New("unexpected status")
)

// Source retrieves collections from a remote records API exposing the
// storefront routes (/shopifyOrders, /shopifyCustomers, ...).
type Source struct {
	baseURL string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Source{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// FetchCollection performs one GET round trip. The request is bounded by the
// configured timeout or the context deadline, whichever comes first.
func (s *Source) FetchCollection(ctx context.Context, collection string) (json.RawMessage, error) {
	c, ok := domain.ParseCollection(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	url := s.baseURL + "/" + c.LegacyName()
	agent := fiber.Get(url).Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("GET %s: %w", url, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: GET %s: %d", ErrUnexpectedStatus, url, code)
	}

	return json.RawMessage(body), nil
}
