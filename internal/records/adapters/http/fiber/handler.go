package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"shop-analytics-service/internal/records/core/domain"
	"shop-analytics-service/internal/records/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type FetchCollectionUseCase interface {
	Execute(ctx context.Context, name string) ([]domain.Record, error)
}

type StoreRecordUseCase interface {
	Execute(ctx context.Context, in usecase.StoreRecordInput) (bool, error)
	BulkStore(ctx context.Context, in usecase.BulkStoreRecordsInput) (usecase.BulkStoreRecordsResult, error)
}

type RecordHandler struct {
	fetchUC FetchCollectionUseCase
	storeUC StoreRecordUseCase
}

func NewRecordHandler(fetchUC FetchCollectionUseCase, storeUC StoreRecordUseCase) *RecordHandler {
	return &RecordHandler{fetchUC: fetchUC, storeUC: storeUC}
}

// Register mounts the record routes, including the legacy storefront paths
// (/shopifyCustomers, /shopifyOrders, /shopifyProducts).
func (h *RecordHandler) Register(r fiber.Router) {
	for _, c := range domain.Collections {
		r.Get("/"+c.LegacyName(), h.legacyCollection(c))
	}
	r.Get("/collections/:name", h.GetCollection)
	r.Post("/collections/:name/records", h.CreateRecord)
	r.Post("/collections/:name/records/bulk", h.BulkCreateRecords)
}

// GetCollection godoc
// @Summary Fetch a sample of raw records
// @Description Returns up to the configured sample size of raw JSON documents for a collection
// @Tags Records
// @Produce json
// @Param name path string true "Collection: customers | orders | products"
// @Success 200 {array} object
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /collections/{name} [get]
func (h *RecordHandler) GetCollection(c *fiber.Ctx) error {
	records, err := h.fetchUC.Execute(c.UserContext(), c.Params("name"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCollection):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error:   "unknown_collection",
				Message: err.Error(),
			})
		default:
			log.Printf("[WARN] fetch collection %q: %v", c.Params("name"), err)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(docs(records))
}

// legacyCollection serves the storefront-era routes, which answer failures
// with a plain-text body.
func (h *RecordHandler) legacyCollection(coll domain.Collection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := h.fetchUC.Execute(c.UserContext(), string(coll))
		if err != nil {
			log.Printf("[WARN] fetch %s: %v", coll.LegacyName(), err)
			return c.Status(http.StatusInternalServerError).
				SendString(fmt.Sprintf("Error fetching %s data", coll.LegacyName()))
		}
		return c.Status(http.StatusOK).JSON(docs(records))
	}
}

// CreateRecord godoc
// @Summary Store a raw record
// @Description Stores one JSON document; (collection, id) is the idempotency key
// @Tags Records
// @Accept json
// @Produce json
// @Param name path string true "Collection: customers | orders | products"
// @Param request body object true "Raw record (must carry an id)"
// @Success 201 {object} CreateRecordResponse
// @Success 200 {object} CreateRecordResponse "Duplicate record"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /collections/{name}/records [post]
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	// Body() is only valid for the lifetime of the handler.
	doc := append(json.RawMessage(nil), body...)

	created, err := h.storeUC.Execute(c.UserContext(), usecase.StoreRecordInput{
		Collection: c.Params("name"),
		Doc:        doc,
	})
	if err != nil {
		return writeStoreError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateRecordResponse{Status: "duplicate"})
	}
	return c.Status(http.StatusCreated).JSON(CreateRecordResponse{Status: "created"})
}

// BulkCreateRecords godoc
// @Summary Bulk store raw records
// @Description Validates the whole batch, then stores each record individually
// @Tags Records
// @Accept json
// @Produce json
// @Param name path string true "Collection: customers | orders | products"
// @Param request body BulkCreateRecordsRequest true "Bulk payload"
// @Success 201 {object} BulkCreateRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /collections/{name}/records/bulk [post]
func (h *RecordHandler) BulkCreateRecords(c *fiber.Ctx) error {
	var req BulkCreateRecordsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if len(req.Records) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "records_list_required",
		})
	}

	inputs := make([]usecase.StoreRecordInput, len(req.Records))
	for i, doc := range req.Records {
		inputs[i] = usecase.StoreRecordInput{
			Collection: c.Params("name"),
			Doc:        doc,
		}
	}

	result, err := h.storeUC.BulkStore(
		c.UserContext(),
		usecase.BulkStoreRecordsInput{Records: inputs},
	)
	if err != nil {
		return writeStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateRecordsResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

func writeStoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidCollection):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "unknown_collection",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidRecord):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_record",
			Message: err.Error(),
		})
	default:
		log.Printf("[WARN] store record: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func docs(records []domain.Record) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, r.Doc)
	}
	return out
}
