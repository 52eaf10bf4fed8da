package fiber

import "encoding/json"

// CreateRecordResponse represents the outcome of a single record write
// @Description Record creation result
type CreateRecordResponse struct {
	Status string `json:"status" example:"created"`
	ID     string `json:"id,omitempty" example:"450789469"`
}

type BulkCreateRecordsRequest struct {
	Records []json.RawMessage `json:"records" swaggertype:"array,object"`
}

type BulkCreateRecordsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_record"`
	Message string `json:"message" example:"invalid record"`
}
