// internal/services/envelope.go
package services

import (
	"strconv"

	"github.com/netflix100plus/admin-console/internal/utils"
)

// dataEnvelope is the backend's usual {"data": ...} wrapper.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type pagedEnvelope[T any] struct {
	Data       []T                `json:"data"`
	Pagination *backendPagination `json:"pagination"`
}

type backendPagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// validateRecords checks every decoded record against its struct tags.
func validateRecords[T any](what string, records []T) error {
	if err := utils.ValidateSlice(records); err != nil {
		return utils.NewValidationError("invalid "+what+" response", err)
	}
	return nil
}

func validateRecord(what string, record interface{}) error {
	if err := utils.ValidateStruct(record); err != nil {
		return utils.NewValidationError("invalid "+what+" response", err)
	}
	return nil
}

func idPath(prefix string, id int64, suffix string) string {
	p := prefix + "/" + strconv.FormatInt(id, 10)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}
