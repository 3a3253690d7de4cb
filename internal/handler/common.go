package handler

import (
	"net/http"

	customError "github.com/murithi/rentledger/pkg/errors"
	"github.com/murithi/rentledger/pkg/response"
)

// writeServiceError maps business error codes to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch customError.CodeOf(err) {
	case customError.ErrCodeValidation:
		response.BadRequest(w, "Validation failed", err)
	case customError.ErrCodeNotFound:
		response.NotFound(w, err.Error())
	case customError.ErrCodeConflict:
		response.Conflict(w, "Conflict", err)
	default:
		response.InternalServerError(w, "Internal error", err)
	}
}
