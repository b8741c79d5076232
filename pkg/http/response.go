package http

import (
	"encoding/json"
	"net/http"

	"digilist/pkg/adapters"
	apperrors "digilist/pkg/errors"
)

type SuccessResponse struct {
	Data any `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError answers with the AppError found in err, or a 500 for anything
// else. The cause of an AppError is never written to the client.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), apperrors.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WritePaginated[T any](w http.ResponseWriter, page adapters.Paginated[T]) error {
	return WriteSuccess(w, page)
}
