package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"digilist/pkg/config"
	apperrors "digilist/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset), nil
}

// DecodeJSON reads the request body into v. Unknown fields are rejected so
// typos in rate names do not silently price at zero.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.New(apperrors.CodeInvalidInput, "request body too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("request body is empty")
		}
		return apperrors.InvalidInput("Invalid request body: " + err.Error())
	}
	return nil
}
