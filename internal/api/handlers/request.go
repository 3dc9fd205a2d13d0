package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

const maxBodyBytes = 1 << 20

var (
	// ErrEmptyBody is returned by DecodeJSON for a request without a body
	ErrEmptyBody = errors.New("handlers: empty request body")

	// ErrInvalidPathParam is returned for a missing or non-positive id in the URL
	ErrInvalidPathParam = errors.New("handlers: invalid path parameter")

	// ErrInvalidQueryParam is returned for a malformed query parameter
	ErrInvalidQueryParam = errors.New("handlers: invalid query parameter")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON reads a JSON body into v and validates its `validate` tags
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode body: %w", err)
	}

	return Validate(v)
}

// Validate checks the struct tags of v and flattens validation errors into one message
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, "; "))
}

// PathID parses a positive int64 route variable
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathParam, name, raw)
	}
	return id, nil
}

// QueryID parses an optional positive int64 query parameter
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return &id, nil
}

// QueryDate parses an optional YYYY-MM-DD query parameter
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return &date, nil
}
