package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pageParams reads page/limit query parameters, tolerating absence but
// rejecting garbage.
func pageParams(r *http.Request) (page, limit int, err error) {
	page, err = intQuery(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	limit, err = intQuery(r, "limit", 10)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.Validationf(model.ErrCodeMissingField, "Invalid %s parameter", name)
	}
	return v, nil
}

// uuidParam reads a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.Validationf(model.ErrCodeMissingField, "Invalid %s parameter", name)
	}
	return id, nil
}

// timeQuery reads an optional RFC 3339 `time` query parameter, defaulting to
// the current instant. An unparseable value is a validation error, never
// silently the current time.
func timeQuery(r *http.Request, now func() time.Time) (time.Time, error) {
	raw := r.URL.Query().Get("time")
	if raw == "" {
		return now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, model.Validationf(model.ErrCodeInvalidTimestamp, "Invalid time parameter, expected RFC 3339")
	}
	return t, nil
}

// categoryQuery reads an optional `category` query parameter as a UUID.
func categoryQuery(r *http.Request) (*uuid.UUID, error) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, model.Validationf(model.ErrCodeMissingField, "Invalid category parameter")
	}
	return &id, nil
}
