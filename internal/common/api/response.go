package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"publicapi/internal/common/middleware"
)

// StatusError is an error body that knows the HTTP status it is served with.
type StatusError interface {
	error
	StatusCode() int
}

// AuthError is the body served for requests that fail authentication.
type AuthError struct {
	Message string `json:"message"`
}

// MaxBodyBytes bounds every request body read by the gateway.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned by ReadBody when the limit is exceeded.
var ErrBodyTooLarge = errors.New("request body too large")

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error body with the status it carries
func WriteError(w http.ResponseWriter, err StatusError) {
	WriteJSON(w, err.StatusCode(), err)
}

// Created writes a 201 response with a Location header
func Created(w http.ResponseWriter, location string, data interface{}) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	WriteJSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Unauthorized writes a 401 response
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="public-api"`)
	WriteJSON(w, http.StatusUnauthorized, AuthError{Message: "Credentials are required to access this resource"})
}

// ReadBody reads at most MaxBodyBytes from the request body
func ReadBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

// Fail writes problem. Server-side failures are logged with their cause.
func Fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, problem StatusError, cause error) {
	if problem.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", problem.Error(),
			"error", cause,
			"correlation_id", middleware.GetCorrelationID(r.Context()),
		)
	}
	WriteError(w, problem)
}
