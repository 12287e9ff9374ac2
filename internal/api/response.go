// Package api implements the uniform JSON envelope every endpoint writes.
package api

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/joonpark/post-board/internal/apperr"
)

// Pagination is the block attached to paginated list responses.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count for a list result.
func NewPagination(total int64, page, limit int) *Pagination {
	return &Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// Envelope is the wrapper object used for every response.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, data interface{}, message string) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, data interface{}, message string) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// Paginated writes a 200 success envelope with a pagination block.
func Paginated(w http.ResponseWriter, data interface{}, p *Pagination) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: p})
}

// Fail writes an error envelope.
func Fail(w http.ResponseWriter, status int, message, detail string) {
	write(w, status, Envelope{Success: false, Message: message, Error: detail})
}

// FailErr writes the envelope for a service error. Taxonomy errors keep
// their own message; anything else becomes a 500 with the fallback
// message, and the underlying error text is exposed only in debug mode.
func FailErr(w http.ResponseWriter, err error, fallback string, debug bool) {
	status := apperr.Status(err)
	message := err.Error()
	detail := ""
	if status == http.StatusInternalServerError {
		message = fallback
		if debug {
			detail = err.Error()
		}
	}
	Fail(w, status, message, detail)
}
