// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how zero-based page navigation is requested via the "page"
// and "size" query parameters and how the resulting metadata is delivered in
// the list response envelope.
package pagination

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/taibuivan/tutorials/internal/platform/validate"
)

const (
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 3
	// MaxSize is the upper bound for items per page to prevent system abuse.
	MaxSize = 100
	// MaxPage keeps Offset within int range for any accepted size.
	MaxPage = math.MaxInt32

	paramPage = "page"
	paramSize = "size"
)

// Params holds the parsed page and size from a request's query string.
type Params struct {
	Page int
	Size int
}

// Offset returns the SQL OFFSET value derived from Page and Size.
func (p Params) Offset() int {
	return p.Page * p.Size
}

// Page is the list response envelope.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// NewPage builds the envelope for one page of results.
//
// Items is never nil so that it always serializes as a JSON array.
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}

	return Page[T]{
		Items:       items,
		CurrentPage: params.Page,
		TotalItems:  total,
		TotalPages:  TotalPages(total, params.Size),
	}
}

// TotalPages returns ceil(total/size), or 0 when size is not positive.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// FromRequest parses "page" and "size" query parameters from an HTTP request.
//
// # Defaults
//
// [DefaultPage] and [DefaultSize] apply only when a parameter is absent or
// empty. A present value that is not an integer, a negative page, or a size
// outside [1, MaxSize] yields a VALIDATION_ERROR.
func FromRequest(r *http.Request) (Params, error) {
	query := r.URL.Query()
	validator := &validate.Validator{}

	page, pageErr := parseIntParam(query.Get(paramPage), DefaultPage)
	size, sizeErr := parseIntParam(query.Get(paramSize), DefaultSize)

	validator.Custom(paramPage, pageErr != nil, "Must be an integer")
	validator.Custom(paramSize, sizeErr != nil, "Must be an integer")

	if pageErr == nil {
		validator.Range(paramPage, page, 0, MaxPage)
	}
	if sizeErr == nil {
		validator.Range(paramSize, size, 1, MaxSize)
	}

	if err := validator.Err(); err != nil {
		return Params{}, err
	}

	return Params{Page: page, Size: size}, nil
}

// parseIntParam parses a single integer query value with a fallback default.
func parseIntParam(raw string, defaultVal int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(raw)
}
