package tutorial

import (
	"fmt"
	"strings"
)

// Tutorial is a single published or draft tutorial.
type Tutorial struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// Input is the request payload for create and update.
// Published is ignored on create.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// Filter narrows a paginated listing. Nil fields are not applied.
type Filter struct {
	// Title keeps tutorials whose title contains this substring (case-sensitive).
	Title *string
	// Published keeps tutorials with this exact published flag.
	Published *bool
}

// Matches reports whether t satisfies every set field of the filter.
func (f Filter) Matches(t *Tutorial) bool {
	if f.Title != nil && !strings.Contains(t.Title, *f.Title) {
		return false
	}
	if f.Published != nil && t.Published != *f.Published {
		return false
	}
	return true
}

// FieldTitle is the payload field checked on create and update.
const FieldTitle = "title"

// Operation names reported to the metrics recorder.
const (
	OpList      = "list"
	OpGet       = "get"
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpDeleteAll = "delete_all"
)

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Not found Tutorial with id = %d", id)
}
