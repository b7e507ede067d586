package tutorial_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tutorials/internal/core/tutorial"
	"github.com/taibuivan/tutorials/internal/platform/respond"
	"github.com/taibuivan/tutorials/pkg/pagination"
)

func newTestRouter(repo tutorial.Repository) http.Handler {
	handler := tutorial.NewHandler(tutorial.NewService(repo, discardLogger, nil))

	router := chi.NewRouter()
	router.Route("/api/tutorials", handler.RegisterRoutes)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &value), recorder.Body.String())
	return value
}

func createTutorial(t *testing.T, router http.Handler, title, description string) tutorial.Tutorial {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"description":%q}`, title, description)
	recorder := doRequest(t, router, http.MethodPost, "/api/tutorials", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	return decodeBody[tutorial.Tutorial](t, recorder)
}

/*
TestHandler_CreateAndGet checks the create response and the stored record.
*/
func TestHandler_CreateAndGet(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())

	recorder := doRequest(t, router, http.MethodPost, "/api/tutorials", `{"title":"Tut#1","description":"Desc#1","published":true}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")

	created := decodeBody[tutorial.Tutorial](t, recorder)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Tut#1", created.Title)
	assert.Equal(t, "Desc#1", created.Description)
	assert.False(t, created.Published)

	recorder = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/tutorials/%d", created.ID), "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, created, decodeBody[tutorial.Tutorial](t, recorder))
}

/*
TestHandler_ListFilters covers the title and published listings.
*/
func TestHandler_ListFilters(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())

	first := createTutorial(t, router, "Spring Boot", "Desc#1")
	second := createTutorial(t, router, "String basics", "Desc#2")
	createTutorial(t, router, "Go", "Desc#3")

	recorder := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/tutorials/%d", first.ID),
		`{"title":"Spring Boot","description":"Desc#1","published":true}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	t.Run("title_substring", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/tutorials?title=ring", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		page := decodeBody[pagination.Page[tutorial.Tutorial]](t, recorder)
		assert.Equal(t, int64(2), page.TotalItems)
		require.Len(t, page.Items, 2)
		assert.Equal(t, first.ID, page.Items[0].ID)
		assert.Equal(t, second.ID, page.Items[1].ID)
	})

	t.Run("empty_title_is_absent", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/tutorials?title=", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int64(3), decodeBody[pagination.Page[tutorial.Tutorial]](t, recorder).TotalItems)
	})

	t.Run("published", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/tutorials/published", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		page := decodeBody[pagination.Page[tutorial.Tutorial]](t, recorder)
		require.Len(t, page.Items, 1)
		assert.Equal(t, first.ID, page.Items[0].ID)
		assert.True(t, page.Items[0].Published)
	})
}

/*
TestHandler_Paging checks the envelope for default and explicit page sizes.
*/
func TestHandler_Paging(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())
	for i := 1; i <= 7; i++ {
		createTutorial(t, router, fmt.Sprintf("Tut#%d", i), "Desc")
	}

	tests := []struct {
		name        string
		query       string
		items       int
		currentPage int
		totalPages  int
	}{
		{"defaults", "", 3, 0, 3},
		{"second_page", "?page=1", 3, 1, 3},
		{"last_page", "?page=2", 1, 2, 3},
		{"past_the_end", "?page=9", 0, 9, 3},
		{"size_five", "?size=5", 5, 0, 2},
		{"size_five_second", "?page=1&size=5", 2, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(t, router, http.MethodGet, "/api/tutorials"+tt.query, "")
			require.Equal(t, http.StatusOK, recorder.Code)

			page := decodeBody[pagination.Page[tutorial.Tutorial]](t, recorder)
			assert.NotNil(t, page.Items)
			assert.Len(t, page.Items, tt.items)
			assert.Equal(t, tt.currentPage, page.CurrentPage)
			assert.Equal(t, int64(7), page.TotalItems)
			assert.Equal(t, tt.totalPages, page.TotalPages)
		})
	}
}

/*
TestHandler_BadRequests checks that malformed input yields 400 with an error body.
*/
func TestHandler_BadRequests(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())
	createTutorial(t, router, "Tut#1", "Desc#1")

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"page_not_integer", http.MethodGet, "/api/tutorials?page=abc", ""},
		{"negative_page", http.MethodGet, "/api/tutorials?page=-1", ""},
		{"zero_size", http.MethodGet, "/api/tutorials?size=0", ""},
		{"size_too_large", http.MethodGet, "/api/tutorials/published?size=1000", ""},
		{"id_not_integer", http.MethodGet, "/api/tutorials/abc", ""},
		{"update_id_not_integer", http.MethodPut, "/api/tutorials/abc", `{"title":"x"}`},
		{"delete_id_not_integer", http.MethodDelete, "/api/tutorials/abc", ""},
		{"malformed_body", http.MethodPost, "/api/tutorials", `{"title":`},
		{"missing_title", http.MethodPost, "/api/tutorials", `{"description":"only"}`},
		{"update_empty_title", http.MethodPut, "/api/tutorials/1", `{"title":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			envelope := decodeBody[respond.ErrorEnvelope](t, recorder)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}

/*
TestHandler_NotFound checks the message for missing ids on get and update.
*/
func TestHandler_NotFound(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())

	recorder := doRequest(t, router, http.MethodGet, "/api/tutorials/42", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Not found Tutorial with id = 42", decodeBody[respond.ErrorEnvelope](t, recorder).Error)

	recorder = doRequest(t, router, http.MethodPut, "/api/tutorials/42", `{"title":"x","description":"y","published":true}`)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Not found Tutorial with id = 42", decodeBody[respond.ErrorEnvelope](t, recorder).Error)

	recorder = doRequest(t, router, http.MethodGet, "/api/tutorials", "")
	assert.Equal(t, int64(0), decodeBody[pagination.Page[tutorial.Tutorial]](t, recorder).TotalItems)
}

/*
TestHandler_Delete covers single delete idempotency and delete-all.
*/
func TestHandler_Delete(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())

	first := createTutorial(t, router, "Tut#1", "Desc#1")
	createTutorial(t, router, "Tut#2", "Desc#2")

	target := fmt.Sprintf("/api/tutorials/%d", first.ID)
	for range 2 {
		recorder := doRequest(t, router, http.MethodDelete, target, "")
		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	}

	recorder := doRequest(t, router, http.MethodGet, target, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(t, router, http.MethodDelete, "/api/tutorials", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, "/api/tutorials", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeBody[pagination.Page[tutorial.Tutorial]](t, recorder)
	assert.Equal(t, int64(0), page.TotalItems)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Items)
	assert.Contains(t, recorder.Body.String(), `"items":[]`)
}

/*
TestHandler_StorageFailure checks that every operation maps storage errors to 500.
*/
func TestHandler_StorageFailure(t *testing.T) {
	router := newTestRouter(failingRepository{})

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"list", http.MethodGet, "/api/tutorials", ""},
		{"published", http.MethodGet, "/api/tutorials/published", ""},
		{"get", http.MethodGet, "/api/tutorials/1", ""},
		{"create", http.MethodPost, "/api/tutorials", `{"title":"Tut#1"}`},
		{"update", http.MethodPut, "/api/tutorials/1", `{"title":"Tut#1"}`},
		{"delete", http.MethodDelete, "/api/tutorials/1", ""},
		{"delete_all", http.MethodDelete, "/api/tutorials", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusInternalServerError, recorder.Code)

			envelope := decodeBody[respond.ErrorEnvelope](t, recorder)
			assert.NotContains(t, envelope.Error, "connection refused")
		})
	}
}

/*
TestHandler_CatalogueScenario publishes two of three tutorials and checks both listings.
*/
func TestHandler_CatalogueScenario(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())

	first := createTutorial(t, router, "Spring Boot Tut#1", "Desc#1")
	createTutorial(t, router, "Go Tut#2", "Desc#2")
	third := createTutorial(t, router, "Spring Data JPA Tut#3", "Desc#3")

	for _, created := range []tutorial.Tutorial{first, third} {
		body := fmt.Sprintf(`{"title":%q,"description":%q,"published":true}`, created.Title, created.Description)
		recorder := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/tutorials/%d", created.ID), body)
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	for _, target := range []string{"/api/tutorials/published", "/api/tutorials?title=ring"} {
		recorder := doRequest(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, recorder.Code)

		page := decodeBody[pagination.Page[tutorial.Tutorial]](t, recorder)
		require.Len(t, page.Items, 2, target)
		assert.Equal(t, "Spring Boot Tut#1", page.Items[0].Title)
		assert.Equal(t, "Spring Data JPA Tut#3", page.Items[1].Title)
	}
}

/*
TestHandler_WhitespaceTitle checks that a blank but present title is stored as given.
*/
func TestHandler_WhitespaceTitle(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())

	created := createTutorial(t, router, "   ", "Desc#1")
	assert.Equal(t, "   ", created.Title)

	recorder := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/tutorials/%d", created.ID), `{"title":" ","published":true}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, " ", decodeBody[tutorial.Tutorial](t, recorder).Title)
}

/*
TestHandler_IdsNotReused checks that ids keep growing after single and bulk deletes.
*/
func TestHandler_IdsNotReused(t *testing.T) {
	router := newTestRouter(tutorial.NewMemoryRepository())

	first := createTutorial(t, router, "Tut#1", "Desc#1")

	recorder := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/tutorials/%d", first.ID), "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	second := createTutorial(t, router, "Tut#2", "Desc#2")
	assert.Greater(t, second.ID, first.ID)

	recorder = doRequest(t, router, http.MethodDelete, "/api/tutorials", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	third := createTutorial(t, router, "Tut#3", "Desc#3")
	assert.Greater(t, third.ID, second.ID)
}
