package tutorial

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tutorials/internal/platform/request"
	"github.com/taibuivan/tutorials/internal/platform/respond"
	"github.com/taibuivan/tutorials/pkg/pagination"
)

const paramTitle = "title"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the tutorial endpoints on a router scoped to /tutorials.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTutorials)
	router.Post("/", handler.createTutorial)
	router.Delete("/", handler.deleteAllTutorials)

	router.Get("/published", handler.listPublishedTutorials)

	router.Get("/{id}", handler.getTutorial)
	router.Put("/{id}", handler.updateTutorial)
	router.Delete("/{id}", handler.deleteTutorial)
}

func (handler *Handler) listTutorials(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{}
	if title := request.URL.Query().Get(paramTitle); title != "" {
		filter.Title = &title
	}

	handler.list(writer, request, filter)
}

func (handler *Handler) listPublishedTutorials(writer http.ResponseWriter, request *http.Request) {
	published := true
	handler.list(writer, request, Filter{Published: &published})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, filter Filter) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) getTutorial(writer http.ResponseWriter, request *http.Request) {
	tutorialID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tutorial, err := handler.service.Get(request.Context(), tutorialID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tutorial)
}

func (handler *Handler) createTutorial(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tutorial, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tutorial)
}

func (handler *Handler) updateTutorial(writer http.ResponseWriter, request *http.Request) {
	tutorialID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tutorial, err := handler.service.Update(request.Context(), tutorialID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tutorial)
}

func (handler *Handler) deleteTutorial(writer http.ResponseWriter, request *http.Request) {
	tutorialID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), tutorialID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteAllTutorials(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAll(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
