package tutorial

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tutorials/internal/platform/apperr"
	"github.com/taibuivan/tutorials/internal/platform/validate"
	"github.com/taibuivan/tutorials/pkg/pagination"
)

// OperationRecorder counts service operations. [metrics.Metrics] implements it.
type OperationRecorder interface {
	RecordOperation(operation string, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, error) {}

type Service struct {
	repo     Repository
	logger   *slog.Logger
	recorder OperationRecorder
}

// NewService wires the repository. A nil recorder disables operation metrics.
func NewService(repo Repository, logger *slog.Logger, recorder OperationRecorder) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		repo:     repo,
		logger:   logger,
		recorder: recorder,
	}
}

// List returns one page of tutorials matching the filter, ordered by id.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) (page pagination.Page[*Tutorial], err error) {
	defer func() { service.recorder.RecordOperation(OpList, err) }()

	tutorials, total, err := service.repo.List(context, filter, params.Size, params.Offset())
	if err != nil {
		return page, err
	}
	return pagination.NewPage(tutorials, params, total), nil
}

func (service *Service) Get(context context.Context, id int64) (t *Tutorial, err error) {
	defer func() { service.recorder.RecordOperation(OpGet, err) }()

	t, err = service.repo.Get(context, id)
	return t, withTutorialID(err, id)
}

// Create persists a new tutorial. Published always starts as false.
func (service *Service) Create(context context.Context, input Input) (t *Tutorial, err error) {
	defer func() { service.recorder.RecordOperation(OpCreate, err) }()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	t = &Tutorial{
		Title:       input.Title,
		Description: input.Description,
		Published:   false,
	}
	if err := service.repo.Create(context, t); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "tutorial_created", slog.Int64("tutorial_id", t.ID))
	return t, nil
}

// Update overwrites title, description, and published of an existing tutorial.
func (service *Service) Update(context context.Context, id int64, input Input) (t *Tutorial, err error) {
	defer func() { service.recorder.RecordOperation(OpUpdate, err) }()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	t = &Tutorial{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Published:   input.Published,
	}
	if err := service.repo.Update(context, t); err != nil {
		return nil, withTutorialID(err, id)
	}

	service.logger.InfoContext(context, "tutorial_updated", slog.Int64("tutorial_id", id))
	return t, nil
}

// Delete removes the tutorial if it exists. Deleting a missing id is not an error.
func (service *Service) Delete(context context.Context, id int64) (err error) {
	defer func() { service.recorder.RecordOperation(OpDelete, err) }()

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "tutorial_deleted", slog.Int64("tutorial_id", id))
	return nil
}

func (service *Service) DeleteAll(context context.Context) (err error) {
	defer func() { service.recorder.RecordOperation(OpDeleteAll, err) }()

	if err := service.repo.DeleteAll(context); err != nil {
		return err
	}

	service.logger.WarnContext(context, "tutorials_deleted_all")
	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	return validator.Err()
}

// withTutorialID replaces a generic not-found error with one naming the id.
func withTutorialID(err error, id int64) error {
	if apperr.IsNotFound(err) {
		return apperr.NotFound(notFoundMessage(id))
	}
	return err
}
