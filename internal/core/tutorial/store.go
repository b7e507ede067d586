package tutorial

import "context"

// Repository defines the data access contract.
//
// Get and Update return an apperr NOT_FOUND error when no row has the id.
// Delete succeeds whether or not the row exists.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Tutorial, int64, error)
	Get(context context.Context, id int64) (*Tutorial, error)
	Create(context context.Context, t *Tutorial) error
	Update(context context.Context, t *Tutorial) error
	Delete(context context.Context, id int64) error
	DeleteAll(context context.Context) error
}
