package tutorial

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tutorials/internal/platform/database/schema"
	"github.com/taibuivan/tutorials/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join(schema.Tutorials.Columns(), ", ")

// BuildWhere renders the filter as a SQL WHERE clause with positional
// arguments starting at $1. It returns an empty clause for an empty filter.
func BuildWhere(f Filter) (string, []any) {
	var conditions []string
	var args []any

	if f.Title != nil {
		args = append(args, "%"+EscapeLike(*f.Title)+"%")
		conditions = append(conditions, fmt.Sprintf(`%s LIKE $%d ESCAPE '\'`, schema.Tutorials.Title, len(args)))
	}

	if f.Published != nil {
		args = append(args, *f.Published)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.Tutorials.Published, len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// EscapeLike escapes LIKE metacharacters so that s matches literally.
func EscapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func (repository *PostgresRepository) List(context context.Context, f Filter, limit, offset int) ([]*Tutorial, int64, error) {
	where, args := BuildWhere(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.Tutorials.Table, where)

	var total int64
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tutorials")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC LIMIT $%s OFFSET $%s`,
		selectColumns, schema.Tutorials.Table, where, schema.Tutorials.ID,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tutorials")
	}
	defer rows.Close()

	tutorials := make([]*Tutorial, 0, limit)
	for rows.Next() {
		t := &Tutorial{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Published); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tutorial")
		}
		tutorials = append(tutorials, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_tutorials")
	}

	return tutorials, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Tutorial, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.Tutorials.Table, schema.Tutorials.ID,
	)

	t := &Tutorial{}
	err := repository.db.QueryRow(context, query, id).Scan(&t.ID, &t.Title, &t.Description, &t.Published)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tutorial")
	}
	return t, nil
}

func (repository *PostgresRepository) Create(context context.Context, t *Tutorial) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		schema.Tutorials.Table, schema.Tutorials.Title, schema.Tutorials.Description, schema.Tutorials.Published,
		schema.Tutorials.ID,
	)

	err := repository.db.QueryRow(context, query, t.Title, t.Description, t.Published).Scan(&t.ID)
	return dberr.Wrap(err, "create_tutorial")
}

func (repository *PostgresRepository) Update(context context.Context, t *Tutorial) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Tutorials.Table, schema.Tutorials.Title, schema.Tutorials.Description, schema.Tutorials.Published,
		schema.Tutorials.ID, schema.Tutorials.ID,
	)

	err := repository.db.QueryRow(context, query, t.ID, t.Title, t.Description, t.Published).Scan(&t.ID)
	return dberr.Wrap(err, "update_tutorial")
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Tutorials.Table, schema.Tutorials.ID)

	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_tutorial")
}

func (repository *PostgresRepository) DeleteAll(context context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, schema.Tutorials.Table)

	_, err := repository.db.Exec(context, query)
	return dberr.Wrap(err, "delete_all_tutorials")
}
