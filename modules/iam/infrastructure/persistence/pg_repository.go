package persistence

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/listing"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PgRepository serves one entity table. Queries run inside the transaction in ctx
// when there is one.
type PgRepository[E resource.Entity[E]] struct {
	db    composables.DB
	desc  *listing.Descriptor
	table Table[E]
	now   func() time.Time
}

func NewPgRepository[E resource.Entity[E]](db composables.DB, desc *listing.Descriptor, table Table[E]) *PgRepository[E] {
	return &PgRepository[E]{db: db, desc: desc, table: table, now: time.Now}
}

func (r *PgRepository[E]) conditions(p listing.Params) sq.And {
	var where sq.And
	if term := p.Search(r.desc); term != "" {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		or := make(sq.Or, 0, len(r.desc.SearchFields))
		for _, field := range r.desc.SearchFields {
			or = append(or, sq.ILike{field: pattern})
		}
		where = append(where, or)
	}
	for _, f := range r.desc.Filters {
		switch f.Kind {
		case listing.FilterMulti:
			if list := p.List(f.Param); len(list) > 0 {
				where = append(where, sq.Expr(f.Param+" = ANY(?)", list))
			}
		case listing.FilterTriState:
			if v, ok := p.Flag(f.Param); ok {
				where = append(where, sq.Eq{f.Param: v})
			}
		default:
			if v, ok := p.Field(f.Param); ok {
				where = append(where, sq.Expr("lower("+f.Param+"::text) = lower(?)", v))
			}
		}
	}
	return where
}

func (r *PgRepository[E]) List(ctx context.Context, p listing.Params) (listing.Page[E], error) {
	db := composables.UseTx(ctx, r.db)
	where := r.conditions(p)

	countQ := psql.Select("COUNT(*)").From(r.table.Name)
	selectQ := psql.Select(r.table.Columns...).From(r.table.Name)
	if len(where) > 0 {
		countQ = countQ.Where(where)
		selectQ = selectQ.Where(where)
	}

	query, args, err := countQ.ToSql()
	if err != nil {
		return listing.Page[E]{}, errors.Wrap(err, "build count query")
	}
	var total int
	if err := db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return listing.Page[E]{}, errors.Wrapf(err, "count %s", r.table.Name)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = r.desc.PageSize()
	}
	sortBy := p.SortBy
	if !r.desc.IsSortable(sortBy) {
		sortBy = r.desc.Sort()[0].Field
	}
	order := "ASC"
	if p.SortOrder == listing.SortDesc {
		order = "DESC"
	}
	query, args, err = selectQ.
		OrderBy(sortBy+" "+order, "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return listing.Page[E]{}, errors.Wrap(err, "build list query")
	}
	var rows []E
	if err := pgxscan.Select(ctx, db, &rows, query, args...); err != nil {
		return listing.Page[E]{}, errors.Wrapf(err, "list %s", r.table.Name)
	}
	return listing.Page[E]{Rows: rows, Total: total}, nil
}

func (r *PgRepository[E]) GetByID(ctx context.Context, id string) (E, error) {
	var zero E
	uid, err := uuid.Parse(id)
	if err != nil {
		return zero, errors.Wrapf(resource.ErrNotFound, "%s %q", r.desc.Name, id)
	}
	query, args, err := psql.Select(r.table.Columns...).
		From(r.table.Name).
		Where(sq.Eq{"id": uid}).
		ToSql()
	if err != nil {
		return zero, errors.Wrap(err, "build get query")
	}
	row := r.table.New()
	if err := pgxscan.Get(ctx, composables.UseTx(ctx, r.db), row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return zero, errors.Wrapf(resource.ErrNotFound, "%s %s", r.desc.Name, id)
		}
		return zero, errors.Wrapf(err, "get %s", r.table.Name)
	}
	return row, nil
}

func (r *PgRepository[E]) UpdateStatus(ctx context.Context, id, status string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errors.Wrapf(resource.ErrNotFound, "%s %q", r.desc.Name, id)
	}
	query, args, err := psql.Update(r.table.Name).
		Set("status", status).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": uid}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build update query")
	}
	return r.exec(ctx, id, query, args)
}

func (r *PgRepository[E]) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errors.Wrapf(resource.ErrNotFound, "%s %q", r.desc.Name, id)
	}
	query, args, err := psql.Delete(r.table.Name).Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete query")
	}
	return r.exec(ctx, id, query, args)
}

func (r *PgRepository[E]) exec(ctx context.Context, id, query string, args []any) error {
	tag, err := composables.UseTx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "write %s", r.table.Name)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(resource.ErrNotFound, "%s %s", r.desc.Name, id)
	}
	return nil
}

// Insert writes rows, skipping ids that already exist. It returns the number inserted.
func (r *PgRepository[E]) Insert(ctx context.Context, rows ...E) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	q := psql.Insert(r.table.Name).Columns(r.table.Columns...)
	for _, row := range rows {
		values := make([]any, len(r.table.Columns))
		for i, c := range r.table.Columns {
			values[i] = row.Value(c)
		}
		q = q.Values(values...)
	}
	query, args, err := q.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build insert query")
	}
	tag, err := composables.UseTx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "insert %s", r.table.Name)
	}
	return tag.RowsAffected(), nil
}
