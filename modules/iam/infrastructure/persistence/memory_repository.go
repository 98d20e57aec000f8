package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

// MemoryRepository keeps rows in process and filters them with the listing predicates,
// so it answers the same params the same way PgRepository does.
type MemoryRepository[E resource.Entity[E]] struct {
	desc *listing.Descriptor
	now  func() time.Time

	mu   sync.RWMutex
	rows []E
}

func NewMemoryRepository[E resource.Entity[E]](desc *listing.Descriptor, rows ...E) *MemoryRepository[E] {
	return &MemoryRepository[E]{desc: desc, now: time.Now, rows: slices.Clone(rows)}
}

func (r *MemoryRepository[E]) List(ctx context.Context, p listing.Params) (listing.Page[E], error) {
	if err := ctx.Err(); err != nil {
		return listing.Page[E]{}, err
	}
	if p.Limit <= 0 {
		p.Limit = r.desc.PageSize()
	}
	r.mu.RLock()
	rows := slices.Clone(r.rows)
	r.mu.RUnlock()
	return listing.Apply(r.desc, p, rows), nil
}

func (r *MemoryRepository[E]) GetByID(_ context.Context, id string) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		return r.rows[i], nil
	}
	var zero E
	return zero, fmt.Errorf("%w: %s %s", resource.ErrNotFound, r.desc.Name, id)
}

func (r *MemoryRepository[E]) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s %s", resource.ErrNotFound, r.desc.Name, id)
	}
	r.rows[i] = r.rows[i].WithStatus(status, r.now())
	return nil
}

func (r *MemoryRepository[E]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s %s", resource.ErrNotFound, r.desc.Name, id)
	}
	r.rows = slices.Delete(r.rows, i, i+1)
	return nil
}

// Insert adds rows whose id is not present yet.
func (r *MemoryRepository[E]) Insert(_ context.Context, rows ...E) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range rows {
		if r.index(row.RowID()) >= 0 {
			continue
		}
		r.rows = append(r.rows, row)
		n++
	}
	return n, nil
}

func (r *MemoryRepository[E]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func (r *MemoryRepository[E]) index(id string) int {
	return slices.IndexFunc(r.rows, func(row E) bool { return row.RowID() == id })
}
