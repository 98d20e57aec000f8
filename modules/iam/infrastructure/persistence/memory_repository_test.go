package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/notification"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
)

func TestMemoryRepository_List(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository(emailtemplate.Descriptor, EmailTemplateFixtures()...)
	ctx := context.Background()

	t.Run("Should filter by search, status and system flag", func(t *testing.T) {
		s := listing.DefaultState(emailtemplate.Descriptor)
		s.Search = "welcome"
		s.Filters["status"] = listing.Multi(resource.StatusActive, resource.StatusDraft)
		s.Filters["isSystem"] = listing.Single("regular")

		page, err := repo.List(ctx, listing.Derive(emailtemplate.Descriptor, s))
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		for _, row := range page.Rows {
			assert.Contains(t, []string{resource.StatusActive, resource.StatusDraft}, row.Status)
			assert.False(t, row.IsSystem)
		}
		// newest first
		assert.Equal(t, "welcome-trial", page.Rows[0].Name)
	})

	t.Run("Should page with the default size", func(t *testing.T) {
		s := listing.DefaultState(emailtemplate.Descriptor)
		s.Pagination.PageIndex = 1
		page, err := repo.List(ctx, listing.Derive(emailtemplate.Descriptor, s))
		require.NoError(t, err)
		assert.Equal(t, 12, page.Total)
		assert.Len(t, page.Rows, 2)
	})

	t.Run("Should honour a cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.List(cctx, listing.Derive(emailtemplate.Descriptor, listing.DefaultState(emailtemplate.Descriptor)))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryRepository_Mutations(t *testing.T) {
	t.Parallel()
	rows := NotificationFixtures()
	repo := NewMemoryRepository(notification.Descriptor, rows...)
	at := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return at }
	ctx := context.Background()
	id := rows[2].RowID()

	require.NoError(t, repo.UpdateStatus(ctx, id, notification.StatusScheduled))
	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, notification.StatusScheduled, got.Status)
	assert.Equal(t, at, got.UpdatedAt)
	assert.Equal(t, notification.StatusDraft, rows[2].Status, "fixtures are not mutated")

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), resource.ErrNotFound)
	assert.Equal(t, len(rows)-1, repo.Len())

	n, err := repo.Insert(ctx, rows...)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFixtures_UseDeclaredOptions(t *testing.T) {
	t.Parallel()
	status, _ := emailtemplate.Descriptor.Filter("status")
	typ, _ := emailtemplate.Descriptor.Filter("type")
	seen := map[string]bool{}
	for _, f := range EmailTemplateFixtures() {
		assert.NotEqual(t, f.Status, status.OptionLabel(f.Status), "status %q has no option", f.Status)
		assert.NotEqual(t, f.Type, typ.OptionLabel(f.Type), "type %q has no option", f.Type)
		assert.False(t, seen[f.RowID()], "duplicate id for %s", f.Name)
		seen[f.RowID()] = true
	}
}
