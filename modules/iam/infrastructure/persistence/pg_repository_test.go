package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/service"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/listing"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPgRepository_List(t *testing.T) {
	t.Run("Should translate params into one filtered page query", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, role.Descriptor, Roles)
		svc := FixtureID(service.Resource, "console")

		state := listing.DefaultState(role.Descriptor)
		state.Search = "adm"
		state.Filters["status"] = listing.Multi(resource.StatusActive)
		state.Filters["isSystem"] = listing.Single("system")
		state.Filters["serviceId"] = listing.Single(svc.String())
		params := listing.Derive(role.Descriptor, state)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM iam_roles WHERE`).
			WithArgs("%adm%", "%adm%", []string{resource.StatusActive}, true, svc.String()).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		admin := FixtureID(role.Resource, "admin")
		mock.ExpectQuery(`SELECT id, service_id, name, display_name, description, status, is_system, created_at, updated_at FROM iam_roles WHERE .*name ILIKE \$1 OR display_name ILIKE \$2.* ORDER BY created_at DESC, id ASC LIMIT 10 OFFSET 0`).
			WithArgs("%adm%", "%adm%", []string{resource.StatusActive}, true, svc.String()).
			WillReturnRows(mock.NewRows(role.Columns).
				AddRow(admin, svc, "admin", "Administrator", "Full access", resource.StatusActive, true, now, now))

		page, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Rows, 1)
		assert.Equal(t, admin, page.Rows[0].ID)
		assert.True(t, page.Rows[0].Protected())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should escape LIKE wildcards in the search term", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, service.Descriptor, Services)
		state := listing.DefaultState(service.Descriptor)
		state.Search = "50%_off"

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM iam_services`).
			WithArgs(`%50\%\_off%`, `%50\%\_off%`).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM iam_services`).
			WithArgs(`%50\%\_off%`, `%50\%\_off%`).
			WillReturnRows(mock.NewRows(service.Columns))

		page, err := repo.List(context.Background(), listing.Derive(service.Descriptor, state))
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should fall back to the default sort for unknown columns", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, service.Descriptor, Services)
		params := listing.Params{Page: 3, Limit: 5, SortBy: "password_hash", SortOrder: listing.SortAsc}

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM iam_services$`).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(`ORDER BY created_at ASC, id ASC LIMIT 5 OFFSET 10`).
			WillReturnRows(mock.NewRows(service.Columns))

		_, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should cap the offset of an overflowing page", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, service.Descriptor, Services)
		params := listing.Params{Page: 1844674407370955162, Limit: 10, SortBy: "created_at", SortOrder: listing.SortDesc}

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM iam_services$`).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(4))
		mock.ExpectQuery(`LIMIT 10 OFFSET 2147483647`).
			WillReturnRows(mock.NewRows(service.Columns))

		page, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Empty(t, page.Rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgRepository_GetByID(t *testing.T) {
	t.Run("Should map no rows to ErrNotFound", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, role.Descriptor, Roles)
		id := FixtureID(role.Resource, "ghost")
		mock.ExpectQuery(`FROM iam_roles WHERE id = \$1`).
			WithArgs(id.String()).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(context.Background(), id.String())
		assert.ErrorIs(t, err, resource.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should not query for malformed ids", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, role.Descriptor, Roles)
		_, err := repo.GetByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, resource.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgRepository_Mutations(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := FixtureID(role.Resource, "auditor")

	t.Run("Should update status and touch updated_at", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, role.Descriptor, Roles)
		repo.now = func() time.Time { return now }
		mock.ExpectExec(`UPDATE iam_roles SET status = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs(resource.StatusInactive, now, id.String()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.UpdateStatus(context.Background(), id.String(), resource.StatusInactive))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report missing rows on delete", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, role.Descriptor, Roles)
		mock.ExpectExec(`DELETE FROM iam_roles WHERE id = \$1`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(context.Background(), id.String())
		assert.ErrorIs(t, err, resource.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should use the transaction from the context", func(t *testing.T) {
		mock := newMock(t)
		repo := NewPgRepository(mock, role.Descriptor, Roles)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM iam_roles`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		err := composables.InTx(context.Background(), mock, func(ctx context.Context) error {
			return repo.Delete(ctx, id.String())
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// anyArgs matches one insert of rows fixtures with cols columns each.
func anyArgs(rows, cols int) []any {
	args := make([]any, rows*cols)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestSeed(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	inserts := []struct {
		table string
		rows  int
		cols  int
	}{
		{Services.Name, len(ServiceFixtures()), len(Services.Columns)},
		{Roles.Name, len(RoleFixtures()), len(Roles.Columns)},
		{EmailTemplates.Name, len(EmailTemplateFixtures()), len(EmailTemplates.Columns)},
		{IdentityProviders.Name, len(IdentityProviderFixtures()), len(IdentityProviders.Columns)},
		{SocialProviders.Name, len(SocialProviderFixtures()), len(SocialProviders.Columns)},
		{Policies.Name, len(PolicyFixtures()), len(Policies.Columns)},
		{Notifications.Name, len(NotificationFixtures()), len(Notifications.Columns)},
	}
	for _, ins := range inserts {
		mock.ExpectExec(`INSERT INTO ` + ins.table + ` .* ON CONFLICT \(id\) DO NOTHING`).
			WithArgs(anyArgs(ins.rows, ins.cols)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
	}
	mock.ExpectCommit()

	var results []SeedResult
	err := composables.InTx(context.Background(), mock, func(ctx context.Context) error {
		var err error
		results, err = Seed(ctx, composables.UseTx(ctx, mock))
		return err
	})
	require.NoError(t, err)
	require.Len(t, results, 7)
	assert.Equal(t, service.Resource, results[0].Resource)
	assert.Equal(t, int64(2), results[1].Inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
