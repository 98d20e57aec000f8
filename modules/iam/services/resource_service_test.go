package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/modules/iam/infrastructure/persistence"
	"github.com/iota-uz/iam-console/modules/iam/services"
	"github.com/iota-uz/iam-console/pkg/eventbus"
	"github.com/iota-uz/iam-console/pkg/listing"
)

func newEmailTemplateService(t *testing.T) (*services.ResourceService[*emailtemplate.EmailTemplate], eventbus.EventBus) {
	t.Helper()
	bus := eventbus.NewEventPublisher(nil)
	repo := persistence.NewMemoryRepository(emailtemplate.Descriptor, persistence.EmailTemplateFixtures()...)
	return services.NewResourceService[*emailtemplate.EmailTemplate](emailtemplate.Descriptor, repo, bus), bus
}

func fixtureID(name string) string {
	return persistence.FixtureID(emailtemplate.Resource, name).String()
}

func TestResourceService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed transition publishes an event", func(t *testing.T) {
		svc, bus := newEmailTemplateService(t)
		var events []*resource.Changed
		bus.Subscribe(func(ev *resource.Changed) { events = append(events, ev) })

		id := fixtureID("welcome")
		require.NoError(t, svc.UpdateStatus(ctx, id, resource.StatusInactive))

		row, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, resource.StatusInactive, row.Status)
		require.Len(t, events, 1)
		assert.Equal(t, resource.Changed{
			Resource: emailtemplate.Resource,
			ID:       id,
			Kind:     resource.StatusChanged,
			Status:   resource.StatusInactive,
		}, *events[0])
	})

	t.Run("system rows are protected", func(t *testing.T) {
		svc, _ := newEmailTemplateService(t)
		err := svc.UpdateStatus(ctx, fixtureID("verify-email"), resource.StatusInactive)
		require.ErrorIs(t, err, resource.ErrProtected)
	})

	t.Run("transition outside the lifecycle", func(t *testing.T) {
		svc, _ := newEmailTemplateService(t)
		err := svc.UpdateStatus(ctx, fixtureID("welcome"), resource.StatusDraft)
		require.ErrorIs(t, err, resource.ErrInvalidStatus)

		row, err := svc.GetByID(ctx, fixtureID("welcome"))
		require.NoError(t, err)
		assert.Equal(t, resource.StatusActive, row.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newEmailTemplateService(t)
		err := svc.UpdateStatus(ctx, fixtureID("missing"), resource.StatusActive)
		require.ErrorIs(t, err, resource.ErrNotFound)
	})
}

func TestResourceService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, bus := newEmailTemplateService(t)
	var kinds []resource.ChangeKind
	bus.Subscribe(func(ev *resource.Changed) { kinds = append(kinds, ev.Kind) })

	require.ErrorIs(t, svc.Delete(ctx, fixtureID("mfa-code")), resource.ErrProtected)
	require.NoError(t, svc.Delete(ctx, fixtureID("invite-guest")))
	_, err := svc.GetByID(ctx, fixtureID("invite-guest"))
	require.ErrorIs(t, err, resource.ErrNotFound)
	assert.Equal(t, []resource.ChangeKind{resource.Deleted}, kinds)
}

func TestResourceService_RowActions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmailTemplateService(t)
	row, err := svc.GetByID(ctx, fixtureID("welcome-partner"))
	require.NoError(t, err)

	var mutator listing.Mutator = svc
	actions := listing.NewRowActions(svc.Descriptor(), row, mutator, nil)
	require.NoError(t, actions.OpenStatusDialog(resource.StatusActive))
	require.NoError(t, actions.Confirm(ctx))
	assert.Equal(t, listing.Idle, actions.State())

	updated, err := svc.GetByID(ctx, fixtureID("welcome-partner"))
	require.NoError(t, err)
	assert.Equal(t, resource.StatusActive, updated.Status)
}

func TestCached_PurgedOnChange(t *testing.T) {
	ctx := context.Background()
	svc, bus := newEmailTemplateService(t)
	cache := services.Cached(svc, bus, 16, time.Minute)

	params := listing.Derive(svc.Descriptor(), listing.DefaultState(svc.Descriptor()))
	page, err := cache.Fetch(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 1, cache.Len())

	// a change of another resource leaves the cache alone
	bus.Publish(&resource.Changed{Resource: "roles", ID: "x", Kind: resource.Deleted})
	assert.Equal(t, 1, cache.Len())

	require.NoError(t, svc.Delete(ctx, fixtureID("invite-guest")))
	assert.Equal(t, 0, cache.Len())

	page, err = cache.Fetch(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
}

func TestResourceService_ListWrapsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc, _ := newEmailTemplateService(t)
	_, err := svc.List(ctx, listing.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
