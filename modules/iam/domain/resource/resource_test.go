package resource_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iam-console/modules/iam/domain/entities/emailtemplate"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/identityprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/notification"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/policy"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/role"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/service"
	"github.com/iota-uz/iam-console/modules/iam/domain/entities/socialprovider"
	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/listing"
	"github.com/iota-uz/iam-console/pkg/serrors"
)

type describedEntity struct {
	desc    *listing.Descriptor
	columns []string
	record  listing.Record
}

func entities() []describedEntity {
	return []describedEntity{
		{emailtemplate.Descriptor, emailtemplate.Columns, &emailtemplate.EmailTemplate{}},
		{identityprovider.Descriptor, identityprovider.Columns, &identityprovider.IdentityProvider{}},
		{socialprovider.Descriptor, socialprovider.Columns, &socialprovider.SocialProvider{}},
		{policy.Descriptor, policy.Columns, &policy.Policy{}},
		{role.Descriptor, role.Columns, &role.Role{}},
		{service.Descriptor, service.Columns, &service.Service{}},
		{notification.Descriptor, notification.Columns, &notification.Notification{}},
	}
}

func TestDescriptors(t *testing.T) {
	t.Parallel()
	for _, e := range entities() {
		t.Run(e.desc.Name, func(t *testing.T) {
			require.NoError(t, e.desc.Validate())
			assert.Equal(t, listing.ResetPageOnChange, e.desc.PageReset)
			assert.Equal(t, listing.SortSpec{{Field: "created_at", Desc: true}}, e.desc.Sort())

			for _, c := range e.columns {
				assert.NotNil(t, e.record.Value(c), "column %s", c)
			}
			for _, f := range e.desc.SearchFields {
				assert.Contains(t, e.columns, f)
			}
			for _, f := range e.desc.Filters {
				assert.Contains(t, e.columns, f.Param)
			}
			for _, s := range e.desc.Sortable {
				assert.Contains(t, e.columns, s)
			}
		})
	}
}

func TestSystemTriStateDerivesIsSystem(t *testing.T) {
	t.Parallel()
	s := listing.DefaultState(emailtemplate.Descriptor)
	s.Filters["isSystem"] = listing.Single("regular")
	s.Filters["status"] = listing.Multi("active", "draft")
	s.Search = "welcome"

	p := listing.Derive(emailtemplate.Descriptor, s)
	flag, ok := p.Flag("is_system")
	require.True(t, ok)
	assert.False(t, flag)
	assert.Equal(t, "active,draft", p.Fields["status"])
	assert.Equal(t, "welcome", p.Fields["name"])
	assert.Equal(t, "welcome", p.Fields["display_name"])
}

func TestWithStatusCopies(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	orig := &role.Role{Name: "admin", Status: resource.StatusActive}
	next := orig.WithStatus(resource.StatusInactive, at)

	assert.Equal(t, resource.StatusActive, orig.Status)
	assert.Equal(t, resource.StatusInactive, next.Status)
	assert.Equal(t, at, next.UpdatedAt)
}

func TestErrorsMatchByCode(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("%w: role 42", resource.ErrNotFound)
	assert.ErrorIs(t, wrapped, resource.ErrNotFound)
	assert.NotErrorIs(t, wrapped, resource.ErrProtected)
	code, ok := serrors.Code(wrapped)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", code)
}
