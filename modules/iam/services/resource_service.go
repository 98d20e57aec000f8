package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iam-console/modules/iam/domain/resource"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/eventbus"
	"github.com/iota-uz/iam-console/pkg/listing"
)

// ResourceService is the application service behind one entity list. It enforces the
// status lifecycle and protection rules before touching the repository.
type ResourceService[E resource.Entity[E]] struct {
	desc      *listing.Descriptor
	repo      resource.Repository[E]
	publisher eventbus.EventBus
}

func NewResourceService[E resource.Entity[E]](
	desc *listing.Descriptor,
	repo resource.Repository[E],
	publisher eventbus.EventBus,
) *ResourceService[E] {
	return &ResourceService[E]{
		desc:      desc,
		repo:      repo,
		publisher: publisher,
	}
}

func (s *ResourceService[E]) Descriptor() *listing.Descriptor {
	return s.desc
}

func (s *ResourceService[E]) List(ctx context.Context, params listing.Params) (listing.Page[E], error) {
	page, err := s.repo.List(ctx, params)
	if err != nil {
		return listing.Page[E]{}, errors.Wrapf(err, "list %s", s.desc.Name)
	}
	return page, nil
}

// Fetch makes the service a listing.Fetcher.
func (s *ResourceService[E]) Fetch(ctx context.Context, params listing.Params) (listing.Page[E], error) {
	return s.List(ctx, params)
}

func (s *ResourceService[E]) GetByID(ctx context.Context, id string) (E, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ResourceService[E]) UpdateStatus(ctx context.Context, id, status string) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row.Protected() {
		return resource.ErrProtected
	}
	if !s.desc.CanTransition(row.RowStatus(), status) {
		return errors.Wrapf(resource.ErrInvalidStatus, "%s -> %s", row.RowStatus(), status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger(ctx).WithFields(logrus.Fields{
		"id":   id,
		"from": row.RowStatus(),
		"to":   status,
	}).Info("status changed")
	s.publish(&resource.Changed{Resource: s.desc.Name, ID: id, Kind: resource.StatusChanged, Status: status})
	return nil
}

func (s *ResourceService[E]) Delete(ctx context.Context, id string) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row.Protected() {
		return resource.ErrProtected
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger(ctx).WithField("id", id).Info("deleted")
	s.publish(&resource.Changed{Resource: s.desc.Name, ID: id, Kind: resource.Deleted})
	return nil
}

func (s *ResourceService[E]) logger(ctx context.Context) *logrus.Entry {
	return composables.UseLogger(ctx).WithField("resource", s.desc.Name)
}

func (s *ResourceService[E]) publish(ev *resource.Changed) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}

// Cached wraps the service in a CachedFetcher that is purged whenever the bus reports
// a change of the same resource.
func Cached[E resource.Entity[E]](
	svc *ResourceService[E],
	bus eventbus.EventBus,
	size int,
	ttl time.Duration,
) *listing.CachedFetcher[E] {
	cache := listing.NewCachedFetcher[E](svc.desc.Name, svc, size, ttl)
	if bus != nil {
		name := svc.desc.Name
		bus.Subscribe(func(ev *resource.Changed) {
			if ev.Resource == name {
				cache.Purge()
			}
		})
	}
	return cache
}
