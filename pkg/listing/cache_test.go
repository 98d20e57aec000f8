package listing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCachedFetcher(t *testing.T) {
	desc := templatesDescriptor()
	inner := &recordingFetcher{}
	cached := NewCachedFetcher[string]("email_templates", inner, 16, time.Minute)

	p := Derive(desc, DefaultState(desc))
	first, err := cached.Fetch(context.Background(), p)
	require.NoError(t, err)
	second, err := cached.Fetch(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, inner.Calls(), 1)

	cached.Purge()
	require.Zero(t, cached.Len())
	_, err = cached.Fetch(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, inner.Calls(), 2)
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	desc := templatesDescriptor()
	inner := &recordingFetcher{err: context.DeadlineExceeded}
	cached := NewCachedFetcher[string]("email_templates", inner, 16, time.Minute)

	p := Derive(desc, DefaultState(desc))
	_, err := cached.Fetch(context.Background(), p)
	require.Error(t, err)
	require.Zero(t, cached.Len())
}
