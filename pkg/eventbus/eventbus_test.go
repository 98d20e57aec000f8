package eventbus

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type statusChanged struct {
	id     string
	status string
}

type deleted struct {
	id string
}

func bufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublisher_Publish(t *testing.T) {
	log, buf := bufferedLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *statusChanged) {
		t.Error("should not be called")
	})
	publisher.Publish(&deleted{id: "1"})

	require.Contains(t, buf.String(), "eventbus.Publish: no matching subscribers")
}

func TestPublisher_Subscribe(t *testing.T) {
	log, _ := bufferedLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	var got *statusChanged
	publisher.Subscribe(func(e *statusChanged) {
		got = e
	})
	publisher.Publish(&statusChanged{id: "7", status: "inactive"})

	require.NotNil(t, got)
	require.Equal(t, "inactive", got.status)
}

func TestPublisher_Unsubscribe(t *testing.T) {
	log, _ := bufferedLogger(logrus.ErrorLevel)
	publisher := NewEventPublisher(log)
	handler := func(e *deleted) {}
	publisher.Subscribe(handler)
	publisher.Subscribe(func(e *statusChanged) {})
	require.Equal(t, 2, publisher.SubscribersCount())

	publisher.Unsubscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())

	publisher.Clear()
	require.Zero(t, publisher.SubscribersCount())
}

func TestMatchSignature(t *testing.T) {
	require.True(t, MatchSignature(func(e *deleted) {}, []interface{}{&deleted{}}))
	require.False(t, MatchSignature(func(e *deleted) {}, []interface{}{&statusChanged{}}))
	require.False(t, MatchSignature(func(e *deleted) {}, []interface{}{}))
	require.False(t, MatchSignature(func(e *deleted) {}, []interface{}{&deleted{}, &deleted{}}))
	require.True(t, MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}))
	require.True(t, MatchSignature(func(e *deleted) {}, []interface{}{nil}))
	require.False(t, MatchSignature("not a func", nil))
}

func TestPublisher_PanicRecovery(t *testing.T) {
	t.Run("Should log the panic and keep calling other handlers", func(t *testing.T) {
		log, buf := bufferedLogger(logrus.ErrorLevel)
		publisher := NewEventPublisher(log)

		var first, third bool
		publisher.Subscribe(func(e *deleted) { first = true })
		publisher.Subscribe(func(e *deleted) { panic("handler 2 panic") })
		publisher.Subscribe(func(e *deleted) { third = true })

		require.NotPanics(t, func() { publisher.Publish(&deleted{id: "1"}) })
		require.True(t, first)
		require.True(t, third)
		require.Contains(t, buf.String(), "panicked")
		require.Contains(t, buf.String(), "handler 2 panic")
	})

	t.Run("Should warn when every matching handler panics", func(t *testing.T) {
		log, buf := bufferedLogger(logrus.WarnLevel)
		publisher := NewEventPublisher(log)
		publisher.Subscribe(func(e *deleted) { panic("always") })

		publisher.Publish(&deleted{id: "1"})
		require.Contains(t, buf.String(), "no matching subscribers")
	})
}

func TestPublisher_PublishE(t *testing.T) {
	t.Run("Should return ErrNoSubscribers", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		require.ErrorIs(t, publisher.PublishE(&deleted{}), ErrNoSubscribers)
	})

	t.Run("Should join handler errors", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		boom := errors.New("boom")
		publisher.Subscribe(func(e *deleted) error { return boom })
		publisher.Subscribe(func(e *deleted) error { return nil })
		publisher.Subscribe(func(e *deleted) {})

		require.ErrorIs(t, publisher.PublishE(&deleted{}), boom)
	})

	t.Run("Should reject handlers with a bad return signature", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		publisher.Subscribe(func(e *deleted) int { return 1 })
		require.ErrorIs(t, publisher.PublishE(&deleted{}), ErrInvalidHandlerReturn)
	})

	t.Run("Should convert panics to errors", func(t *testing.T) {
		publisher := NewEventPublisher(nil)
		publisher.Subscribe(func(e *deleted) error { panic("kaput") })
		err := publisher.PublishE(&deleted{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "kaput")
	})
}

func TestPublisher_ConcurrentSubscribeAndPublish(t *testing.T) {
	publisher := NewEventPublisher(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			publisher.Subscribe(func(e *deleted) {})
		}()
		go func() {
			defer wg.Done()
			publisher.Publish(&deleted{id: "x"})
		}()
	}
	wg.Wait()
	require.Equal(t, 20, publisher.SubscribersCount())
}
