package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []Event
	d.Subscribe(EventSpotAllocated, func(ctx context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSpotAllocated, SpotID: 5})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, 5, seen[0].SpotID)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventSpotAllocated, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSpotReleased}))
	assert.False(t, called)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	d.Subscribe(EventSpotReleased, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	reached := false
	d.Subscribe(EventSpotReleased, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSpotReleased}))
	assert.True(t, reached)
}
