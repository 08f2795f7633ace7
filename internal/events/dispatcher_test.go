package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventProductCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventProductCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventProductDeleted, func(_ context.Context, e Event) error {
		got = append(got, "deleted")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventProductCreated, "p-1", Actor{UserID: "s-1"}, nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"first:p-1", "second:p-1"}, got)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	called := false
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error { return boom })
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserDeleted, "u-1", Actor{}, nil))

	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestNewEvent_Stamps(t *testing.T) {
	e := NewEvent(EventUserRegistered, "u-1", Actor{UserID: "u-1"}, UserPayload{Email: "a@b.io"})

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, EventUserRegistered, e.Type)
}
