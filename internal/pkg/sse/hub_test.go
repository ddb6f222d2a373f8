package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ch1, cleanup1 := hub.Subscribe("company-1")
	ch2, cleanup2 := hub.Subscribe("company-1")
	defer cleanup1()
	defer cleanup2()

	hub.Publish("company-1", Event{RecipientID: "company-1", Event: "notification", Data: "hi"})

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)
	assert.Equal(t, "hi", (<-ch1).Data)
	assert.Equal(t, "hi", (<-ch2).Data)
}

func TestHub_PublishDoesNotCrossRecipients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ch, cleanup := hub.Subscribe("company-2")
	defer cleanup()

	hub.Publish("company-1", Event{RecipientID: "company-1", Event: "notification"})

	assert.Empty(t, ch)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	_, cleanup := hub.Subscribe("company-1")
	require.Equal(t, 1, hub.SubscriberCount("company-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("company-1"))
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ch, cleanup := hub.Subscribe("company-1")
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish("company-1", Event{RecipientID: "company-1", Event: "notification", Data: i})
	}

	// Buffer is 10; the rest were dropped, not queued.
	assert.Equal(t, cap(ch), len(ch))
}
