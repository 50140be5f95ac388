package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_ImplementsEvent(t *testing.T) {
	now := time.Now()
	e := BaseEvent{
		Type:      "test.event",
		Entity:    EntityShow,
		ID:        "Breaking Bad",
		Timestamp: now,
	}

	assert.Equal(t, "test.event", e.EventType())
	assert.Equal(t, EntityShow, e.EntityType())
	assert.Equal(t, "Breaking Bad", e.EntityID())
	assert.Equal(t, now, e.OccurredAt())
}

func TestNewBaseEvent(t *testing.T) {
	e := NewBaseEvent(EventMovieAdded, EntityMovie, "Inception (2010)")

	assert.Equal(t, EventMovieAdded, e.EventType())
	assert.Equal(t, EntityMovie, e.EntityType())
	assert.Equal(t, "Inception (2010)", e.EntityID())
	assert.Empty(t, e.RunID)
	assert.False(t, e.OccurredAt().IsZero())
}
