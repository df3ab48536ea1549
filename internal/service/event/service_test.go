package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/model"
)

type memOutbox struct {
	events []*model.OutboxEvent
	err    error
}

func (m *memOutbox) Create(_ context.Context, e *model.OutboxEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memOutbox) GetPendingEvents(context.Context, int) ([]*model.OutboxEvent, error) {
	return m.events, nil
}

func (m *memOutbox) UpdateStatus(context.Context, uuid.UUID, model.OutboxStatus, *string) error {
	return nil
}

func (m *memOutbox) DeleteProcessedBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestEmitWritesPendingEvent(t *testing.T) {
	repo := &memOutbox{}
	svc := NewEventService(repo)

	err := svc.Emit(context.Background(), model.EventAdmissionCreated, map[string]int64{"admission_id": 3})
	require.NoError(t, err)
	require.Len(t, repo.events, 1)

	e := repo.events[0]
	assert.Equal(t, model.EventAdmissionCreated, e.EventType)
	assert.Equal(t, model.OutboxStatusPending, e.Status)
	assert.NotEqual(t, uuid.Nil, e.ID)

	var payload map[string]int64
	require.NoError(t, json.Unmarshal(e.Payload, &payload))
	assert.Equal(t, int64(3), payload["admission_id"])
}

func TestEmitFailures(t *testing.T) {
	svc := NewEventService(&memOutbox{err: errors.New("db down")})
	assert.Error(t, svc.Emit(context.Background(), "X", 1))

	svc = NewEventService(&memOutbox{})
	assert.Error(t, svc.Emit(context.Background(), "X", make(chan int)))
}
