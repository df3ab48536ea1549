package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/messaging"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

type memOutbox struct {
	mu      sync.Mutex
	events  []*model.OutboxEvent
	deleted time.Time
}

func (m *memOutbox) Create(_ context.Context, e *model.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memOutbox) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.OutboxEvent
	for _, e := range m.events {
		if e.Status == model.OutboxStatusPending && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memOutbox) UpdateStatus(_ context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Status = status
			e.ErrorMessage = errMsg
		}
	}
	return nil
}

func (m *memOutbox) DeleteProcessedBefore(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = before
	var kept []*model.OutboxEvent
	var n int64
	for _, e := range m.events {
		if e.Status == model.OutboxStatusProcessed {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return n, nil
}

// flakyBroker fails the first failures publishes.
type flakyBroker struct {
	mu        sync.Mutex
	failures  int
	attempts  int
	published []messaging.Message
	channels  []string
}

func (b *flakyBroker) Publish(_ context.Context, channel string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempts++
	if b.failures > 0 {
		b.failures--
		return errors.New("broker unavailable")
	}
	b.published = append(b.published, message.(messaging.Message))
	b.channels = append(b.channels, channel)
	return nil
}

func (b *flakyBroker) Close() error                                            { return nil }

func pending(eventType string) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   json.RawMessage(`{"id":1}`),
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	}
}

func newProcessor(t *testing.T, repo *memOutbox, broker messaging.Broker, m *metrics.Metrics) *OutboxProcessor {
	t.Helper()
	p, err := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, logger.NewNop(), m)
	require.NoError(t, err)
	return p
}

func TestProcessBatchRetriesThenPublishes(t *testing.T) {
	repo := &memOutbox{}
	require.NoError(t, repo.Create(context.Background(), pending(model.EventAdmissionCreated)))
	broker := &flakyBroker{failures: 2}
	m := metrics.New("test")

	n, err := newProcessor(t, repo, broker, m).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, broker.attempts)
	require.Len(t, broker.published, 1)
	assert.Equal(t, model.EventAdmissionCreated, broker.published[0].Type)
	assert.Equal(t, model.OutboxStatusProcessed, repo.events[0].Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxEventsProcessed))
}

func TestProcessBatchMarksFailedAfterRetries(t *testing.T) {
	repo := &memOutbox{}
	require.NoError(t, repo.Create(context.Background(), pending(model.EventLongStayAlert)))
	broker := &flakyBroker{failures: 10}
	m := metrics.New("test")

	n, err := newProcessor(t, repo, broker, m).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 3, broker.attempts)
	assert.Equal(t, model.OutboxStatusFailed, repo.events[0].Status)
	require.NotNil(t, repo.events[0].ErrorMessage)
	assert.Contains(t, *repo.events[0].ErrorMessage, "broker unavailable")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxEventsFailed))
}

func TestProcessBatchRoutesByEventType(t *testing.T) {
	repo := &memOutbox{}
	require.NoError(t, repo.Create(context.Background(), pending(model.EventAdmissionCreated)))
	require.NoError(t, repo.Create(context.Background(), pending(model.EventLongStayAlert)))
	broker := &flakyBroker{}

	p, err := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
		Routes:        map[string]string{model.EventLongStayAlert: "ward.long_stay"},
	}, logger.NewNop(), metrics.New("test"))
	require.NoError(t, err)

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{DefaultChannel, "ward.long_stay"}, broker.channels)
}

func TestNewOutboxProcessorValidatesConfig(t *testing.T) {
	_, err := NewOutboxProcessor(&memOutbox{}, &flakyBroker{}, OutboxProcessorConfig{}, logger.NewNop(), metrics.New("test"))
	assert.Error(t, err)
}

func TestOutboxCleanup(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &memOutbox{}
	done := pending("X")
	done.Status = model.OutboxStatusProcessed
	repo.events = []*model.OutboxEvent{done, pending("Y")}

	w := NewOutboxCleanupWorker(repo, 24*time.Hour, time.Hour, logger.NewNop())
	w.now = func() time.Time { return now }

	n, err := w.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, now.Add(-24*time.Hour), repo.deleted)
	assert.Len(t, repo.events, 1)
}
