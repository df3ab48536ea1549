package notes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/event"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

// memNotes assigns ids and timestamps the way the database does.
type memNotes struct {
	mu     sync.Mutex
	nextID int64
	clock  time.Time
	rows   []*model.LongStayNote
	err    error
	gate   chan struct{}
}

func (m *memNotes) Append(_ context.Context, patientID int64, content string, actorID int64) (*model.LongStayNote, error) {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	n := &model.LongStayNote{
		ID:        m.nextID,
		PatientID: patientID,
		Content:   content,
		CreatedBy: model.ActorRef{ID: actorID},
		CreatedAt: m.clock,
		UpdatedAt: m.clock,
	}
	m.rows = append(m.rows, n)
	return n, nil
}

func (m *memNotes) ListByPatient(_ context.Context, patientID int64) ([]*model.LongStayNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.LongStayNote
	for _, n := range m.rows {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	return out, nil
}

var nurse = &model.Actor{ID: 42, Name: "Nurse Joy", Role: model.UserRoleNurse}

func newService(repo *memNotes) *Service {
	return NewService(repo, event.Nop{}, metrics.New("test"), logger.NewNop())
}

func TestAppendThenFetchReturnsNewestFirst(t *testing.T) {
	repo := &memNotes{clock: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)}
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Append(ctx, 1, "day 6, awaiting MRI", nurse)
	require.NoError(t, err)
	repo.clock = repo.clock.Add(time.Hour)
	latest, err := svc.Append(ctx, 1, "MRI done", nurse)
	require.NoError(t, err)
	assert.Equal(t, "Nurse Joy", latest.CreatedBy.Name)

	cached := svc.cached(1)
	require.Len(t, cached, 2)
	assert.Equal(t, latest.ID, cached[0].ID)

	fetched, err := svc.Fetch(ctx, 1)
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	assert.Equal(t, latest.ID, fetched[0].ID)
	assert.Equal(t, "MRI done", fetched[0].Content)
}

func TestEqualTimestampsFallBackToID(t *testing.T) {
	repo := &memNotes{clock: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)}
	svc := newService(repo)
	ctx := context.Background()

	for _, c := range []string{"a", "b", "c"} {
		_, err := svc.Append(ctx, 9, c, nurse)
		require.NoError(t, err)
	}
	fetched, err := svc.Fetch(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, []int64{fetched[0].ID, fetched[1].ID, fetched[2].ID})
}

func TestAppendRequiresActor(t *testing.T) {
	repo := &memNotes{}
	svc := newService(repo)

	_, err := svc.Append(context.Background(), 1, "text", nil)
	assert.True(t, apperrors.IsNotAuthenticated(err))

	_, err = svc.Append(context.Background(), 1, "text", &model.Actor{})
	assert.True(t, apperrors.IsNotAuthenticated(err))
	assert.Empty(t, repo.rows)
}

func TestAppendValidatesContent(t *testing.T) {
	svc := newService(&memNotes{})
	_, err := svc.Append(context.Background(), 1, "   ", nurse)
	assert.True(t, apperrors.IsValidation(err))
}

func TestStoreFailureLeavesListUntouched(t *testing.T) {
	repo := &memNotes{}
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Append(ctx, 1, "first", nurse)
	require.NoError(t, err)

	repo.err = apperrors.Persistence("insert note", errors.New("timeout"))
	_, err = svc.Append(ctx, 1, "second", nurse)
	assert.True(t, apperrors.IsPersistence(err))
	assert.Len(t, svc.cached(1), 1)
	assert.False(t, svc.Loading())

	_, err = svc.Fetch(ctx, 1)
	assert.True(t, apperrors.IsPersistence(err))
	assert.Len(t, svc.cached(1), 1)
}

func TestLoadingWhileStoreCallOutstanding(t *testing.T) {
	repo := &memNotes{gate: make(chan struct{})}
	svc := newService(repo)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Append(context.Background(), 1, "pending", nurse)
	}()

	assert.Eventually(t, svc.Loading, time.Second, time.Millisecond)
	close(repo.gate)
	<-done
	assert.False(t, svc.Loading())
}

func TestConcurrentAppendsForSamePatientAreAllKept(t *testing.T) {
	repo := &memNotes{}
	svc := newService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Append(context.Background(), 5, "round", nurse)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cached := svc.cached(5)
	assert.Len(t, cached, 20)
	for i := 1; i < len(cached); i++ {
		assert.Greater(t, cached[i-1].ID, cached[i].ID)
	}
}
