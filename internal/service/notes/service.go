// Package notes keeps the append-only long-stay note history per patient.
package notes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	"github.com/jwalitptl/ward-api/internal/service/event"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

const maxContentLength = 4000

type NotesService interface {
	Fetch(ctx context.Context, patientID int64) ([]*model.LongStayNote, error)
	Append(ctx context.Context, patientID int64, content string, actor *model.Actor) (*model.LongStayNote, error)
	Loading() bool
}

// Service caches each patient's notes newest first. Appends for the same patient
// are serialized; different patients proceed independently.
type Service struct {
	repo    repository.NoteRepository
	events  event.Emitter
	metrics *metrics.Metrics
	logger  *logger.Logger

	mu       sync.RWMutex
	notes    map[int64][]*model.LongStayNote
	locks    map[int64]*sync.Mutex
	inFlight atomic.Int32
}

func NewService(repo repository.NoteRepository, events event.Emitter, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		events:  events,
		metrics: m,
		logger:  log,
		notes:   make(map[int64][]*model.LongStayNote),
		locks:   make(map[int64]*sync.Mutex),
	}
}

// Loading reports whether a store call is outstanding.
func (s *Service) Loading() bool {
	return s.inFlight.Load() > 0
}

// Fetch reloads the patient's notes from the store and returns them newest first.
func (s *Service) Fetch(ctx context.Context, patientID int64) ([]*model.LongStayNote, error) {
	lock := s.patientLock(patientID)
	lock.Lock()
	defer lock.Unlock()

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	list, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "fetch long-stay notes failed", "patient_id", patientID)
		return nil, err
	}
	SortNewestFirst(list)

	s.mu.Lock()
	s.notes[patientID] = list
	s.mu.Unlock()

	return cloneList(list), nil
}

// cached returns the in-memory notes for a patient without touching the store.
func (s *Service) cached(patientID int64) []*model.LongStayNote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.notes[patientID])
}

// Append stores a note written by actor and prepends it to the patient's list.
func (s *Service) Append(ctx context.Context, patientID int64, content string, actor *model.Actor) (*model.LongStayNote, error) {
	if actor == nil || actor.ID == 0 {
		s.metrics.NoteAppends.WithLabelValues("unauthenticated").Inc()
		return nil, apperrors.NotAuthenticated(nil)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("note content is required")
	}
	if len(content) > maxContentLength {
		return nil, apperrors.Validation("note content must not exceed %d characters", maxContentLength)
	}

	lock := s.patientLock(patientID)
	lock.Lock()
	defer lock.Unlock()

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	note, err := s.repo.Append(ctx, patientID, content, actor.ID)
	metrics.ObserveOutcome(s.metrics.NoteAppends, err)
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "append long-stay note failed", "patient_id", patientID)
		return nil, err
	}
	if note.CreatedBy.Name == "" {
		note.CreatedBy.Name = actor.Name
	}

	s.mu.Lock()
	s.notes[patientID] = append([]*model.LongStayNote{note}, s.notes[patientID]...)
	s.mu.Unlock()

	if err := s.events.Emit(ctx, model.EventLongStayNoteAdded, note); err != nil {
		s.logger.WithContext(ctx).Error(err, "record note event failed", "note_id", note.ID)
	}
	return note, nil
}

func (s *Service) patientLock(patientID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[patientID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[patientID] = l
	}
	return l
}

// SortNewestFirst orders by created_at descending, then id descending.
func SortNewestFirst(list []*model.LongStayNote) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

func cloneList(list []*model.LongStayNote) []*model.LongStayNote {
	out := make([]*model.LongStayNote, len(list))
	copy(out, list)
	return out
}
