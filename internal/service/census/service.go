// Package census answers the ward census queries: active patients per specialty,
// long stays, readmissions, safety-type buckets and pending work.
package census

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	"github.com/jwalitptl/ward-api/internal/service/shift"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

type CensusService interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
	Census(ctx context.Context, f model.CensusFilter) (*model.Rollup, error)
	LongStay(ctx context.Context, f model.CensusFilter) (*model.Rollup, error)
	Specialties(ctx context.Context) ([]model.SpecialtySummary, error)
	// Threshold is the long-stay threshold in days.
	Threshold() int
}

type Service struct {
	patients      repository.PatientRepository
	consultations repository.ConsultationRepository
	appointments  repository.AppointmentRepository
	aggregator    *Aggregator
	metrics       *metrics.Metrics
	logger        *logger.Logger
}

func NewService(
	patients repository.PatientRepository,
	consultations repository.ConsultationRepository,
	appointments repository.AppointmentRepository,
	aggregator *Aggregator,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		patients:      patients,
		consultations: consultations,
		appointments:  appointments,
		aggregator:    aggregator,
		metrics:       m,
		logger:        log,
	}
}

// Snapshot reads patients, consultations and appointments from the store.
func (s *Service) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	patients, err := s.patients.ListWithAdmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	consultations, err := s.consultations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load consultations: %w", err)
	}
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	return &model.Snapshot{
		Patients:      patients,
		Consultations: consultations,
		Appointments:  appointments,
	}, nil
}

func (s *Service) Census(ctx context.Context, f model.CensusFilter) (*model.Rollup, error) {
	timer := prometheus.NewTimer(s.metrics.CensusLatency)
	defer timer.ObserveDuration()
	s.metrics.CensusQueries.WithLabelValues("census").Inc()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "census snapshot failed")
		return nil, err
	}
	return s.aggregator.Aggregate(snap, f), nil
}

// LongStay returns the census restricted to long stays. ActivePatients is replaced
// by the long-stay subset so the report lists only those rows.
func (s *Service) LongStay(ctx context.Context, f model.CensusFilter) (*model.Rollup, error) {
	s.metrics.CensusQueries.WithLabelValues("long_stay").Inc()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "long-stay snapshot failed")
		return nil, err
	}
	r := s.aggregator.Aggregate(snap, f)
	r.ActivePatients = r.LongStayPatients
	r.Count = len(r.LongStayPatients)
	return r, nil
}

func (s *Service) Specialties(ctx context.Context) ([]model.SpecialtySummary, error) {
	s.metrics.CensusQueries.WithLabelValues("specialties").Inc()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "specialty snapshot failed")
		return nil, err
	}
	return s.aggregator.Summaries(snap, model.GridDepartments()), nil
}

func (s *Service) Threshold() int {
	return s.aggregator.stays.Threshold()
}

// ParseFilter turns query parameters into a filter. A date-only end bound covers
// the whole of that day.
func ParseFilter(q model.CensusQuery) (model.CensusFilter, error) {
	f := model.CensusFilter{Specialty: strings.TrimSpace(q.Specialty), DoctorID: q.DoctorID}
	q.Start, q.End = strings.TrimSpace(q.Start), strings.TrimSpace(q.End)
	if q.DoctorID < 0 {
		return f, apperrors.Validation("invalid doctor id %d", q.DoctorID)
	}
	if q.Start == "" && q.End == "" {
		return f, nil
	}
	if q.Start == "" || q.End == "" {
		return f, apperrors.Validation("date range needs both start and end")
	}

	start, err := shift.ParseDate(q.Start)
	if err != nil {
		return f, apperrors.Validation("invalid start date %q", q.Start)
	}
	end, err := shift.ParseDate(q.End)
	if err != nil {
		return f, apperrors.Validation("invalid end date %q", q.End)
	}
	if len(q.End) == len(shift.DateLayout) {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return f, apperrors.Validation("date range end is before start")
	}
	f.DateRange = &model.DateRange{Start: start, End: end}
	return f, nil
}
