// Package admission registers new ward admissions and discharges them.
package admission

import (
	"context"
	"strings"
	"time"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	"github.com/jwalitptl/ward-api/internal/service/event"
	"github.com/jwalitptl/ward-api/internal/service/shift"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

const maxAge = 150

type AdmissionService interface {
	Admit(ctx context.Context, draft *model.AdmissionDraft, actor *model.Actor) (*model.Patient, error)
	Discharge(ctx context.Context, id int64, req *model.DischargeRequest, actor *model.Actor) (*model.Admission, error)
	Doctors(ctx context.Context, department string) ([]*model.User, error)
}

type Service struct {
	admissions repository.AdmissionRepository
	users      repository.UserRepository
	classifier *shift.Classifier
	events     event.Emitter
	metrics    *metrics.Metrics
	logger     *logger.Logger
	now        func() time.Time
}

func NewService(
	admissions repository.AdmissionRepository,
	users repository.UserRepository,
	classifier *shift.Classifier,
	events event.Emitter,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	if classifier == nil {
		classifier = shift.NewClassifier()
	}
	return &Service{
		admissions: admissions,
		users:      users,
		classifier: classifier,
		events:     events,
		metrics:    m,
		logger:     log,
		now:        time.Now,
	}
}

// Admit validates the draft, derives shift and date of birth, and stores the
// patient with a new active admission. The returned patient carries only the new
// admission.
func (s *Service) Admit(ctx context.Context, draft *model.AdmissionDraft, actor *model.Actor) (*model.Patient, error) {
	if actor == nil || actor.ID == 0 {
		return nil, apperrors.NotAuthenticated(nil)
	}
	if err := s.validateDraft(draft); err != nil {
		metrics.ObserveOutcome(s.metrics.Admissions, err, "admit")
		return nil, err
	}

	doctor, err := s.resolveDoctor(ctx, draft.AssignedDoctorID)
	if err != nil {
		metrics.ObserveOutcome(s.metrics.Admissions, err, "admit")
		return nil, err
	}

	admittedAt, err := shift.ParseDate(draft.AdmissionDate)
	if err != nil {
		metrics.ObserveOutcome(s.metrics.Admissions, err, "admit")
		return nil, err
	}
	cls, err := s.classifier.Classify(shift.Input{
		AdmissionDate:   admittedAt,
		UseWeekendShift: draft.UseWeekendShift,
		Current:         draft.ShiftType,
	})
	if err != nil {
		metrics.ObserveOutcome(s.metrics.Admissions, err, "admit")
		return nil, err
	}

	patient := &model.Patient{
		MRN:         strings.TrimSpace(draft.MRN),
		Name:        strings.TrimSpace(draft.Name),
		DateOfBirth: DateOfBirth(*draft.Age, s.now()),
		Gender:      draft.Gender,
	}
	adm := &model.Admission{
		AdmittingDoctorID: doctor.ID,
		DoctorName:        &doctor.Name,
		Department:        draft.Department,
		Status:            model.AdmissionStatusActive,
		AdmissionDate:     shift.CalendarDate(admittedAt),
		Diagnosis:         strings.TrimSpace(draft.Diagnosis),
		ShiftType:         cls.ShiftType,
		IsWeekend:         cls.IsWeekend,
	}
	if draft.SafetyType != "" {
		st := draft.SafetyType
		adm.SafetyType = &st
	}

	err = s.admissions.Admit(ctx, patient, adm)
	metrics.ObserveOutcome(s.metrics.Admissions, err, "admit")
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "admit patient failed", "mrn", patient.MRN)
		return nil, err
	}
	patient.Admissions = []*model.Admission{adm}

	s.logger.WithContext(ctx).Info("patient admitted",
		"patient_id", patient.ID,
		"admission_id", adm.ID,
		"visit_number", adm.VisitNumber,
		"shift_type", adm.ShiftType,
		"actor_id", actor.ID,
	)
	if err := s.events.Emit(ctx, model.EventAdmissionCreated, adm); err != nil {
		s.logger.WithContext(ctx).Error(err, "record admission event failed", "admission_id", adm.ID)
	}
	return patient, nil
}

// Discharge closes an active admission. Without a discharge date the current time
// is used.
func (s *Service) Discharge(ctx context.Context, id int64, req *model.DischargeRequest, actor *model.Actor) (*model.Admission, error) {
	if actor == nil || actor.ID == 0 {
		return nil, apperrors.NotAuthenticated(nil)
	}

	current, err := s.admissions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, apperrors.Conflict("admission is already discharged")
	}

	at := s.now()
	if req != nil && req.DischargeDate != nil {
		at = *req.DischargeDate
	}
	if at.Before(current.AdmissionDate) {
		return nil, apperrors.Validation("discharge date precedes admission date")
	}

	adm, err := s.admissions.Discharge(ctx, id, at)
	metrics.ObserveOutcome(s.metrics.Admissions, err, "discharge")
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "discharge failed", "admission_id", id)
		return nil, err
	}
	if err := s.events.Emit(ctx, model.EventAdmissionDischarged, adm); err != nil {
		s.logger.WithContext(ctx).Error(err, "record discharge event failed", "admission_id", id)
	}
	return adm, nil
}

func (s *Service) validateDraft(d *model.AdmissionDraft) error {
	if d == nil {
		return apperrors.Validation("admission is required")
	}
	if strings.TrimSpace(d.MRN) == "" {
		return apperrors.Validation("medical record number is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return apperrors.Validation("patient name is required")
	}
	if d.Age == nil {
		return apperrors.Validation("age is required")
	}
	if *d.Age < 0 || *d.Age > maxAge {
		return apperrors.Validation("age must be between 0 and %d", maxAge)
	}
	if d.Gender != model.GenderMale && d.Gender != model.GenderFemale {
		return apperrors.Validation("gender must be male or female")
	}
	if d.AssignedDoctorID == 0 {
		return apperrors.Validation("assigned doctor is required")
	}
	if !model.IsKnownDepartment(d.Department) {
		return apperrors.Validation("unknown department %q", d.Department)
	}
	if d.SafetyType != "" && !d.SafetyType.Valid() {
		return apperrors.Validation("unknown safety type %q", d.SafetyType)
	}
	return nil
}

// Doctors lists the active doctors an admission can be assigned to. An empty
// department lists all of them.
func (s *Service) Doctors(ctx context.Context, department string) ([]*model.User, error) {
	department = strings.TrimSpace(department)
	if department != "" && !model.IsKnownDepartment(department) {
		return nil, apperrors.Validation("unknown department %q", department)
	}
	return s.users.ListDoctors(ctx, department)
}

func (s *Service) resolveDoctor(ctx context.Context, id int64) (*model.User, error) {
	doctor, err := s.users.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("assigned doctor %d not found", id)
		}
		return nil, err
	}
	if !doctor.IsActiveDoctor() {
		return nil, apperrors.Validation("user %d is not an active doctor", id)
	}
	return doctor, nil
}

// DateOfBirth approximates a birth date from an age in years as January 1st of
// the corresponding year.
func DateOfBirth(age int, now time.Time) time.Time {
	return time.Date(now.Year()-age, time.January, 1, 0, 0, 0, 0, time.UTC)
}
