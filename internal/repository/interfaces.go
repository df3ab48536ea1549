package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/ward-api/internal/model"
)

// All repository interfaces in one file
type (
	// PatientRepository reads patients together with their admission history.
	PatientRepository interface {
		// ListWithAdmissions returns every patient, admissions most recent first.
		ListWithAdmissions(ctx context.Context) ([]*model.Patient, error)
		Get(ctx context.Context, id int64) (*model.Patient, error)
		GetByMRN(ctx context.Context, mrn string) (*model.Patient, error)
	}

	// AdmissionRepository writes admissions.
	AdmissionRepository interface {
		// Admit upserts the patient by MRN and inserts the admission with the next
		// visit number, atomically. It fails with a conflict when the patient
		// already has an active admission.
		Admit(ctx context.Context, patient *model.Patient, admission *model.Admission) error
		Get(ctx context.Context, id int64) (*model.Admission, error)
		Discharge(ctx context.Context, id int64, at time.Time) (*model.Admission, error)
	}

	ConsultationRepository interface {
		List(ctx context.Context) ([]*model.Consultation, error)
	}

	AppointmentRepository interface {
		List(ctx context.Context) ([]*model.Appointment, error)
	}

	// NoteRepository stores long-stay notes. The store assigns id and timestamps.
	NoteRepository interface {
		Append(ctx context.Context, patientID int64, content string, actorID int64) (*model.LongStayNote, error)
		// ListByPatient returns notes newest first, ties broken by id descending.
		ListByPatient(ctx context.Context, patientID int64) ([]*model.LongStayNote, error)
	}

	UserRepository interface {
		Get(ctx context.Context, id int64) (*model.User, error)
		ListDoctors(ctx context.Context, department string) ([]*model.User, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
