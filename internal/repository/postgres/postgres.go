package postgres

import (
	"github.com/jwalitptl/ward-api/internal/repository"
)

// Repositories bundles every store the services use.
type Repositories struct {
	Patients      repository.PatientRepository
	Admissions    repository.AdmissionRepository
	Consultations repository.ConsultationRepository
	Appointments  repository.AppointmentRepository
	Notes         repository.NoteRepository
	Users         repository.UserRepository
	Outbox        repository.OutboxRepository
}

func NewRepositories(base BaseRepository) *Repositories {
	return &Repositories{
		Patients:      NewPatientRepository(base),
		Admissions:    NewAdmissionRepository(base),
		Consultations: NewConsultationRepository(base),
		Appointments:  NewAppointmentRepository(base),
		Notes:         NewNoteRepository(base),
		Users:         NewUserRepository(base),
		Outbox:        NewOutboxRepository(base),
	}
}
