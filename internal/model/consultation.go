package model

import (
	"time"
)

type ConsultationStatus string

const (
	ConsultationStatusActive ConsultationStatus = "active"
	ConsultationStatusClosed ConsultationStatus = "closed"
)

type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// Consultation is a specialty-scoped request. Patient fields are denormalized.
type Consultation struct {
	ID          int64              `db:"id" json:"id"`
	PatientID   int64              `db:"patient_id" json:"patient_id"`
	MRN         string             `db:"mrn" json:"mrn"`
	PatientName string             `db:"patient_name" json:"patient_name"`
	Age         int                `db:"age" json:"age"`
	Gender      Gender             `db:"gender" json:"gender"`
	Specialty   string             `db:"consultation_specialty" json:"consultation_specialty"`
	Reason      string             `db:"reason" json:"reason"`
	Urgency     Urgency            `db:"urgency" json:"urgency"`
	Status      ConsultationStatus `db:"status" json:"status"`
	DoctorID    *int64             `db:"doctor_id" json:"doctor_id"`
	DoctorName  *string            `db:"doctor_name" json:"doctor_name"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
}

func (c *Consultation) IsPending() bool {
	return c.Status == ConsultationStatusActive
}

func (c *Consultation) DoctorDisplayName() string {
	if c.DoctorName == nil || *c.DoctorName == "" {
		return "Pending Assignment"
	}
	return *c.DoctorName
}
