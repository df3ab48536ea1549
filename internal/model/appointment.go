package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentTypeRoutine AppointmentType = "routine"
	AppointmentTypeUrgent  AppointmentType = "urgent"
)

type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	PatientName     string            `db:"patient_name" json:"patientName"`
	MedicalNumber   string            `db:"medical_number" json:"medicalNumber"`
	Specialty       string            `db:"specialty" json:"specialty"`
	AppointmentType AppointmentType   `db:"appointment_type" json:"appointmentType"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
}

func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}
