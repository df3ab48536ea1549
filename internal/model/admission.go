package model

import (
	"time"
)

type AdmissionStatus string

const (
	AdmissionStatusActive     AdmissionStatus = "active"
	AdmissionStatusDischarged AdmissionStatus = "discharged"
)

// ShiftType is the duty period an admission is attributed to.
type ShiftType string

const (
	ShiftMorning        ShiftType = "morning"
	ShiftEvening        ShiftType = "evening"
	ShiftNight          ShiftType = "night"
	ShiftWeekendMorning ShiftType = "weekend_morning"
	ShiftWeekendNight   ShiftType = "weekend_night"
)

// IsWeekendVariant reports whether s belongs to the 12-hour weekend set.
func (s ShiftType) IsWeekendVariant() bool {
	return s == ShiftWeekendMorning || s == ShiftWeekendNight
}

// IsWeekday reports whether s belongs to the regular weekday set.
func (s ShiftType) IsWeekday() bool {
	return s == ShiftMorning || s == ShiftEvening || s == ShiftNight
}

func (s ShiftType) Valid() bool {
	return s.IsWeekday() || s.IsWeekendVariant()
}

// Label is the display text for the shift.
func (s ShiftType) Label() string {
	switch s {
	case ShiftWeekendMorning:
		return "Weekend Day (7:00 - 19:00)"
	case ShiftWeekendNight:
		return "Weekend Night (19:00 - 7:00)"
	default:
		return string(s)
	}
}

// SafetyType is the triage classification of an admission. Admissions without one
// carry a nil *SafetyType.
type SafetyType string

const (
	SafetyEmergency   SafetyType = "emergency"
	SafetyObservation SafetyType = "observation"
	SafetyShortStay   SafetyType = "short-stay"
)

// SafetyTypes lists the buckets in display order.
var SafetyTypes = []SafetyType{SafetyEmergency, SafetyObservation, SafetyShortStay}

func (s SafetyType) Valid() bool {
	switch s {
	case SafetyEmergency, SafetyObservation, SafetyShortStay:
		return true
	}
	return false
}

// Admission is one stay of a patient on the ward.
type Admission struct {
	ID                int64           `db:"id" json:"id"`
	PatientID         int64           `db:"patient_id" json:"patient_id"`
	AdmittingDoctorID int64           `db:"admitting_doctor_id" json:"admitting_doctor_id"`
	DoctorName        *string         `db:"doctor_name" json:"doctor_name,omitempty"`
	Department        string          `db:"department" json:"department"`
	Status            AdmissionStatus `db:"status" json:"status"`
	AdmissionDate     time.Time       `db:"admission_date" json:"admission_date"`
	DischargeDate     *time.Time      `db:"discharge_date" json:"discharge_date"`
	Diagnosis         string          `db:"diagnosis" json:"diagnosis"`
	VisitNumber       int             `db:"visit_number" json:"visit_number"`
	ShiftType         ShiftType       `db:"shift_type" json:"shift_type"`
	IsWeekend         bool            `db:"is_weekend" json:"is_weekend"`
	SafetyType        *SafetyType     `db:"safety_type" json:"safety_type"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

func (a *Admission) IsActive() bool {
	return a.Status == AdmissionStatusActive
}

// IsReadmission reports whether the patient had an earlier stay.
func (a *Admission) IsReadmission() bool {
	return a.VisitNumber > 1
}

// DoctorDisplayName falls back to "Not assigned" when no doctor name was joined.
func (a *Admission) DoctorDisplayName() string {
	if a.DoctorName == nil || *a.DoctorName == "" {
		return "Not assigned"
	}
	return *a.DoctorName
}

// AdmissionDraft is what the admission form submits.
type AdmissionDraft struct {
	MRN               string     `json:"mrn" binding:"required"`
	Name              string     `json:"name" binding:"required"`
	Age               *int       `json:"age" binding:"required"`
	Gender            Gender     `json:"gender" binding:"required,oneof=male female"`
	AdmissionDate     string     `json:"admission_date" binding:"required"`
	UseWeekendShift   bool       `json:"use_weekend_shift"`
	ShiftType         ShiftType  `json:"shift_type"`
	AssignedDoctorID  int64      `json:"assigned_doctor_id"`
	Department        string     `json:"department" binding:"required"`
	Diagnosis         string     `json:"diagnosis"`
	SafetyType        SafetyType `json:"safety_type" binding:"omitempty,oneof=emergency observation short-stay"`
}

// DischargeRequest closes an active admission.
type DischargeRequest struct {
	DischargeDate *time.Time `json:"discharge_date"`
}
