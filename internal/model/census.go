package model

import (
	"time"
)

// DateRange is an inclusive window on admission dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within [Start, End].
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// CensusFilter narrows a census query. Zero fields match everything.
type CensusFilter struct {
	Specialty string     `json:"specialty,omitempty"`
	DoctorID  int64      `json:"doctor_id,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
}

// CensusQuery is the query-string form of CensusFilter.
type CensusQuery struct {
	Specialty string `form:"specialty"`
	DoctorID  int64  `form:"doctor_id" binding:"omitempty,min=1"`
	Start     string `form:"start"`
	End       string `form:"end"`
}

// Snapshot is a read-consistent view of the ward used for one aggregation.
type Snapshot struct {
	Patients      []*Patient      `json:"patients"`
	Consultations []*Consultation `json:"consultations"`
	Appointments  []*Appointment  `json:"appointments"`
}

// CensusEntry is one matched patient with the derived stay fields.
type CensusEntry struct {
	Patient    *Patient   `json:"patient"`
	Admission  *Admission `json:"admission"`
	ShiftLabel string     `json:"shift_label"`
	StayDays   int        `json:"stay_days"`
	LongStay   bool       `json:"long_stay"`
}

// Rollup holds everything derived from one snapshot and filter.
type Rollup struct {
	Filter               CensusFilter       `json:"filter"`
	ActivePatients       []CensusEntry      `json:"active_patients"`
	Count                int                `json:"count"`
	LongStayPatients     []CensusEntry      `json:"long_stay_patients"`
	ReadmissionCount     int                `json:"readmission_count"`
	SafetyTypeCounts     map[SafetyType]int `json:"safety_type_counts"`
	PendingConsultations int                `json:"pending_consultations"`
	PendingAppointments  []*Appointment     `json:"pending_appointments"`
	EvaluatedAt          time.Time          `json:"evaluated_at"`
}

// SpecialtySummary is one tile of the specialty grid.
type SpecialtySummary struct {
	Specialty            string             `json:"specialty"`
	ActivePatients       int                `json:"active_patients"`
	ReadmissionCount     int                `json:"readmission_count"`
	LongStayCount        int                `json:"long_stay_count"`
	SafetyTypeCounts     map[SafetyType]int `json:"safety_type_counts"`
	PendingConsultations int                `json:"pending_consultations"`
}
