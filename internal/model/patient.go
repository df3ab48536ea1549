package model

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Patient holds identity and the admission history, most recent first.
type Patient struct {
	ID          int64        `db:"id" json:"id"`
	MRN         string       `db:"mrn" json:"mrn"`
	Name        string       `db:"name" json:"name"`
	DateOfBirth time.Time    `db:"date_of_birth" json:"date_of_birth"`
	Gender      Gender       `db:"gender" json:"gender"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	Admissions  []*Admission `db:"-" json:"admissions"`
}

// LatestAdmission returns admissions[0] or nil.
func (p *Patient) LatestAdmission() *Admission {
	if len(p.Admissions) == 0 {
		return nil
	}
	return p.Admissions[0]
}

// ActiveAdmission returns the most recent admission when it is still active.
func (p *Patient) ActiveAdmission() *Admission {
	if a := p.LatestAdmission(); a != nil && a.IsActive() {
		return a
	}
	return nil
}

