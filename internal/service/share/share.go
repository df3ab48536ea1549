// Package share renders census items as plain text for messaging or the clipboard.
package share

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/ward-api/internal/model"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

const dateLayout = "Jan 2, 2006"

// Render formats item according to its kind.
func Render(item model.ShareItem) (string, error) {
	switch item.Kind {
	case model.ShareKindPatient:
		if item.Patient == nil {
			return "", apperrors.Validation("patient is required for kind %q", item.Kind)
		}
		return renderPatient(item.Patient), nil
	case model.ShareKindConsultation:
		if item.Consultation == nil {
			return "", apperrors.Validation("consultation is required for kind %q", item.Kind)
		}
		return renderConsultation(item.Consultation), nil
	case model.ShareKindAppointment:
		if item.Appointment == nil {
			return "", apperrors.Validation("appointment is required for kind %q", item.Kind)
		}
		return renderAppointment(item.Appointment), nil
	}
	return "", apperrors.Validation("unknown share kind %q", item.Kind)
}

func renderPatient(p *model.Patient) string {
	department, doctor := "N/A", "Not assigned"
	var admitted time.Time
	if a := p.LatestAdmission(); a != nil {
		if a.Department != "" {
			department = a.Department
		}
		doctor = a.DoctorDisplayName()
		admitted = a.AdmissionDate
	}
	return lines(
		"Patient: "+p.Name,
		"MRN: "+p.MRN,
		"Department: "+department,
		"Doctor: "+doctor,
		"Admission Date: "+formatDate(admitted),
	)
}

func renderConsultation(c *model.Consultation) string {
	return lines(
		"Consultation for "+c.PatientName,
		"MRN: "+c.MRN,
		"Specialty: "+c.Specialty,
		"Doctor: "+c.DoctorDisplayName(),
		"Created: "+formatDate(c.CreatedAt),
		"Reason: "+c.Reason,
	)
}

func renderAppointment(a *model.Appointment) string {
	return lines(
		"Appointment for "+a.PatientName,
		"MRN: "+a.MedicalNumber,
		"Specialty: "+a.Specialty,
		"Date: "+formatDate(a.CreatedAt),
		fmt.Sprintf("Type: %s", a.AppointmentType),
	)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(dateLayout)
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
