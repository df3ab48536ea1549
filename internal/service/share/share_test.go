package share

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/model"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestRenderPatient(t *testing.T) {
	p := &model.Patient{
		Name: "Amal Rahman",
		MRN:  "MRN-001",
		Admissions: []*model.Admission{{
			Department:    "Pulmonology",
			DoctorName:    strPtr("Dr. Haddad"),
			AdmissionDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		}},
	}

	text, err := Render(model.SharePatient(p))
	require.NoError(t, err)
	assert.Equal(t, "Patient: Amal Rahman\n"+
		"MRN: MRN-001\n"+
		"Department: Pulmonology\n"+
		"Doctor: Dr. Haddad\n"+
		"Admission Date: Mar 9, 2024", text)
}

func TestRenderPatientWithoutAdmission(t *testing.T) {
	text, err := Render(model.SharePatient(&model.Patient{Name: "X", MRN: "M"}))
	require.NoError(t, err)
	assert.Contains(t, text, "Department: N/A")
	assert.Contains(t, text, "Doctor: Not assigned")
	assert.Contains(t, text, "Admission Date: N/A")
}

func TestRenderConsultation(t *testing.T) {
	c := &model.Consultation{
		PatientName: "Omar Said",
		MRN:         "MRN-002",
		Specialty:   "Neurology",
		Reason:      "new onset seizure",
		CreatedAt:   time.Date(2024, 3, 14, 11, 30, 0, 0, time.UTC),
	}

	text, err := Render(model.ShareConsultation(c))
	require.NoError(t, err)
	assert.Equal(t, "Consultation for Omar Said\n"+
		"MRN: MRN-002\n"+
		"Specialty: Neurology\n"+
		"Doctor: Pending Assignment\n"+
		"Created: Mar 14, 2024\n"+
		"Reason: new onset seizure", text)
}

func TestRenderAppointment(t *testing.T) {
	a := &model.Appointment{
		PatientName:     "Lina Farah",
		MedicalNumber:   "MRN-003",
		Specialty:       "Hematology",
		AppointmentType: model.AppointmentTypeUrgent,
		CreatedAt:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	text, err := Render(model.ShareAppointment(a))
	require.NoError(t, err)
	assert.Equal(t, "Appointment for Lina Farah\n"+
		"MRN: MRN-003\n"+
		"Specialty: Hematology\n"+
		"Date: Mar 1, 2024\n"+
		"Type: urgent", text)
}

func TestRenderRejectsMismatchedItem(t *testing.T) {
	_, err := Render(model.ShareItem{Kind: model.ShareKindConsultation})
	assert.True(t, apperrors.IsValidation(err))

	_, err = Render(model.ShareItem{Kind: "fax"})
	assert.True(t, apperrors.IsValidation(err))
}
