package model

// SafetyAdmissionDepartment is the pseudo-department safety admissions are filed under.
const SafetyAdmissionDepartment = "Safety Admission"

// Departments are the clinical services admissions and consultations are attributed to.
var Departments = []string{
	"Internal Medicine",
	"Pulmonology",
	"Neurology",
	"Gastroenterology",
	"Rheumatology",
	"Endocrinology",
	"Hematology",
	"Infectious Disease",
	"Thrombosis Medicine",
	"Immunology & Allergy",
}

// GridDepartments are the departments shown on the specialty grid.
func GridDepartments() []string {
	out := make([]string, 0, len(Departments)+1)
	out = append(out, Departments...)
	return append(out, SafetyAdmissionDepartment)
}

// IsKnownDepartment reports whether name is an admission department.
func IsKnownDepartment(name string) bool {
	if name == SafetyAdmissionDepartment {
		return true
	}
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}
