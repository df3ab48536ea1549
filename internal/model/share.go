package model

// ShareKind discriminates ShareItem.
type ShareKind string

const (
	ShareKindPatient      ShareKind = "patient"
	ShareKindConsultation ShareKind = "consultation"
	ShareKindAppointment  ShareKind = "appointment"
)

// ShareItem is a tagged union. Exactly the member named by Kind is set.
type ShareItem struct {
	Kind         ShareKind     `json:"kind" binding:"required,oneof=patient consultation appointment"`
	Patient      *Patient      `json:"patient,omitempty"`
	Consultation *Consultation `json:"consultation,omitempty"`
	Appointment  *Appointment  `json:"appointment,omitempty"`
}

func SharePatient(p *Patient) ShareItem {
	return ShareItem{Kind: ShareKindPatient, Patient: p}
}

func ShareConsultation(c *Consultation) ShareItem {
	return ShareItem{Kind: ShareKindConsultation, Consultation: c}
}

func ShareAppointment(a *Appointment) ShareItem {
	return ShareItem{Kind: ShareKindAppointment, Appointment: a}
}
