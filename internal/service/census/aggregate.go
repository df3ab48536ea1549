package census

import (
	"time"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/stay"
)

// Aggregator derives census rollups from a snapshot. Every call rescans the whole
// snapshot; nothing is indexed or cached between calls.
type Aggregator struct {
	stays *stay.Engine
}

func NewAggregator(stays *stay.Engine) *Aggregator {
	return &Aggregator{stays: stays}
}

// Matches reports whether the patient's most recent admission is active and passes
// every set field of f. It returns that admission on a match.
func Matches(p *model.Patient, f model.CensusFilter) (*model.Admission, bool) {
	a := p.ActiveAdmission()
	if a == nil {
		return nil, false
	}
	if f.Specialty != "" && a.Department != f.Specialty {
		return nil, false
	}
	if f.DoctorID != 0 && a.AdmittingDoctorID != f.DoctorID {
		return nil, false
	}
	if f.DateRange != nil && !f.DateRange.Contains(a.AdmissionDate) {
		return nil, false
	}
	return a, true
}

// Aggregate evaluates snap against f at the aggregator's current instant.
func (g *Aggregator) Aggregate(snap *model.Snapshot, f model.CensusFilter) *model.Rollup {
	return g.AggregateAt(snap, f, g.stays.Now())
}

// AggregateAt evaluates snap against f with every stay measured up to now. The
// result depends only on its arguments.
func (g *Aggregator) AggregateAt(snap *model.Snapshot, f model.CensusFilter, now time.Time) *model.Rollup {
	stays := g.stays.At(now)
	r := &model.Rollup{
		Filter:              f,
		ActivePatients:      []model.CensusEntry{},
		LongStayPatients:    []model.CensusEntry{},
		SafetyTypeCounts:    emptySafetyCounts(),
		PendingAppointments: []*model.Appointment{},
		EvaluatedAt:         now,
	}

	for _, p := range snap.Patients {
		a, ok := Matches(p, f)
		if !ok {
			continue
		}
		entry := model.CensusEntry{
			Patient:    p,
			Admission:  a,
			ShiftLabel: a.ShiftType.Label(),
			StayDays:   stays.DurationDays(a.AdmissionDate),
			LongStay:   stays.IsLongStay(a.AdmissionDate),
		}
		r.ActivePatients = append(r.ActivePatients, entry)
		if entry.LongStay {
			r.LongStayPatients = append(r.LongStayPatients, entry)
		}
		if a.IsReadmission() {
			r.ReadmissionCount++
		}
		if a.SafetyType != nil {
			if _, tracked := r.SafetyTypeCounts[*a.SafetyType]; tracked {
				r.SafetyTypeCounts[*a.SafetyType]++
			}
		}
	}
	r.Count = len(r.ActivePatients)

	for _, c := range snap.Consultations {
		if c.IsPending() && (f.Specialty == "" || c.Specialty == f.Specialty) {
			r.PendingConsultations++
		}
	}
	for _, ap := range snap.Appointments {
		if ap.IsPending() && (f.Specialty == "" || ap.Specialty == f.Specialty) {
			r.PendingAppointments = append(r.PendingAppointments, ap)
		}
	}
	return r
}

// Summaries builds the specialty grid: one summary per department, all measured at
// the same instant.
func (g *Aggregator) Summaries(snap *model.Snapshot, departments []string) []model.SpecialtySummary {
	now := g.stays.Now()
	out := make([]model.SpecialtySummary, 0, len(departments))
	for _, d := range departments {
		r := g.AggregateAt(snap, model.CensusFilter{Specialty: d}, now)
		out = append(out, model.SpecialtySummary{
			Specialty:            d,
			ActivePatients:       r.Count,
			ReadmissionCount:     r.ReadmissionCount,
			LongStayCount:        len(r.LongStayPatients),
			SafetyTypeCounts:     r.SafetyTypeCounts,
			PendingConsultations: r.PendingConsultations,
		})
	}
	return out
}

func emptySafetyCounts() map[model.SafetyType]int {
	counts := make(map[model.SafetyType]int, len(model.SafetyTypes))
	for _, s := range model.SafetyTypes {
		counts[s] = 0
	}
	return counts
}
