package worker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/event"
	"github.com/jwalitptl/ward-api/pkg/email"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

// CensusReader is the part of the census service the sweep reads.
type CensusReader interface {
	LongStay(ctx context.Context, f model.CensusFilter) (*model.Rollup, error)
	Specialties(ctx context.Context) ([]model.SpecialtySummary, error)
}

// LongStayAlert is the payload of a LONG_STAY_ALERT event.
type LongStayAlert struct {
	EvaluatedAt  time.Time      `json:"evaluated_at"`
	Count        int            `json:"count"`
	ByDepartment map[string]int `json:"by_department"`
	Patients     []AlertPatient `json:"patients"`
}

type AlertPatient struct {
	PatientID   int64  `json:"patient_id"`
	MRN         string `json:"mrn"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Doctor      string `json:"doctor"`
	StayDays    int    `json:"stay_days"`
	VisitNumber int    `json:"visit_number"`
}

// LongStaySweep periodically refreshes the per-department gauges and raises an
// alert for every long-stay patient on the ward.
type LongStaySweep struct {
	census     CensusReader
	events     event.Emitter
	mailer     email.Sender
	recipients []string
	interval   time.Duration
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewLongStaySweep(
	census CensusReader,
	events event.Emitter,
	mailer email.Sender,
	recipients []string,
	interval time.Duration,
	m *metrics.Metrics,
	log *logger.Logger,
) *LongStaySweep {
	return &LongStaySweep{
		census:     census,
		events:     events,
		mailer:     mailer,
		recipients: recipients,
		interval:   interval,
		metrics:    m,
		logger:     log,
	}
}

func (w *LongStaySweep) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting long-stay sweep", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				w.logger.Error(err, "Long-stay sweep failed")
			}
		}
	}
}

// Sweep runs once and returns the alert it raised, or nil when no patient is
// over the threshold.
func (w *LongStaySweep) Sweep(ctx context.Context) (*LongStayAlert, error) {
	summaries, err := w.census.Specialties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load specialty summaries: %w", err)
	}
	for _, s := range summaries {
		w.metrics.ActivePatients.WithLabelValues(s.Specialty).Set(float64(s.ActivePatients))
		w.metrics.LongStayPatient.WithLabelValues(s.Specialty).Set(float64(s.LongStayCount))
	}

	rollup, err := w.census.LongStay(ctx, model.CensusFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load long-stay patients: %w", err)
	}
	if len(rollup.LongStayPatients) == 0 {
		return nil, nil
	}

	alert := buildAlert(rollup)
	if err := w.events.Emit(ctx, model.EventLongStayAlert, alert); err != nil {
		w.logger.Error(err, "Failed to record long-stay alert")
	}
	if len(w.recipients) > 0 {
		msg := email.Message{
			To:      w.recipients,
			Subject: fmt.Sprintf("Long-stay digest: %d patients", alert.Count),
			Text:    Digest(alert),
		}
		if err := w.mailer.Send(ctx, msg); err != nil {
			w.logger.Error(err, "Failed to send long-stay digest")
		}
	}
	w.logger.Info("Long-stay sweep complete", "long_stay_patients", alert.Count)
	return alert, nil
}

func buildAlert(r *model.Rollup) *LongStayAlert {
	alert := &LongStayAlert{
		EvaluatedAt:  r.EvaluatedAt,
		Count:        len(r.LongStayPatients),
		ByDepartment: make(map[string]int),
		Patients:     make([]AlertPatient, 0, len(r.LongStayPatients)),
	}
	for _, e := range r.LongStayPatients {
		alert.ByDepartment[e.Admission.Department]++
		alert.Patients = append(alert.Patients, AlertPatient{
			PatientID:   e.Patient.ID,
			MRN:         e.Patient.MRN,
			Name:        e.Patient.Name,
			Department:  e.Admission.Department,
			Doctor:      e.Admission.DoctorDisplayName(),
			StayDays:    e.StayDays,
			VisitNumber: e.Admission.VisitNumber,
		})
	}
	sort.SliceStable(alert.Patients, func(i, j int) bool {
		return alert.Patients[i].StayDays > alert.Patients[j].StayDays
	})
	return alert
}

// Digest renders the alert as the plain-text email body, longest stays first.
func Digest(a *LongStayAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Long-stay patients as of %s: %d\n\n", a.EvaluatedAt.Format("Jan 2, 2006 15:04"), a.Count)
	for _, p := range a.Patients {
		fmt.Fprintf(&b, "- %s (MRN %s), %s, %d days, %s\n", p.Name, p.MRN, p.Department, p.StayDays, p.Doctor)
	}
	return b.String()
}
