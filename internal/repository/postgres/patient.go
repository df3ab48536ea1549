package postgres

import (
	"context"
	"time"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

const patientColumns = `id, mrn, name, date_of_birth, gender, created_at`

// admissionSelect joins the admitting doctor's name. Callers append WHERE and
// ORDER BY clauses.
const admissionSelect = `
	SELECT a.id, a.patient_id, a.admitting_doctor_id, u.name AS doctor_name,
		a.department, a.status, a.admission_date, a.discharge_date, a.diagnosis,
		a.visit_number, a.shift_type, a.is_weekend, a.safety_type, a.created_at
	FROM admissions a
	LEFT JOIN users u ON u.id = a.admitting_doctor_id
`

// admissionOrder puts each patient's most recent admission first.
const admissionOrder = ` ORDER BY a.patient_id, a.admission_date DESC, a.visit_number DESC`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) ListWithAdmissions(ctx context.Context) (_ []*model.Patient, err error) {
	start := time.Now()
	defer func() { r.observe("list_patients", start, err) }()

	var patients []*model.Patient
	if err = r.db.SelectContext(ctx, &patients, `SELECT `+patientColumns+` FROM patients ORDER BY id`); err != nil {
		return nil, apperrors.Persistence("list patients", err)
	}

	var admissions []*model.Admission
	if err = r.db.SelectContext(ctx, &admissions, admissionSelect+admissionOrder); err != nil {
		return nil, apperrors.Persistence("list admissions", err)
	}

	byPatient := make(map[int64]*model.Patient, len(patients))
	for _, p := range patients {
		p.Admissions = []*model.Admission{}
		byPatient[p.ID] = p
	}
	for _, a := range admissions {
		if p, ok := byPatient[a.PatientID]; ok {
			p.Admissions = append(p.Admissions, a)
		}
	}
	return patients, nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var p model.Patient
	if err := r.db.GetContext(ctx, &p, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id); err != nil {
		return nil, notFoundOr("patient", "get patient", err)
	}
	return r.withAdmissions(ctx, &p)
}

func (r *patientRepository) GetByMRN(ctx context.Context, mrn string) (*model.Patient, error) {
	var p model.Patient
	if err := r.db.GetContext(ctx, &p, `SELECT `+patientColumns+` FROM patients WHERE mrn = $1`, mrn); err != nil {
		return nil, notFoundOr("patient", "get patient", err)
	}
	return r.withAdmissions(ctx, &p)
}

func (r *patientRepository) withAdmissions(ctx context.Context, p *model.Patient) (*model.Patient, error) {
	p.Admissions = []*model.Admission{}
	if err := r.db.SelectContext(ctx, &p.Admissions, admissionSelect+` WHERE a.patient_id = $1`+admissionOrder, p.ID); err != nil {
		return nil, apperrors.Persistence("list admissions", err)
	}
	return p, nil
}
