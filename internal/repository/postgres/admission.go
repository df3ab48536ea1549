package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

type admissionRepository struct {
	BaseRepository
}

func NewAdmissionRepository(base BaseRepository) repository.AdmissionRepository {
	return &admissionRepository{base}
}

// Admit upserts the patient by MRN, locks the patient row and inserts the
// admission with the next visit number. The stored date of birth is kept for
// returning patients.
func (r *admissionRepository) Admit(ctx context.Context, patient *model.Patient, admission *model.Admission) (err error) {
	start := time.Now()
	defer func() { r.observe("admit", start, err) }()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		upsert := `
			INSERT INTO patients (mrn, name, date_of_birth, gender)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (mrn) DO UPDATE SET name = EXCLUDED.name, gender = EXCLUDED.gender
			RETURNING id, date_of_birth, created_at
		`
		if err := tx.QueryRowxContext(ctx, upsert,
			patient.MRN, patient.Name, patient.DateOfBirth, patient.Gender,
		).Scan(&patient.ID, &patient.DateOfBirth, &patient.CreatedAt); err != nil {
			return apperrors.Persistence("upsert patient", err)
		}

		if _, err := tx.ExecContext(ctx, `SELECT id FROM patients WHERE id = $1 FOR UPDATE`, patient.ID); err != nil {
			return apperrors.Persistence("lock patient", err)
		}

		var history struct {
			Active    int `db:"active"`
			LastVisit int `db:"last_visit"`
		}
		stats := `
			SELECT COUNT(*) FILTER (WHERE status = 'active') AS active,
				COALESCE(MAX(visit_number), 0) AS last_visit
			FROM admissions
			WHERE patient_id = $1
		`
		if err := tx.GetContext(ctx, &history, stats, patient.ID); err != nil {
			return apperrors.Persistence("read admission history", err)
		}
		if history.Active > 0 {
			return apperrors.Conflict("patient already has an active admission")
		}

		admission.PatientID = patient.ID
		admission.VisitNumber = history.LastVisit + 1
		insert := `
			INSERT INTO admissions (
				patient_id, admitting_doctor_id, department, status, admission_date,
				diagnosis, visit_number, shift_type, is_weekend, safety_type
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`
		if err := tx.QueryRowxContext(ctx, insert,
			admission.PatientID,
			admission.AdmittingDoctorID,
			admission.Department,
			admission.Status,
			admission.AdmissionDate,
			admission.Diagnosis,
			admission.VisitNumber,
			admission.ShiftType,
			admission.IsWeekend,
			admission.SafetyType,
		).Scan(&admission.ID, &admission.CreatedAt); err != nil {
			return apperrors.Persistence("insert admission", err)
		}
		return nil
	})
}

func (r *admissionRepository) Get(ctx context.Context, id int64) (*model.Admission, error) {
	var a model.Admission
	if err := r.db.GetContext(ctx, &a, admissionSelect+` WHERE a.id = $1`, id); err != nil {
		return nil, notFoundOr("admission", "get admission", err)
	}
	return &a, nil
}

// Discharge marks an active admission discharged. A missing or already
// discharged admission yields not found.
func (r *admissionRepository) Discharge(ctx context.Context, id int64, at time.Time) (_ *model.Admission, err error) {
	start := time.Now()
	defer func() { r.observe("discharge", start, err) }()

	query := `
		UPDATE admissions
		SET status = $1, discharge_date = $2
		WHERE id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, model.AdmissionStatusDischarged, at, id, model.AdmissionStatusActive)
	if err != nil {
		return nil, apperrors.Persistence("discharge admission", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, apperrors.Persistence("discharge admission", err)
	}
	if n == 0 {
		return nil, apperrors.NotFound("active admission", nil)
	}
	return r.Get(ctx, id)
}
