package postgres

import (
	"context"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

type consultationRepository struct {
	BaseRepository
}

func NewConsultationRepository(base BaseRepository) repository.ConsultationRepository {
	return &consultationRepository{base}
}

func (r *consultationRepository) List(ctx context.Context) ([]*model.Consultation, error) {
	query := `
		SELECT c.id, c.patient_id, c.mrn, c.patient_name, c.age, c.gender,
			c.consultation_specialty, c.reason, c.urgency, c.status,
			c.doctor_id, COALESCE(u.name, c.doctor_name) AS doctor_name, c.created_at
		FROM consultations c
		LEFT JOIN users u ON u.id = c.doctor_id
		ORDER BY c.created_at DESC, c.id DESC
	`
	consultations := []*model.Consultation{}
	if err := r.db.SelectContext(ctx, &consultations, query); err != nil {
		return nil, apperrors.Persistence("list consultations", err)
	}
	return consultations, nil
}
