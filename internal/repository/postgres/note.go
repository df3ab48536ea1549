package postgres

import (
	"context"
	"time"

	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

// noteRow is the flat shape of a note joined with its author.
type noteRow struct {
	ID            int64     `db:"id"`
	PatientID     int64     `db:"patient_id"`
	Content       string    `db:"content"`
	CreatedBy     int64     `db:"created_by"`
	CreatedByName string    `db:"created_by_name"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (n noteRow) toModel() *model.LongStayNote {
	return &model.LongStayNote{
		ID:        n.ID,
		PatientID: n.PatientID,
		Content:   n.Content,
		CreatedBy: model.ActorRef{ID: n.CreatedBy, Name: n.CreatedByName},
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type noteRepository struct {
	BaseRepository
}

func NewNoteRepository(base BaseRepository) repository.NoteRepository {
	return &noteRepository{base}
}

// Append inserts the note and lets the database assign id and timestamps.
func (r *noteRepository) Append(ctx context.Context, patientID int64, content string, actorID int64) (_ *model.LongStayNote, err error) {
	start := time.Now()
	defer func() { r.observe("append_note", start, err) }()

	query := `
		WITH inserted AS (
			INSERT INTO long_stay_notes (patient_id, content, created_by)
			VALUES ($1, $2, $3)
			RETURNING id, patient_id, content, created_by, created_at, updated_at
		)
		SELECT i.id, i.patient_id, i.content, i.created_by,
			COALESCE(u.name, '') AS created_by_name, i.created_at, i.updated_at
		FROM inserted i
		LEFT JOIN users u ON u.id = i.created_by
	`
	var row noteRow
	if err = r.db.GetContext(ctx, &row, query, patientID, content, actorID); err != nil {
		return nil, apperrors.Persistence("insert note", err)
	}
	return row.toModel(), nil
}

func (r *noteRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.LongStayNote, error) {
	query := `
		SELECT n.id, n.patient_id, n.content, n.created_by,
			COALESCE(u.name, '') AS created_by_name, n.created_at, n.updated_at
		FROM long_stay_notes n
		LEFT JOIN users u ON u.id = n.created_by
		WHERE n.patient_id = $1
		ORDER BY n.created_at DESC, n.id DESC
	`
	var rows []noteRow
	if err := r.db.SelectContext(ctx, &rows, query, patientID); err != nil {
		return nil, apperrors.Persistence("list notes", err)
	}
	notes := make([]*model.LongStayNote, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toModel())
	}
	return notes, nil
}
