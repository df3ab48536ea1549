package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

var noteCols = []string{"id", "patient_id", "content", "created_by", "created_by_name", "created_at", "updated_at"}

func TestAppendNoteReturnsStoredRow(t *testing.T) {
	base, mock := setupMockDB(t)
	repo := NewNoteRepository(base)
	ts := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO long_stay_notes`).WithArgs(int64(1), "awaiting MRI", int64(42)).
		WillReturnRows(sqlmock.NewRows(noteCols).AddRow(17, 1, "awaiting MRI", 42, "Nurse Joy", ts, ts))

	note, err := repo.Append(context.Background(), 1, "awaiting MRI", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(17), note.ID)
	assert.Equal(t, "Nurse Joy", note.CreatedBy.Name)
	assert.Equal(t, int64(42), note.CreatedBy.ID)
	assert.Equal(t, ts, note.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendNoteWrapsDriverError(t *testing.T) {
	base, mock := setupMockDB(t)
	repo := NewNoteRepository(base)

	mock.ExpectQuery(`INSERT INTO long_stay_notes`).WillReturnError(errors.New("deadlock detected"))

	_, err := repo.Append(context.Background(), 1, "x", 42)
	assert.True(t, apperrors.IsPersistence(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListNotesByPatient(t *testing.T) {
	base, mock := setupMockDB(t)
	repo := NewNoteRepository(base)
	ts := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY n.created_at DESC, n.id DESC`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(18, 1, "second", 42, "Nurse Joy", ts, ts).
			AddRow(17, 1, "first", 42, "Nurse Joy", ts, ts))

	notes, err := repo.ListByPatient(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, int64(18), notes[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
