package notes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/internal/middleware"
	"github.com/jwalitptl/ward-api/internal/model"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
	"github.com/jwalitptl/ward-api/pkg/logger"
)

type stubNotes struct {
	list     []*model.LongStayNote
	appended []string
	err      error
}

func (s *stubNotes) Fetch(context.Context, int64) ([]*model.LongStayNote, error) {
	return s.list, s.err
}

func (s *stubNotes) Append(_ context.Context, patientID int64, content string, actor *model.Actor) (*model.LongStayNote, error) {
	if actor == nil {
		return nil, apperrors.NotAuthenticated(nil)
	}
	if s.err != nil {
		return nil, s.err
	}
	s.appended = append(s.appended, content)
	return &model.LongStayNote{
		ID:        1,
		PatientID: patientID,
		Content:   content,
		CreatedBy: model.ActorRef{ID: actor.ID, Name: actor.Name},
		CreatedAt: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubNotes) Loading() bool { return false }

func setup(svc *stubNotes, auth gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(logger.NewNop()))
	NewHandler(svc, auth).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func asActor(actor *model.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextActor, actor)
		c.Next()
	}
}

func deny(c *gin.Context) {
	handler.Fail(c, apperrors.NotAuthenticated(nil))
}

func postNote(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestListNotesIsPublic(t *testing.T) {
	svc := &stubNotes{list: []*model.LongStayNote{{ID: 2, Content: "family meeting booked"}}}
	w := httptest.NewRecorder()
	setup(svc, deny).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/patients/5/notes", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "family meeting booked")
}

func TestAppendNote(t *testing.T) {
	svc := &stubNotes{}
	actor := &model.Actor{ID: 3, Name: "Dr. Osei"}

	w := postNote(setup(svc, asActor(actor)), "/api/v1/patients/5/notes", `{"content": "awaiting rehab bed"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []string{"awaiting rehab bed"}, svc.appended)
	assert.Contains(t, w.Body.String(), `"name":"Dr. Osei"`)
}

func TestAppendNoteRequiresAuth(t *testing.T) {
	svc := &stubNotes{}
	w := postNote(setup(svc, deny), "/api/v1/patients/5/notes", `{"content": "awaiting rehab bed"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.appended)
}

func TestAppendNoteValidation(t *testing.T) {
	svc := &stubNotes{}
	r := setup(svc, asActor(&model.Actor{ID: 3, Name: "Dr. Osei"}))

	assert.Equal(t, http.StatusBadRequest, postNote(r, "/api/v1/patients/5/notes", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, postNote(r, "/api/v1/patients/0/notes", `{"content": "x"}`).Code)
	assert.Empty(t, svc.appended)
}

func TestAppendNotePersistenceError(t *testing.T) {
	svc := &stubNotes{err: apperrors.Persistence("append note", assert.AnError)}
	w := postNote(setup(svc, asActor(&model.Actor{ID: 3})), "/api/v1/patients/5/notes", `{"content": "x"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "failed to append note")
}
