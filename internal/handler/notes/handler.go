package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/internal/middleware"
	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/notes"
	"github.com/jwalitptl/ward-api/pkg/validator"
)

type Handler struct {
	service notes.NotesService
	auth    gin.HandlerFunc
}

func NewHandler(service notes.NotesService, auth gin.HandlerFunc) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients/:id/notes")
	{
		patients.GET("", h.ListNotes)
		patients.POST("", h.auth, h.AppendNote)
	}
}

func (h *Handler) ListNotes(c *gin.Context) {
	patientID, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Fail(c, err)
		return
	}

	list, err := h.service.Fetch(c.Request.Context(), patientID)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) AppendNote(c *gin.Context) {
	patientID, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Fail(c, err)
		return
	}

	var req model.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, validator.Describe(err))
		return
	}

	note, err := h.service.Append(c.Request.Context(), patientID, req.Content, middleware.ActorFrom(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(note))
}
