package shift

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/shift"
	"github.com/jwalitptl/ward-api/pkg/validator"
)

// ClassifyRequest is the part of an admission draft the shift depends on.
type ClassifyRequest struct {
	AdmissionDate   string          `json:"admission_date" binding:"required"`
	UseWeekendShift bool            `json:"use_weekend_shift"`
	ShiftType       model.ShiftType `json:"shift_type"`
}

type Handler struct {
	classifier *shift.Classifier
}

func NewHandler(classifier *shift.Classifier) *Handler {
	if classifier == nil {
		classifier = shift.NewClassifier()
	}
	return &Handler{classifier: classifier}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/shift/classify", h.Classify)
}

func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, validator.Describe(err))
		return
	}

	result, err := h.classifier.ClassifyDate(req.AdmissionDate, req.UseWeekendShift, req.ShiftType)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}
