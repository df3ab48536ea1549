package admission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/internal/middleware"
	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/admission"
	"github.com/jwalitptl/ward-api/pkg/validator"
)

type Handler struct {
	service admission.AdmissionService
	auth    gin.HandlerFunc
}

// NewHandler wires the admission routes. auth guards the write routes.
func NewHandler(service admission.AdmissionService, auth gin.HandlerFunc) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)

	admissions := r.Group("/admissions")
	admissions.Use(h.auth)
	{
		admissions.POST("", h.Admit)
		admissions.POST("/:id/discharge", h.Discharge)
	}
}

func (h *Handler) Admit(c *gin.Context) {
	var draft model.AdmissionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		handler.Fail(c, validator.Describe(err))
		return
	}

	patient, err := h.service.Admit(c.Request.Context(), &draft, middleware.ActorFrom(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) Discharge(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Fail(c, err)
		return
	}

	var req model.DischargeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handler.Fail(c, validator.Describe(err))
			return
		}
	}

	adm, err := h.service.Discharge(c.Request.Context(), id, &req, middleware.ActorFrom(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(adm))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.Doctors(c.Request.Context(), c.Query("department"))
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}
