package census

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/census"
	"github.com/jwalitptl/ward-api/pkg/validator"
)

type Handler struct {
	service census.CensusService
}

func NewHandler(service census.CensusService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/census")
	{
		g.GET("", h.Census)
		g.GET("/specialties", h.Specialties)
		g.GET("/long-stay", h.LongStay)
	}
}

func (h *Handler) Census(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	rollup, err := h.service.Census(c.Request.Context(), f)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rollup))
}

func (h *Handler) Specialties(c *gin.Context) {
	summaries, err := h.service.Specialties(c.Request.Context())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(summaries))
}

// LongStayRow is one line of the long-stay report.
type LongStayRow struct {
	PatientID   int64   `json:"patient_id"`
	MRN         string  `json:"mrn"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	DoctorName  *string `json:"doctor_name"`
	Days        int     `json:"days"`
	VisitNumber int     `json:"visit_number"`
	Shift       string  `json:"shift"`
}

type longStayReport struct {
	Filter    model.CensusFilter `json:"filter"`
	Threshold int                `json:"threshold_days"`
	Count     int                `json:"count"`
	Patients  []LongStayRow      `json:"patients"`
}

func (h *Handler) LongStay(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	rollup, err := h.service.LongStay(c.Request.Context(), f)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	report := longStayReport{
		Filter:    rollup.Filter,
		Threshold: h.service.Threshold(),
		Patients:  make([]LongStayRow, 0, len(rollup.LongStayPatients)),
	}
	for _, e := range rollup.LongStayPatients {
		report.Patients = append(report.Patients, LongStayRow{
			PatientID:   e.Patient.ID,
			MRN:         e.Patient.MRN,
			Name:        e.Patient.Name,
			Department:  e.Admission.Department,
			DoctorName:  e.Admission.DoctorName,
			Days:        e.StayDays,
			VisitNumber: e.Admission.VisitNumber,
			Shift:       e.ShiftLabel,
		})
	}
	report.Count = len(report.Patients)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(report))
}

func bindFilter(c *gin.Context) (model.CensusFilter, bool) {
	var q model.CensusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.Fail(c, validator.Describe(err))
		return model.CensusFilter{}, false
	}
	f, err := census.ParseFilter(q)
	if err != nil {
		handler.Fail(c, err)
		return model.CensusFilter{}, false
	}
	return f, true
}
