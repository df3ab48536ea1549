package share

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/middleware"
	"github.com/jwalitptl/ward-api/pkg/logger"
)

func postShare(body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(logger.NewNop()))
	NewHandler().RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/share", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestShareAppointment(t *testing.T) {
	w := postShare(`{"kind": "appointment", "appointment": {"id": 4, "patientName": "Omar Nasser", "medicalNumber": "MRN-044", "specialty": "Neurology", "appointmentType": "routine", "status": "pending"}}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Omar Nasser")
}

func TestShareRejectsMismatchedItem(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, postShare(`{"kind": "patient"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postShare(`{"kind": "invoice"}`).Code)
}
