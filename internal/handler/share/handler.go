package share

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/service/share"
	"github.com/jwalitptl/ward-api/pkg/validator"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/share", h.Share)
}

type shareResponse struct {
	Text string `json:"text"`
}

func (h *Handler) Share(c *gin.Context) {
	var item model.ShareItem
	if err := c.ShouldBindJSON(&item); err != nil {
		handler.Fail(c, validator.Describe(err))
		return
	}

	text, err := share.Render(item)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(shareResponse{Text: text}))
}
