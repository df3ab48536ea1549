package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    int         `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// ErrorFor converts err into the HTTP status and body sent to the client.
// Messages of unexpected errors are not exposed.
func ErrorFor(err error) (int, *Response) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, NewErrorResponse("internal server error")
	}
	status := appErr.StatusCode()
	resp := NewErrorResponse(appErr.Message)
	resp.Code = int(appErr.Code)
	if status >= http.StatusInternalServerError && appErr.Code != apperrors.ErrPersistence {
		resp.Message = "internal server error"
	}
	return status, resp
}

// Fail records err on the context for the error middleware and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
