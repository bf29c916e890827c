package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmanager-backend/pkg/pagination"
)

// Response is the envelope every catalog operation returns: a status
// classification, a human-readable message, an optional payload and optional
// pagination metadata. The transport maps StatusCode straight onto the HTTP
// status.
type Response struct {
	StatusCode int              `json:"status_code"`
	Message    string           `json:"message"`
	Details    interface{}      `json:"details,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

func New(statusCode int, message string, details interface{}) *Response {
	return &Response{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

func OK(message string, details interface{}) *Response {
	return New(http.StatusOK, message, details)
}

func Created(message string, details interface{}) *Response {
	return New(http.StatusCreated, message, details)
}

func BadRequest(message string) *Response {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *Response {
	return New(http.StatusNotFound, message, nil)
}

// JSON writes the envelope using its own status classification.
func (r *Response) JSON(c *gin.Context) {
	c.JSON(r.StatusCode, r)
}

// Error writes an ad-hoc error envelope; used by the transport for binding
// failures and unexpected faults.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{StatusCode: statusCode, Message: message})
}

// InternalServerError hides internal detail behind a generic message.
func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error.")
}
