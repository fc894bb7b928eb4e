package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response messages
const (
	MsgValidationFailed = "Validation failed"
	MsgInvalidBody      = "Invalid request body"
	MsgExpenseNotFound  = "Expense not found"
	MsgExpenseDeleted   = "Expense deleted"
	MsgExpenseConflict  = "Expense was modified concurrently, reload and retry"
)

// Response message envelope for errors and acknowledgements
type Response struct {
	Message string   `json:"message" example:"Validation failed"`
	Errors  []string `json:"errors,omitempty" example:"title is required"`
}

// Message responds with a bare message
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Message: message})
}

// BadRequest 400 response
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// ValidationFailed 400 response listing every failed rule
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, Response{Message: MsgValidationFailed, Errors: errs})
}

// NotFound 404 response
func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

// Conflict 409 response
func Conflict(c *gin.Context, message string) {
	Message(c, http.StatusConflict, message)
}
