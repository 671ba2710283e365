package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ValidationErrorMessage = "Validation Error"
	FaultMessage           = "ERROR"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	State    bool   `json:"state"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
	Code     int    `json:"code"`
}

// SendResponse writes a success envelope.
func SendResponse(c *gin.Context, response any, message string, state bool, code int) {
	code = statusOr(code, http.StatusOK)
	c.JSON(code, Envelope{
		State:    state,
		Message:  message,
		Response: response,
		Code:     code,
	})
}

// TerminateRequest writes an error envelope and aborts the handler chain.
func TerminateRequest(c *gin.Context, errMsg string, response any, code int) {
	code = statusOr(code, http.StatusBadRequest)
	c.AbortWithStatusJSON(code, Envelope{
		State:    false,
		Error:    errMsg,
		Response: response,
		Code:     code,
	})
}

// Respond maps a handler outcome onto the matching envelope.
func Respond(c *gin.Context, o Outcome) {
	switch o := o.(type) {
	case Failure:
		TerminateRequest(c, o.Error, o.Response, o.Code)
	case Success:
		SendResponse(c, o.Response, o.Message, true, o.Code)
	}
}

// ValidStatus reports whether code can be written as an HTTP status.
func ValidStatus(code int) bool {
	return code >= 100 && code <= 599
}

func statusOr(code, fallback int) int {
	if !ValidStatus(code) {
		return fallback
	}
	return code
}
