package common

import "net/http"

// Outcome is the result a handler service hands back to the request pipeline.
// It is either a Success or a Failure.
type Outcome interface {
	outcome()
}

// Success carries the payload and message of a completed operation.
type Success struct {
	Response any
	Message  string
	Code     int
}

// Failure carries a business-rule rejection. The service fully controls
// the error text, the payload and the status code sent back to the caller.
type Failure struct {
	Error    string
	Response any
	Code     int
}

func (Success) outcome() {}
func (Failure) outcome() {}

func OK(response any, message string) Success {
	return Success{Response: response, Message: message, Code: http.StatusOK}
}

func Created(response any, message string) Success {
	return Success{Response: response, Message: message, Code: http.StatusCreated}
}

// Fail builds a Failure; a nil response is sent as an empty object.
func Fail(code int, message string, response any) Failure {
	if response == nil {
		response = map[string]any{}
	}
	return Failure{Error: message, Response: response, Code: code}
}
