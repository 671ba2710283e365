package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/metrics"
)

const faultLoggedKey = "fault_logged"

// ErrorHandler turns faults pushed with c.Error, and panics, into a single
// log entry plus the 500 envelope. Business failures never reach it: they are
// written by the pipeline from the handler outcome.
func ErrorHandler(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				_ = c.Error(Recovered(r))
				handleFault(c, base)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		handleFault(c, base)
	}
}

func handleFault(c *gin.Context, base zerolog.Logger) {
	err := c.Errors.Last().Err
	file, line := Origin(err)

	LoggerFrom(c, &base).Error().
		Stack().
		Err(err).
		Str("file", file).
		Int("line", line).
		Msg(err.Error())
	c.Set(faultLoggedKey, true)

	metrics.PipelineOutcomes.WithLabelValues(metrics.ResultFault).Inc()

	if c.Writer.Written() {
		return
	}
	common.TerminateRequest(c, common.FaultMessage, err.Error(), http.StatusInternalServerError)
}

// PanicError is a recovered panic together with the place it was raised.
type PanicError struct {
	Value any
	File  string
	Line  int
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recovered must be called from the deferred function that recovered v.
func Recovered(v any) error {
	file, line := panicSite()
	return &PanicError{Value: v, File: file, Line: line}
}

// panicSite returns the first non-runtime frame below runtime.gopanic.
func panicSite() (string, int) {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	panicking := false
	for {
		frame, more := frames.Next()
		if panicking && !strings.HasPrefix(frame.Function, "runtime.") {
			return frame.File, frame.Line
		}
		if frame.Function == "runtime.gopanic" {
			panicking = true
		}
		if !more {
			return "", 0
		}
	}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Origin reports where err was raised: the panic site, or the innermost
// pkg/errors stack in the chain. Errors without either report no location.
func Origin(err error) (string, int) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe.File, pe.Line
	}

	var deepest stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st
		}
	}
	if deepest == nil {
		return "", 0
	}

	frames := deepest.StackTrace()
	if len(frames) == 0 {
		return "", 0
	}
	pc := uintptr(frames[0]) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "", 0
	}
	return fn.FileLine(pc)
}
