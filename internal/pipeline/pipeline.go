package pipeline

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/metrics"
	"github.com/joshu-sajeev/staybook/middleware"
)

// Operation is a business call on a service. Business rejections come back as
// a common.Failure; a returned error is an infrastructure fault.
type Operation func(ctx context.Context) (common.Outcome, error)

// Pipeline runs validate -> dispatch -> respond for every endpoint.
type Pipeline struct {
	validator *middleware.Validator
}

func New(v *middleware.Validator) *Pipeline {
	return &Pipeline{validator: v}
}

// Handle validates input against rules and, when it passes, runs op and writes
// its outcome. Faults are pushed with c.Error for middleware.ErrorHandler.
func (p *Pipeline) Handle(c *gin.Context, input map[string]any, rules middleware.Rules, op Operation) {
	ctx := c.Request.Context()

	if len(rules) > 0 {
		result, err := p.validator.Validate(ctx, input, rules)
		if err != nil {
			fault(c, err)
			return
		}
		if result.Failed() {
			metrics.PipelineOutcomes.WithLabelValues(metrics.ResultValidationError).Inc()
			common.TerminateRequest(c, common.ValidationErrorMessage, result.Errors, http.StatusUnprocessableEntity)
			return
		}
	}

	outcome, err := op(ctx)
	if err != nil {
		fault(c, err)
		return
	}
	if outcome == nil {
		fault(c, errors.New("operation returned no outcome"))
		return
	}

	switch outcome.(type) {
	case common.Failure:
		metrics.PipelineOutcomes.WithLabelValues(metrics.ResultBusinessError).Inc()
	case common.Success:
		metrics.PipelineOutcomes.WithLabelValues(metrics.ResultSuccess).Inc()
	}
	common.Respond(c, outcome)
}

func fault(c *gin.Context, err error) {
	var st interface{ StackTrace() errors.StackTrace }
	if !errors.As(err, &st) {
		err = errors.WithStack(err)
	}
	_ = c.Error(err)
	c.Abort()
}
