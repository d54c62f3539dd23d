package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasklift/backend/internal/calculator"
)

// SubmitRequest carries everything the orchestrator needs for one report
// submission. RawInputs is the untyped JSON object from the request body;
// typing and domain checks happen inside Submit, never before.
type SubmitRequest struct {
	Email          string
	TurnstileToken string
	RawInputs      map[string]any
	RemoteIP       string
}

// ReportService runs the submission pipeline: verification, validation,
// authoritative recomputation and mail dispatch.
type ReportService interface {
	// Submit processes one report request and returns the mail transport's
	// message id on success.
	Submit(ctx context.Context, req SubmitRequest) (string, error)
}

// Error taxonomy, mapped to HTTP statuses by the handler.
var (
	// ErrVerificationFailed covers provider-rejected tokens and provider
	// unreachability (fail closed).
	ErrVerificationFailed = errors.New("verification failed")

	// ErrMailTransport means the mail provider rejected or errored. The
	// send is not retried; the caller may resubmit, subject to the limiter.
	ErrMailTransport = errors.New("mail transport failed")
)

// ValidationError aggregates all field errors of one submission so the
// caller can fix every problem in a single round trip.
type ValidationError struct {
	Fields []calculator.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// Details returns one human-readable message per offending field.
func (e *ValidationError) Details() []string {
	out := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		out[i] = fe.Error()
	}
	return out
}
