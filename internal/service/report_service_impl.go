package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tasklift/backend/internal/calculator"
	"github.com/tasklift/backend/internal/mail"
	"github.com/tasklift/backend/internal/metrics"
	"github.com/tasklift/backend/pkg/resend"
	"github.com/tasklift/backend/pkg/turnstile"
)

// reportServiceImpl is the production implementation of ReportService.
type reportServiceImpl struct {
	verifier turnstile.Verifier
	sender   resend.Sender
	from     string
	to       string
}

// NewReportService creates a ReportService sending reports from the given
// sender address to the fixed operator mailbox.
func NewReportService(verifier turnstile.Verifier, sender resend.Sender, from, to string) ReportService {
	return &reportServiceImpl{verifier: verifier, sender: sender, from: from, to: to}
}

// Submit runs the pipeline in order, short-circuiting on the first failure.
// Nothing before the dispatch step has side effects, so every early return
// leaves the system unchanged (the rate-limit check already happened in the
// HTTP middleware).
func (s *reportServiceImpl) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	// An absent token degrades to rate limiting alone; a present token must
	// verify, and an unreachable provider fails closed.
	if req.TurnstileToken != "" {
		out, err := s.verifier.Verify(ctx, req.TurnstileToken, req.RemoteIP)
		if err != nil {
			slog.Warn("verification provider unreachable", "error", err)
			return "", fmt.Errorf("%w: provider unreachable", ErrVerificationFailed)
		}
		if !out.Success {
			return "", fmt.Errorf("%w: %s", ErrVerificationFailed, out.Reason)
		}
	}

	email, err := calculator.ValidateEmail(req.Email)
	if err != nil {
		return "", &ValidationError{Fields: []calculator.FieldError{
			{Field: "email", Msg: err.Error()},
		}}
	}

	inputs, fieldErrs := calculator.ValidateInputs(req.RawInputs)
	if len(fieldErrs) > 0 {
		return "", &ValidationError{Fields: fieldErrs}
	}

	// Authoritative recomputation. Client-supplied results never reach this
	// point; the handler drops them at the wire.
	results := calculator.Compute(inputs)

	html, err := mail.RenderReport(email, inputs, results)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	id, err := s.sender.Send(ctx, resend.Message{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: email,
		Subject: mail.Subject(results),
		HTML:    html,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMailTransport, err)
	}

	metrics.ReportsSent.Inc()
	slog.Info("report dispatched",
		"message_id", id,
		"annual_cost", results.AnnualCost,
		"potential_savings", results.PotentialSavingsCost,
	)
	return id, nil
}
