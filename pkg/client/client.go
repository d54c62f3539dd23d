// Package client is a Go client for the TaskLift report API. It mirrors the
// behavior of the browser calculator: optimistic soft validation with live
// estimates, a persisted local backup rate limiter, the verification-widget
// state machine, and typed submission errors. Nothing here is
// authoritative; the server re-derives and re-checks everything.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tasklift/backend/internal/model"
)

// ErrTooSoon is returned by the local backup limiter before any network
// call is made. The server's limiter remains the binding gate.
var ErrTooSoon = errors.New("client: too many recent submissions")

// APIError is a typed server rejection, one per error category.
type APIError struct {
	Status     int
	Message    string
	Details    []string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Receipt acknowledges a dispatched report.
type Receipt struct {
	MessageID string
}

// Client talks to the report endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	local      *LocalLimiter
}

// New creates a Client for the given API base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithLocalLimiter attaches a persisted backup limiter checked before each
// submission.
func (c *Client) WithLocalLimiter(l *LocalLimiter) *Client {
	c.local = l
	return c
}

type submitBody struct {
	Email          string                 `json:"email"`
	TurnstileToken string                 `json:"turnstileToken,omitempty"`
	Inputs         model.CalculatorInputs `json:"inputs"`
}

// Submit posts one report request. token may be empty when the widget is
// unavailable; the server then falls back to rate limiting alone.
func (c *Client) Submit(ctx context.Context, email, token string, in model.CalculatorInputs) (Receipt, error) {
	if c.local != nil {
		if ok, retry := c.local.Allow(); !ok {
			return Receipt{}, fmt.Errorf("%w: retry in %s", ErrTooSoon, retry.Round(time.Second))
		}
	}

	payload, err := json.Marshal(submitBody{Email: email, TurnstileToken: token, Inputs: in})
	if err != nil {
		return Receipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/report", bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if derr := json.NewDecoder(resp.Body).Decode(&body); derr == nil {
			apiErr.Message = body.Error
			apiErr.Details = body.Details
		}
		if secs, perr := strconv.Atoi(resp.Header.Get("Retry-After")); perr == nil {
			apiErr.RetryAfter = time.Duration(secs) * time.Second
		}
		return Receipt{}, apiErr
	}

	var ok struct {
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return Receipt{}, err
	}

	if c.local != nil {
		_ = c.local.Record()
	}
	return Receipt{MessageID: ok.MessageID}, nil
}

// SubmitForm gathers the soft form state and the widget's current token,
// submits, and on any failure discards the token so the next attempt must
// re-verify.
func (c *Client) SubmitForm(ctx context.Context, email string, form FormState, w *Widget) (Receipt, error) {
	receipt, err := c.Submit(ctx, email, w.Token(), form.Inputs())
	if err != nil {
		w.Apply(Event{Kind: EventReset})
		return Receipt{}, err
	}
	return receipt, nil
}
