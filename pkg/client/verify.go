package client

// Widget models the verification widget lifecycle as an explicit state
// machine instead of scattered flags. A form embedding the widget keeps
// submitting even from Unavailable; the server then relies on rate
// limiting alone.

// WidgetState is the widget's current lifecycle phase.
type WidgetState int

const (
	StateLoading WidgetState = iota
	StateReady
	StateVerified
	StateError
	StateExpired
	// StateUnavailable is terminal for the page load: the challenge script
	// failed to load or the challenge failed too many times.
	StateUnavailable
)

func (s WidgetState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateVerified:
		return "verified"
	case StateError:
		return "error"
	case StateExpired:
		return "expired"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// EventKind identifies a widget lifecycle event.
type EventKind int

const (
	// EventScriptLoaded: the challenge script finished loading.
	EventScriptLoaded EventKind = iota
	// EventScriptFailed: the challenge script could not load.
	EventScriptFailed
	// EventToken: the challenge succeeded and produced a token.
	EventToken
	// EventChallengeError: the challenge failed; retried up to a bound.
	EventChallengeError
	// EventTokenExpired: the held token timed out and needs a re-challenge.
	EventTokenExpired
	// EventReset: a submission failed; discard the token and re-verify.
	EventReset
)

// Event is one widget lifecycle event. Token is set for EventToken only.
type Event struct {
	Kind  EventKind
	Token string
}

const maxChallengeRetries = 3

// Widget holds the current state, the held token and the retry budget.
type Widget struct {
	state    WidgetState
	token    string
	retries  int
	onChange func(WidgetState)
}

// NewWidget starts in the loading state.
func NewWidget() *Widget {
	return &Widget{state: StateLoading}
}

// OnChange registers a callback invoked on every state change.
func (w *Widget) OnChange(fn func(WidgetState)) { w.onChange = fn }

// State returns the current state.
func (w *Widget) State() WidgetState { return w.state }

// Token returns the held verification token, empty unless verified.
func (w *Widget) Token() string { return w.token }

// Apply is the single transition function. Events that make no sense in
// the current state are ignored, and Unavailable absorbs everything.
func (w *Widget) Apply(ev Event) {
	if w.state == StateUnavailable {
		return
	}

	prev := w.state
	switch ev.Kind {
	case EventScriptLoaded:
		if w.state == StateLoading {
			w.state = StateReady
		}
	case EventScriptFailed:
		if w.state == StateLoading {
			w.state = StateUnavailable
		}
	case EventToken:
		switch w.state {
		case StateReady, StateError, StateExpired:
			w.state = StateVerified
			w.token = ev.Token
			w.retries = 0
		}
	case EventChallengeError:
		switch w.state {
		case StateReady, StateVerified, StateError:
			w.token = ""
			w.retries++
			if w.retries >= maxChallengeRetries {
				w.state = StateUnavailable
			} else {
				w.state = StateError
			}
		}
	case EventTokenExpired:
		if w.state == StateVerified {
			w.state = StateExpired
			w.token = ""
		}
	case EventReset:
		switch w.state {
		case StateVerified, StateError, StateExpired:
			w.state = StateReady
			w.token = ""
		}
	}

	if w.state != prev && w.onChange != nil {
		w.onChange(w.state)
	}
}
