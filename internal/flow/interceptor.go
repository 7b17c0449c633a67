package flow

import "strings"

// Classification of an inbound text message against the user's dialog state.
type Classification int

const (
	// NoStateCommand routes to normal command dispatch.
	NoStateCommand Classification = iota
	// NoStateText gets the "unrecognized input" notice.
	NoStateText
	// StateCommand aborts the active dialog; the message is dropped.
	StateCommand
	// StateText is a dialog answer for the current step.
	StateText
)

// IsCommand reports whether text looks like a bot command: non-empty and
// either slash-prefixed or an exact known command name.
func IsCommand(text string, known func(string) bool) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if strings.HasPrefix(t, "/") {
		return true
	}
	return known != nil && known(t)
}

// Classify decides how an inbound message must be routed. This runs before
// command dispatch and before any step handler: a stray command during a
// dialog must neither fire as a command nor be stored as an answer.
func Classify(inDialog bool, text string, known func(string) bool) Classification {
	cmd := IsCommand(text, known)
	switch {
	case inDialog && cmd:
		return StateCommand
	case inDialog:
		return StateText
	case cmd:
		return NoStateCommand
	default:
		return NoStateText
	}
}
