package llm

import "errors"

var (
	// ErrAgentUnavailable indicates the agent service could not be reached.
	ErrAgentUnavailable = errors.New("agent service unavailable")

	// ErrUnexpectedResponse indicates the agent service answered with a
	// non-2xx status or a body of the wrong shape.
	ErrUnexpectedResponse = errors.New("unexpected agent response")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("agent request timed out")

	// ErrInvalidOutput indicates the agent text could not be parsed into
	// the expected structured format.
	ErrInvalidOutput = errors.New("invalid agent output format")

	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("agent client closed")
)
