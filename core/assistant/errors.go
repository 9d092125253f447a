package assistant

import "errors"

var (
	// ErrUpstreamParse means the oracle answered something other than the JSON we asked for.
	ErrUpstreamParse = errors.New("the assistant sent an unexpected answer, please try again")
	// ErrUpstreamUnavailable means the oracle could not be reached.
	ErrUpstreamUnavailable = errors.New("the assistant is unavailable, please try again later")
)
