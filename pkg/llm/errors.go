package llm

import "errors"

var (
	// ErrTransport marks network or HTTP level failures talking to a model.
	ErrTransport = errors.New("llm transport error")

	// ErrMalformedResponse marks replies missing the expected fields.
	ErrMalformedResponse = errors.New("llm malformed response")
)
