package application

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
)

// ErrFieldNotFound marks a well-formed response that lacks the target
// currency. ErrParse marks an unparseable payload. Anything else a source
// returns is treated as a transport failure. All three classes are equally
// non-fatal: the resolver records the outcome and moves on.
var (
	ErrFieldNotFound = errors.New("target currency not found")
	ErrParse         = errors.New("unparseable response")
)

const (
	OutcomeOK           = "ok"
	OutcomeTransport    = "transport"
	OutcomeParse        = "parse"
	OutcomeMissingField = "missing_field"
)

// ClassifyOutcome maps a source error onto an outcome label for diagnostics.
func ClassifyOutcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, ErrFieldNotFound) {
		return OutcomeMissingField
	}
	if errors.Is(err, ErrParse) {
		return OutcomeParse
	}
	var jsonSyntax *json.SyntaxError
	var jsonType *json.UnmarshalTypeError
	var xmlSyntax *xml.SyntaxError
	if errors.As(err, &jsonSyntax) || errors.As(err, &jsonType) || errors.As(err, &xmlSyntax) {
		return OutcomeParse
	}
	// Truncated payloads surface as unexpected EOF from the decoders.
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return OutcomeParse
	}
	return OutcomeTransport
}
