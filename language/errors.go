package language

import "fmt"

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// GenericParseFailure wraps any failure not covered by a more specific kind
	GenericParseFailure ErrorKind = iota
	// UnbalancedBrackets means a ')' came before its '(' or a '(' was never closed
	UnbalancedBrackets
	// MalformedOperatorPlacement means the query starts or ends with a boolean keyword
	MalformedOperatorPlacement
	// NestingTooDeep means the query nests groups beyond the configured limit
	NestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case UnbalancedBrackets:
		return "UnbalancedBrackets"
	case MalformedOperatorPlacement:
		return "MalformedOperatorPlacement"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return "GenericParseFailure"
	}
}

// Sentinels for errors.Is matching on the kind of a ParseError.
var (
	ErrGenericParseFailure        = &ParseError{Kind: GenericParseFailure}
	ErrUnbalancedBrackets         = &ParseError{Kind: UnbalancedBrackets}
	ErrMalformedOperatorPlacement = &ParseError{Kind: MalformedOperatorPlacement}
	ErrNestingTooDeep             = &ParseError{Kind: NestingTooDeep}
)

// ParseError is returned by parsers for every failed parse.
type ParseError struct {
	Kind ErrorKind
	Msg  string
	// Err is the underlying failure, set for wrapped internal errors.
	Err error
}

// NewError returns a ParseError of the given kind.
func NewError(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError wraps an unexpected failure as a GenericParseFailure keeping its message.
func WrapError(err error) *ParseError {
	return &ParseError{Kind: GenericParseFailure, Msg: err.Error(), Err: err}
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches any ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}
