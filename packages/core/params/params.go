package params

import (
	"fmt"
	"strings"
)

// Kind tells whether a token became a header or a body field.
type Kind int

const (
	KindHeader Kind = iota
	KindField
)

func (k Kind) String() string {
	if k == KindHeader {
		return "header"
	}
	return "field"
}

// Pair is a single key/value produced from one token.
type Pair struct {
	Key   string
	Value string
}

// Params holds classified tokens in command-line order. Duplicate keys are
// kept; the request builder decides which occurrence wins.
type Params struct {
	Headers []Pair
	Fields  []Pair
}

// MalformedTokenError reports a token that is neither key:value nor key=value.
type MalformedTokenError struct {
	Token  string
	Reason string
}

func (e *MalformedTokenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed argument %q: %s", e.Token, e.Reason)
	}
	return fmt.Sprintf("malformed argument %q: expected key:value (header) or key=value (body field)", e.Token)
}

// Classify splits tokens into headers and body fields. The first malformed
// token aborts classification.
func Classify(tokens []string) (*Params, error) {
	p := &Params{}
	for _, tok := range tokens {
		kind, pair, err := ClassifyToken(tok)
		if err != nil {
			return nil, err
		}
		if kind == KindHeader {
			p.Headers = append(p.Headers, pair)
		} else {
			p.Fields = append(p.Fields, pair)
		}
	}
	return p, nil
}

// ClassifyToken classifies a single token.
func ClassifyToken(tok string) (Kind, Pair, error) {
	colon := strings.IndexByte(tok, ':')
	eq := strings.IndexByte(tok, '=')

	var kind Kind
	var sep int
	switch {
	case colon >= 0 && (eq < 0 || colon < eq):
		kind, sep = KindHeader, colon
	case eq >= 0:
		kind, sep = KindField, eq
	default:
		return 0, Pair{}, &MalformedTokenError{Token: tok}
	}

	key := strings.TrimSpace(tok[:sep])
	value := strings.TrimSpace(tok[sep+1:])

	if key == "" {
		return 0, Pair{}, &MalformedTokenError{Token: tok, Reason: fmt.Sprintf("%s name is empty", kind)}
	}
	if kind == KindHeader && strings.ContainsAny(key, " \t") {
		return 0, Pair{}, &MalformedTokenError{Token: tok, Reason: "header name contains whitespace"}
	}

	return kind, Pair{Key: key, Value: value}, nil
}
