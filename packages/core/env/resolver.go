package env

import (
	"fmt"
	"regexp"
	"strings"
)

const envPrefix = "env:"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// UnresolvedVariableError is returned when ${name} has no entry in the
// variable table.
type UnresolvedVariableError struct {
	Name string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("unresolved variable: ${%s}", e.Name)
}

// UnresolvedEnvVarError is returned when ${env:NAME} names a variable that is
// not set.
type UnresolvedEnvVarError struct {
	Name string
}

func (e *UnresolvedEnvVarError) Error() string {
	return fmt.Sprintf("unresolved environment variable: %s is not set", e.Name)
}

// SyntaxError reports a malformed placeholder.
type SyntaxError struct {
	Input  string
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid placeholder at offset %d in %q: %s", e.Offset, e.Input, e.Reason)
}

// Resolver expands ${name} from a variable table and ${env:NAME} from an
// environment lookup. Expansion is a single left-to-right pass: substituted
// values are never scanned again.
//
// A Resolver is read-only after construction and safe to share.
type Resolver struct {
	variables map[string]string
	lookupEnv LookupFunc
}

// NewResolver copies vars and uses lookup for env: placeholders. A nil lookup
// behaves as an empty environment.
func NewResolver(vars map[string]string, lookup LookupFunc) *Resolver {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	if lookup == nil {
		lookup = MapLookup(nil)
	}
	return &Resolver{variables: copied, lookupEnv: lookup}
}

// Resolve expands every placeholder in input.
func (r *Resolver) Resolve(input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))

	i := 0
	for i < len(input) {
		start := strings.Index(input[i:], "${")
		if start < 0 {
			b.WriteString(input[i:])
			break
		}
		start += i
		b.WriteString(input[i:start])

		end := strings.IndexByte(input[start+2:], '}')
		if end < 0 {
			return "", &SyntaxError{Input: input, Offset: start, Reason: "unterminated placeholder"}
		}
		end += start + 2

		value, err := r.expand(input, start, input[start+2:end])
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		i = end + 1
	}

	return b.String(), nil
}

func (r *Resolver) expand(input string, offset int, expr string) (string, error) {
	if name, ok := strings.CutPrefix(expr, envPrefix); ok {
		if err := checkIdentifier(input, offset, name); err != nil {
			return "", err
		}
		value, found := r.lookupEnv(name)
		if !found {
			return "", &UnresolvedEnvVarError{Name: name}
		}
		return value, nil
	}

	if err := checkIdentifier(input, offset, expr); err != nil {
		return "", err
	}
	value, found := r.variables[expr]
	if !found {
		return "", &UnresolvedVariableError{Name: expr}
	}
	return value, nil
}

func checkIdentifier(input string, offset int, name string) error {
	if name == "" {
		return &SyntaxError{Input: input, Offset: offset, Reason: "empty placeholder name"}
	}
	if !identifierPattern.MatchString(name) {
		return &SyntaxError{Input: input, Offset: offset, Reason: fmt.Sprintf("invalid name %q", name)}
	}
	return nil
}

// ResolveAll resolves each string in order and stops at the first error.
func (r *Resolver) ResolveAll(values []string) ([]string, error) {
	result := make([]string, len(values))
	for i, v := range values {
		resolved, err := r.Resolve(v)
		if err != nil {
			return nil, err
		}
		result[i] = resolved
	}
	return result, nil
}

// ResolveValue resolves strings nested anywhere inside maps and slices as
// produced by a YAML decoder. Other scalars are returned as-is. The input is
// never modified.
func (r *Resolver) ResolveValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return r.Resolve(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			resolved, err := r.ResolveValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			resolved, err := r.ResolveValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

// HasVariable reports whether name is declared in the variable table.
func (r *Resolver) HasVariable(name string) bool {
	_, ok := r.variables[name]
	return ok
}
