package http

import (
	"fmt"
	"strings"
)

// SupportedMethods lists the methods wave sends, in display order.
var SupportedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// UnsupportedMethodError is returned by ParseMethod for unknown methods.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported HTTP method: %s (expected one of %s)", e.Method, strings.Join(SupportedMethods, ", "))
}

// ParseMethod normalizes a method name case-insensitively.
func ParseMethod(s string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(s))
	for _, supported := range SupportedMethods {
		if m == supported {
			return m, nil
		}
	}
	return "", &UnsupportedMethodError{Method: s}
}
