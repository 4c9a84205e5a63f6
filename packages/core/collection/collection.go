package collection

import (
	"fmt"
	"strings"
)

// Encoding is how body fields go on the wire.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingForm Encoding = "form"
)

// ContentType returns the media type that matches the encoding.
func (e Encoding) ContentType() string {
	if e == EncodingForm {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Header is one template header; the value may contain placeholders.
type Header struct {
	Name  string
	Value string
}

// Field is one body field. Form values are strings; JSON values may be any
// YAML value.
type Field struct {
	Key   string
	Value any
}

// Body is a request body: an encoding and its fields in document order.
type Body struct {
	Encoding Encoding
	Fields   []Field
}

// RequestTemplate is one entry of a collection's requests list.
type RequestTemplate struct {
	Name    string
	Method  string
	URL     string
	Headers []Header
	Body    *Body
}

// Collection is a parsed collection file. It is not modified after loading.
type Collection struct {
	Name      string
	Path      string
	Variables map[string]string
	Requests  []*RequestTemplate
}

// Request looks up a template by exact, case-sensitive name.
func (c *Collection) Request(name string) (*RequestTemplate, error) {
	for _, r := range c.Requests {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, &RequestNotFoundError{Collection: c.Name, Request: name, Available: c.RequestNames()}
}

// RequestNames returns request names in file order.
func (c *Collection) RequestNames() []string {
	names := make([]string, len(c.Requests))
	for i, r := range c.Requests {
		names[i] = r.Name
	}
	return names
}

// NotFoundError means no file exists for the collection name.
type NotFoundError struct {
	Name  string
	Dir   string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection %q not found in %s (tried %s)", e.Name, e.Dir, strings.Join(e.Tried, ", "))
}

// DirectoryNotFoundError means the collection directory itself is missing.
type DirectoryNotFoundError struct {
	Dir string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("collection directory %s not found", e.Dir)
}

// InvalidError reports a collection file that cannot be used. Request is the
// offending entry's name when known.
type InvalidError struct {
	Collection string
	Request    string
	Reason     string
	Err        error
}

func (e *InvalidError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid collection %q", e.Collection)
	if e.Request != "" {
		fmt.Fprintf(&b, " (request %q)", e.Request)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// DuplicateRequestNameError is returned when two requests share a name.
type DuplicateRequestNameError struct {
	Collection string
	Name       string
}

func (e *DuplicateRequestNameError) Error() string {
	return fmt.Sprintf("collection %q defines request %q more than once", e.Collection, e.Name)
}

// RequestNotFoundError is returned by Collection.Request.
type RequestNotFoundError struct {
	Collection string
	Request    string
	Available  []string
}

func (e *RequestNotFoundError) Error() string {
	return fmt.Sprintf("request %q not found in collection %q", e.Request, e.Collection)
}
