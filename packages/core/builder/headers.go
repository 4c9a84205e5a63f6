package builder

import "strings"

// Header is one request header.
type Header struct {
	Name  string
	Value string
}

// HeaderSet is an ordered header list with case-insensitive names. Setting
// an existing name replaces its value in place.
type HeaderSet struct {
	headers []Header
}

// Set replaces the value of name, matched case-insensitively, or appends it.
func (s *HeaderSet) Set(name, value string) {
	for i, h := range s.headers {
		if strings.EqualFold(h.Name, name) {
			s.headers[i].Value = value
			return
		}
	}
	s.headers = append(s.headers, Header{Name: name, Value: value})
}

// Get returns the value of name and whether it is present.
func (s *HeaderSet) Get(name string) (string, bool) {
	for _, h := range s.headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// Has reports whether name is present.
func (s *HeaderSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Len returns the number of headers.
func (s *HeaderSet) Len() int {
	return len(s.headers)
}

// All returns a copy of the headers in order.
func (s *HeaderSet) All() []Header {
	out := make([]Header, len(s.headers))
	copy(out, s.headers)
	return out
}

// Field is one body field. Keys compare case-sensitively.
type Field struct {
	Key   string
	Value any
}

type fieldSet []Field

func (fs *fieldSet) set(key string, value any) {
	for i, f := range *fs {
		if f.Key == key {
			(*fs)[i].Value = value
			return
		}
	}
	*fs = append(*fs, Field{Key: key, Value: value})
}
