package http

import (
	"context"
	"sync"
)

// Transport sends one request and returns the response. Status codes are
// never turned into errors; only failures to complete the exchange are.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportError wraps a network, TLS or timeout failure. Its message is the
// underlying error text, unchanged.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StubTransport is a Transport that never touches the network. It records
// every request and answers with Response or Err.
type StubTransport struct {
	Response *Response
	Err      error

	mu       sync.Mutex
	requests []*Request
}

func (s *StubTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	if s.Err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: s.Err}
	}
	if s.Response == nil {
		return &Response{StatusCode: 200, Status: "200 OK", Headers: map[string]string{}}, nil
	}
	return s.Response, nil
}

// Requests returns the requests seen so far.
func (s *StubTransport) Requests() []*Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (s *StubTransport) LastRequest() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}
