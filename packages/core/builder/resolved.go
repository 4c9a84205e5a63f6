package builder

import (
	"strings"

	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/abdul-hamid-achik/wave/packages/http"
)

// ResolvedRequest is a fully expanded request, ready for the transport.
type ResolvedRequest struct {
	method   string
	url      string
	headers  []Header
	fields   []Field
	encoding collection.Encoding
	body     []byte
}

// Method returns the upper-case HTTP method.
func (r *ResolvedRequest) Method() string {
	return r.method
}

// URL returns the resolved URL, scheme included.
func (r *ResolvedRequest) URL() string {
	return r.url
}

// Headers returns a copy of the headers in wire order.
func (r *ResolvedRequest) Headers() []Header {
	out := make([]Header, len(r.headers))
	copy(out, r.headers)
	return out
}

// Header returns the value of the named header, or "".
func (r *ResolvedRequest) Header(name string) string {
	for _, h := range r.headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Fields returns a deep copy of the merged body fields in order. Nested JSON
// objects and arrays are copied too.
func (r *ResolvedRequest) Fields() []Field {
	return cloneFields(r.fields)
}

// Encoding returns the body encoding picked at build time.
func (r *ResolvedRequest) Encoding() collection.Encoding {
	return r.encoding
}

// Body returns a copy of the serialized body; nil when there are no fields.
func (r *ResolvedRequest) Body() []byte {
	if r.body == nil {
		return nil
	}
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out
}

// ContentType returns the Content-Type header, or "".
func (r *ResolvedRequest) ContentType() string {
	return r.Header("Content-Type")
}

// HTTPRequest converts the request for the transport. Each call returns a
// new value.
func (r *ResolvedRequest) HTTPRequest() *http.Request {
	req := http.NewRequest(r.method, r.url)
	for _, h := range r.headers {
		req.SetHeader(h.Name, h.Value)
	}
	req.SetBody(r.Body())
	return req
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Key: f.Key, Value: cloneValue(f.Value)}
	}
	return out
}

// cloneValue copies the maps and slices a YAML decoder produces.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
