package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/core/params"
	"github.com/abdul-hamid-achik/wave/packages/http"
)

// ErrMissingMethodOrURL is returned when neither a template nor the command
// line supplies a method and a URL.
var ErrMissingMethodOrURL = errors.New("missing method or URL: pass <method> <url> or run a collection request")

// Input is what the command line contributes to a request.
type Input struct {
	Method  string
	URL     string
	Headers []params.Pair
	Fields  []params.Pair
	// Form forces application/x-www-form-urlencoded encoding.
	Form bool
}

// Builder produces ResolvedRequests. It holds no per-build state, so one
// Builder can serve any number of builds.
type Builder struct {
	resolver *env.Resolver
}

// New returns a Builder that expands placeholders with resolver. A nil
// resolver has no variables and an empty environment.
func New(resolver *env.Resolver) *Builder {
	if resolver == nil {
		resolver = env.NewResolver(nil, nil)
	}
	return &Builder{resolver: resolver}
}

// Build merges tmpl (which may be nil) with in. Neither argument is modified.
func (b *Builder) Build(tmpl *collection.RequestTemplate, in Input) (*ResolvedRequest, error) {
	method, rawURL := in.Method, in.URL
	if tmpl != nil {
		if method == "" {
			method = tmpl.Method
		}
		if rawURL == "" {
			rawURL = tmpl.URL
		}
	}
	if strings.TrimSpace(method) == "" || strings.TrimSpace(rawURL) == "" {
		return nil, ErrMissingMethodOrURL
	}

	method, err := http.ParseMethod(method)
	if err != nil {
		return nil, err
	}

	resolvedURL, err := b.resolver.Resolve(rawURL)
	if err != nil {
		return nil, fmt.Errorf("url: %w", err)
	}

	var headers HeaderSet
	var fields fieldSet
	encoding := collection.EncodingJSON

	if tmpl != nil {
		for _, h := range tmpl.Headers {
			value, err := b.resolver.Resolve(h.Value)
			if err != nil {
				return nil, fmt.Errorf("header %s: %w", h.Name, err)
			}
			headers.Set(h.Name, value)
		}
		if tmpl.Body != nil {
			encoding = tmpl.Body.Encoding
			for _, f := range tmpl.Body.Fields {
				value, err := b.resolver.ResolveValue(f.Value)
				if err != nil {
					return nil, fmt.Errorf("body field %s: %w", f.Key, err)
				}
				fields.set(f.Key, value)
			}
		}
	}

	for _, h := range in.Headers {
		value, err := b.resolver.Resolve(h.Value)
		if err != nil {
			return nil, fmt.Errorf("header %s: %w", h.Key, err)
		}
		headers.Set(h.Key, value)
	}

	for _, f := range in.Fields {
		value, err := b.resolver.Resolve(f.Value)
		if err != nil {
			return nil, fmt.Errorf("body field %s: %w", f.Key, err)
		}
		fields.set(f.Key, value)
	}

	if in.Form {
		encoding = collection.EncodingForm
	}

	var body []byte
	if len(fields) > 0 {
		if encoding == collection.EncodingForm {
			body, err = encodeForm(fields)
		} else {
			body, err = encodeJSON(fields)
		}
		if err != nil {
			return nil, err
		}
		if !headers.Has("Content-Type") {
			headers.Set("Content-Type", encoding.ContentType())
		}
	}

	return &ResolvedRequest{
		method:   method,
		url:      EnsureScheme(resolvedURL),
		headers:  headers.All(),
		fields:   cloneFields(fields),
		encoding: encoding,
		body:     body,
	}, nil
}

// EnsureScheme prefixes http:// to a URL that has no scheme.
func EnsureScheme(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "http://" + rawURL
}
