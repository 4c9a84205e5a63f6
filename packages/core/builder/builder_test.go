package builder

import (
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/core/params"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, tokens ...string) *params.Params {
	t.Helper()
	p, err := params.Classify(tokens)
	require.NoError(t, err)
	return p
}

func TestBuild_CommandLineJSON(t *testing.T) {
	p := classify(t, "Content-Type:application/json", "name=alice", "age=30")

	req, err := New(nil).Build(nil, Input{
		Method:  "post",
		URL:     "https://x/y",
		Headers: p.Headers,
		Fields:  p.Fields,
	})
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method())
	assert.Equal(t, "https://x/y", req.URL())
	assert.Equal(t, `{"name":"alice","age":"30"}`, string(req.Body()))
	assert.Equal(t, []Header{{Name: "Content-Type", Value: "application/json"}}, req.Headers())
	assert.Equal(t, collection.EncodingJSON, req.Encoding())
}

func TestBuild_FormFlag(t *testing.T) {
	p := classify(t, "foo=bar", "q=a b&c")

	req, err := New(nil).Build(nil, Input{
		Method: "put",
		URL:    "https://x/y",
		Fields: p.Fields,
		Form:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "foo=bar&q=a+b%26c", string(req.Body()))
	assert.Equal(t, "application/x-www-form-urlencoded", req.ContentType())
	assert.Equal(t, collection.EncodingForm, req.Encoding())
}

func TestBuild_NoFieldsNoBody(t *testing.T) {
	req, err := New(nil).Build(nil, Input{Method: "GET", URL: "https://x/y"})
	require.NoError(t, err)

	assert.Nil(t, req.Body())
	assert.Empty(t, req.Headers())
	assert.Equal(t, "", req.ContentType())
}

func TestBuild_HTMLCharactersNotEscaped(t *testing.T) {
	p := classify(t, "q=<a&b>")

	req, err := New(nil).Build(nil, Input{Method: "POST", URL: "https://x", Fields: p.Fields})
	require.NoError(t, err)
	assert.Equal(t, `{"q":"<a&b>"}`, string(req.Body()))
}

func TestBuild_MissingMethodOrURL(t *testing.T) {
	b := New(nil)

	_, err := b.Build(nil, Input{URL: "https://x"})
	assert.ErrorIs(t, err, ErrMissingMethodOrURL)

	_, err = b.Build(nil, Input{Method: "GET"})
	assert.ErrorIs(t, err, ErrMissingMethodOrURL)
}

func TestBuild_UnsupportedMethod(t *testing.T) {
	_, err := New(nil).Build(nil, Input{Method: "FETCH", URL: "https://x"})

	var methodErr *http.UnsupportedMethodError
	require.ErrorAs(t, err, &methodErr)
	assert.Equal(t, "FETCH", methodErr.Method)
}

func TestBuild_AddsSchemeWhenMissing(t *testing.T) {
	req, err := New(nil).Build(nil, Input{Method: "GET", URL: "localhost:8080/health"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/health", req.URL())
}

func TestEnsureScheme(t *testing.T) {
	assert.Equal(t, "https://x", EnsureScheme("https://x"))
	assert.Equal(t, "http://x/y", EnsureScheme("x/y"))
}

func TestBuild_UnsetEnvironmentVariable(t *testing.T) {
	p := classify(t, "Authorization:Bearer ${env:API_TOKEN}")
	b := New(env.NewResolver(nil, env.MapLookup(map[string]string{})))

	_, err := b.Build(nil, Input{Method: "GET", URL: "https://x", Headers: p.Headers})

	var envErr *env.UnresolvedEnvVarError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, "API_TOKEN", envErr.Name)
	assert.Contains(t, err.Error(), "API_TOKEN")
}

func TestBuild_ResolvesCommandLineValues(t *testing.T) {
	p := classify(t, "X-Id:${id}", "user=${env:USER_NAME}")
	b := New(env.NewResolver(
		map[string]string{"id": "7", "host": "api.local"},
		env.MapLookup(map[string]string{"USER_NAME": "bob"}),
	))

	req, err := b.Build(nil, Input{Method: "POST", URL: "${host}/v1", Headers: p.Headers, Fields: p.Fields})
	require.NoError(t, err)

	assert.Equal(t, "http://api.local/v1", req.URL())
	assert.Equal(t, "7", req.Header("x-id"))
	assert.Equal(t, `{"user":"bob"}`, string(req.Body()))
}

func loadTestCollection(t *testing.T) *collection.Collection {
	t.Helper()
	c, err := collection.Parse("users", []byte(`variables:
  base_url: https://api.example.com
  user_id: 1
requests:
  - name: get-user-info
    method: GET
    url: ${base_url}/users/${user_id}
    headers:
      Authorization: Bearer ${env:API_TOKEN}
      Accept: application/json
  - name: create-user
    method: POST
    url: ${base_url}/users
    headers:
      Accept: application/json
    body:
      json:
        name: alice
        role: admin
        profile:
          home: ${base_url}/home
  - name: login
    method: POST
    url: ${base_url}/login
    body:
      form:
        username: alice
        password: ${env:PASSWORD}
`))
	require.NoError(t, err)
	return c
}

func builderFor(c *collection.Collection, environ map[string]string) *Builder {
	return New(env.NewResolver(c.Variables, env.MapLookup(environ)))
}

func TestBuild_CollectionRequest(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("get-user-info")
	require.NoError(t, err)

	req, err := builderFor(c, map[string]string{"API_TOKEN": "secret"}).Build(tmpl, Input{})
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method())
	assert.Equal(t, "https://api.example.com/users/1", req.URL())
	assert.Equal(t, []Header{
		{Name: "Authorization", Value: "Bearer secret"},
		{Name: "Accept", Value: "application/json"},
	}, req.Headers())
	assert.Nil(t, req.Body())
}

func TestBuild_CollectionJSONBody(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("create-user")
	require.NoError(t, err)

	req, err := builderFor(c, nil).Build(tmpl, Input{})
	require.NoError(t, err)

	assert.Equal(t, `{"name":"alice","role":"admin","profile":{"home":"https://api.example.com/home"}}`, string(req.Body()))
	assert.Equal(t, "application/json", req.ContentType())
}

func TestBuild_CommandLineOverridesCollection(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("create-user")
	require.NoError(t, err)

	p := classify(t, "accept:text/plain", "role=viewer", "Name=Bob", "extra=1")
	req, err := builderFor(c, nil).Build(tmpl, Input{Headers: p.Headers, Fields: p.Fields})
	require.NoError(t, err)

	assert.Equal(t, []Header{
		{Name: "Accept", Value: "text/plain"},
		{Name: "Content-Type", Value: "application/json"},
	}, req.Headers())
	assert.Equal(t,
		`{"name":"alice","role":"viewer","profile":{"home":"https://api.example.com/home"},"Name":"Bob","extra":"1"}`,
		string(req.Body()))
}

func TestBuild_CommandLineMethodAndURLOverrideTemplate(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("create-user")
	require.NoError(t, err)

	req, err := builderFor(c, nil).Build(tmpl, Input{Method: "PUT", URL: "${base_url}/users/9"})
	require.NoError(t, err)

	assert.Equal(t, "PUT", req.Method())
	assert.Equal(t, "https://api.example.com/users/9", req.URL())
}

func TestBuild_CollectionFormBody(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("login")
	require.NoError(t, err)

	req, err := builderFor(c, map[string]string{"PASSWORD": "p@ss word"}).Build(tmpl, Input{})
	require.NoError(t, err)

	assert.Equal(t, "username=alice&password=p%40ss+word", string(req.Body()))
	assert.Equal(t, "application/x-www-form-urlencoded", req.ContentType())
}

func TestBuild_ExplicitContentTypeKept(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("login")
	require.NoError(t, err)

	p := classify(t, "Content-Type:text/plain")
	req, err := builderFor(c, map[string]string{"PASSWORD": "x"}).Build(tmpl, Input{Headers: p.Headers})
	require.NoError(t, err)

	assert.Equal(t, "text/plain", req.ContentType())
	assert.Len(t, req.Headers(), 1)
}

func TestBuild_FormFlagOverridesJSONTemplate(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("create-user")
	require.NoError(t, err)

	_, err = builderFor(c, nil).Build(tmpl, Input{Form: true})

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "profile", encErr.Key)
}

func TestBuild_TemplateNotModified(t *testing.T) {
	c := loadTestCollection(t)
	tmpl, err := c.Request("create-user")
	require.NoError(t, err)

	b := builderFor(c, nil)
	p := classify(t, "Accept:text/plain", "role=viewer")

	first, err := b.Build(tmpl, Input{Headers: p.Headers, Fields: p.Fields})
	require.NoError(t, err)
	second, err := b.Build(tmpl, Input{})
	require.NoError(t, err)

	assert.Equal(t, "${base_url}/users", tmpl.URL)
	assert.Equal(t, "application/json", tmpl.Headers[0].Value)
	assert.Equal(t, "admin", tmpl.Body.Fields[1].Value)
	assert.Equal(t, "application/json", second.Header("Accept"))
	assert.Equal(t, "text/plain", first.Header("Accept"))
}

func TestResolvedRequest_ReturnsCopies(t *testing.T) {
	p := classify(t, "A:1", "k=v")
	req, err := New(nil).Build(nil, Input{Method: "POST", URL: "https://x", Headers: p.Headers, Fields: p.Fields})
	require.NoError(t, err)

	headers := req.Headers()
	headers[0].Value = "changed"
	body := req.Body()
	body[0] = 'X'
	fields := req.Fields()
	fields[0].Value = "changed"

	assert.Equal(t, "1", req.Header("A"))
	assert.Equal(t, `{"k":"v"}`, string(req.Body()))
	assert.Equal(t, "v", req.Fields()[0].Value)
}

func TestResolvedRequest_HTTPRequest(t *testing.T) {
	p := classify(t, "Accept:application/json", "k=v")
	req, err := New(nil).Build(nil, Input{Method: "PATCH", URL: "https://x/1", Headers: p.Headers, Fields: p.Fields})
	require.NoError(t, err)

	out := req.HTTPRequest()
	assert.Equal(t, "PATCH", out.Method)
	assert.Equal(t, "https://x/1", out.URL)
	assert.Equal(t, []http.Header{
		{Name: "Accept", Value: "application/json"},
		{Name: "Content-Type", Value: "application/json"},
	}, out.Headers)
	assert.Equal(t, `{"k":"v"}`, string(out.Body))
}

func TestBuild_ResolutionErrorNamesLocation(t *testing.T) {
	_, err := New(nil).Build(nil, Input{Method: "GET", URL: "https://x/${missing}"})

	var varErr *env.UnresolvedVariableError
	require.True(t, errors.As(err, &varErr))
	assert.Equal(t, "missing", varErr.Name)
	assert.Contains(t, err.Error(), "url")
}

func TestResolvedRequest_NestedFieldsAreCopied(t *testing.T) {
	c, err := collection.Parse("users", []byte(`requests:
  - name: create
    method: POST
    url: https://x/users
    body:
      json:
        profile:
          role: admin
          tags: [a, b]
`))
	require.NoError(t, err)
	tmpl, err := c.Request("create")
	require.NoError(t, err)

	req, err := New(nil).Build(tmpl, Input{})
	require.NoError(t, err)

	profile := req.Fields()[0].Value.(map[string]any)
	profile["role"] = "root"
	profile["tags"].([]any)[0] = "z"

	again := req.Fields()[0].Value.(map[string]any)
	assert.Equal(t, "admin", again["role"])
	assert.Equal(t, []any{"a", "b"}, again["tags"])
	assert.Equal(t, `{"profile":{"role":"admin","tags":["a","b"]}}`, string(req.Body()))
}
