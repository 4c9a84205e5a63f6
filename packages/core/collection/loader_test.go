package collection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollection = `variables:
  base_url: https://api.example.com
  user_id: 42
requests:
  - name: get-user-info
    method: get
    url: ${base_url}/users/${user_id}
    headers:
      Authorization: Bearer ${env:API_TOKEN}
      Accept: application/json
  - name: create-user
    method: POST
    url: ${base_url}/users
    body:
      json:
        name: alice
        age: 30
        tags: [a, b]
  - name: login
    method: post
    url: ${base_url}/login
    body:
      form:
        username: alice
        price: 1.50
`

func writeCollection(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "test.yml", testCollection)

	c, err := NewLoader(dir).Load("test")
	require.NoError(t, err)

	assert.Equal(t, "test", c.Name)
	assert.Equal(t, filepath.Join(dir, "test.yml"), c.Path)
	assert.Equal(t, map[string]string{
		"base_url": "https://api.example.com",
		"user_id":  "42",
	}, c.Variables)
	assert.Equal(t, []string{"get-user-info", "create-user", "login"}, c.RequestNames())

	get, err := c.Request("get-user-info")
	require.NoError(t, err)
	assert.Equal(t, "GET", get.Method)
	assert.Equal(t, "${base_url}/users/${user_id}", get.URL)
	assert.Equal(t, []Header{
		{"Authorization", "Bearer ${env:API_TOKEN}"},
		{"Accept", "application/json"},
	}, get.Headers)
	assert.Nil(t, get.Body)

	create, err := c.Request("create-user")
	require.NoError(t, err)
	require.NotNil(t, create.Body)
	assert.Equal(t, EncodingJSON, create.Body.Encoding)
	assert.Equal(t, []Field{
		{"name", "alice"},
		{"age", 30},
		{"tags", []any{"a", "b"}},
	}, create.Body.Fields)

	login, err := c.Request("login")
	require.NoError(t, err)
	assert.Equal(t, "POST", login.Method)
	require.NotNil(t, login.Body)
	assert.Equal(t, EncodingForm, login.Body.Encoding)
	assert.Equal(t, []Field{{"username", "alice"}, {"price", "1.50"}}, login.Body.Fields)
}

func TestLoader_PrefersYAMLExtension(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "api.yml", "requests:\n  - {name: from-yml, method: GET, url: http://x.test}\n")
	writeCollection(t, dir, "api.yaml", "requests:\n  - {name: from-yaml, method: GET, url: http://x.test}\n")

	c, err := NewLoader(dir).Load("api")
	require.NoError(t, err)
	assert.Equal(t, []string{"from-yaml"}, c.RequestNames())
}

func TestLoader_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader(dir).Load("missing")
	require.Error(t, err)

	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "missing", nfe.Name)
	assert.Equal(t, dir, nfe.Dir)
	assert.Equal(t, []string{
		filepath.Join(dir, "missing.yaml"),
		filepath.Join(dir, "missing.yml"),
	}, nfe.Tried)
	assert.Contains(t, err.Error(), "missing.yml")
}

func TestLoader_RejectsPathsAsNames(t *testing.T) {
	for _, name := range []string{"../secret", "a/b", "", ".hidden"} {
		_, err := NewLoader(t.TempDir()).Load(name)
		var ie *InvalidError
		assert.True(t, errors.As(err, &ie), "name %q", name)
	}
}

func TestNewLoader_DefaultDir(t *testing.T) {
	assert.Equal(t, ".wave", NewLoader("").Dir())
	assert.Equal(t, "custom", NewLoader("custom").Dir())
}

func TestParse_DuplicateRequestName(t *testing.T) {
	_, err := Parse("dupes", []byte(`requests:
  - name: same
    method: GET
    url: http://x.test/a
  - name: same
    method: POST
    url: http://x.test/b
`))
	require.Error(t, err)

	var dre *DuplicateRequestNameError
	require.True(t, errors.As(err, &dre))
	assert.Equal(t, "dupes", dre.Collection)
	assert.Equal(t, "same", dre.Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		request string
		reason  string
	}{
		{
			name:   "malformed yaml",
			yaml:   "requests: [\n",
			reason: "yaml",
		},
		{
			name:   "empty file",
			yaml:   "",
			reason: "empty",
		},
		{
			name:   "in-file collection name",
			yaml:   "name: other\nrequests: []\n",
			reason: "named after its file",
		},
		{
			name:   "missing requests",
			yaml:   "variables: {a: b}\n",
			reason: "requests is required",
		},
		{
			name:    "missing url",
			yaml:    "requests:\n  - name: broken\n    method: GET\n",
			request: "broken",
			reason:  "url is required",
		},
		{
			name:    "missing method",
			yaml:    "requests:\n  - name: broken\n    url: http://x.test\n",
			request: "broken",
			reason:  "method is required",
		},
		{
			name:   "missing name",
			yaml:   "requests:\n  - method: GET\n    url: http://x.test\n",
			reason: "name is required",
		},
		{
			name:    "unsupported method",
			yaml:    "requests:\n  - name: trace\n    method: TRACE\n    url: http://x.test\n",
			request: "trace",
			reason:  "unsupported HTTP method",
		},
		{
			name:    "json and form together",
			yaml:    "requests:\n  - name: both\n    method: POST\n    url: http://x.test\n    body:\n      json: {a: 1}\n      form: {b: 2}\n",
			request: "both",
			reason:  "body",
		},
		{
			name:    "unknown body kind",
			yaml:    "requests:\n  - name: raw\n    method: POST\n    url: http://x.test\n    body:\n      raw: hello\n",
			request: "raw",
			reason:  "body",
		},
		{
			name:    "nested form value",
			yaml:    "requests:\n  - name: nested\n    method: POST\n    url: http://x.test\n    body:\n      form:\n        a: {b: c}\n",
			request: "nested",
			reason:  "form",
		},
		{
			name:    "duplicate header key",
			yaml:    "requests:\n  - name: h\n    method: GET\n    url: http://x.test\n    headers:\n      A: 1\n      A: 2\n",
			reason:  "already defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("coll", []byte(tt.yaml))
			require.Error(t, err)

			var ie *InvalidError
			require.True(t, errors.As(err, &ie), "got %T: %v", err, err)
			assert.Equal(t, "coll", ie.Collection)
			assert.Equal(t, tt.request, ie.Request)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestCollection_RequestNotFound(t *testing.T) {
	c, err := Parse("api", []byte("requests:\n  - {name: Get-User, method: GET, url: http://x.test}\n"))
	require.NoError(t, err)

	_, err = c.Request("get-user")
	require.Error(t, err)

	var rnf *RequestNotFoundError
	require.True(t, errors.As(err, &rnf))
	assert.Equal(t, "api", rnf.Collection)
	assert.Equal(t, "get-user", rnf.Request)
	assert.Equal(t, []string{"Get-User"}, rnf.Available)
	assert.Equal(t, `request "get-user" not found in collection "api"`, err.Error())
}

func TestLoader_List(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "b.yaml", "requests: []\n")
	writeCollection(t, dir, "a.yml", "requests: []\n")
	writeCollection(t, dir, "a.yaml", "requests: []\n")
	writeCollection(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755))

	names, err := NewLoader(dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestLoader_ListMissingDirectory(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope")).List()

	var dnf *DirectoryNotFoundError
	assert.True(t, errors.As(err, &dnf))
}

func TestEncoding_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", EncodingJSON.ContentType())
	assert.Equal(t, "application/x-www-form-urlencoded", EncodingForm.ContentType())
}

func TestParse_NonStringKeysInJSONBody(t *testing.T) {
	c, err := Parse("codes", []byte(`requests:
  - name: set-codes
    method: PUT
    url: https://x/codes
    body:
      json:
        codes:
          200: ok
          404: [missing, gone]
`))
	require.NoError(t, err)

	tmpl, err := c.Request("set-codes")
	require.NoError(t, err)
	require.Len(t, tmpl.Body.Fields, 1)
	assert.Equal(t, map[string]any{
		"200": "ok",
		"404": []any{"missing", "gone"},
	}, tmpl.Body.Fields[0].Value)
}
