package collection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/wave/packages/http"
	"gopkg.in/yaml.v3"
)

// DefaultDir is where collections live unless configured otherwise.
const DefaultDir = ".wave"

// Extensions are tried in this order when locating a collection file.
var Extensions = []string{".yaml", ".yml"}

// Loader locates and parses collections inside one directory.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = DefaultDir
	}
	return &Loader{dir: dir}
}

// Dir returns the directory the loader searches.
func (l *Loader) Dir() string {
	return l.dir
}

// Locate returns the path of the collection file for name.
func (l *Loader) Locate(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", &InvalidError{Collection: name, Reason: "collection name must be a plain file name without directories"}
	}

	tried := make([]string, 0, len(Extensions))
	for _, ext := range Extensions {
		path := filepath.Join(l.dir, name+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		tried = append(tried, path)
	}
	return "", &NotFoundError{Name: name, Dir: l.dir, Tried: tried}
}

// Load reads and parses the collection called name.
func (l *Loader) Load(name string) (*Collection, error) {
	path, err := l.Locate(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read collection %s: %w", path, err)
	}

	c, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// List returns the names of all collections in the directory, sorted.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DirectoryNotFoundError{Dir: l.dir}
		}
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Parse builds a collection from YAML content. name is the collection's
// identity; nothing inside the document can change it.
func Parse(name string, data []byte) (*Collection, error) {
	invalid := func(request, reason string, err error) error {
		return &InvalidError{Collection: name, Request: request, Reason: reason, Err: err}
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalid("", err.Error(), err)
	}
	if doc == nil {
		return nil, invalid("", "file is empty", nil)
	}
	doc = stringKeys(doc)
	if root, ok := doc.(map[string]any); ok {
		if _, has := root["name"]; has {
			return nil, invalid("", "top-level \"name\" is not allowed; a collection is named after its file", nil)
		}
	}

	violation, err := validateDocument(doc)
	if err != nil {
		return nil, invalid("", err.Error(), err)
	}
	if violation != nil {
		return nil, invalid(violation.request, violation.reason, nil)
	}

	var raw rawCollection
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, invalid("", err.Error(), err)
	}

	c := &Collection{
		Name:      name,
		Variables: make(map[string]string, len(raw.Variables)),
		Requests:  make([]*RequestTemplate, 0, len(raw.Requests)),
	}
	for _, v := range raw.Variables {
		c.Variables[v.key] = v.value.(string)
	}

	seen := make(map[string]bool, len(raw.Requests))
	for _, rr := range raw.Requests {
		if seen[rr.Name] {
			return nil, &DuplicateRequestNameError{Collection: name, Name: rr.Name}
		}
		seen[rr.Name] = true

		tmpl, err := convertRequest(rr)
		if err != nil {
			return nil, invalid(rr.Name, err.Error(), err)
		}
		c.Requests = append(c.Requests, tmpl)
	}

	return c, nil
}

func convertRequest(rr rawRequest) (*RequestTemplate, error) {
	method, err := http.ParseMethod(rr.Method)
	if err != nil {
		return nil, err
	}

	tmpl := &RequestTemplate{
		Name:   rr.Name,
		Method: method,
		URL:    rr.URL,
	}

	for _, h := range rr.Headers {
		tmpl.Headers = append(tmpl.Headers, Header{Name: h.key, Value: h.value.(string)})
	}

	if rr.Body != nil {
		switch {
		case rr.Body.JSON != nil && rr.Body.Form != nil:
			return nil, errors.New("body must use either json or form, not both")
		case rr.Body.JSON != nil:
			tmpl.Body = &Body{Encoding: EncodingJSON, Fields: toFields(*rr.Body.JSON)}
		case rr.Body.Form != nil:
			tmpl.Body = &Body{Encoding: EncodingForm, Fields: toFields(*rr.Body.Form)}
		default:
			return nil, errors.New("body must contain a json or form mapping")
		}
	}

	return tmpl, nil
}

func toFields(pairs []pair) []Field {
	fields := make([]Field, len(pairs))
	for i, p := range pairs {
		fields[i] = Field{Key: p.key, Value: p.value}
	}
	return fields
}
