package collection

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

var requestIndexPattern = regexp.MustCompile(`^requests\.(\d+)`)

// schemaViolation is the first schema error found in a document, with the
// name of the request it belongs to when there is one.
type schemaViolation struct {
	request string
	reason  string
}

// validateDocument checks a generically decoded YAML document against the
// collection schema. A nil violation means the document is valid.
func validateDocument(doc any) (*schemaViolation, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := result.Errors()
	descriptions := make([]string, 0, len(errs))
	for _, e := range errs {
		descriptions = append(descriptions, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}

	return &schemaViolation{
		request: requestNameAt(doc, errs[0].Field()),
		reason:  strings.Join(descriptions, "; "),
	}, nil
}

// requestNameAt maps a schema field path such as "requests.2.url" back to
// the name of the third request, if it has one.
func requestNameAt(doc any, field string) string {
	m := requestIndexPattern.FindStringSubmatch(field)
	if m == nil {
		return ""
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	requests, ok := root["requests"].([]any)
	if !ok || idx >= len(requests) {
		return ""
	}
	entry, ok := requests[idx].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := entry["name"].(string)
	return name
}
