package builder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// EncodingError is returned when a field value cannot be form-encoded.
type EncodingError struct {
	Key    string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("body field %q: %s", e.Key, e.Reason)
}

// encodeJSON writes fields as one JSON object, keeping field order.
func encodeJSON(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(f.Key)
		if err != nil {
			return nil, &EncodingError{Key: f.Key, Reason: err.Error()}
		}
		value, err := marshalJSON(f.Value)
		if err != nil {
			return nil, &EncodingError{Key: f.Key, Reason: err.Error()}
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeForm writes fields as application/x-www-form-urlencoded pairs in
// field order.
func encodeForm(fields []Field) ([]byte, error) {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		value, err := formValue(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, url.QueryEscape(f.Key)+"="+url.QueryEscape(value))
	}
	return []byte(strings.Join(parts, "&")), nil
}

func formValue(f Field) (string, error) {
	switch v := f.Value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", &EncodingError{Key: f.Key, Reason: fmt.Sprintf("a %T value cannot be form-encoded", v)}
	}
}
