package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		kind  Kind
		pair  Pair
	}{
		{"header", "Accept:application/json", KindHeader, Pair{"Accept", "application/json"}},
		{"field", "name=alice", KindField, Pair{"name", "alice"}},
		{"header with equals in value", "X-Query:a=b", KindHeader, Pair{"X-Query", "a=b"}},
		{"field with colon in value", "url=http://x.test", KindField, Pair{"url", "http://x.test"}},
		{"header with url value", "Referer:https://x.test/a?b=c", KindHeader, Pair{"Referer", "https://x.test/a?b=c"}},
		{"empty header value", "X-Empty:", KindHeader, Pair{"X-Empty", ""}},
		{"empty field value", "note=", KindField, Pair{"note", ""}},
		{"trimmed", " Authorization : Bearer abc ", KindHeader, Pair{"Authorization", "Bearer abc"}},
		{"field value keeps later equals", "expr=a=b", KindField, Pair{"expr", "a=b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, pair, err := ClassifyToken(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.pair, pair)
		})
	}
}

func TestClassifyToken_Malformed(t *testing.T) {
	for _, tok := range []string{"plain", "", ":value", "=value", "Bad Header:x"} {
		t.Run(tok, func(t *testing.T) {
			_, _, err := ClassifyToken(tok)
			require.Error(t, err)

			var mte *MalformedTokenError
			require.True(t, errors.As(err, &mte))
			assert.Equal(t, tok, mte.Token)
			assert.Contains(t, err.Error(), tok)
		})
	}
}

func TestClassify(t *testing.T) {
	p, err := Classify([]string{"Content-Type:application/json", "name=alice", "age=30", "X-A:1", "X-A:2"})
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{"Content-Type", "application/json"},
		{"X-A", "1"},
		{"X-A", "2"},
	}, p.Headers)
	assert.Equal(t, []Pair{{"name", "alice"}, {"age", "30"}}, p.Fields)
}

func TestClassify_StopsAtFirstMalformedToken(t *testing.T) {
	_, err := Classify([]string{"a=1", "oops", "also-bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"oops"`)
}

func TestClassify_Empty(t *testing.T) {
	p, err := Classify(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Headers)
	assert.Empty(t, p.Fields)
}
