package expressions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestEvaluator_Evaluate(t *testing.T) {
	doc := decode(t, `{
		"props": {"pageProps": {"mainColumnData": {
			"titleText": {"text": "The Matrix"},
			"genres": {"genres": [{"text": "Action"}, {"text": "Sci-Fi"}]}
		}}}
	}`)
	e := NewEvaluator()

	value, err := e.Evaluate("props.pageProps.mainColumnData.titleText.text", doc)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", value)

	value, err = e.Evaluate("props.pageProps.mainColumnData.genres.genres[].text", doc)
	require.NoError(t, err)
	assert.Equal(t, []any{"Action", "Sci-Fi"}, value)
}

func TestEvaluator_MissingPathIsNil(t *testing.T) {
	doc := decode(t, `{"props": {"pageProps": {}}}`)
	e := NewEvaluator()

	for _, path := range []string{
		"props.pageProps.mainColumnData.titleText.text",
		"props.pageProps.mainColumnData.genres.genres[].text",
		"nothing[0].here",
	} {
		value, err := e.Evaluate(path, doc)
		require.NoError(t, err, path)
		assert.Nil(t, value, path)
	}
}

func TestEvaluator_InvalidExpression(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Evaluate("props.[", map[string]any{})
	assert.Error(t, err)
	assert.Error(t, e.Precompile("a.b", "c..d"))
	assert.NoError(t, e.Precompile("a.b", "c[].d"))
}

func TestEvaluator_Run(t *testing.T) {
	doc := decode(t, `{"present": [1, 2, 3]}`)
	e := NewEvaluator()

	calls := 0
	count := func(raw any) any {
		calls++
		list, _ := raw.([]any)
		return len(list)
	}

	value, err := e.Run(Q("present").Then(count), doc)
	require.NoError(t, err)
	assert.Equal(t, 3, value)
	assert.Equal(t, 1, calls)

	value, err = e.Run(Q("absent").Then(count), doc)
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.Equal(t, 1, calls, "transform must not run on an absent path by default")

	value, err = e.Run(Q("absent").Then(count).OrElse(), doc)
	require.NoError(t, err)
	assert.Equal(t, 0, value)
	assert.Equal(t, 2, calls)

	value, err = e.Run(Q("present[0]"), doc)
	require.NoError(t, err)
	assert.Equal(t, float64(1), value)
}

func TestEvaluator_PrecompileCaches(t *testing.T) {
	e := NewEvaluator()
	require.NoError(t, e.Precompile("a.b", "a.b", "c[].d"))
	assert.Len(t, e.compiled, 2)

	_, err := e.Evaluate("a.b", map[string]any{})
	require.NoError(t, err)
	assert.Len(t, e.compiled, 2)
}
