package solid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
)

const codecDocURL = "https://pod.example/public/hypey/app.jsonld"

func TestCodecRoundTrip(t *testing.T) {
	ref, err := valueobjects.NewRefFromString(codecDocURL + "#e1")
	require.NoError(t, err)

	doc := document.NewDocument(codecDocURL)
	thing := document.NewThing(ref)
	thing.AddValue(document.RDFType, document.URLValue(document.TypeElement))
	thing.SetValue(document.PredImageURL, document.URLValue("https://cdn.example/cat.png"))
	thing.SetValue(document.PredElementX, document.DecimalValue(12.5))
	doc.SetThing(thing)

	data, err := MarshalDocument(doc)
	require.NoError(t, err)

	back, err := UnmarshalDocument(codecDocURL, data)
	require.NoError(t, err)

	got, ok := back.Thing(ref)
	require.True(t, ok)
	assert.True(t, got.IsType(document.TypeElement))

	url, ok := got.GetURL(document.PredImageURL)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example/cat.png", url)

	x, ok := got.GetDecimal(document.PredElementX)
	assert.True(t, ok)
	assert.Equal(t, 12.5, x)
}

func TestUnmarshalDocument(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		data := []byte(`[
			{
				"@id": "` + codecDocURL + `#app",
				"https://vocab.mysilio.com/alpha/hype#imageUploadContainer": [
					{"@id": "https://pod.example/public/hypey/images/"}
				]
			}
		]`)

		doc, err := UnmarshalDocument(codecDocURL, data)
		require.NoError(t, err)

		ref, err := valueobjects.NewRefFromString(codecDocURL + "#app")
		require.NoError(t, err)
		thing, ok := doc.Thing(ref)
		require.True(t, ok)
		container, ok := thing.GetURL(document.PredImageUploadContainer)
		assert.True(t, ok)
		assert.Equal(t, "https://pod.example/public/hypey/images/", container)
	})

	t.Run("graph wrapper", func(t *testing.T) {
		data := []byte(`{"@graph": [{"@id": "#e1"}]}`)
		doc, err := UnmarshalDocument(codecDocURL, data)
		require.NoError(t, err)
		assert.Len(t, doc.Things(), 1)
	})

	t.Run("single-object values", func(t *testing.T) {
		data := []byte(`[
			{
				"@id": "#e1",
				"https://vocab.mysilio.com/alpha/hype#elementX": {"@value": 5}
			}
		]`)
		doc, err := UnmarshalDocument(codecDocURL, data)
		require.NoError(t, err)

		ref, err := valueobjects.NewRefFromString("#e1")
		require.NoError(t, err)
		thing, ok := doc.Thing(ref)
		require.True(t, ok)
		x, ok := thing.GetDecimal(document.PredElementX)
		assert.True(t, ok)
		assert.Equal(t, 5.0, x)
	})

	t.Run("string literal values", func(t *testing.T) {
		data := []byte(`[
			{
				"@id": "#e1",
				"https://example.org/note": [{"@value": "hello"}]
			}
		]`)
		doc, err := UnmarshalDocument(codecDocURL, data)
		require.NoError(t, err)

		ref, err := valueobjects.NewRefFromString("#e1")
		require.NoError(t, err)
		thing, _ := doc.Thing(ref)
		s, ok := thing.GetString("https://example.org/note")
		assert.True(t, ok)
		assert.Equal(t, "hello", s)
	})

	t.Run("nodes without @id are skipped", func(t *testing.T) {
		data := []byte(`[{"https://example.org/p": [{"@value": "x"}]}]`)
		doc, err := UnmarshalDocument(codecDocURL, data)
		require.NoError(t, err)
		assert.Empty(t, doc.Things())
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := UnmarshalDocument(codecDocURL, []byte(`not json`))
		assert.Error(t, err)
	})
}
