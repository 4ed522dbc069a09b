package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteLocalRefs(t *testing.T) {
	doc := NewDocument(testDocURL)

	collage := NewThing(mustRef(t, "#c1"))
	collage.AddValue(RDFType, URLValue(TypeCollage))
	collage.AddValue(PredHasElement, URLValue("#e1"))
	collage.AddValue(PredHasElement, URLValue("https://pod.example/other.jsonld#e9"))
	doc.SetThing(collage)

	element := NewThing(mustRef(t, "#e1"))
	element.SetValue(PredImageURL, URLValue("https://cdn.example/cat.png"))
	doc.SetThing(element)

	doc.PromoteLocalRefs()

	t.Run("thing identities become durable", func(t *testing.T) {
		c, ok := doc.Thing(mustRef(t, "#c1"))
		require.True(t, ok, "fragment lookup still resolves after promotion")
		assert.Equal(t, testDocURL+"#c1", c.Ref().String())
		assert.True(t, c.Ref().IsDurable())
	})

	t.Run("local URL values are rewritten alongside", func(t *testing.T) {
		c, _ := doc.Thing(mustRef(t, "#c1"))
		refs := c.GetAllURLs(PredHasElement)
		assert.Contains(t, refs, testDocURL+"#e1")
		assert.NotContains(t, refs, "#e1", "no stranded local reference survives a save")
	})

	t.Run("already-durable values are untouched", func(t *testing.T) {
		c, _ := doc.Thing(mustRef(t, "#c1"))
		assert.Contains(t, c.GetAllURLs(PredHasElement), "https://pod.example/other.jsonld#e9")
	})

	t.Run("non-URL values are untouched", func(t *testing.T) {
		e, ok := doc.Thing(mustRef(t, "#e1"))
		require.True(t, ok)
		url, _ := e.GetURL(PredImageURL)
		assert.Equal(t, "https://cdn.example/cat.png", url)
	})
}

func TestPromoteLocalRefsWithoutURL(t *testing.T) {
	doc := NewDocument("")
	doc.SetThing(NewThing(mustRef(t, "#c1")))

	doc.PromoteLocalRefs()

	c, ok := doc.Thing(mustRef(t, "#c1"))
	require.True(t, ok)
	assert.True(t, c.Ref().IsLocal(), "a never-saved document cannot promote")
}
