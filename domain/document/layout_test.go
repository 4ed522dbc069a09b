package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageLayout(t *testing.T) {
	const storage = "https://pod.example/"

	assert.Equal(t, "https://pod.example/public/hypey/", HypeyContainerURL(storage))
	assert.Equal(t, "https://pod.example/public/hypey/images/", ImageUploadContainerURL(storage))
	assert.Equal(t, "https://pod.example/public/hypey/app.jsonld", AppResourceURL(storage))
}

func TestStorageLayoutAddsMissingSlash(t *testing.T) {
	assert.Equal(t,
		HypeyContainerURL("https://pod.example/"),
		HypeyContainerURL("https://pod.example"),
	)
}

func TestAppRef(t *testing.T) {
	ref, err := AppRef("https://pod.example/")
	require.NoError(t, err)

	assert.Equal(t, "https://pod.example/public/hypey/app.jsonld#app", ref.String())
	assert.True(t, ref.IsDurable())
	assert.Equal(t, AppFragment, ref.Fragment())
}
