package valueobjects

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalRef(t *testing.T) {
	ref := NewLocalRef()

	assert.True(t, ref.IsLocal())
	assert.False(t, ref.IsDurable())
	assert.True(t, strings.HasPrefix(ref.String(), "#"))
	assert.NotEmpty(t, ref.Fragment())

	other := NewLocalRef()
	assert.False(t, ref.Equals(other), "local tokens must be unique")
}

func TestNewRefFromString(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := NewRefFromString("")
		assert.Error(t, err)
	})

	t.Run("accepts any non-empty token", func(t *testing.T) {
		ref, err := NewRefFromString("#abc")
		require.NoError(t, err)
		assert.Equal(t, "#abc", ref.String())
	})
}

func TestRefIsDurable(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		durable bool
	}{
		{"https URL with fragment", "https://pod.example/hypey/app.jsonld#abc", true},
		{"http URL", "http://pod.example/doc#x", true},
		{"local token", "#abc123", false},
		{"relative path", "public/hypey/app.jsonld#abc", false},
		{"non-http scheme", "ftp://pod.example/doc#x", false},
		{"scheme without host", "https:///doc#x", false},
		{"garbage", "::::", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := NewRefFromString(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.durable, ref.IsDurable())
		})
	}
}

func TestRefDocumentURL(t *testing.T) {
	t.Run("strips the fragment", func(t *testing.T) {
		ref, err := NewRefFromString("https://pod.example/public/hypey/app.jsonld#abc")
		require.NoError(t, err)

		docURL, err := ref.DocumentURL()
		require.NoError(t, err)
		assert.Equal(t, "https://pod.example/public/hypey/app.jsonld", docURL)
	})

	t.Run("refuses a local token", func(t *testing.T) {
		ref := NewLocalRef()
		_, err := ref.DocumentURL()
		assert.Error(t, err)
	})
}

func TestRefFragment(t *testing.T) {
	ref, err := NewRefFromString("https://pod.example/app.jsonld#abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", ref.Fragment())

	local, err := NewRefFromString("#xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", local.Fragment())

	noFragment, err := NewRefFromString("https://pod.example/app.jsonld")
	require.NoError(t, err)
	assert.Empty(t, noFragment.Fragment())
}

func TestRefZero(t *testing.T) {
	var zero Ref
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsLocal())
	assert.False(t, zero.IsDurable())
}

func TestRefJSONRoundTrip(t *testing.T) {
	ref, err := NewRefFromString("https://pod.example/app.jsonld#abc")
	require.NoError(t, err)

	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.Equal(t, `"https://pod.example/app.jsonld#abc"`, string(data))

	var decoded Ref
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, ref.Equals(decoded))
}
