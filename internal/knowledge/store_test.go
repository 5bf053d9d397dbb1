package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDocument = `{
	"Tumhari smile meri day ban jati hai": {
		"response": "Tumhara pyaar hi meri smile ka reason hai",
		"confidence": 0.95,
		"categories": ["romantic", "compliments"],
		"language": "hinglish"
	},
	"Missing you like crazy": {
		"response": "Same here!",
		"categories": ["romantic", "missing_you"]
	},
	"I love you": {
		"response": "I love you too",
		"categories": ["romantic"]
	},
	"what is your name": {
		"response": "I'm your chat assistant.",
		"confidence": 1.0,
		"categories": ["smalltalk"]
	}
}`

func writeTestStore(t *testing.T, doc string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store, err := LoadStore(path, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestLoadStore(t *testing.T) {
	store := writeTestStore(t, testDocument)
	assert.Equal(t, 4, store.Len())
}

func TestLoadStore_MissingFileIsEmpty(t *testing.T) {
	store, err := LoadStore(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.RomanticEntries())
}

func TestLoadStore_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"broken": `), 0o644))

	_, err := LoadStore(path, zap.NewNop())
	assert.Error(t, err)
}

func TestRomanticEntries(t *testing.T) {
	store := writeTestStore(t, testDocument)
	entries := store.RomanticEntries()
	require.Len(t, entries, 3)

	// Document order is preserved.
	assert.Equal(t, "Tumhari smile meri day ban jati hai", entries[0].InputPhrase)
	assert.Equal(t, "compliments", entries[0].Category)
	assert.Equal(t, 0.95, entries[0].Confidence)

	assert.Equal(t, "Missing you like crazy", entries[1].InputPhrase)
	assert.Equal(t, "missing_you", entries[1].Category)
	assert.Equal(t, 0.9, entries[1].Confidence, "missing confidence defaults")

	// Single-category romantic entries fall into "general".
	assert.Equal(t, "I love you", entries[2].InputPhrase)
	assert.Equal(t, "general", entries[2].Category)
}

func TestLookup(t *testing.T) {
	store := writeTestStore(t, testDocument)

	answer, ok := store.Lookup("what is your name")
	assert.True(t, ok)
	assert.Equal(t, "I'm your chat assistant.", answer)

	answer, ok = store.Lookup("WHAT IS YOUR NAME")
	assert.True(t, ok)
	assert.Equal(t, "I'm your chat assistant.", answer)

	_, ok = store.Lookup("what is your name?")
	assert.False(t, ok, "lookup is exact, not fuzzy")
}

func TestResponder(t *testing.T) {
	store := writeTestStore(t, testDocument)
	responder := NewResponder(store, zap.NewNop())

	answer, err := responder.Respond(context.Background(), "what is your name", false)
	require.NoError(t, err)
	assert.Equal(t, "I'm your chat assistant.", answer)

	answer, err = responder.Respond(context.Background(), "tell me about quantum physics", true)
	require.NoError(t, err)
	assert.Equal(t, defaultResponse, answer)
}

func TestResponder_CancelledContext(t *testing.T) {
	store := writeTestStore(t, testDocument)
	responder := NewResponder(store, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := responder.Respond(ctx, "anything", false)
	assert.ErrorIs(t, err, context.Canceled)
}
