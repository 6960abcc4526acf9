package data_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit-ml/nlpkit/internal/data"
)

func TestWhitespace_Tokenize(t *testing.T) {
	tok := data.NewWhitespace()

	tokens, err := tok.Tokenize("The  quick\tBrown fox")
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "quick", "brown", "fox"}, tokens)
}

func TestWhitespace_NoLowercase(t *testing.T) {
	tok := &data.Whitespace{Lower: false}

	tokens, err := tok.Tokenize("Hello World")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World"}, tokens)
}

func TestWhitespace_Empty(t *testing.T) {
	tok := data.NewWhitespace()

	tokens, err := tok.Tokenize("   ")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTikToken_Tokenize(t *testing.T) {
	tok, err := data.NewTikToken("cl100k_base")
	if err != nil {
		// Encoding data is fetched over the network on first use
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	tokens, err := tok.Tokenize("hello world")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	// Subword strings concatenate back to the input
	assert.Equal(t, "hello world", strings.Join(tokens, ""))
	assert.Equal(t, "cl100k_base", tok.Name())
}
