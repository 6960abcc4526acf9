// Package data provides text tokenization, vocabulary construction, and
// dataset loading for embedding and translation training.
package data

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer splits raw text into a sequence of token strings. Tokens are
// mapped to IDs by a Vocab built over the training corpus.
type Tokenizer interface {
	// Tokenize converts text to tokens.
	Tokenize(text string) ([]string, error)

	// Name returns the tokenizer name.
	Name() string
}

// Whitespace is a lowercasing whitespace tokenizer. It is the default for
// word-level embedding training.
type Whitespace struct {
	// Lower controls lowercasing before splitting.
	Lower bool
}

// NewWhitespace creates a lowercasing whitespace tokenizer.
func NewWhitespace() *Whitespace {
	return &Whitespace{Lower: true}
}

// Tokenize splits on Unicode whitespace.
func (w *Whitespace) Tokenize(text string) ([]string, error) {
	if w.Lower {
		text = strings.ToLower(text)
	}
	return strings.Fields(text), nil
}

// Name returns "whitespace".
func (w *Whitespace) Name() string {
	return "whitespace"
}

// TikToken wraps the pkoukk/tiktoken-go BPE tokenizer. Each encoded ID is
// decoded back to its subword string so downstream vocabularies treat
// subwords exactly like words.
//
// Supported encodings:
//   - cl100k_base: GPT-4, GPT-3.5-turbo
//   - p50k_base, r50k_base: GPT-3
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikToken creates a TikToken tokenizer with the specified encoding.
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// Tokenize encodes the text with BPE and decodes each ID back to its
// subword string.
func (t *TikToken) Tokenize(text string) ([]string, error) {
	ids := t.encoding.Encode(text, nil, nil)

	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = t.encoding.Decode([]int{id})
	}
	return tokens, nil
}

// Name returns the encoding name.
func (t *TikToken) Name() string {
	return t.name
}
