// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides text preparation for training: tokenization,
// vocabularies, co-occurrence counting and parallel-corpus batching.
//
// Example:
//
//	tok := data.NewWhitespace()
//	sentences, err := data.LoadCorpus("corpus.txt", tok)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vocab := data.BuildVocab(sentences, 2)
//	dataset := data.BuildCooccurrence(sentences, vocab, 2)
package data

import (
	"io"
	"math/rand"

	"github.com/nlpkit-ml/nlpkit/internal/data"
)

// Tokenization

// Tokenizer splits raw text into tokens.
type Tokenizer = data.Tokenizer

// Whitespace is a whitespace tokenizer with optional lowercasing.
type Whitespace = data.Whitespace

// NewWhitespace creates a lowercasing whitespace tokenizer.
func NewWhitespace() *Whitespace {
	return data.NewWhitespace()
}

// TikToken is a subword tokenizer backed by a tiktoken BPE encoding.
type TikToken = data.TikToken

// NewTikToken creates a subword tokenizer for the named encoding, for
// example "cl100k_base".
func NewTikToken(encodingName string) (*TikToken, error) {
	return data.NewTikToken(encodingName)
}

// Vocabulary

// Special tokens occupying the first vocabulary slots.
const (
	PadToken = data.PadToken
	UnkToken = data.UnkToken
	BosToken = data.BosToken
	EosToken = data.EosToken

	PadID = data.PadID
	UnkID = data.UnkID
	BosID = data.BosID
	EosID = data.EosID
)

// Vocab maps tokens to dense int32 IDs and back. Unknown tokens map to
// UnkID.
type Vocab = data.Vocab

// BuildVocab builds a vocabulary from tokenized sentences, keeping tokens
// that occur at least minFreq times, ordered by descending frequency.
func BuildVocab(sentences [][]string, minFreq int) *Vocab {
	return data.BuildVocab(sentences, minFreq)
}

// Corpus loading

// LoadCorpus reads a text file with one sentence per line and tokenizes
// each line.
func LoadCorpus(path string, tok Tokenizer) ([][]string, error) {
	return data.LoadCorpus(path, tok)
}

// ReadCorpus tokenizes one sentence per line from r.
func ReadCorpus(r io.Reader, tok Tokenizer) ([][]string, error) {
	return data.ReadCorpus(r, tok)
}

// Co-occurrence counting

// Cooccurrence is one (word, context, count) triple.
type Cooccurrence = data.Cooccurrence

// CooccurrenceDataset holds co-occurrence triples and serves shuffled
// mini-batches.
type CooccurrenceDataset = data.CooccurrenceDataset

// BuildCooccurrence counts symmetric-window co-occurrences over tokenized
// sentences.
func BuildCooccurrence(sentences [][]string, vocab *Vocab, contextSize int) *CooccurrenceDataset {
	return data.BuildCooccurrence(sentences, vocab, contextSize)
}

// Parallel corpora

// Pair is one tokenized source/target sentence pair.
type Pair = data.Pair

// PairBatch is a padded sequence-major batch of sentence pairs.
type PairBatch = data.PairBatch

// LoadPairs reads tab-separated source/target sentence pairs from a file.
func LoadPairs(path string, srcTok, trgTok Tokenizer) ([]Pair, error) {
	return data.LoadPairs(path, srcTok, trgTok)
}

// ReadPairs reads tab-separated source/target sentence pairs from r.
func ReadPairs(r io.Reader, srcTok, trgTok Tokenizer) ([]Pair, error) {
	return data.ReadPairs(r, srcTok, trgTok)
}

// BatchPairs sorts pairs by source length, wraps each sentence in
// <bos>/<eos>, pads within each batch and returns sequence-major batches.
// A non-nil rng shuffles the batch order.
func BatchPairs(pairs []Pair, srcVocab, trgVocab *Vocab, batchSize int, rng *rand.Rand) []PairBatch {
	return data.BatchPairs(pairs, srcVocab, trgVocab, batchSize, rng)
}
