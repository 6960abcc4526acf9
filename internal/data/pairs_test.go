package data_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit-ml/nlpkit/internal/data"
)

func TestReadPairs(t *testing.T) {
	input := "hello world\thallo welt\nno tab line\ngood morning\tguten morgen\n"
	tok := data.NewWhitespace()

	pairs, err := data.ReadPairs(strings.NewReader(input), tok, tok)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, []string{"hello", "world"}, pairs[0].Src)
	assert.Equal(t, []string{"hallo", "welt"}, pairs[0].Trg)
}

func TestBatchPairs_PaddingAndWrapping(t *testing.T) {
	pairs := []data.Pair{
		{Src: []string{"a"}, Trg: []string{"x"}},
		{Src: []string{"a", "b", "c"}, Trg: []string{"x", "y"}},
	}
	srcVocab := data.BuildVocab([][]string{{"a", "b", "c"}}, 1)
	trgVocab := data.BuildVocab([][]string{{"x", "y"}}, 1)

	batches := data.BatchPairs(pairs, srcVocab, trgVocab, 2, nil)
	require.Len(t, batches, 1)
	batch := batches[0]

	// Longest source is "a b c" plus <bos>/<eos>: 5 steps
	require.Len(t, batch.Src, 5)
	// Each step covers the whole batch
	for _, step := range batch.Src {
		require.Len(t, step, 2)
	}

	// Pairs are sorted by source length, so the short pair is column 0
	assert.Equal(t, data.BosID, batch.Src[0][0])
	assert.Equal(t, srcVocab.ID("a"), batch.Src[1][0])
	assert.Equal(t, data.EosID, batch.Src[2][0])
	assert.Equal(t, data.PadID, batch.Src[3][0])
	assert.Equal(t, data.PadID, batch.Src[4][0])

	assert.Equal(t, data.BosID, batch.Src[0][1])
	assert.Equal(t, srcVocab.ID("a"), batch.Src[1][1])
	assert.Equal(t, srcVocab.ID("b"), batch.Src[2][1])
	assert.Equal(t, srcVocab.ID("c"), batch.Src[3][1])
	assert.Equal(t, data.EosID, batch.Src[4][1])

	// Targets: longest is "x y" wrapped: 4 steps
	require.Len(t, batch.Trg, 4)
}

func TestBatchPairs_SplitsIntoBatches(t *testing.T) {
	tok := []string{"w"}
	pairs := make([]data.Pair, 5)
	for i := range pairs {
		pairs[i] = data.Pair{Src: tok, Trg: tok}
	}
	vocab := data.BuildVocab([][]string{tok}, 1)

	batches := data.BatchPairs(pairs, vocab, vocab, 2, nil)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0].Src[0], 2)
	assert.Len(t, batches[2].Src[0], 1)
}

func TestReadCorpus(t *testing.T) {
	input := "The cat sat\n\nOn the mat\n"
	sentences, err := data.ReadCorpus(strings.NewReader(input), data.NewWhitespace())
	require.NoError(t, err)

	require.Len(t, sentences, 2)
	assert.Equal(t, []string{"the", "cat", "sat"}, sentences[0])
	assert.Equal(t, []string{"on", "the", "mat"}, sentences[1])
}
