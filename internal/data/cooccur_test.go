package data_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit-ml/nlpkit/internal/data"
)

func TestBuildCooccurrence_HandCounted(t *testing.T) {
	sentences := [][]string{{"a", "b", "a"}}
	vocab := data.BuildVocab(sentences, 1)
	ds := data.BuildCooccurrence(sentences, vocab, 1)

	// Window 1 over "a b a": pairs (a,b), (b,a), (b,a), (a,b)
	// so (a,b) and (b,a) each have count 2
	require.Equal(t, 2, ds.Len())

	words, contexts, counts := ds.Batch(0, 10)
	a, b := vocab.ID("a"), vocab.ID("b")
	for i := range words {
		assert.Equal(t, float32(2), counts[i])
		pair := [2]int32{words[i], contexts[i]}
		assert.Contains(t, [][2]int32{{a, b}, {b, a}}, pair)
	}
}

func TestBuildCooccurrence_WindowClipsAtBoundaries(t *testing.T) {
	sentences := [][]string{{"x", "y"}}
	vocab := data.BuildVocab(sentences, 1)

	// Window larger than the sentence still only yields in-sentence pairs
	ds := data.BuildCooccurrence(sentences, vocab, 5)
	assert.Equal(t, 2, ds.Len())
}

func TestCooccurrenceDataset_Batching(t *testing.T) {
	sentences := [][]string{{"a", "b", "c", "d", "e"}}
	vocab := data.BuildVocab(sentences, 1)
	ds := data.BuildCooccurrence(sentences, vocab, 2)

	batchSize := 3
	total := 0
	for i := 0; i < ds.NumBatches(batchSize); i++ {
		words, contexts, counts := ds.Batch(i, batchSize)
		require.Equal(t, len(words), len(contexts))
		require.Equal(t, len(words), len(counts))
		total += len(words)
	}
	assert.Equal(t, ds.Len(), total)

	// Past the end
	words, _, _ := ds.Batch(ds.NumBatches(batchSize), batchSize)
	assert.Nil(t, words)
}

func TestCooccurrenceDataset_ShufflePreservesTriples(t *testing.T) {
	sentences := [][]string{{"a", "b", "c", "a", "b"}}
	vocab := data.BuildVocab(sentences, 1)
	ds := data.BuildCooccurrence(sentences, vocab, 2)

	before := ds.Len()
	var sumBefore float32
	_, _, counts := ds.Batch(0, before)
	for _, c := range counts {
		sumBefore += c
	}

	ds.Shuffle(rand.New(rand.NewSource(1)))

	assert.Equal(t, before, ds.Len())
	var sumAfter float32
	_, _, counts = ds.Batch(0, before)
	for _, c := range counts {
		sumAfter += c
	}
	assert.Equal(t, sumBefore, sumAfter)
}
