package data

import (
	"math/rand"
)

// Cooccurrence is one (word, context) pair with its corpus count.
type Cooccurrence struct {
	Word    int32
	Context int32
	Count   float32
}

// CooccurrenceDataset holds the sparse co-occurrence counts extracted from
// a corpus, flattened into triples for mini-batch iteration.
type CooccurrenceDataset struct {
	triples []Cooccurrence
}

// BuildCooccurrence counts symmetric window co-occurrences over tokenized
// sentences. For each position, every neighbor within contextSize on either
// side (clipped at sentence boundaries) increments the pair count by one.
// Tokens are mapped through the vocabulary, so OOV positions count toward
// UnkID.
func BuildCooccurrence(sentences [][]string, vocab *Vocab, contextSize int) *CooccurrenceDataset {
	counts := make(map[[2]int32]float32)
	for _, sent := range sentences {
		ids := vocab.IDs(sent)
		for i, w := range ids {
			lo := i - contextSize
			if lo < 0 {
				lo = 0
			}
			hi := i + contextSize
			if hi >= len(ids) {
				hi = len(ids) - 1
			}
			for j := lo; j <= hi; j++ {
				if j == i {
					continue
				}
				counts[[2]int32{w, ids[j]}]++
			}
		}
	}

	triples := make([]Cooccurrence, 0, len(counts))
	for pair, n := range counts {
		triples = append(triples, Cooccurrence{Word: pair[0], Context: pair[1], Count: n})
	}
	return &CooccurrenceDataset{triples: triples}
}

// Len returns the number of distinct (word, context) pairs.
func (d *CooccurrenceDataset) Len() int {
	return len(d.triples)
}

// Shuffle permutes the triples in place.
func (d *CooccurrenceDataset) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.triples), func(i, j int) {
		d.triples[i], d.triples[j] = d.triples[j], d.triples[i]
	})
}

// Batch returns the triples for batch index i at the given batch size,
// split into parallel slices. The final batch may be smaller. Returns nil
// slices when i is past the end.
func (d *CooccurrenceDataset) Batch(i, batchSize int) (words, contexts []int32, counts []float32) {
	start := i * batchSize
	if start >= len(d.triples) {
		return nil, nil, nil
	}
	end := start + batchSize
	if end > len(d.triples) {
		end = len(d.triples)
	}

	n := end - start
	words = make([]int32, n)
	contexts = make([]int32, n)
	counts = make([]float32, n)
	for k, t := range d.triples[start:end] {
		words[k] = t.Word
		contexts[k] = t.Context
		counts[k] = t.Count
	}
	return words, contexts, counts
}

// NumBatches returns the number of batches at the given batch size.
func (d *CooccurrenceDataset) NumBatches(batchSize int) int {
	return (len(d.triples) + batchSize - 1) / batchSize
}
