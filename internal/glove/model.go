// Package glove implements GloVe word embedding training: weighted least
// squares over corpus co-occurrence counts.
//
// Reference: "GloVe: Global Vectors for Word Representation"
// (Pennington, Socher & Manning, 2014)
package glove

import (
	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Config holds GloVe training hyperparameters.
type Config struct {
	EmbeddingDim int     // Vector dimensionality (default: 64)
	ContextSize  int     // Co-occurrence window radius (default: 2)
	BatchSize    int     // Triples per mini-batch (default: 1024)
	Epochs       int     // Training epochs (default: 10)
	MMax         float32 // Weighting cutoff m_max (default: 100)
	Alpha        float32 // Weighting exponent (default: 0.75)
	LR           float32 // Adam learning rate (default: 0.001)
}

// DefaultConfig returns the standard GloVe hyperparameters.
func DefaultConfig() Config {
	return Config{
		EmbeddingDim: 64,
		ContextSize:  2,
		BatchSize:    1024,
		Epochs:       10,
		MMax:         100,
		Alpha:        0.75,
		LR:           0.001,
	}
}

// fillDefaults replaces zero fields with the defaults.
func (c Config) fillDefaults() Config {
	def := DefaultConfig()
	if c.EmbeddingDim == 0 {
		c.EmbeddingDim = def.EmbeddingDim
	}
	if c.ContextSize == 0 {
		c.ContextSize = def.ContextSize
	}
	if c.BatchSize == 0 {
		c.BatchSize = def.BatchSize
	}
	if c.Epochs == 0 {
		c.Epochs = def.Epochs
	}
	if c.MMax == 0 {
		c.MMax = def.MMax
	}
	if c.Alpha == 0 {
		c.Alpha = def.Alpha
	}
	if c.LR == 0 {
		c.LR = def.LR
	}
	return c
}

// Model holds the four GloVe parameter tables: word and context embeddings
// plus per-token scalar biases. Biases are stored as [vocab, 1] embedding
// tables so lookups run through the same recorded Embedding op as vectors.
type Model[B tensor.Backend] struct {
	vocabSize    int
	embeddingDim int

	wordEmb *nn.Embedding[B] // [vocab, dim]
	ctxEmb  *nn.Embedding[B] // [vocab, dim]
	wordBia *nn.Embedding[B] // [vocab, 1]
	ctxBia  *nn.Embedding[B] // [vocab, 1]

	backend B
}

// NewModel creates a GloVe model for the given vocabulary size.
func NewModel[B tensor.Backend](vocabSize, embeddingDim int, backend B) *Model[B] {
	return &Model[B]{
		vocabSize:    vocabSize,
		embeddingDim: embeddingDim,
		wordEmb:      nn.NewEmbedding(vocabSize, embeddingDim, backend),
		ctxEmb:       nn.NewEmbedding(vocabSize, embeddingDim, backend),
		wordBia:      nn.NewEmbedding(vocabSize, 1, backend),
		ctxBia:       nn.NewEmbedding(vocabSize, 1, backend),
		backend:      backend,
	}
}

// Score computes the model's prediction for each (word, context) pair:
//
//	score = w · c + b_w + b_c
//
// words and contexts are int32 index tensors of shape [batch]. Returns a
// [batch] tensor that stays on the gradient tape.
func (m *Model[B]) Score(words, contexts *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	batch := words.Shape()[0]

	w := m.wordEmb.Lookup(words)   // [batch, dim]
	c := m.ctxEmb.Lookup(contexts) // [batch, dim]
	dot := w.Mul(c).SumDim(1, false)

	bw := m.wordBia.Lookup(words).Reshape(batch)
	bc := m.ctxBia.Lookup(contexts).Reshape(batch)

	return dot.Add(bw).Add(bc)
}

// Parameters returns all four embedding tables.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	params = append(params, m.wordEmb.Parameters()...)
	params = append(params, m.ctxEmb.Parameters()...)
	params = append(params, m.wordBia.Parameters()...)
	params = append(params, m.ctxBia.Parameters()...)
	return params
}

// VocabSize returns the vocabulary size.
func (m *Model[B]) VocabSize() int {
	return m.vocabSize
}

// EmbeddingDim returns the vector dimensionality.
func (m *Model[B]) EmbeddingDim() int {
	return m.embeddingDim
}

// CombinedVectors returns the final embedding matrix: the element-wise sum
// of word and context embeddings, which the GloVe paper reports works
// slightly better than either table alone.
func (m *Model[B]) CombinedVectors() [][]float32 {
	word := m.wordEmb.Weight().Tensor().Data()
	ctx := m.ctxEmb.Weight().Tensor().Data()

	vectors := make([][]float32, m.vocabSize)
	for i := range vectors {
		row := make([]float32, m.embeddingDim)
		for j := range row {
			row[j] = word[i*m.embeddingDim+j] + ctx[i*m.embeddingDim+j]
		}
		vectors[i] = row
	}
	return vectors
}
