package nn

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Embedding implements a lookup table from token IDs to dense vectors.
//
// The weight matrix has shape [num_embeddings, embedding_dim]. Looking up
// int32 indices of shape [batch] or [batch, seq] produces output of shape
// indices.Shape() + [embedding_dim]. Weights are initialized from N(0, 1).
type Embedding[B tensor.Backend] struct {
	numEmbeddings int
	embeddingDim  int
	weight        *Parameter[B] // [num_embeddings, embedding_dim]
	backend       B
}

// NewEmbedding creates an embedding table with N(0, 1) initialized weights.
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	weight := NewParameter("weight",
		Randn(tensor.Shape{numEmbeddings, embeddingDim}, backend))

	return &Embedding[B]{
		numEmbeddings: numEmbeddings,
		embeddingDim:  embeddingDim,
		weight:        weight,
		backend:       backend,
	}
}

// NewEmbeddingFromWeight wraps an existing weight matrix, e.g. pretrained
// vectors loaded from disk.
func NewEmbeddingFromWeight[B tensor.Backend](weight *tensor.Tensor[float32, B], backend B) *Embedding[B] {
	shape := weight.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Embedding: weight must be 2D [vocab, dim], got shape %v", shape))
	}

	return &Embedding[B]{
		numEmbeddings: shape[0],
		embeddingDim:  shape[1],
		weight:        NewParameter("weight", weight),
		backend:       backend,
	}
}

// Lookup gathers embedding rows for the given int32 indices.
//
// Output shape: indices.Shape() + [embedding_dim]
func (e *Embedding[B]) Lookup(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return e.weight.Tensor().Embedding(indices)
}

// Forward satisfies Module by treating the input as float32 indices.
// Prefer Lookup with int32 indices; Forward exists so Embedding can sit in
// Module lists.
func (e *Embedding[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return e.Lookup(input.Int32())
}

// Parameters returns [weight].
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.weight}
}

// Weight returns the weight parameter.
func (e *Embedding[B]) Weight() *Parameter[B] {
	return e.weight
}

// NumEmbeddings returns the vocabulary size.
func (e *Embedding[B]) NumEmbeddings() int {
	return e.numEmbeddings
}

// EmbeddingDim returns the vector dimensionality.
func (e *Embedding[B]) EmbeddingDim() int {
	return e.embeddingDim
}
