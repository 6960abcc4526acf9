// Package seq2seq implements GRU encoder-decoder neural machine
// translation with teacher forcing.
//
// Reference: "Learning Phrase Representations using RNN Encoder-Decoder
// for Statistical Machine Translation" (Cho et al., 2014)
package seq2seq

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Encoder compresses a source sentence into the final hidden states of a
// multi-layer GRU run over the embedded tokens. Every layer's state crosses
// to the decoder; the top layer doubles as the context vector.
type Encoder[B tensor.Backend] struct {
	embedding *nn.Embedding[B]
	dropout   *nn.Dropout[B]
	gru       *nn.GRU[B]
	backend   B
}

// NewEncoder creates an encoder over a source vocabulary.
func NewEncoder[B tensor.Backend](vocabSize, embedDim, hiddenDim, numLayers int, dropout float32, backend B) *Encoder[B] {
	return &Encoder[B]{
		embedding: nn.NewEmbedding(vocabSize, embedDim, backend),
		dropout:   nn.NewDropout(dropout, backend),
		gru:       nn.NewGRU(embedDim, hiddenDim, numLayers, dropout, backend),
		backend:   backend,
	}
}

// Forward encodes a sequence-major batch src[t][b] of token IDs and
// returns the final hidden state of every layer, one [batch, hidden_dim]
// tensor per layer, bottom first.
func (e *Encoder[B]) Forward(src [][]int32) []*tensor.Tensor[float32, B] {
	if len(src) == 0 {
		panic("Encoder: empty source batch")
	}
	batch := len(src[0])

	steps := make([]*tensor.Tensor[float32, B], len(src))
	for t, row := range src {
		indices, err := tensor.FromSlice(row, tensor.Shape{batch}, e.backend)
		if err != nil {
			panic(fmt.Sprintf("Encoder: %v", err))
		}
		steps[t] = e.dropout.Forward(e.embedding.Lookup(indices))
	}

	_, hidden := e.gru.ForwardSequence(steps, nil)
	return hidden
}

// Train puts dropout in training mode.
func (e *Encoder[B]) Train() {
	e.dropout.Train()
	e.gru.Train()
}

// Eval disables dropout.
func (e *Encoder[B]) Eval() {
	e.dropout.Eval()
	e.gru.Eval()
}

// Parameters returns the embedding and GRU parameters.
func (e *Encoder[B]) Parameters() []*nn.Parameter[B] {
	params := e.embedding.Parameters()
	return append(params, e.gru.Parameters()...)
}

// HiddenDim returns the context vector dimensionality.
func (e *Encoder[B]) HiddenDim() int {
	return e.gru.HiddenSize()
}

// NumLayers returns the GRU stack depth.
func (e *Encoder[B]) NumLayers() int {
	return e.gru.NumLayers()
}
