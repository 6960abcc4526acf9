package seq2seq

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Decoder generates target tokens one step at a time with a GRU stack as
// deep as the encoder's. The encoder context is re-injected at every step:
// the bottom cell consumes the embedded token concatenated with the
// context, deeper cells consume the layer below, and the output head sees
// the embedded token, the top hidden state, and the context.
type Decoder[B tensor.Backend] struct {
	vocabSize int
	embedding *nn.Embedding[B]
	dropout   *nn.Dropout[B]
	cells     []*nn.GRUCell[B]
	out       *nn.Linear[B]
	backend   B
}

// NewDecoder creates a decoder over a target vocabulary with numLayers
// stacked GRU cells.
func NewDecoder[B tensor.Backend](vocabSize, embedDim, hiddenDim, numLayers int, dropout float32, backend B) *Decoder[B] {
	if numLayers < 1 {
		panic(fmt.Sprintf("Decoder: numLayers must be >= 1, got %d", numLayers))
	}

	cells := make([]*nn.GRUCell[B], numLayers)
	for l := range cells {
		in := embedDim + hiddenDim
		if l > 0 {
			in = hiddenDim
		}
		cells[l] = nn.NewGRUCell(in, hiddenDim, backend)
	}

	return &Decoder[B]{
		vocabSize: vocabSize,
		embedding: nn.NewEmbedding(vocabSize, embedDim, backend),
		dropout:   nn.NewDropout(dropout, backend),
		cells:     cells,
		out:       nn.NewLinear(embedDim+hiddenDim+hiddenDim, vocabSize, backend),
		backend:   backend,
	}
}

// Step decodes one time step.
//
// input is the [batch] token IDs, hidden is the previous decoder state as
// one [batch, hidden_dim] tensor per layer, context is the fixed encoder
// summary [batch, hidden_dim]. Returns logits [batch, vocab] and the new
// per-layer hidden states.
func (d *Decoder[B]) Step(input []int32, hidden []*tensor.Tensor[float32, B], context *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], []*tensor.Tensor[float32, B]) {
	if len(hidden) != len(d.cells) {
		panic(fmt.Sprintf("Decoder: expected %d hidden states, got %d", len(d.cells), len(hidden)))
	}
	batch := len(input)

	indices, err := tensor.FromSlice(input, tensor.Shape{batch}, d.backend)
	if err != nil {
		panic(fmt.Sprintf("Decoder: %v", err))
	}
	embedded := d.dropout.Forward(d.embedding.Lookup(indices)) // [batch, embed]

	newHidden := make([]*tensor.Tensor[float32, B], len(d.cells))
	layerIn := tensor.Cat([]*tensor.Tensor[float32, B]{embedded, context}, 1)
	for l, cell := range d.cells {
		newHidden[l] = cell.Step(layerIn, hidden[l])
		layerIn = newHidden[l]
		if l < len(d.cells)-1 {
			layerIn = d.dropout.Forward(layerIn)
		}
	}

	top := newHidden[len(newHidden)-1]
	headInput := tensor.Cat([]*tensor.Tensor[float32, B]{embedded, top, context}, 1)
	logits := d.out.Forward(headInput)

	return logits, newHidden
}

// Train puts dropout in training mode.
func (d *Decoder[B]) Train() {
	d.dropout.Train()
}

// Eval disables dropout.
func (d *Decoder[B]) Eval() {
	d.dropout.Eval()
}

// Parameters returns the embedding, cell, and output head parameters.
func (d *Decoder[B]) Parameters() []*nn.Parameter[B] {
	params := d.embedding.Parameters()
	for _, cell := range d.cells {
		params = append(params, cell.Parameters()...)
	}
	return append(params, d.out.Parameters()...)
}

// VocabSize returns the target vocabulary size.
func (d *Decoder[B]) VocabSize() int {
	return d.vocabSize
}

// NumLayers returns the GRU stack depth.
func (d *Decoder[B]) NumLayers() int {
	return len(d.cells)
}
