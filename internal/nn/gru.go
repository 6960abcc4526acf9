package nn

import (
	"fmt"
	"math"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// GRUCell is a single-step gated recurrent unit.
//
//	r = σ(x @ W_xr + h @ W_hr + b_r)   reset gate
//	z = σ(x @ W_xz + h @ W_hz + b_z)   update gate
//	n = tanh(x @ W_xn + (r ⊙ h) @ W_hn + b_n)   candidate state
//	h' = z ⊙ h + (1 - z) ⊙ n
//
// Weights are stored per gate in [input_size, hidden_size] orientation so
// each gate is a plain x @ W product. Every parameter, biases included, is
// initialized from U(-1/sqrt(hidden_size), 1/sqrt(hidden_size)).
type GRUCell[B tensor.Backend] struct {
	inputSize  int
	hiddenSize int

	weightXR *Parameter[B] // [input_size, hidden_size]
	weightHR *Parameter[B] // [hidden_size, hidden_size]
	biasR    *Parameter[B] // [hidden_size]

	weightXZ *Parameter[B]
	weightHZ *Parameter[B]
	biasZ    *Parameter[B]

	weightXN *Parameter[B]
	weightHN *Parameter[B]
	biasN    *Parameter[B]

	backend B
}

// NewGRUCell creates a GRUCell.
func NewGRUCell[B tensor.Backend](inputSize, hiddenSize int, backend B) *GRUCell[B] {
	bound := float32(1 / math.Sqrt(float64(hiddenSize)))
	gate := func(name string, rows int) *Parameter[B] {
		return NewParameter(name, Uniform(bound, tensor.Shape{rows, hiddenSize}, backend))
	}

	return &GRUCell[B]{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		weightXR:   gate("weight_xr", inputSize),
		weightHR:   gate("weight_hr", hiddenSize),
		biasR:      NewParameter("bias_r", Uniform(bound, tensor.Shape{hiddenSize}, backend)),
		weightXZ:   gate("weight_xz", inputSize),
		weightHZ:   gate("weight_hz", hiddenSize),
		biasZ:      NewParameter("bias_z", Uniform(bound, tensor.Shape{hiddenSize}, backend)),
		weightXN:   gate("weight_xn", inputSize),
		weightHN:   gate("weight_hn", hiddenSize),
		biasN:      NewParameter("bias_n", Uniform(bound, tensor.Shape{hiddenSize}, backend)),
		backend:    backend,
	}
}

// Step advances the hidden state by one time step. A nil hidden state is
// treated as zeros.
//
// Input shape: [batch, input_size]
// Hidden shape: [batch, hidden_size]
func (c *GRUCell[B]) Step(input, hidden *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != c.inputSize {
		panic(fmt.Sprintf("GRUCell: input must be [batch, %d], got shape %v", c.inputSize, shape))
	}
	batch := shape[0]
	if hidden == nil {
		hidden = Zeros(tensor.Shape{batch, c.hiddenSize}, c.backend)
	}

	biasRow := func(p *Parameter[B]) *tensor.Tensor[float32, B] {
		return p.Tensor().Reshape(1, c.hiddenSize)
	}

	r := input.MatMul(c.weightXR.Tensor()).
		Add(hidden.MatMul(c.weightHR.Tensor())).
		Add(biasRow(c.biasR)).
		Sigmoid()

	z := input.MatMul(c.weightXZ.Tensor()).
		Add(hidden.MatMul(c.weightHZ.Tensor())).
		Add(biasRow(c.biasZ)).
		Sigmoid()

	n := input.MatMul(c.weightXN.Tensor()).
		Add(r.Mul(hidden).MatMul(c.weightHN.Tensor())).
		Add(biasRow(c.biasN)).
		Tanh()

	// h' = z ⊙ h + (1 - z) ⊙ n
	oneMinusZ := Ones(tensor.Shape{batch, c.hiddenSize}, c.backend).Sub(z)
	return z.Mul(hidden).Add(oneMinusZ.Mul(n))
}

// Forward satisfies Module by running a single step from a zero hidden state.
func (c *GRUCell[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return c.Step(input, nil)
}

// Parameters returns all nine parameter tensors.
func (c *GRUCell[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{
		c.weightXR, c.weightHR, c.biasR,
		c.weightXZ, c.weightHZ, c.biasZ,
		c.weightXN, c.weightHN, c.biasN,
	}
}

// HiddenSize returns the hidden state dimensionality.
func (c *GRUCell[B]) HiddenSize() int {
	return c.hiddenSize
}

// GRU stacks GRUCells into a multi-layer sequence encoder.
//
// Sequences are presented step by step: steps[t] is the [batch, input_size]
// input at time t. Hidden state is one [batch, hidden_size] tensor per
// layer. When numLayers > 1, dropout is applied between layers (never to
// the top layer's output).
type GRU[B tensor.Backend] struct {
	inputSize  int
	hiddenSize int
	numLayers  int
	cells      []*GRUCell[B]
	dropout    *Dropout[B]
	backend    B
}

// NewGRU creates a GRU stack. dropout is the inter-layer drop probability;
// it is ignored for single-layer stacks.
func NewGRU[B tensor.Backend](inputSize, hiddenSize, numLayers int, dropout float32, backend B) *GRU[B] {
	if numLayers < 1 {
		panic(fmt.Sprintf("GRU: numLayers must be >= 1, got %d", numLayers))
	}

	cells := make([]*GRUCell[B], numLayers)
	for l := range cells {
		in := inputSize
		if l > 0 {
			in = hiddenSize
		}
		cells[l] = NewGRUCell(in, hiddenSize, backend)
	}

	g := &GRU[B]{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		numLayers:  numLayers,
		cells:      cells,
		backend:    backend,
	}
	if numLayers > 1 && dropout > 0 {
		g.dropout = NewDropout(dropout, backend)
	}
	return g
}

// ForwardSequence runs the stack over a sequence and returns the top
// layer's per-step outputs plus the final hidden state of every layer.
// A nil initial hidden slice is treated as zeros.
func (g *GRU[B]) ForwardSequence(steps []*tensor.Tensor[float32, B], hidden []*tensor.Tensor[float32, B]) ([]*tensor.Tensor[float32, B], []*tensor.Tensor[float32, B]) {
	if len(steps) == 0 {
		panic("GRU: empty input sequence")
	}
	if hidden == nil {
		hidden = make([]*tensor.Tensor[float32, B], g.numLayers)
	}
	if len(hidden) != g.numLayers {
		panic(fmt.Sprintf("GRU: expected %d hidden states, got %d", g.numLayers, len(hidden)))
	}

	states := make([]*tensor.Tensor[float32, B], g.numLayers)
	copy(states, hidden)

	outputs := make([]*tensor.Tensor[float32, B], 0, len(steps))
	for _, x := range steps {
		layerIn := x
		for l, cell := range g.cells {
			states[l] = cell.Step(layerIn, states[l])
			layerIn = states[l]
			if g.dropout != nil && l < g.numLayers-1 {
				layerIn = g.dropout.Forward(layerIn)
			}
		}
		outputs = append(outputs, layerIn)
	}
	return outputs, states
}

// Train puts the inter-layer dropout in training mode.
func (g *GRU[B]) Train() {
	if g.dropout != nil {
		g.dropout.Train()
	}
}

// Eval disables the inter-layer dropout.
func (g *GRU[B]) Eval() {
	if g.dropout != nil {
		g.dropout.Eval()
	}
}

// Parameters returns the parameters of every layer.
func (g *GRU[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, cell := range g.cells {
		params = append(params, cell.Parameters()...)
	}
	return params
}

// HiddenSize returns the hidden state dimensionality.
func (g *GRU[B]) HiddenSize() int {
	return g.hiddenSize
}

// NumLayers returns the stack depth.
func (g *GRU[B]) NumLayers() int {
	return g.numLayers
}
