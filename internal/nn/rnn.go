package nn

import (
	"fmt"
	"math"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// RNNCell is a single-step Elman recurrent cell.
//
// Computes h' = act(x @ W_ih.T + b_ih + h @ W_hh.T + b_hh) where x is
// [batch, input_size] and h is [batch, hidden_size]. The nonlinearity is
// selected by name: "tanh" (default) or "relu".
//
// All weights and biases are initialized from U(-1/sqrt(hidden_size),
// 1/sqrt(hidden_size)).
type RNNCell[B tensor.Backend] struct {
	inputSize  int
	hiddenSize int
	weightIH   *Parameter[B] // [hidden_size, input_size]
	weightHH   *Parameter[B] // [hidden_size, hidden_size]
	biasIH     *Parameter[B] // [hidden_size], nil when bias is disabled
	biasHH     *Parameter[B] // [hidden_size], nil when bias is disabled
	act        func(*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
	backend    B
}

// NewRNNCell creates an RNNCell. Returns an error for an unknown
// nonlinearity name.
func NewRNNCell[B tensor.Backend](inputSize, hiddenSize int, bias bool, nonlinearity string, backend B) (*RNNCell[B], error) {
	act, err := nonlinearityFunc[B](nonlinearity)
	if err != nil {
		return nil, err
	}

	bound := float32(1 / math.Sqrt(float64(hiddenSize)))
	cell := &RNNCell[B]{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		weightIH:   NewParameter("weight_ih", Uniform(bound, tensor.Shape{hiddenSize, inputSize}, backend)),
		weightHH:   NewParameter("weight_hh", Uniform(bound, tensor.Shape{hiddenSize, hiddenSize}, backend)),
		act:        act,
		backend:    backend,
	}
	if bias {
		cell.biasIH = NewParameter("bias_ih", Uniform(bound, tensor.Shape{hiddenSize}, backend))
		cell.biasHH = NewParameter("bias_hh", Uniform(bound, tensor.Shape{hiddenSize}, backend))
	}
	return cell, nil
}

// Step advances the hidden state by one time step. A nil hidden state is
// treated as zeros.
//
// Input shape: [batch, input_size]
// Hidden shape: [batch, hidden_size]
func (c *RNNCell[B]) Step(input, hidden *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	c.checkForwardInput(input)
	if hidden == nil {
		hidden = Zeros(tensor.Shape{input.Shape()[0], c.hiddenSize}, c.backend)
	}
	c.checkForwardHidden(input, hidden)

	pre := input.MatMul(c.weightIH.Tensor().Transpose())
	pre = pre.Add(hidden.MatMul(c.weightHH.Tensor().Transpose()))
	if c.biasIH != nil {
		pre = pre.Add(c.biasIH.Tensor().Reshape(1, c.hiddenSize))
		pre = pre.Add(c.biasHH.Tensor().Reshape(1, c.hiddenSize))
	}
	return c.act(pre)
}

// Forward satisfies Module by running a single step from a zero hidden state.
func (c *RNNCell[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return c.Step(input, nil)
}

// Parameters returns the cell's weights and biases.
func (c *RNNCell[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{c.weightIH, c.weightHH}
	if c.biasIH != nil {
		params = append(params, c.biasIH, c.biasHH)
	}
	return params
}

// HiddenSize returns the hidden state dimensionality.
func (c *RNNCell[B]) HiddenSize() int {
	return c.hiddenSize
}

func (c *RNNCell[B]) checkForwardInput(input *tensor.Tensor[float32, B]) {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("RNNCell: input must be 2D [batch, input_size], got shape %v", shape))
	}
	if shape[1] != c.inputSize {
		panic(fmt.Sprintf("RNNCell: input has inconsistent input_size: got %d, expected %d", shape[1], c.inputSize))
	}
}

func (c *RNNCell[B]) checkForwardHidden(input, hidden *tensor.Tensor[float32, B]) {
	shape := hidden.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("RNNCell: hidden must be 2D [batch, hidden_size], got shape %v", shape))
	}
	if shape[0] != input.Shape()[0] {
		panic(fmt.Sprintf("RNNCell: input batch size %d doesn't match hidden batch size %d", input.Shape()[0], shape[0]))
	}
	if shape[1] != c.hiddenSize {
		panic(fmt.Sprintf("RNNCell: hidden has inconsistent hidden_size: got %d, expected %d", shape[1], c.hiddenSize))
	}
}

// NaiveRNN is a from-scratch recurrent language model layer: an Elman
// recurrence followed by a per-step output projection.
//
//	h_t = tanh(x_t @ W_xh + h_{t-1} @ W_hh + b_h)
//	y_t = h_t @ W_hq + b_q
//
// The sequence is presented as one [batch, input_size] tensor per step.
type NaiveRNN[B tensor.Backend] struct {
	inputSize  int
	hiddenSize int
	outputSize int
	weightXH   *Parameter[B] // [input_size, hidden_size]
	weightHH   *Parameter[B] // [hidden_size, hidden_size]
	biasH      *Parameter[B] // [hidden_size]
	weightHQ   *Parameter[B] // [hidden_size, output_size]
	biasQ      *Parameter[B] // [output_size]
	backend    B
}

// NewNaiveRNN creates a NaiveRNN. Every parameter, biases included, is
// initialized from U(-1/sqrt(hidden), 1/sqrt(hidden)).
func NewNaiveRNN[B tensor.Backend](inputSize, hiddenSize, outputSize int, backend B) *NaiveRNN[B] {
	bound := float32(1 / math.Sqrt(float64(hiddenSize)))
	return &NaiveRNN[B]{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		outputSize: outputSize,
		weightXH:   NewParameter("weight_xh", Uniform(bound, tensor.Shape{inputSize, hiddenSize}, backend)),
		weightHH:   NewParameter("weight_hh", Uniform(bound, tensor.Shape{hiddenSize, hiddenSize}, backend)),
		biasH:      NewParameter("bias_h", Uniform(bound, tensor.Shape{hiddenSize}, backend)),
		weightHQ:   NewParameter("weight_hq", Uniform(bound, tensor.Shape{hiddenSize, outputSize}, backend)),
		biasQ:      NewParameter("bias_q", Uniform(bound, tensor.Shape{outputSize}, backend)),
		backend:    backend,
	}
}

// ForwardSequence runs the recurrence over a sequence of steps and returns
// the per-step outputs plus the final hidden state. A nil initial state is
// treated as zeros.
func (r *NaiveRNN[B]) ForwardSequence(steps []*tensor.Tensor[float32, B], state *tensor.Tensor[float32, B]) ([]*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	if len(steps) == 0 {
		panic("NaiveRNN: empty input sequence")
	}
	if state == nil {
		state = Zeros(tensor.Shape{steps[0].Shape()[0], r.hiddenSize}, r.backend)
	}

	outputs := make([]*tensor.Tensor[float32, B], 0, len(steps))
	for _, x := range steps {
		pre := x.MatMul(r.weightXH.Tensor())
		pre = pre.Add(state.MatMul(r.weightHH.Tensor()))
		pre = pre.Add(r.biasH.Tensor().Reshape(1, r.hiddenSize))
		state = pre.Tanh()

		y := state.MatMul(r.weightHQ.Tensor())
		y = y.Add(r.biasQ.Tensor().Reshape(1, r.outputSize))
		outputs = append(outputs, y)
	}
	return outputs, state
}

// Forward satisfies Module by treating the input as a single-step sequence.
func (r *NaiveRNN[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	outputs, _ := r.ForwardSequence([]*tensor.Tensor[float32, B]{input}, nil)
	return outputs[0]
}

// Parameters returns all five parameter tensors.
func (r *NaiveRNN[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{r.weightXH, r.weightHH, r.biasH, r.weightHQ, r.biasQ}
}
