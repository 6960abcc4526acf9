package seq2seq

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Seq2Seq couples an encoder and decoder into a full translation model.
//
// Training uses teacher forcing: at each decoding step the next input is
// the ground-truth token with probability teacherForcing, otherwise the
// model's own argmax prediction.
type Seq2Seq[B tensor.Backend] struct {
	encoder *Encoder[B]
	decoder *Decoder[B]
	backend B
	rng     *rand.Rand
}

// NewSeq2Seq creates a translation model. Encoder and decoder must be
// equally deep: every encoder layer's final state initializes the matching
// decoder layer.
func NewSeq2Seq[B tensor.Backend](encoder *Encoder[B], decoder *Decoder[B], backend B) *Seq2Seq[B] {
	if encoder.NumLayers() != decoder.NumLayers() {
		panic(fmt.Sprintf("Seq2Seq: encoder has %d layers, decoder has %d", encoder.NumLayers(), decoder.NumLayers()))
	}
	return &Seq2Seq[B]{
		encoder: encoder,
		decoder: decoder,
		backend: backend,
		rng:     rand.New(rand.NewSource(1)), //nolint:gosec // reproducible teacher forcing
	}
}

// InitWeights re-initializes every parameter: weights from N(0, 0.01),
// biases to zero.
func (m *Seq2Seq[B]) InitWeights() {
	for _, p := range m.Parameters() {
		data := p.Tensor().Data()
		if strings.Contains(p.Name(), "bias") {
			for i := range data {
				data[i] = 0
			}
			continue
		}
		src := nn.Normal(0, 0.01, p.Tensor().Shape(), m.backend)
		copy(data, src.Data())
	}
}

// Forward runs teacher-forced decoding over a sequence-major batch.
//
// src[t][b] and trg[t][b] are token IDs; trg[0] must be the <bos> row.
// Returns one [batch, vocab] logits tensor per target step. Step 0 is a
// zero tensor kept for alignment with the target sequence; losses are
// computed from step 1 on.
func (m *Seq2Seq[B]) Forward(src, trg [][]int32, teacherForcing float32) []*tensor.Tensor[float32, B] {
	if len(trg) < 2 {
		panic(fmt.Sprintf("Seq2Seq: target needs at least 2 steps, got %d", len(trg)))
	}
	batch := len(trg[0])

	hidden := m.encoder.Forward(src)
	context := hidden[len(hidden)-1]

	outputs := make([]*tensor.Tensor[float32, B], len(trg))
	outputs[0] = nn.Zeros(tensor.Shape{batch, m.decoder.VocabSize()}, m.backend)

	input := trg[0]
	for t := 1; t < len(trg); t++ {
		logits, newHidden := m.decoder.Step(input, hidden, context)
		outputs[t] = logits
		hidden = newHidden

		if m.rng.Float32() < teacherForcing {
			input = trg[t]
		} else {
			input = argmaxRows(logits)
		}
	}
	return outputs
}

// argmaxRows returns the most likely token per batch row.
func argmaxRows[B tensor.Backend](logits *tensor.Tensor[float32, B]) []int32 {
	ids := logits.Argmax(1)
	out := make([]int32, len(ids.Data()))
	copy(out, ids.Data())
	return out
}

// Train puts both halves in training mode.
func (m *Seq2Seq[B]) Train() {
	m.encoder.Train()
	m.decoder.Train()
}

// Eval disables dropout in both halves.
func (m *Seq2Seq[B]) Eval() {
	m.encoder.Eval()
	m.decoder.Eval()
}

// Parameters returns encoder plus decoder parameters.
func (m *Seq2Seq[B]) Parameters() []*nn.Parameter[B] {
	params := m.encoder.Parameters()
	return append(params, m.decoder.Parameters()...)
}

// Encoder returns the encoder half.
func (m *Seq2Seq[B]) Encoder() *Encoder[B] {
	return m.encoder
}

// Decoder returns the decoder half.
func (m *Seq2Seq[B]) Decoder() *Decoder[B] {
	return m.decoder
}
