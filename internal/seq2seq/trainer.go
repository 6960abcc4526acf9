package seq2seq

import (
	"github.com/sirupsen/logrus"

	"github.com/nlpkit-ml/nlpkit/internal/autodiff"
	"github.com/nlpkit-ml/nlpkit/internal/data"
	"github.com/nlpkit-ml/nlpkit/internal/optim"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// TrainConfig holds seq2seq training hyperparameters.
//
// TeacherForcing is the ground-truth feed probability in [0, 1]. Zero is a
// meaningful setting (the decoder always consumes its own predictions), so
// it is never defaulted; a negative value selects the default 0.5.
type TrainConfig struct {
	Epochs         int     // Training epochs (default: 10)
	LR             float32 // Adam learning rate (default: 0.001)
	TeacherForcing float32 // Ground-truth feed probability (negative: 0.5)
}

func (c TrainConfig) fillDefaults() TrainConfig {
	if c.Epochs == 0 {
		c.Epochs = 10
	}
	if c.LR == 0 {
		c.LR = 0.001
	}
	if c.TeacherForcing < 0 {
		c.TeacherForcing = 0.5
	}
	return c
}

// Trainer runs teacher-forced cross-entropy training over padded pair
// batches.
type Trainer[B tensor.Backend] struct {
	model     *Seq2Seq[*autodiff.AutodiffBackend[B]]
	config    TrainConfig
	optimizer *optim.Adam[*autodiff.AutodiffBackend[B]]
	backend   *autodiff.AutodiffBackend[B]
	log       logrus.FieldLogger
}

// NewTrainer creates a trainer with an Adam optimizer over the model's
// parameters.
func NewTrainer[B tensor.Backend](model *Seq2Seq[*autodiff.AutodiffBackend[B]], config TrainConfig, backend *autodiff.AutodiffBackend[B], log logrus.FieldLogger) *Trainer[B] {
	config = config.fillDefaults()

	return &Trainer[B]{
		model:     model,
		config:    config,
		optimizer: optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: config.LR}, backend),
		backend:   backend,
		log:       log,
	}
}

// Train runs the configured number of epochs and returns the final average
// epoch loss. The caller must have recording enabled on the tape.
func (t *Trainer[B]) Train(batches []data.PairBatch) float32 {
	t.model.Train()

	var avgLoss float32
	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		avgLoss = t.trainEpoch(batches)
		t.log.WithFields(logrus.Fields{
			"epoch": epoch,
			"loss":  avgLoss,
		}).Info("epoch complete")
	}
	return avgLoss
}

func (t *Trainer[B]) trainEpoch(batches []data.PairBatch) float32 {
	tape := t.backend.Tape()
	var totalLoss float32

	for _, batch := range batches {
		t.optimizer.ZeroGrad()

		outputs := t.model.Forward(batch.Src, batch.Trg, t.config.TeacherForcing)
		loss := CrossEntropyLoss(outputs, batch.Trg, t.backend)
		totalLoss += loss.Raw().AsFloat32()[0]

		outputGrad, err := tensor.NewRaw(loss.Shape(), loss.DType(), t.backend.Device())
		if err != nil {
			panic(err)
		}
		outputGrad.AsFloat32()[0] = 1

		grads := tape.Backward(outputGrad, t.backend)
		t.optimizer.Step(grads)

		tape.Clear()
	}

	return totalLoss / float32(len(batches))
}

// CrossEntropyLoss flattens decoder outputs from step 1 on into one
// [(steps-1)*batch, vocab] logits matrix and computes the mean
// cross-entropy against the matching target tokens. Padding positions
// count toward the loss like any other token.
func CrossEntropyLoss[B tensor.Backend](outputs []*tensor.Tensor[float32, *autodiff.AutodiffBackend[B]], trg [][]int32, backend *autodiff.AutodiffBackend[B]) *tensor.Tensor[float32, *autodiff.AutodiffBackend[B]] {
	logits := tensor.Cat(outputs[1:], 0)

	batch := len(trg[0])
	flat := make([]int32, 0, (len(trg)-1)*batch)
	for t := 1; t < len(trg); t++ {
		flat = append(flat, trg[t]...)
	}
	targets, err := tensor.FromSlice(flat, tensor.Shape{len(flat)}, backend)
	if err != nil {
		panic(err)
	}

	raw := backend.CrossEntropy(logits.Raw(), targets.Raw())
	return tensor.New[float32, *autodiff.AutodiffBackend[B]](raw, backend)
}

// Model returns the trained model.
func (t *Trainer[B]) Model() *Seq2Seq[*autodiff.AutodiffBackend[B]] {
	return t.model
}
