package glove

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/nlpkit-ml/nlpkit/internal/autodiff"
	"github.com/nlpkit-ml/nlpkit/internal/data"
	"github.com/nlpkit-ml/nlpkit/internal/optim"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Trainer runs GloVe training over a co-occurrence dataset.
type Trainer[B autodiff.BackwardCapable] struct {
	model     *Model[B]
	config    Config
	optimizer *optim.Adam[B]
	backend   B
	log       logrus.FieldLogger
	rng       *rand.Rand
}

// NewTrainer creates a trainer with an Adam optimizer over the model's
// parameters. Zero config fields fall back to the GloVe defaults.
func NewTrainer[B autodiff.BackwardCapable](model *Model[B], config Config, backend B, log logrus.FieldLogger) *Trainer[B] {
	config = config.fillDefaults()

	return &Trainer[B]{
		model:     model,
		config:    config,
		optimizer: optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: config.LR}, backend),
		backend:   backend,
		log:       log,
		rng:       rand.New(rand.NewSource(42)), //nolint:gosec // reproducible shuffling
	}
}

// Train runs the configured number of epochs and returns the final average
// epoch loss. The caller must have recording enabled on the tape.
func (t *Trainer[B]) Train(dataset *data.CooccurrenceDataset) float32 {
	var avgLoss float32
	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		avgLoss = t.trainEpoch(dataset)
		t.log.WithFields(logrus.Fields{
			"epoch": epoch,
			"loss":  avgLoss,
		}).Info("epoch complete")
	}
	return avgLoss
}

// trainEpoch shuffles the dataset and runs one pass of mini-batch updates.
func (t *Trainer[B]) trainEpoch(dataset *data.CooccurrenceDataset) float32 {
	dataset.Shuffle(t.rng)

	tape := t.backend.GetTape()
	var totalLoss float32
	numBatches := dataset.NumBatches(t.config.BatchSize)

	for i := 0; i < numBatches; i++ {
		words, contexts, counts := dataset.Batch(i, t.config.BatchSize)
		if len(words) == 0 {
			break
		}

		t.optimizer.ZeroGrad()

		loss := Loss(t.model, words, contexts, counts, t.config.MMax, t.config.Alpha)
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

	return totalLoss / float32(numBatches)
}

// Model returns the trained model.
func (t *Trainer[B]) Model() *Model[B] {
	return t.model
}
