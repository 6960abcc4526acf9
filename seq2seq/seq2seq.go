// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package seq2seq provides GRU encoder-decoder neural machine translation
// with teacher forcing, following Cho et al. (2014).
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	encoder := seq2seq.NewEncoder(srcVocab.Size(), 256, 512, 2, 0.5, backend)
//	decoder := seq2seq.NewDecoder(trgVocab.Size(), 256, 512, 2, 0.5, backend)
//	model := seq2seq.NewSeq2Seq(encoder, decoder, backend)
//	model.InitWeights()
//
//	trainer := seq2seq.NewTrainer(model, seq2seq.TrainConfig{Epochs: 10, TeacherForcing: 0.5}, backend, log)
//	trainer.Train(batches)
//
//	tokens := seq2seq.Translate(model, srcTokens, srcVocab, trgVocab, 50)
package seq2seq

import (
	"github.com/sirupsen/logrus"

	"github.com/nlpkit-ml/nlpkit/internal/autodiff"
	"github.com/nlpkit-ml/nlpkit/internal/data"
	"github.com/nlpkit-ml/nlpkit/internal/seq2seq"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Encoder compresses a source sentence into per-layer context states.
type Encoder[B tensor.Backend] = seq2seq.Encoder[B]

// NewEncoder creates an encoder over a source vocabulary.
func NewEncoder[B tensor.Backend](vocabSize, embedDim, hiddenDim, numLayers int, dropout float32, backend B) *Encoder[B] {
	return seq2seq.NewEncoder(vocabSize, embedDim, hiddenDim, numLayers, dropout, backend)
}

// Decoder generates target tokens one step at a time, re-injecting the
// encoder context at every step.
type Decoder[B tensor.Backend] = seq2seq.Decoder[B]

// NewDecoder creates a decoder over a target vocabulary with numLayers
// stacked GRU cells.
func NewDecoder[B tensor.Backend](vocabSize, embedDim, hiddenDim, numLayers int, dropout float32, backend B) *Decoder[B] {
	return seq2seq.NewDecoder(vocabSize, embedDim, hiddenDim, numLayers, dropout, backend)
}

// Seq2Seq couples an encoder and decoder into a full translation model.
type Seq2Seq[B tensor.Backend] = seq2seq.Seq2Seq[B]

// NewSeq2Seq creates a translation model. Encoder and decoder must be
// equally deep: every encoder layer's final state initializes the matching
// decoder layer.
func NewSeq2Seq[B tensor.Backend](encoder *Encoder[B], decoder *Decoder[B], backend B) *Seq2Seq[B] {
	return seq2seq.NewSeq2Seq(encoder, decoder, backend)
}

// TrainConfig holds seq2seq training hyperparameters. Zero Epochs and LR
// fall back to defaults; a TeacherForcing of zero is honored (the decoder
// always feeds its own predictions) and a negative value selects the
// default 0.5.
type TrainConfig = seq2seq.TrainConfig

// Trainer runs teacher-forced cross-entropy training over padded pair
// batches.
type Trainer[B tensor.Backend] = seq2seq.Trainer[B]

// NewTrainer creates a trainer with an Adam optimizer over the model's
// parameters. The caller must have recording enabled on the tape.
func NewTrainer[B tensor.Backend](model *Seq2Seq[*autodiff.AutodiffBackend[B]], config TrainConfig, backend *autodiff.AutodiffBackend[B], log logrus.FieldLogger) *Trainer[B] {
	return seq2seq.NewTrainer(model, config, backend, log)
}

// CrossEntropyLoss computes the mean cross-entropy over all decoder steps
// from step 1 on.
func CrossEntropyLoss[B tensor.Backend](outputs []*tensor.Tensor[float32, *autodiff.AutodiffBackend[B]], trg [][]int32, backend *autodiff.AutodiffBackend[B]) *tensor.Tensor[float32, *autodiff.AutodiffBackend[B]] {
	return seq2seq.CrossEntropyLoss(outputs, trg, backend)
}

// Translate greedily decodes a single tokenized source sentence into
// target tokens, stopping at <eos> or after maxLen steps.
func Translate[B tensor.Backend](m *Seq2Seq[B], src []string, srcVocab, trgVocab *data.Vocab, maxLen int) []string {
	return seq2seq.Translate(m, src, srcVocab, trgVocab, maxLen)
}
