// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package glove trains GloVe word embeddings by weighted least squares
// over corpus co-occurrence counts.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	config := glove.DefaultConfig()
//	model := glove.NewModel(vocab.Size(), config.EmbeddingDim, backend)
//	trainer := glove.NewTrainer(model, config, backend, log)
//	trainer.Train(dataset)
//
//	err := glove.SaveVectors("vectors.txt", vocab, model.CombinedVectors())
package glove

import (
	"github.com/sirupsen/logrus"

	"github.com/nlpkit-ml/nlpkit/internal/autodiff"
	"github.com/nlpkit-ml/nlpkit/internal/data"
	"github.com/nlpkit-ml/nlpkit/internal/glove"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Config holds GloVe training hyperparameters. Zero fields fall back to
// DefaultConfig values.
type Config = glove.Config

// DefaultConfig returns the standard GloVe hyperparameters.
func DefaultConfig() Config {
	return glove.DefaultConfig()
}

// Model holds the four GloVe parameter tables: word and context
// embeddings plus per-token scalar biases.
type Model[B tensor.Backend] = glove.Model[B]

// NewModel creates a GloVe model for a vocabulary.
func NewModel[B tensor.Backend](vocabSize, embeddingDim int, backend B) *Model[B] {
	return glove.NewModel(vocabSize, embeddingDim, backend)
}

// Loss computes the weighted least-squares GloVe loss over one batch of
// co-occurrence triples as a scalar tensor.
func Loss[B tensor.Backend](m *Model[B], words, contexts []int32, counts []float32, mMax, alpha float32) *tensor.Tensor[float32, B] {
	return glove.Loss(m, words, contexts, counts, mMax, alpha)
}

// Trainer runs Adam training over shuffled co-occurrence batches.
type Trainer[B autodiff.BackwardCapable] = glove.Trainer[B]

// NewTrainer creates a trainer. The caller must have recording enabled on
// the backend's tape before calling Train.
func NewTrainer[B autodiff.BackwardCapable](model *Model[B], config Config, backend B, log logrus.FieldLogger) *Trainer[B] {
	return glove.NewTrainer(model, config, backend, log)
}

// SaveVectors writes vectors in the word2vec text format: a "<count>
// <dim>" header followed by one "token v1 ... vd" line per entry.
func SaveVectors(path string, vocab *data.Vocab, vectors [][]float32) error {
	return glove.SaveVectors(path, vocab, vectors)
}

// LoadVectors reads a word2vec text format file, returning tokens and
// their vectors in file order.
func LoadVectors(path string) ([]string, [][]float32, error) {
	return glove.LoadVectors(path)
}
