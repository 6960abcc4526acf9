// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Command nmt trains a GRU encoder-decoder translation model on a
// tab-separated parallel corpus and optionally translates a sentence.
//
// Usage:
//
//	nmt -pairs train.tsv -epochs 10 -translate "guten morgen"
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nlpkit-ml/nlpkit/autodiff"
	"github.com/nlpkit-ml/nlpkit/backend/cpu"
	"github.com/nlpkit-ml/nlpkit/data"
	"github.com/nlpkit-ml/nlpkit/seq2seq"
)

func main() {
	pairsPath := flag.String("pairs", "", "Tab-separated source/target sentence pairs (required)")
	embedDim := flag.Int("embed", 256, "Embedding dimensionality")
	hiddenDim := flag.Int("hidden", 512, "GRU hidden size")
	numLayers := flag.Int("layers", 2, "Encoder and decoder GRU layers")
	dropout := flag.Float64("dropout", 0.5, "Dropout probability")
	batchSize := flag.Int("batch", 32, "Sentence pairs per batch")
	epochs := flag.Int("epochs", 10, "Training epochs")
	lr := flag.Float64("lr", 0.001, "Adam learning rate")
	teacherForcing := flag.Float64("teacher-forcing", 0.5, "Ground-truth feed probability")
	minFreq := flag.Int("min-freq", 2, "Minimum token frequency for the vocabularies")
	translate := flag.String("translate", "", "Source sentence to translate after training")
	maxLen := flag.Int("max-len", 50, "Maximum decoded sentence length")
	seed := flag.Int64("seed", 42, "Batch shuffling seed")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *pairsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: nmt -pairs train.tsv [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	tok := data.NewWhitespace()
	pairs, err := data.LoadPairs(*pairsPath, tok, tok)
	if err != nil {
		log.WithError(err).Fatal("loading pairs failed")
	}

	var srcSents, trgSents [][]string
	for _, p := range pairs {
		srcSents = append(srcSents, p.Src)
		trgSents = append(trgSents, p.Trg)
	}
	srcVocab := data.BuildVocab(srcSents, *minFreq)
	trgVocab := data.BuildVocab(trgSents, *minFreq)

	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // reproducible shuffling
	batches := data.BatchPairs(pairs, srcVocab, trgVocab, *batchSize, rng)
	log.WithFields(logrus.Fields{
		"pairs":     len(pairs),
		"src_vocab": srcVocab.Size(),
		"trg_vocab": trgVocab.Size(),
		"batches":   len(batches),
	}).Info("corpus prepared")

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	encoder := seq2seq.NewEncoder(srcVocab.Size(), *embedDim, *hiddenDim, *numLayers, float32(*dropout), backend)
	decoder := seq2seq.NewDecoder(trgVocab.Size(), *embedDim, *hiddenDim, *numLayers, float32(*dropout), backend)
	model := seq2seq.NewSeq2Seq(encoder, decoder, backend)
	model.InitWeights()

	trainer := seq2seq.NewTrainer(model, seq2seq.TrainConfig{
		Epochs:         *epochs,
		LR:             float32(*lr),
		TeacherForcing: float32(*teacherForcing),
	}, backend, log)

	loss := trainer.Train(batches)
	log.WithField("loss", loss).Info("training finished")

	if *translate != "" {
		src, err := tok.Tokenize(*translate)
		if err != nil {
			log.WithError(err).Fatal("tokenizing input failed")
		}
		out := seq2seq.Translate(model, src, srcVocab, trgVocab, *maxLen)
		fmt.Printf("%s\t->\t%s\n", *translate, strings.Join(out, " "))
	}
}
