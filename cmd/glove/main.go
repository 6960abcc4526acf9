// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Command glove trains GloVe word embeddings on a plain-text corpus and
// writes them in the word2vec text format.
//
// Usage:
//
//	glove -corpus corpus.txt -out vectors.txt -dim 64 -epochs 10
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/nlpkit-ml/nlpkit/autodiff"
	"github.com/nlpkit-ml/nlpkit/backend/cpu"
	"github.com/nlpkit-ml/nlpkit/data"
	"github.com/nlpkit-ml/nlpkit/glove"
)

func main() {
	corpusPath := flag.String("corpus", "", "Plain-text corpus, one sentence per line (required)")
	outPath := flag.String("out", "vectors.txt", "Output path for trained vectors")
	dim := flag.Int("dim", 64, "Embedding dimensionality")
	window := flag.Int("window", 2, "Co-occurrence window radius")
	batchSize := flag.Int("batch", 1024, "Co-occurrence triples per batch")
	epochs := flag.Int("epochs", 10, "Training epochs")
	lr := flag.Float64("lr", 0.001, "Adam learning rate")
	mMax := flag.Float64("mmax", 100, "Weighting cutoff m_max")
	alpha := flag.Float64("alpha", 0.75, "Weighting exponent")
	minFreq := flag.Int("min-freq", 1, "Minimum token frequency for the vocabulary")
	tokName := flag.String("tokenizer", "whitespace", "Tokenizer: whitespace or tiktoken")
	encoding := flag.String("encoding", "cl100k_base", "tiktoken encoding name")
	query := flag.String("query", "", "Print nearest neighbors of this token after training")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "usage: glove -corpus corpus.txt [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	tok, err := newTokenizer(*tokName, *encoding)
	if err != nil {
		log.WithError(err).Fatal("tokenizer setup failed")
	}

	sentences, err := data.LoadCorpus(*corpusPath, tok)
	if err != nil {
		log.WithError(err).Fatal("loading corpus failed")
	}
	vocab := data.BuildVocab(sentences, *minFreq)
	dataset := data.BuildCooccurrence(sentences, vocab, *window)
	log.WithFields(logrus.Fields{
		"sentences": len(sentences),
		"vocab":     vocab.Size(),
		"triples":   dataset.Len(),
	}).Info("corpus prepared")

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	config := glove.Config{
		EmbeddingDim: *dim,
		ContextSize:  *window,
		BatchSize:    *batchSize,
		Epochs:       *epochs,
		MMax:         float32(*mMax),
		Alpha:        float32(*alpha),
		LR:           float32(*lr),
	}
	model := glove.NewModel(vocab.Size(), *dim, backend)
	trainer := glove.NewTrainer(model, config, backend, log)

	loss := trainer.Train(dataset)
	log.WithField("loss", loss).Info("training finished")

	vectors := model.CombinedVectors()
	if err := glove.SaveVectors(*outPath, vocab, vectors); err != nil {
		log.WithError(err).Fatal("saving vectors failed")
	}
	log.WithField("path", *outPath).Info("vectors saved")

	if *query != "" {
		printNeighbors(*query, vocab, vectors, 8)
	}
}

func newTokenizer(name, encoding string) (data.Tokenizer, error) {
	switch name {
	case "whitespace":
		return data.NewWhitespace(), nil
	case "tiktoken":
		return data.NewTikToken(encoding)
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

// printNeighbors lists the k tokens whose vectors are closest to the query
// token by cosine similarity.
func printNeighbors(query string, vocab *data.Vocab, vectors [][]float32, k int) {
	if !vocab.Contains(query) {
		fmt.Printf("%q is not in the vocabulary\n", query)
		return
	}
	q := vectors[vocab.ID(query)]

	type scored struct {
		token string
		sim   float64
	}
	var candidates []scored
	for id, vec := range vectors {
		token := vocab.Token(int32(id))
		if token == query || id < 4 { // skip specials
			continue
		}
		candidates = append(candidates, scored{token, cosine(q, vec)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].sim > candidates[j].sim })

	if k > len(candidates) {
		k = len(candidates)
	}
	fmt.Printf("nearest neighbors of %q:\n", query)
	for _, c := range candidates[:k] {
		fmt.Printf("  %-20s %.4f\n", c.token, c.sim)
	}
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
