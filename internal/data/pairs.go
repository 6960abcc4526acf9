package data

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
)

// Pair is one tokenized source/target sentence pair.
type Pair struct {
	Src []string
	Trg []string
}

// LoadPairs reads a tab-separated parallel corpus: one "source<TAB>target"
// pair per line. Lines without a tab are skipped.
func LoadPairs(path string, srcTok, trgTok Tokenizer) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parallel corpus: %w", err)
	}
	defer f.Close()

	return ReadPairs(f, srcTok, trgTok)
}

// ReadPairs parses tab-separated pairs from r.
func ReadPairs(r io.Reader, srcTok, trgTok Tokenizer) ([]Pair, error) {
	var pairs []Pair

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		src, trg, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}

		srcTokens, err := srcTok.Tokenize(src)
		if err != nil {
			return nil, fmt.Errorf("tokenize source failed: %w", err)
		}
		trgTokens, err := trgTok.Tokenize(trg)
		if err != nil {
			return nil, fmt.Errorf("tokenize target failed: %w", err)
		}
		if len(srcTokens) == 0 || len(trgTokens) == 0 {
			continue
		}
		pairs = append(pairs, Pair{Src: srcTokens, Trg: trgTokens})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parallel corpus: %w", err)
	}
	return pairs, nil
}

// PairBatch is one padded mini-batch in sequence-major layout: Src[t][b] is
// the source token at time t for batch element b. Every sequence is wrapped
// in <bos>/<eos> and right-padded with <pad> to the batch maximum.
type PairBatch struct {
	Src [][]int32 // [src_len][batch]
	Trg [][]int32 // [trg_len][batch]
}

// BatchPairs numericalizes pairs and groups them into padded batches.
// Pairs are sorted by source length first so batches pad minimally, then
// the batch order is shuffled.
func BatchPairs(pairs []Pair, srcVocab, trgVocab *Vocab, batchSize int, rng *rand.Rand) []PairBatch {
	if batchSize < 1 {
		panic(fmt.Sprintf("BatchPairs: batchSize must be >= 1, got %d", batchSize))
	}

	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Src) < len(sorted[j].Src)
	})

	var batches []PairBatch
	for start := 0; start < len(sorted); start += batchSize {
		end := start + batchSize
		if end > len(sorted) {
			end = len(sorted)
		}
		batches = append(batches, buildBatch(sorted[start:end], srcVocab, trgVocab))
	}

	if rng != nil {
		rng.Shuffle(len(batches), func(i, j int) {
			batches[i], batches[j] = batches[j], batches[i]
		})
	}
	return batches
}

func buildBatch(pairs []Pair, srcVocab, trgVocab *Vocab) PairBatch {
	srcSeqs := make([][]int32, len(pairs))
	trgSeqs := make([][]int32, len(pairs))
	for i, p := range pairs {
		srcSeqs[i] = wrapSentence(srcVocab.IDs(p.Src))
		trgSeqs[i] = wrapSentence(trgVocab.IDs(p.Trg))
	}
	return PairBatch{
		Src: padToSequenceMajor(srcSeqs),
		Trg: padToSequenceMajor(trgSeqs),
	}
}

// wrapSentence adds <bos> and <eos> around an ID sequence.
func wrapSentence(ids []int32) []int32 {
	out := make([]int32, 0, len(ids)+2)
	out = append(out, BosID)
	out = append(out, ids...)
	return append(out, EosID)
}

// padToSequenceMajor pads sequences to the batch maximum and transposes
// to [time][batch].
func padToSequenceMajor(seqs [][]int32) [][]int32 {
	maxLen := 0
	for _, s := range seqs {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}

	out := make([][]int32, maxLen)
	for t := range out {
		row := make([]int32, len(seqs))
		for b, s := range seqs {
			if t < len(s) {
				row[b] = s[t]
			} else {
				row[b] = PadID
			}
		}
		out[t] = row
	}
	return out
}
