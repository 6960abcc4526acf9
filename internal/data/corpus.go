package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCorpus reads a text file with one sentence per line and tokenizes
// each line. Blank lines are skipped.
func LoadCorpus(path string, tok Tokenizer) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	return ReadCorpus(f, tok)
}

// ReadCorpus tokenizes one sentence per line from r.
func ReadCorpus(r io.Reader, tok Tokenizer) ([][]string, error) {
	var sentences [][]string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens, err := tok.Tokenize(line)
		if err != nil {
			return nil, fmt.Errorf("tokenize failed: %w", err)
		}
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return sentences, nil
}
