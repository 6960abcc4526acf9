package glove

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nlpkit-ml/nlpkit/internal/data"
)

// SaveVectors writes embeddings in the word2vec text format: a
// "<vocab> <dim>" header line followed by one "token v1 v2 ..." line per
// vocabulary entry.
func SaveVectors(path string, vocab *data.Vocab, vectors [][]float32) error {
	if len(vectors) != vocab.Size() {
		return fmt.Errorf("vector count %d doesn't match vocab size %d", len(vectors), vocab.Size())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create vector file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	fmt.Fprintf(w, "%d %d\n", len(vectors), dim)

	for i, vec := range vectors {
		w.WriteString(vocab.Token(int32(i))) //nolint:gosec // vocab size fits in int32
		for _, v := range vec {
			w.WriteByte(' ')
			w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write vector file: %w", err)
	}
	return nil
}

// LoadVectors reads a word2vec-format text file back into token strings and
// their vectors.
func LoadVectors(path string) ([]string, [][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open vector file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("vector file is empty")
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, nil, fmt.Errorf("malformed header: %q", scanner.Text())
	}
	count, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, nil, fmt.Errorf("malformed vocab count: %w", err)
	}
	dim, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, nil, fmt.Errorf("malformed dimension: %w", err)
	}

	tokens := make([]string, 0, count)
	vectors := make([][]float32, 0, count)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != dim+1 {
			return nil, nil, fmt.Errorf("line %d: expected %d values, got %d", len(tokens)+2, dim, len(fields)-1)
		}

		vec := make([]float32, dim)
		for j, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: bad float %q: %w", len(tokens)+2, field, err)
			}
			vec[j] = float32(v)
		}
		tokens = append(tokens, fields[0])
		vectors = append(vectors, vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read vector file: %w", err)
	}
	if len(tokens) != count {
		return nil, nil, fmt.Errorf("header promised %d vectors, file has %d", count, len(tokens))
	}
	return tokens, vectors, nil
}
