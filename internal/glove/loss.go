package glove

import (
	"fmt"
	"math"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Loss computes the GloVe weighted least-squares objective for one batch:
//
//	loss = mean( f(count) * (w·c + b_w + b_c - log(count))² )
//	f(count) = min( (count / m_max)^alpha, 1 )
//
// The log counts and weighting factors are constants, so they are built as
// plain tensors outside the gradient path; only the score runs through
// recorded operations.
func Loss[B tensor.Backend](m *Model[B], words, contexts []int32, counts []float32, mMax, alpha float32) *tensor.Tensor[float32, B] {
	batch := len(words)
	if len(contexts) != batch || len(counts) != batch {
		panic(fmt.Sprintf("glove: mismatched batch slices: %d words, %d contexts, %d counts",
			len(words), len(contexts), len(counts)))
	}

	wordsT, err := tensor.FromSlice(words, tensor.Shape{batch}, m.backend)
	if err != nil {
		panic(err)
	}
	contextsT, err := tensor.FromSlice(contexts, tensor.Shape{batch}, m.backend)
	if err != nil {
		panic(err)
	}

	logCounts := make([]float32, batch)
	weights := make([]float32, batch)
	for i, c := range counts {
		logCounts[i] = float32(math.Log(float64(c)))
		f := float32(math.Pow(float64(c/mMax), float64(alpha)))
		if f > 1 {
			f = 1
		}
		weights[i] = f
	}
	logCountsT, err := tensor.FromSlice(logCounts, tensor.Shape{batch}, m.backend)
	if err != nil {
		panic(err)
	}
	weightsT, err := tensor.FromSlice(weights, tensor.Shape{batch}, m.backend)
	if err != nil {
		panic(err)
	}

	diff := m.Score(wordsT, contextsT).Sub(logCountsT)
	weighted := diff.Mul(diff).Mul(weightsT)
	return weighted.MeanDim(0, false)
}
