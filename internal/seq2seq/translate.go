package seq2seq

import (
	"github.com/nlpkit-ml/nlpkit/internal/data"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Translate greedily decodes a single tokenized source sentence into
// target tokens. Decoding stops at <eos> or after maxLen steps, whichever
// comes first. The returned tokens exclude <bos> and <eos>.
func Translate[B tensor.Backend](m *Seq2Seq[B], src []string, srcVocab, trgVocab *data.Vocab, maxLen int) []string {
	m.Eval()

	ids := srcVocab.IDs(src)
	seq := make([][]int32, 0, len(ids)+2)
	seq = append(seq, []int32{data.BosID})
	for _, id := range ids {
		seq = append(seq, []int32{id})
	}
	seq = append(seq, []int32{data.EosID})

	hidden := m.encoder.Forward(seq)
	context := hidden[len(hidden)-1]

	var out []string
	input := []int32{data.BosID}
	for step := 0; step < maxLen; step++ {
		logits, newHidden := m.decoder.Step(input, hidden, context)
		hidden = newHidden

		next := argmaxRows(logits)[0]
		if next == data.EosID {
			break
		}
		out = append(out, trgVocab.Token(next))
		input = []int32{next}
	}
	return out
}
