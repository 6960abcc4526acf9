package data

import (
	"sort"
)

// Special token strings and their fixed IDs. Every Vocab reserves these
// four slots at the front so model code can rely on the constants.
const (
	PadToken = "<pad>"
	UnkToken = "<unk>"
	BosToken = "<bos>"
	EosToken = "<eos>"

	PadID int32 = 0
	UnkID int32 = 1
	BosID int32 = 2
	EosID int32 = 3
)

// Vocab maps token strings to dense int32 IDs and back. Unknown tokens map
// to UnkID.
type Vocab struct {
	tokenToID map[string]int32
	idToToken []string
}

// BuildVocab constructs a vocabulary from tokenized sentences, keeping
// tokens that occur at least minFreq times. Tokens are assigned IDs in
// descending frequency order (ties broken lexicographically) after the
// four reserved specials.
func BuildVocab(sentences [][]string, minFreq int) *Vocab {
	if minFreq < 1 {
		minFreq = 1
	}

	freq := make(map[string]int)
	for _, sent := range sentences {
		for _, tok := range sent {
			freq[tok]++
		}
	}

	type entry struct {
		token string
		count int
	}
	entries := make([]entry, 0, len(freq))
	for tok, n := range freq {
		if n >= minFreq {
			entries = append(entries, entry{tok, n})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].token < entries[j].token
	})

	v := &Vocab{
		tokenToID: make(map[string]int32, len(entries)+4),
		idToToken: make([]string, 0, len(entries)+4),
	}
	for _, special := range []string{PadToken, UnkToken, BosToken, EosToken} {
		v.tokenToID[special] = int32(len(v.idToToken))
		v.idToToken = append(v.idToToken, special)
	}
	for _, e := range entries {
		if _, ok := v.tokenToID[e.token]; ok {
			continue
		}
		v.tokenToID[e.token] = int32(len(v.idToToken))
		v.idToToken = append(v.idToToken, e.token)
	}
	return v
}

// ID returns the token's ID, or UnkID for out-of-vocabulary tokens.
func (v *Vocab) ID(token string) int32 {
	if id, ok := v.tokenToID[token]; ok {
		return id
	}
	return UnkID
}

// Token returns the string for an ID, or UnkToken when out of range.
func (v *Vocab) Token(id int32) string {
	if id < 0 || int(id) >= len(v.idToToken) {
		return UnkToken
	}
	return v.idToToken[id]
}

// IDs converts a token sequence to IDs.
func (v *Vocab) IDs(tokens []string) []int32 {
	ids := make([]int32, len(tokens))
	for i, tok := range tokens {
		ids[i] = v.ID(tok)
	}
	return ids
}

// Tokens converts an ID sequence back to strings.
func (v *Vocab) Tokens(ids []int32) []string {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = v.Token(id)
	}
	return tokens
}

// Size returns the vocabulary size including the four specials.
func (v *Vocab) Size() int {
	return len(v.idToToken)
}

// Contains reports whether the token is in the vocabulary.
func (v *Vocab) Contains(token string) bool {
	_, ok := v.tokenToID[token]
	return ok
}
