package seasondomain

import (
	"encoding/json"
	"slices"
)

// TipBook maps each player to the ordered tips they submitted for one mask.
// The zero value is an empty book. A TipBook is never modified in place;
// With and Without return new books.
type TipBook struct {
	byPlayer map[PlayerID][]Tip
}

// NewTipBook builds a book from a player to tips mapping. The input is copied.
func NewTipBook(tips map[PlayerID][]Tip) TipBook {
	b := TipBook{byPlayer: make(map[PlayerID][]Tip, len(tips))}
	for id, seq := range tips {
		if len(seq) == 0 {
			continue
		}
		b.byPlayer[id] = slices.Clone(seq)
	}
	return b
}

// Tips returns a copy of the player's tips in submission order.
func (b TipBook) Tips(id PlayerID) []Tip {
	return slices.Clone(b.byPlayer[id])
}

// Tip returns the player's tip at index.
func (b TipBook) Tip(id PlayerID, index int) (Tip, bool) {
	seq := b.byPlayer[id]
	if index < 0 || index >= len(seq) {
		return Tip{}, false
	}
	return seq[index], true
}

// Len returns how many tips the player has submitted.
func (b TipBook) Len(id PlayerID) int {
	return len(b.byPlayer[id])
}

// Players returns every player with at least one tip, sorted by id.
func (b TipBook) Players() []PlayerID {
	ids := make([]PlayerID, 0, len(b.byPlayer))
	for id := range b.byPlayer {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns the total number of tips across all players.
func (b TipBook) Count() int {
	n := 0
	for _, seq := range b.byPlayer {
		n += len(seq)
	}
	return n
}

// With returns a new book where the player's tips are replaced by tips.
// An empty sequence removes the player.
func (b TipBook) With(id PlayerID, tips []Tip) TipBook {
	out := b.copy()
	if len(tips) == 0 {
		delete(out.byPlayer, id)
		return out
	}
	out.byPlayer[id] = slices.Clone(tips)
	return out
}

// Without returns a new book with the player's tips removed.
func (b TipBook) Without(id PlayerID) TipBook {
	return b.With(id, nil)
}

// Filter returns a new book keeping only the tips for which keep returns true.
func (b TipBook) Filter(keep func(Tip) bool) TipBook {
	out := TipBook{byPlayer: make(map[PlayerID][]Tip, len(b.byPlayer))}
	for id, seq := range b.byPlayer {
		kept := make([]Tip, 0, len(seq))
		for _, t := range seq {
			if keep(t) {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			out.byPlayer[id] = kept
		}
	}
	return out
}

func (b TipBook) copy() TipBook {
	out := TipBook{byPlayer: make(map[PlayerID][]Tip, len(b.byPlayer)+1)}
	for id, seq := range b.byPlayer {
		out.byPlayer[id] = seq
	}
	return out
}

// MarshalJSON encodes the book as an object of player id to tip array.
func (b TipBook) MarshalJSON() ([]byte, error) {
	if b.byPlayer == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b.byPlayer)
}

// UnmarshalJSON decodes an object of player id to tip array.
func (b *TipBook) UnmarshalJSON(data []byte) error {
	var raw map[PlayerID][]Tip
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = NewTipBook(raw)
	return nil
}
