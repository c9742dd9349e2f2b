package seasondomain

// MaxTipsPerMask is the number of tips a player may submit for one mask.
const MaxTipsPerMask = 3

// TipState is the position of a player's tip sequence for one mask.
type TipState int

const (
	TipStateEmpty TipState = iota
	TipStateOne
	TipStateTwo
	TipStateThree
	// TipStateFinalLocked is reached once any tip in the sequence is final.
	TipStateFinalLocked
)

func (s TipState) String() string {
	switch s {
	case TipStateEmpty:
		return "empty"
	case TipStateOne:
		return "one"
	case TipStateTwo:
		return "two"
	case TipStateThree:
		return "three"
	case TipStateFinalLocked:
		return "final_locked"
	default:
		return "unknown"
	}
}

// TipStateOf classifies a tip sequence.
func TipStateOf(tips []Tip) TipState {
	for _, t := range tips {
		if t.IsFinal {
			return TipStateFinalLocked
		}
	}
	switch len(tips) {
	case 0:
		return TipStateEmpty
	case 1:
		return TipStateOne
	case 2:
		return TipStateTwo
	default:
		return TipStateThree
	}
}

// AcceptsTips reports whether another tip may be appended.
func (s TipState) AcceptsTips() bool {
	return s == TipStateEmpty || s == TipStateOne || s == TipStateTwo
}

// AppendTip adds tip to the end of tips. The third tip is never final.
// The input slice is not modified.
func AppendTip(tips []Tip, tip Tip) ([]Tip, error) {
	switch TipStateOf(tips) {
	case TipStateFinalLocked:
		return nil, ErrFinalTipLocked
	case TipStateThree:
		return nil, ErrMaxTipsReached
	}
	if len(tips) >= MaxTipsPerMask-1 {
		tip.IsFinal = false
	}
	out := make([]Tip, 0, len(tips)+1)
	out = append(out, tips...)
	return append(out, tip), nil
}

// RemoveLastTip drops the most recent tip. Final tips are irrevocable.
// The input slice is not modified.
func RemoveLastTip(tips []Tip) ([]Tip, error) {
	if len(tips) == 0 {
		return nil, ErrNoTips
	}
	if tips[len(tips)-1].IsFinal {
		return nil, ErrFinalTipNotRemovable
	}
	out := make([]Tip, len(tips)-1)
	copy(out, tips)
	return out, nil
}
