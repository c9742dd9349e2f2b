package seasondomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tip(name string, final bool) Tip {
	return Tip{CelebrityName: name, ShowID: "s1", CreatedAt: 1, IsFinal: final}
}

func TestTipStateOf(t *testing.T) {
	tests := []struct {
		name string
		tips []Tip
		want TipState
	}{
		{"empty", nil, TipStateEmpty},
		{"one", []Tip{tip("a", false)}, TipStateOne},
		{"two", []Tip{tip("a", false), tip("b", false)}, TipStateTwo},
		{"three", []Tip{tip("a", false), tip("b", false), tip("c", false)}, TipStateThree},
		{"final first", []Tip{tip("a", true)}, TipStateFinalLocked},
		{"final second", []Tip{tip("a", false), tip("b", true)}, TipStateFinalLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TipStateOf(tt.tips))
		})
	}
}

func TestAppendTip(t *testing.T) {
	tests := []struct {
		name      string
		existing  []Tip
		add       Tip
		wantErr   error
		wantLen   int
		wantFinal bool
	}{
		{name: "first tip", add: tip("a", false), wantLen: 1},
		{name: "first tip final", add: tip("a", true), wantLen: 1, wantFinal: true},
		{name: "second tip final", existing: []Tip{tip("a", false)}, add: tip("b", true), wantLen: 2, wantFinal: true},
		{name: "third tip cannot be final", existing: []Tip{tip("a", false), tip("b", false)}, add: tip("c", true), wantLen: 3, wantFinal: false},
		{name: "fourth tip rejected", existing: []Tip{tip("a", false), tip("b", false), tip("c", false)}, add: tip("d", false), wantErr: ErrMaxTipsReached},
		{name: "locked after final", existing: []Tip{tip("a", true)}, add: tip("b", false), wantErr: ErrFinalTipLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]Tip{}, tt.existing...)
			got, err := AppendTip(tt.existing, tt.add)
			assert.Equal(t, before, append([]Tip{}, tt.existing...), "input must not change")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFinal, got[len(got)-1].IsFinal)
		})
	}
}

func TestRemoveLastTip(t *testing.T) {
	t.Run("returns to previous state", func(t *testing.T) {
		got, err := RemoveLastTip([]Tip{tip("a", false), tip("b", false)})
		require.NoError(t, err)
		assert.Equal(t, TipStateOne, TipStateOf(got))
	})
	t.Run("final tip is irrevocable", func(t *testing.T) {
		_, err := RemoveLastTip([]Tip{tip("a", false), tip("b", true)})
		assert.ErrorIs(t, err, ErrFinalTipNotRemovable)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := RemoveLastTip(nil)
		assert.ErrorIs(t, err, ErrNoTips)
	})
}

func TestTipBook(t *testing.T) {
	b := NewTipBook(map[PlayerID][]Tip{"p2": {tip("x", false)}, "p1": {tip("y", false)}, "empty": {}})
	assert.Equal(t, []PlayerID{"p1", "p2"}, b.Players())
	assert.Equal(t, 2, b.Count())

	b2 := b.With("p1", []Tip{tip("y", false), tip("z", false)})
	assert.Equal(t, 1, b.Len("p1"), "original book must not change")
	assert.Equal(t, 2, b2.Len("p1"))

	got, ok := b2.Tip("p1", 1)
	require.True(t, ok)
	assert.Equal(t, "z", got.CelebrityName)
	_, ok = b2.Tip("p1", 2)
	assert.False(t, ok)

	b3 := b2.Without("p2")
	assert.Equal(t, []PlayerID{"p1"}, b3.Players())

	var zero TipBook
	assert.Equal(t, 0, zero.Len("p1"))
	data, err := zero.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}
