package leaderboarddomain

import (
	"errors"
	"testing"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/google/go-cmp/cmp"
)

// fixture helpers

type tipsByPlayer map[seasondomain.PlayerID][]seasondomain.Tip

func roster(ids ...seasondomain.PlayerID) []seasondomain.Player {
	out := make([]seasondomain.Player, len(ids))
	for i, id := range ids {
		out[i] = seasondomain.Player{ID: id, Name: string(id), Color: seasondomain.ColorFor(i)}
	}
	return out
}

func shows(n int) []seasondomain.Show {
	out := make([]seasondomain.Show, n)
	for i := range out {
		out[i] = seasondomain.Show{ID: showID(i + 1), Name: "Show", EpisodeNumber: i + 1}
	}
	return out
}

func showID(ep int) seasondomain.ShowID {
	return seasondomain.ShowID("show-" + string(rune('0'+ep)))
}

func at(ep int, name string, createdAt int64) seasondomain.Tip {
	return seasondomain.Tip{CelebrityName: name, ShowID: showID(ep), CreatedAt: createdAt}
}

func final(t seasondomain.Tip) seasondomain.Tip {
	t.IsFinal = true
	return t
}

func revealed(id seasondomain.MaskID, celebrity string, tips tipsByPlayer) seasondomain.Mask {
	return seasondomain.Mask{
		ID:                id,
		Name:              string(id),
		Tips:              seasondomain.NewTipBook(tips),
		IsRevealed:        true,
		RevealedCelebrity: celebrity,
	}
}

func season(players []seasondomain.Player, nShows int, masks []seasondomain.Mask, bets ...seasondomain.CounterBet) seasondomain.Season {
	s := seasondomain.NewSeason("s", "Season", "")
	for _, p := range players {
		s.PlayerIDs = append(s.PlayerIDs, p.ID)
	}
	s.Shows = shows(nShows)
	s.Masks = masks
	s.CounterBets = bets
	return s
}

func scoreOf(t *testing.T, scores []PlayerScore, id seasondomain.PlayerID) PlayerScore {
	t.Helper()
	for _, s := range scores {
		if s.PlayerID == id {
			return s
		}
	}
	t.Fatalf("no score row for %s", id)
	return PlayerScore{}
}

func mustCompute(t *testing.T, s seasondomain.Season, r []seasondomain.Player) []PlayerScore {
	t.Helper()
	got, err := ComputeScoreboard(s, r)
	if err != nil {
		t.Fatalf("ComputeScoreboard: %v", err)
	}
	return got
}

func TestBasePoints(t *testing.T) {
	want := map[int]int{-3: 20, 0: 20, 1: 20, 2: 17, 3: 14, 4: 11, 5: 8, 6: 5, 7: 5, 42: 5}
	for ep, pts := range want {
		if got := BasePoints(ep); got != pts {
			t.Errorf("BasePoints(%d) = %d, want %d", ep, got, pts)
		}
	}
}

func TestPioneerAndImitator(t *testing.T) {
	players := roster("alice", "bob")
	s := season(players, 2, []seasondomain.Mask{
		revealed("m1", "Anna", tipsByPlayer{
			"alice": {at(1, "anna", 100)},
			"bob":   {at(2, " ANNA ", 200)},
		}),
	})

	got := mustCompute(t, s, players)

	alice, bob := scoreOf(t, got, "alice"), scoreOf(t, got, "bob")
	if alice.Score != 20 || alice.CorrectMasks != 1 {
		t.Errorf("pioneer: got score %d masks %d, want 20 and 1", alice.Score, alice.CorrectMasks)
	}
	if bob.Score != 7 || bob.CorrectMasks != 1 {
		t.Errorf("imitator: got score %d masks %d, want 7 and 1", bob.Score, bob.CorrectMasks)
	}
}

func TestPioneerSelection(t *testing.T) {
	type row struct{ score, masks int }
	tests := []struct {
		name string
		tips tipsByPlayer
		want map[seasondomain.PlayerID]row
	}{
		{
			name: "same episode goes to the earlier tip, deleted show is skipped",
			tips: tipsByPlayer{
				"carol": {at(9, "Anna", 1)},
				"bob":   {at(1, "Anna", 20)},
				"alice": {at(1, "Anna", 30)},
			},
			want: map[seasondomain.PlayerID]row{
				"bob":   {score: 20, masks: 1},
				"alice": {score: 8, masks: 1},
				"carol": {score: 0, masks: 0},
			},
		},
		{
			name: "creation time beats roster order",
			tips: tipsByPlayer{
				"alice": {at(2, "Anna", 50)},
				"bob":   {at(2, "Anna", 40)},
			},
			want: map[seasondomain.PlayerID]row{
				"bob":   {score: 17, masks: 1},
				"alice": {score: 7, masks: 1},
				"carol": {score: 0, masks: 0},
			},
		},
		{
			name: "later correct tip on a live show still scores when the first one's show is gone",
			tips: tipsByPlayer{
				"carol": {at(9, "Anna", 1), at(2, "Anna", 5)},
				"bob":   {at(3, "Anna", 2)},
			},
			want: map[seasondomain.PlayerID]row{
				"carol": {score: 17, masks: 1},
				"bob":   {score: 6, masks: 1},
				"alice": {score: 0, masks: 0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := roster("alice", "bob", "carol")
			s := season(players, 3, []seasondomain.Mask{revealed("m1", "Anna", tt.tips)})
			got := mustCompute(t, s, players)
			for id, want := range tt.want {
				r := scoreOf(t, got, id)
				if r.Score != want.score || r.CorrectMasks != want.masks {
					t.Errorf("%s: got score %d masks %d, want %d and %d", id, r.Score, r.CorrectMasks, want.score, want.masks)
				}
			}
		})
	}
}

func TestFinalTipMultipliers(t *testing.T) {
	tests := []struct {
		name string
		tips tipsByPlayer
		want map[seasondomain.PlayerID]int
	}{
		{
			name: "first tip final pioneer",
			tips: tipsByPlayer{"alice": {final(at(1, "Anna", 1))}},
			want: map[seasondomain.PlayerID]int{"alice": 36},
		},
		{
			name: "second tip final pioneer in episode 2",
			tips: tipsByPlayer{"alice": {at(1, "Berta", 1), final(at(2, "Anna", 2))}},
			want: map[seasondomain.PlayerID]int{"alice": 26},
		},
		{
			name: "second tip final imitator",
			tips: tipsByPlayer{
				"bob":   {at(1, "Anna", 1)},
				"alice": {at(1, "Berta", 2), final(at(2, "Anna", 3))},
			},
			want: map[seasondomain.PlayerID]int{"bob": 20, "alice": 10},
		},
		{
			name: "final flag beyond second position earns no bonus",
			tips: tipsByPlayer{"alice": {at(1, "X", 1), at(1, "Y", 2), final(at(1, "Anna", 3))}},
			want: map[seasondomain.PlayerID]int{"alice": 20},
		},
		{
			name: "only the first correct tip counts",
			tips: tipsByPlayer{"alice": {at(2, "Anna", 1), at(3, "anna", 2)}},
			want: map[seasondomain.PlayerID]int{"alice": 17},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := roster("alice", "bob")
			s := season(players, 3, []seasondomain.Mask{revealed("m1", "Anna", tt.tips)})
			got := mustCompute(t, s, players)
			for id, want := range tt.want {
				if row := scoreOf(t, got, id); row.Score != want {
					t.Errorf("%s: score = %d, want %d", id, row.Score, want)
				}
			}
		})
	}
}

func TestCounterBets(t *testing.T) {
	bet := func(ep, index int) seasondomain.CounterBet {
		return seasondomain.CounterBet{
			ID: "cb", ShowID: showID(ep), MaskID: "m1",
			BettorID: "alice", TargetID: "bob", TargetTipIndex: index,
		}
	}

	tests := []struct {
		name        string
		bobTips     []seasondomain.Tip
		bet         seasondomain.CounterBet
		wantBettor  int
		wantTarget  int
		wantWon     int
		wantBobMask int
	}{
		{
			name:       "wrong tip, bet two shows later decays to 0.6",
			bobTips:    []seasondomain.Tip{at(1, "Berta", 1)},
			bet:        bet(3, 0),
			wantBettor: 2, wantTarget: -1, wantWon: 1,
		},
		{
			name:       "wrong final tip, same show",
			bobTips:    []seasondomain.Tip{final(at(1, "Berta", 1))},
			bet:        bet(1, 0),
			wantBettor: 5, wantTarget: -3, wantWon: 1,
		},
		{
			name:        "correct tip costs the bettor",
			bobTips:     []seasondomain.Tip{at(1, "Anna", 1)},
			bet:         bet(1, 0),
			wantBettor:  -2,
			wantBobMask: 1,
		},
		{
			name:        "correct final tip costs the bettor more",
			bobTips:     []seasondomain.Tip{final(at(1, "anna", 1))},
			bet:         bet(2, 0),
			wantBettor:  -2, // round(-3 * 0.8)
			wantBobMask: 1,
		},
		{
			name:    "fully decayed win is not counted as won",
			bobTips: []seasondomain.Tip{at(1, "Berta", 1)},
			bet:     bet(6, 0),
		},
		{
			name:       "bet placed before the tip's show is not boosted",
			bobTips:    []seasondomain.Tip{at(3, "Berta", 1)},
			bet:        bet(1, 0),
			wantBettor: 3, wantTarget: -2, wantWon: 1,
		},
		{
			name:       "targets the tip at the snapshot index",
			bobTips:    []seasondomain.Tip{at(1, "Berta", 1), at(1, "Anna", 2)},
			bet:        bet(1, 0),
			wantBettor: 3, wantTarget: -2, wantWon: 1, wantBobMask: 1,
		},
		{
			name:    "deleted tip makes the bet inert",
			bobTips: []seasondomain.Tip{at(1, "Berta", 1)},
			bet:     bet(1, 1),
		},
		{
			name:    "deleted bet show makes the bet inert",
			bobTips: []seasondomain.Tip{at(1, "Berta", 1)},
			bet:     bet(9, 0),
		},
		{
			name:    "deleted tip show makes the bet inert",
			bobTips: []seasondomain.Tip{at(8, "Berta", 1)},
			bet:     bet(1, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := roster("alice", "bob")
			s := season(players, 6, []seasondomain.Mask{
				revealed("m1", "Anna", tipsByPlayer{"bob": tt.bobTips}),
			}, tt.bet)

			got := mustCompute(t, s, players)
			alice, bob := scoreOf(t, got, "alice"), scoreOf(t, got, "bob")
			if alice.CounterBetPoints != tt.wantBettor {
				t.Errorf("bettor counter-bet points = %d, want %d", alice.CounterBetPoints, tt.wantBettor)
			}
			if bob.CounterBetPoints != tt.wantTarget {
				t.Errorf("target counter-bet points = %d, want %d", bob.CounterBetPoints, tt.wantTarget)
			}
			if alice.WonCounterBets != tt.wantWon {
				t.Errorf("won counter-bets = %d, want %d", alice.WonCounterBets, tt.wantWon)
			}
			if bob.CorrectMasks != tt.wantBobMask {
				t.Errorf("target correct masks = %d, want %d", bob.CorrectMasks, tt.wantBobMask)
			}
			if alice.TotalScore != alice.Score+alice.CounterBetPoints {
				t.Errorf("total %d != score %d + counter-bets %d", alice.TotalScore, alice.Score, alice.CounterBetPoints)
			}
		})
	}
}

func TestUnrevealedMasksContributeNothing(t *testing.T) {
	players := roster("alice", "bob")
	hidden := revealed("m1", "Anna", tipsByPlayer{"alice": {at(1, "Anna", 1)}, "bob": {at(1, "X", 2)}})
	hidden.IsRevealed = false
	unnamed := revealed("m2", "", tipsByPlayer{"alice": {at(1, "", 1)}, "bob": {at(1, "X", 2)}})
	s := season(players, 1, []seasondomain.Mask{hidden, unnamed},
		seasondomain.CounterBet{ID: "a", ShowID: showID(1), MaskID: "m1", BettorID: "alice", TargetID: "bob"},
		seasondomain.CounterBet{ID: "b", ShowID: showID(1), MaskID: "m2", BettorID: "alice", TargetID: "bob"},
	)

	board, err := Compute(s, players)
	if err != nil {
		t.Fatal(err)
	}
	want := []PlayerScore{
		{PlayerID: "alice", Name: "alice", Color: seasondomain.ColorFor(0)},
		{PlayerID: "bob", Name: "bob", Color: seasondomain.ColorFor(1)},
	}
	if diff := cmp.Diff(want, board.Scores); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	if board.RevealedMasks != 0 {
		t.Errorf("revealed masks = %d, want 0", board.RevealedMasks)
	}
}

func TestBlankRevealStillScores(t *testing.T) {
	players := roster("alice", "bob", "carol")
	blank := revealed("m1", "   ", tipsByPlayer{
		"bob":   {at(1, "Berta", 1)},
		"carol": {at(1, " ", 2)},
	})
	s := season(players, 1, []seasondomain.Mask{blank},
		seasondomain.CounterBet{ID: "a", ShowID: showID(1), MaskID: "m1", BettorID: "alice", TargetID: "bob"},
	)

	board, err := Compute(s, players)
	if err != nil {
		t.Fatal(err)
	}
	if board.RevealedMasks != 1 {
		t.Errorf("revealed masks = %d, want 1", board.RevealedMasks)
	}
	alice, bob, carol := scoreOf(t, board.Scores, "alice"), scoreOf(t, board.Scores, "bob"), scoreOf(t, board.Scores, "carol")
	if alice.CounterBetPoints != 3 || alice.WonCounterBets != 1 {
		t.Errorf("bettor: got %d points and %d won, want 3 and 1", alice.CounterBetPoints, alice.WonCounterBets)
	}
	if bob.CounterBetPoints != -2 {
		t.Errorf("target counter-bet points = %d, want -2", bob.CounterBetPoints)
	}
	if carol.Score != 20 || carol.CorrectMasks != 1 {
		t.Errorf("blank tip: got score %d masks %d, want 20 and 1", carol.Score, carol.CorrectMasks)
	}
}

func TestRanking(t *testing.T) {
	players := roster("carol", "alice", "bob", "dave")
	s := season(players, 2, []seasondomain.Mask{
		// alice and bob each solve one mask, carol only wins counter-bets.
		revealed("m1", "Anna", tipsByPlayer{"alice": {at(1, "Anna", 1)}, "dave": {at(1, "Wrong", 2)}}),
		revealed("m2", "Berta", tipsByPlayer{"bob": {at(2, "Berta", 3)}, "alice": {final(at(1, "Nope", 4))}}),
	},
		seasondomain.CounterBet{ID: "1", ShowID: showID(1), MaskID: "m1", BettorID: "carol", TargetID: "dave"},
		seasondomain.CounterBet{ID: "2", ShowID: showID(1), MaskID: "m2", BettorID: "carol", TargetID: "alice"},
		seasondomain.CounterBet{ID: "3", ShowID: showID(2), MaskID: "m1", BettorID: "bob", TargetID: "dave"},
	)

	got := mustCompute(t, s, players)

	order := make([]seasondomain.PlayerID, len(got))
	for i, row := range got {
		order[i] = row.PlayerID
	}
	// alice: 1 mask, 0 won, 20 - 3 = 17. bob: 1 mask, 1 won, 17 + 2 = 19.
	// carol: 0 masks, 2 won, 8. dave: 0 masks, 0 won, -2 - 2 = -4.
	want := []seasondomain.PlayerID{"bob", "alice", "carol", "dave"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		if CompareStanding(got[i-1], got[i]) > 0 {
			t.Errorf("rows %d and %d out of order", i-1, i)
		}
	}
}

func TestRankingTiesKeepRosterOrder(t *testing.T) {
	players := roster("zed", "amy", "kim")
	got := mustCompute(t, season(players, 1, nil), players)
	want := []seasondomain.PlayerID{"zed", "amy", "kim"}
	for i, row := range got {
		if row.PlayerID != want[i] {
			t.Fatalf("position %d = %s, want %s", i, row.PlayerID, want[i])
		}
	}
	if diff := cmp.Diff([]int{1, 1, 1}, Positions(got)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestOnlyParticipantsAreScored(t *testing.T) {
	all := roster("alice", "bob", "outsider")
	s := season(all[:2], 1, []seasondomain.Mask{
		revealed("m1", "Anna", tipsByPlayer{"outsider": {at(1, "Anna", 1)}, "bob": {at(1, "Anna", 2)}}),
	}, seasondomain.CounterBet{ID: "x", ShowID: showID(1), MaskID: "m1", BettorID: "outsider", TargetID: "bob"})

	board, err := Compute(s, all)
	if err != nil {
		t.Fatal(err)
	}
	if len(board.Scores) != 2 {
		t.Fatalf("got %d rows, want 2", len(board.Scores))
	}
	if bob := scoreOf(t, board.Scores, "bob"); bob.Score != 20 {
		t.Errorf("bob should be pioneer among participants, got %d", bob.Score)
	}
	if board.InertCounterBets != 1 {
		t.Errorf("inert counter-bets = %d, want 1", board.InertCounterBets)
	}
}

func TestUnknownParticipantFails(t *testing.T) {
	s := season(roster("alice", "ghost"), 1, nil)
	_, err := ComputeScoreboard(s, roster("alice"))
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("err = %v, want ErrUnknownPlayer", err)
	}
}

func TestComputeIsPureAndIdempotent(t *testing.T) {
	players := roster("alice", "bob")
	s := season(players, 3, []seasondomain.Mask{
		revealed("m1", "Anna", tipsByPlayer{"alice": {final(at(1, "Anna", 1))}, "bob": {at(2, "Berta", 2)}}),
	}, seasondomain.CounterBet{ID: "cb", ShowID: showID(3), MaskID: "m1", BettorID: "alice", TargetID: "bob"})

	before, _ := seasondomain.EncodeAppState(seasondomain.AppState{Players: players, Seasons: []seasondomain.Season{s}})

	first := mustCompute(t, s, players)
	second := mustCompute(t, s, players)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}

	after, _ := seasondomain.EncodeAppState(seasondomain.AppState{Players: players, Seasons: []seasondomain.Season{s}})
	if string(before) != string(after) {
		t.Error("ComputeScoreboard modified its input")
	}

	first[0].Score = 999
	if again := mustCompute(t, s, players); again[0].Score == 999 {
		t.Error("result aliases a previous result")
	}
}

func TestStandingsFingerprint(t *testing.T) {
	a := []PlayerScore{{PlayerID: "alice", Score: 20, TotalScore: 20, CorrectMasks: 1}, {PlayerID: "bob"}}
	b := []PlayerScore{{PlayerID: "alice", Score: 20, TotalScore: 20, CorrectMasks: 1}, {PlayerID: "bob"}}
	if StandingsFingerprint(a) != StandingsFingerprint(b) {
		t.Fatal("equal standings should share a fingerprint")
	}
	b[1].CounterBetPoints = -1
	if StandingsFingerprint(a) == StandingsFingerprint(b) {
		t.Fatal("fingerprint should change with the numbers")
	}
}
