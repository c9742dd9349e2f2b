package seasondomain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Wire shapes used only for structural validation. Pointer fields distinguish
// "missing" from "zero"; a type mismatch fails decoding outright.
type (
	wirePlayer struct {
		ID    *string `json:"id"`
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	wireShow struct {
		ID            *string  `json:"id"`
		Name          *string  `json:"name"`
		EpisodeNumber *float64 `json:"episodeNumber"`
	}
	wireTip struct {
		CelebrityName *string  `json:"celebrityName"`
		ShowID        *string  `json:"showId"`
		CreatedAt     *float64 `json:"createdAt"`
	}
	wireMask struct {
		ID         *string                `json:"id"`
		Name       *string                `json:"name"`
		Tips       *map[string]*[]wireTip `json:"tips"`
		IsRevealed *bool                  `json:"isRevealed"`
	}
	wireCounterBet struct {
		ID             *string  `json:"id"`
		ShowID         *string  `json:"showId"`
		MaskID         *string  `json:"maskId"`
		BettorID       *string  `json:"bettorPlayerId"`
		TargetID       *string  `json:"targetPlayerId"`
		TargetTipIndex *float64 `json:"targetTipIndex"`
	}
	wireSeason struct {
		ID           *string           `json:"id"`
		Name         *string           `json:"seasonName"`
		PlayerIDs    *[]string         `json:"playerIds"`
		Players      *[]wirePlayer     `json:"players"`
		Masks        *[]wireMask       `json:"masks"`
		Shows        *[]wireShow       `json:"shows"`
		ActiveShowID json.RawMessage   `json:"activeShowId"`
		CounterBets  *[]wireCounterBet `json:"counterBets"`
	}
	wireState struct {
		Players *[]wirePlayer      `json:"players"`
		Seasons *[]json.RawMessage `json:"seasons"`
	}
)

func (p *wirePlayer) valid() bool {
	return p != nil && p.ID != nil && p.Name != nil && p.Color != nil
}

func (w *wireSeason) check(legacy bool) error {
	switch {
	case w.ID == nil:
		return fmt.Errorf("%w: missing id", ErrInvalidSeason)
	case w.Name == nil:
		return fmt.Errorf("%w: missing seasonName", ErrInvalidSeason)
	case w.Masks == nil || w.Shows == nil || w.CounterBets == nil:
		return fmt.Errorf("%w: masks, shows and counterBets must be arrays", ErrInvalidSeason)
	}
	if legacy {
		if w.Players == nil {
			return fmt.Errorf("%w: legacy season without players", ErrInvalidSeason)
		}
		for _, p := range *w.Players {
			if !p.valid() {
				return fmt.Errorf("%w: malformed embedded player", ErrInvalidSeason)
			}
		}
	} else if w.PlayerIDs == nil {
		return fmt.Errorf("%w: playerIds must be an array", ErrInvalidSeason)
	}

	active := bytes.TrimSpace(w.ActiveShowID)
	if len(active) == 0 || !(bytes.Equal(active, []byte("null")) || active[0] == '"') {
		return fmt.Errorf("%w: activeShowId must be a string or null", ErrInvalidSeason)
	}

	for _, sh := range *w.Shows {
		if sh.ID == nil || sh.Name == nil || sh.EpisodeNumber == nil {
			return fmt.Errorf("%w: malformed show", ErrInvalidSeason)
		}
	}
	for _, cb := range *w.CounterBets {
		if cb.ID == nil || cb.ShowID == nil || cb.MaskID == nil ||
			cb.BettorID == nil || cb.TargetID == nil || cb.TargetTipIndex == nil {
			return fmt.Errorf("%w: malformed counter-bet", ErrInvalidSeason)
		}
	}
	for _, m := range *w.Masks {
		if m.ID == nil || m.Name == nil || m.Tips == nil || m.IsRevealed == nil {
			return fmt.Errorf("%w: malformed mask", ErrInvalidSeason)
		}
		for playerID, tips := range *m.Tips {
			if tips == nil {
				return fmt.Errorf("%w: tips of player %q must be an array", ErrInvalidSeason, playerID)
			}
			for _, t := range *tips {
				if t.CelebrityName == nil || t.ShowID == nil || t.CreatedAt == nil {
					return fmt.Errorf("%w: malformed tip of player %q", ErrInvalidSeason, playerID)
				}
			}
		}
	}
	return nil
}

// DecodeSeason validates and decodes a single season document.
func DecodeSeason(data []byte) (Season, error) {
	var w wireSeason
	if err := json.Unmarshal(data, &w); err != nil {
		return Season{}, fmt.Errorf("%w: %v", ErrInvalidSeason, err)
	}
	if err := w.check(false); err != nil {
		return Season{}, err
	}
	var s Season
	if err := json.Unmarshal(data, &s); err != nil {
		return Season{}, fmt.Errorf("%w: %v", ErrInvalidSeason, err)
	}
	return s.normalized(), nil
}

// DecodeAppState validates and decodes a full exported state.
func DecodeAppState(data []byte) (AppState, error) {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return AppState{}, fmt.Errorf("%w: %v", ErrInvalidAppState, err)
	}
	if w.Players == nil || w.Seasons == nil {
		return AppState{}, fmt.Errorf("%w: players and seasons must be arrays", ErrInvalidAppState)
	}
	for _, p := range *w.Players {
		if !p.valid() {
			return AppState{}, fmt.Errorf("%w: malformed player", ErrInvalidAppState)
		}
	}

	state := AppState{Players: []Player{}, Seasons: make([]Season, 0, len(*w.Seasons))}
	if err := json.Unmarshal(data, &struct {
		Players *[]Player `json:"players"`
	}{&state.Players}); err != nil {
		return AppState{}, fmt.Errorf("%w: %v", ErrInvalidAppState, err)
	}
	for _, raw := range *w.Seasons {
		s, err := DecodeSeason(raw)
		if err != nil {
			return AppState{}, err
		}
		state.Seasons = append(state.Seasons, s)
	}
	return state, nil
}

// Import is a decoded import document, either a full state or a single legacy season.
type Import struct {
	state   AppState
	replace bool
}

// Replaces reports whether applying the import discards the current state.
func (i Import) Replaces() bool { return i.replace }

// State returns the decoded content.
func (i Import) State() AppState { return i.state }

// Apply merges the import into current. A full state replaces current; a legacy season is
// appended together with any of its players not yet in the roster.
func (i Import) Apply(current AppState) AppState {
	if i.replace {
		return i.state
	}
	out := current.clone()
	for _, p := range i.state.Players {
		if _, ok := out.Player(p.ID); !ok {
			out.Players = append(out.Players, p)
		}
	}
	for _, s := range i.state.Seasons {
		out = out.PutSeason(s)
	}
	return out
}

// DecodeImport accepts, in order: a full state, a full state from the old layout where
// players were embedded in each season, or a single legacy season with embedded players.
func DecodeImport(data []byte) (Import, error) {
	if state, err := DecodeAppState(data); err == nil {
		return Import{state: state, replace: true}, nil
	}
	if state, err := decodeEmbeddedPlayersState(data); err == nil {
		return Import{state: state, replace: true}, nil
	}
	s, players, err := decodeLegacySeason(data)
	if err != nil {
		return Import{}, fmt.Errorf("%w: not a state export or legacy season", ErrInvalidAppState)
	}
	return Import{state: AppState{Players: players, Seasons: []Season{s}}}, nil
}

type legacySeason struct {
	Season
	Players []Player `json:"players"`
}

func decodeLegacySeason(data []byte) (Season, []Player, error) {
	var w wireSeason
	if err := json.Unmarshal(data, &w); err != nil {
		return Season{}, nil, fmt.Errorf("%w: %v", ErrInvalidSeason, err)
	}
	if err := w.check(true); err != nil {
		return Season{}, nil, err
	}
	var ls legacySeason
	if err := json.Unmarshal(data, &ls); err != nil {
		return Season{}, nil, fmt.Errorf("%w: %v", ErrInvalidSeason, err)
	}
	s := ls.Season
	s.PlayerIDs = make([]PlayerID, 0, len(ls.Players))
	for _, p := range ls.Players {
		s.PlayerIDs = append(s.PlayerIDs, p.ID)
	}
	return s.normalized(), ls.Players, nil
}

// decodeEmbeddedPlayersState migrates the old layout: no top-level players, each season
// carrying its own players. Players are deduplicated by id in first-seen order.
func decodeEmbeddedPlayersState(data []byte) (AppState, error) {
	var w struct {
		Players *json.RawMessage  `json:"players"`
		Seasons []json.RawMessage `json:"seasons"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return AppState{}, fmt.Errorf("%w: %v", ErrInvalidAppState, err)
	}
	if w.Players != nil || len(w.Seasons) == 0 {
		return AppState{}, ErrInvalidAppState
	}

	state := AppState{Players: []Player{}, Seasons: make([]Season, 0, len(w.Seasons))}
	seen := map[PlayerID]bool{}
	for _, raw := range w.Seasons {
		s, players, err := decodeLegacySeason(raw)
		if err != nil {
			return AppState{}, err
		}
		for _, p := range players {
			if !seen[p.ID] {
				seen[p.ID] = true
				state.Players = append(state.Players, p)
			}
		}
		state.Seasons = append(state.Seasons, s)
	}
	return state, nil
}

func (s Season) normalized() Season {
	if s.PlayerIDs == nil {
		s.PlayerIDs = []PlayerID{}
	}
	if s.Masks == nil {
		s.Masks = []Mask{}
	}
	if s.Shows == nil {
		s.Shows = []Show{}
	}
	if s.CounterBets == nil {
		s.CounterBets = []CounterBet{}
	}
	if s.ActiveShowID != nil && *s.ActiveShowID == "" {
		s.ActiveShowID = nil
	}
	return s
}

// EncodeAppState renders the state in the import/export document format.
func EncodeAppState(state AppState) ([]byte, error) {
	if state.Players == nil {
		state.Players = []Player{}
	}
	seasons := make([]Season, len(state.Seasons))
	for i, s := range state.Seasons {
		seasons[i] = s.normalized()
	}
	state.Seasons = seasons
	return json.MarshalIndent(state, "", "  ")
}
