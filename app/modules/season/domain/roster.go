package seasondomain

import (
	"slices"
	"strings"
)

// PlayerColors is the palette new players are assigned from, in order.
var PlayerColors = []string{
	"#ef4444", "#f97316", "#f59e0b", "#84cc16",
	"#10b981", "#06b6d4", "#3b82f6", "#6366f1",
	"#8b5cf6", "#d946ef", "#ec4899", "#64748b",
}

// ColorFor returns the palette color for the n-th player added to the roster.
func ColorFor(n int) string {
	if n < 0 {
		n = 0
	}
	return PlayerColors[n%len(PlayerColors)]
}

// NewPlayer builds a roster entry. rosterSize is the number of players already registered.
func NewPlayer(id PlayerID, name string, rosterSize int) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, ErrEmptyName
	}
	return Player{ID: id, Name: name, Color: ColorFor(rosterSize)}, nil
}

// Update changes a player's name and color and, when imageURL is non-nil, their image.
func (p Player) Update(name, color string, imageURL *string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return p, ErrEmptyName
	}
	p.Name = name
	if color != "" {
		p.Color = color
	}
	if imageURL != nil {
		p.ImageURL = *imageURL
	}
	return p, nil
}

// Player returns the roster entry with the given id.
func (a AppState) Player(id PlayerID) (Player, bool) {
	for _, p := range a.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Season returns the season with the given id.
func (a AppState) Season(id SeasonID) (Season, bool) {
	for _, s := range a.Seasons {
		if s.ID == id {
			return s, true
		}
	}
	return Season{}, false
}

// AddPlayer registers a new player in the global roster.
func (a AppState) AddPlayer(id PlayerID, name string) (AppState, Player, error) {
	p, err := NewPlayer(id, name, len(a.Players))
	if err != nil {
		return a, Player{}, err
	}
	out := a.clone()
	out.Players = append(out.Players, p)
	return out, p, nil
}

// DeletePlayer removes a player from the roster and from every season.
func (a AppState) DeletePlayer(id PlayerID) (AppState, error) {
	if _, ok := a.Player(id); !ok {
		return a, ErrPlayerNotFound
	}
	out := a.clone()
	out.Players = slices.DeleteFunc(out.Players, func(p Player) bool { return p.ID == id })
	for i := range out.Seasons {
		out.Seasons[i] = out.Seasons[i].RemoveParticipant(id)
	}
	return out, nil
}

// PutSeason replaces the season with the same id, or appends it.
func (a AppState) PutSeason(s Season) AppState {
	out := a.clone()
	if idx := slices.IndexFunc(out.Seasons, func(x Season) bool { return x.ID == s.ID }); idx >= 0 {
		out.Seasons[idx] = s
		return out
	}
	out.Seasons = append(out.Seasons, s)
	return out
}

// DeleteSeason removes a season.
func (a AppState) DeleteSeason(id SeasonID) (AppState, error) {
	if _, ok := a.Season(id); !ok {
		return a, ErrSeasonNotFound
	}
	out := a.clone()
	out.Seasons = slices.DeleteFunc(out.Seasons, func(s Season) bool { return s.ID == id })
	return out, nil
}

// Roster returns the players participating in the season, in roster order.
func (a AppState) Roster(s Season) []Player {
	out := make([]Player, 0, len(s.PlayerIDs))
	for _, p := range a.Players {
		if s.HasPlayer(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (a AppState) clone() AppState {
	return AppState{
		Players: append([]Player{}, a.Players...),
		Seasons: append([]Season{}, a.Seasons...),
	}
}
