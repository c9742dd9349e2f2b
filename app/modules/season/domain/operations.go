package seasondomain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Season operations never modify the receiver. Each returns the updated season.

// Rename changes the season name and, when imageURL is non-nil, its image.
func (s Season) Rename(name string, imageURL *string) (Season, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrEmptyName
	}
	out := s.clone()
	out.Name = name
	if imageURL != nil {
		out.ImageURL = *imageURL
	}
	return out, nil
}

// AddShow appends the next episode and makes it the active show.
func (s Season) AddShow(id ShowID) (Season, Show) {
	episode := 1
	if len(s.Shows) > 0 {
		highest := s.Shows[0].EpisodeNumber
		for _, sh := range s.Shows[1:] {
			highest = max(highest, sh.EpisodeNumber)
		}
		episode = highest + 1
	}
	show := Show{ID: id, Name: fmt.Sprintf("Show %d", episode), EpisodeNumber: episode}

	out := s.clone()
	out.Shows = append(out.Shows, show)
	out.ActiveShowID = &show.ID
	return out, show
}

// DeleteShow removes a show together with every tip and counter-bet placed during it.
// When the deleted show was active, the last remaining show becomes active.
func (s Season) DeleteShow(id ShowID) (Season, error) {
	if _, ok := s.Show(id); !ok {
		return s, ErrShowNotFound
	}
	out := s.clone()
	out.Shows = slices.DeleteFunc(out.Shows, func(sh Show) bool { return sh.ID == id })
	for i := range out.Masks {
		out.Masks[i].Tips = out.Masks[i].Tips.Filter(func(t Tip) bool { return t.ShowID != id })
	}
	out.CounterBets = slices.DeleteFunc(out.CounterBets, func(cb CounterBet) bool { return cb.ShowID == id })

	if s.ActiveShow() == id {
		out.ActiveShowID = nil
		if n := len(out.Shows); n > 0 {
			last := out.Shows[n-1].ID
			out.ActiveShowID = &last
		}
	}
	return out, nil
}

// SetActiveShow selects the show new tips and counter-bets are attributed to.
func (s Season) SetActiveShow(id ShowID) (Season, error) {
	if _, ok := s.Show(id); !ok {
		return s, ErrShowNotFound
	}
	out := s.clone()
	out.ActiveShowID = &id
	return out, nil
}

// AddMask appends an unrevealed mask with no tips.
func (s Season) AddMask(id MaskID, name, imageURL string) (Season, Mask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, Mask{}, ErrEmptyName
	}
	mask := Mask{ID: id, Name: name, ImageURL: imageURL, Tips: NewTipBook(nil)}
	out := s.clone()
	out.Masks = append(out.Masks, mask)
	return out, mask, nil
}

// UpdateMask renames a mask and, when imageURL is non-nil, replaces its image.
func (s Season) UpdateMask(id MaskID, name string, imageURL *string) (Season, error) {
	return s.withMask(id, func(m Mask) (Mask, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return m, ErrEmptyName
		}
		m.Name = name
		if imageURL != nil {
			m.ImageURL = *imageURL
		}
		return m, nil
	})
}

// DeleteMask removes a mask and every counter-bet placed on it.
func (s Season) DeleteMask(id MaskID) (Season, error) {
	if _, ok := s.Mask(id); !ok {
		return s, ErrMaskNotFound
	}
	out := s.clone()
	out.Masks = slices.DeleteFunc(out.Masks, func(m Mask) bool { return m.ID == id })
	out.CounterBets = slices.DeleteFunc(out.CounterBets, func(cb CounterBet) bool { return cb.MaskID == id })
	return out, nil
}

// RevealMask records the celebrity behind a mask.
func (s Season) RevealMask(id MaskID, celebrity string) (Season, error) {
	celebrity = strings.TrimSpace(celebrity)
	if celebrity == "" {
		return s, ErrEmptyName
	}
	return s.withMask(id, func(m Mask) (Mask, error) {
		m.IsRevealed = true
		m.RevealedCelebrity = celebrity
		return m, nil
	})
}

// AddTip appends a tip for the player on the mask, attributed to the active show.
func (s Season) AddTip(maskID MaskID, playerID PlayerID, celebrity string, isFinal bool, at time.Time) (Season, Tip, error) {
	active := s.ActiveShow()
	if active == "" {
		return s, Tip{}, ErrNoActiveShow
	}
	if !s.HasPlayer(playerID) {
		return s, Tip{}, ErrPlayerNotInSeason
	}
	celebrity = strings.TrimSpace(celebrity)
	if celebrity == "" {
		return s, Tip{}, ErrEmptyName
	}

	var added Tip
	out, err := s.withMask(maskID, func(m Mask) (Mask, error) {
		tips, err := AppendTip(m.Tips.Tips(playerID), Tip{
			CelebrityName: celebrity,
			ShowID:        active,
			CreatedAt:     at.UnixMilli(),
			IsFinal:       isFinal,
		})
		if err != nil {
			return m, err
		}
		added = tips[len(tips)-1]
		m.Tips = m.Tips.With(playerID, tips)
		return m, nil
	})
	if err != nil {
		return s, Tip{}, err
	}
	return out, added, nil
}

// DeleteLastTip removes the player's most recent non-final tip on the mask.
func (s Season) DeleteLastTip(maskID MaskID, playerID PlayerID) (Season, error) {
	return s.withMask(maskID, func(m Mask) (Mask, error) {
		tips, err := RemoveLastTip(m.Tips.Tips(playerID))
		if err != nil {
			return m, err
		}
		m.Tips = m.Tips.With(playerID, tips)
		return m, nil
	})
}

// PlaceCounterBet records a bet by bettor against target's latest tip on the mask.
func (s Season) PlaceCounterBet(id CounterBetID, maskID MaskID, bettor, target PlayerID) (Season, CounterBet, error) {
	active := s.ActiveShow()
	if active == "" {
		return s, CounterBet{}, ErrNoActiveShow
	}
	if bettor == target {
		return s, CounterBet{}, ErrSelfCounterBet
	}
	if !s.HasPlayer(bettor) || !s.HasPlayer(target) {
		return s, CounterBet{}, ErrPlayerNotInSeason
	}
	mask, ok := s.Mask(maskID)
	if !ok {
		return s, CounterBet{}, ErrMaskNotFound
	}
	for _, cb := range s.CounterBets {
		if cb.MaskID == maskID && cb.BettorID == bettor && cb.TargetID == target {
			return s, CounterBet{}, ErrDuplicateCounterBet
		}
	}
	n := mask.Tips.Len(target)
	if n == 0 {
		return s, CounterBet{}, ErrNoTargetTips
	}

	bet := CounterBet{
		ID:             id,
		ShowID:         active,
		MaskID:         maskID,
		BettorID:       bettor,
		TargetID:       target,
		TargetTipIndex: n - 1,
	}
	out := s.clone()
	out.CounterBets = append(out.CounterBets, bet)
	return out, bet, nil
}

// DeleteCounterBet removes a counter-bet.
func (s Season) DeleteCounterBet(id CounterBetID) (Season, error) {
	idx := slices.IndexFunc(s.CounterBets, func(cb CounterBet) bool { return cb.ID == id })
	if idx < 0 {
		return s, ErrCounterBetNotFound
	}
	out := s.clone()
	out.CounterBets = slices.Delete(out.CounterBets, idx, idx+1)
	return out, nil
}

// AddParticipant links a roster player to the season. Adding an existing participant is a no-op.
func (s Season) AddParticipant(id PlayerID) Season {
	if s.HasPlayer(id) {
		return s
	}
	out := s.clone()
	out.PlayerIDs = append(out.PlayerIDs, id)
	return out
}

// RemoveParticipant unlinks a player and drops their tips and every counter-bet they are part of.
func (s Season) RemoveParticipant(id PlayerID) Season {
	out := s.clone()
	out.PlayerIDs = slices.DeleteFunc(out.PlayerIDs, func(pid PlayerID) bool { return pid == id })
	for i := range out.Masks {
		out.Masks[i].Tips = out.Masks[i].Tips.Without(id)
	}
	out.CounterBets = slices.DeleteFunc(out.CounterBets, func(cb CounterBet) bool {
		return cb.BettorID == id || cb.TargetID == id
	})
	return out
}

func (s Season) withMask(id MaskID, fn func(Mask) (Mask, error)) (Season, error) {
	idx := slices.IndexFunc(s.Masks, func(m Mask) bool { return m.ID == id })
	if idx < 0 {
		return s, ErrMaskNotFound
	}
	updated, err := fn(s.Masks[idx])
	if err != nil {
		return s, err
	}
	out := s.clone()
	out.Masks[idx] = updated
	return out, nil
}
