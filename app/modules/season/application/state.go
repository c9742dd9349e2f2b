package seasonservice

import (
	"context"
	"fmt"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/uptrace/bun"
)

// ExportState serializes the roster and every season as one document.
func (s *SeasonService) ExportState(ctx context.Context) ([]byte, error) {
	return perform(s, ctx, "ExportState", "", func(ctx context.Context, db bun.IDB) ([]byte, error) {
		state, err := s.loadState(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
		return seasondomain.EncodeAppState(state)
	})
}

// ImportState validates data and stores it. A full export replaces everything; a
// legacy single-season document is merged into the current state.
func (s *SeasonService) ImportState(ctx context.Context, data []byte) (seasondomain.AppState, error) {
	var replaced bool
	state, err := perform(s, ctx, "ImportState", "", func(ctx context.Context, db bun.IDB) (seasondomain.AppState, error) {
		imported, err := seasondomain.DecodeImport(data)
		if err != nil {
			return seasondomain.AppState{}, err
		}
		current, err := s.loadState(ctx, db)
		if err != nil {
			return seasondomain.AppState{}, fmt.Errorf("failed to load state: %w", err)
		}
		next := imported.Apply(current)
		if err := s.repo.ReplaceAll(ctx, db, next); err != nil {
			return seasondomain.AppState{}, fmt.Errorf("failed to store imported state: %w", err)
		}
		replaced = imported.Replaces()
		return next, nil
	})
	if err != nil {
		return seasondomain.AppState{}, err
	}
	s.publishStateImported(ctx, state, replaced)
	return state, nil
}
