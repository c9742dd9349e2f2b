package seasonhandlers_test

import (
	"context"

	seasonservice "github.com/Black-And-White-Club/mask-tipper/app/modules/season/application"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// FakeSeasonService overrides the methods exercised by the handler tests. Calls to
// any other method panic through the nil embedded interface.
type FakeSeasonService struct {
	seasonservice.Service
	trace []string

	GetSeasonFunc    func(ctx context.Context, id seasondomain.SeasonID) (seasondomain.Season, error)
	CreateSeasonFunc func(ctx context.Context, name, imageURL string) (seasondomain.Season, error)
	AddTipFunc       func(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, playerID seasondomain.PlayerID, celebrity string, isFinal bool) (seasondomain.Season, error)
	DeletePlayerFunc func(ctx context.Context, id seasondomain.PlayerID) error
	ImportStateFunc  func(ctx context.Context, data []byte) (seasondomain.AppState, error)
}

func (f *FakeSeasonService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSeasonService) GetSeason(ctx context.Context, id seasondomain.SeasonID) (seasondomain.Season, error) {
	f.record("GetSeason")
	return f.GetSeasonFunc(ctx, id)
}

func (f *FakeSeasonService) CreateSeason(ctx context.Context, name, imageURL string) (seasondomain.Season, error) {
	f.record("CreateSeason")
	return f.CreateSeasonFunc(ctx, name, imageURL)
}

func (f *FakeSeasonService) AddTip(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, playerID seasondomain.PlayerID, celebrity string, isFinal bool) (seasondomain.Season, error) {
	f.record("AddTip")
	return f.AddTipFunc(ctx, seasonID, maskID, playerID, celebrity, isFinal)
}

func (f *FakeSeasonService) DeletePlayer(ctx context.Context, id seasondomain.PlayerID) error {
	f.record("DeletePlayer")
	return f.DeletePlayerFunc(ctx, id)
}

func (f *FakeSeasonService) ImportState(ctx context.Context, data []byte) (seasondomain.AppState, error) {
	f.record("ImportState")
	return f.ImportStateFunc(ctx, data)
}

func (f *FakeSeasonService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ seasonservice.Service = (*FakeSeasonService)(nil)
