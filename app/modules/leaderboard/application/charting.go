package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors of a rendered scoreboard.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Bar        drawing.Color
}

// DefaultPalette is used when a player has no usable color.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("1b1b1f"),
	TextColor:  drawing.ColorFromHex("f2f2f2"),
	Bar:        drawing.ColorFromHex("c9a227"),
}

// RenderChart returns the scoreboard as a PNG bar chart of total scores.
func (s *LeaderboardService) RenderChart(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error) {
	return observe(s, ctx, "RenderChart", string(seasonID), func(ctx context.Context) ([]byte, error) {
		board, err := s.computeBoard(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return RenderBoardChart(board, s.palette)
	})
}

// RenderBoardChart draws one bar per player in standing order, colored with the player's color.
func RenderBoardChart(board Board, palette ChartPalette) ([]byte, error) {
	if len(board.Standings) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, len(board.Standings))
	lo, hi := 0.0, 0.0
	for i, st := range board.Standings {
		v := float64(st.TotalScore)
		lo, hi = min(lo, v), max(hi, v)

		fill := palette.Bar
		if c, ok := parsePlayerColor(st.Color); ok {
			fill = c
		}
		bars[i] = chart.Value{
			Value: v,
			Label: fmt.Sprintf("%d. %s", st.Position, st.Name),
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	graph := chart.BarChart{
		Title:      board.SeasonName,
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		Width:      max(400, 90*len(bars)+120),
		Height:     420,
		BarWidth:   50,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Name:  "Total score",
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render scoreboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No players in this season"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// parsePlayerColor accepts "#rrggbb" and "rrggbb".
func parsePlayerColor(s string) (drawing.Color, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return drawing.Color{}, false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, false
		}
	}
	return drawing.ColorFromHex(hex), true
}
