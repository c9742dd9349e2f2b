package leaderboardservice

import (
	"context"
	"fmt"
	"time"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/xuri/excelize/v2"
)

const (
	scoreboardSheet = "Scoreboard"
	seasonSheet     = "Season"
)

var workbookHeader = []interface{}{
	"Position", "Player", "Correct masks", "Won counter-bets", "Score", "Counter-bet points", "Total score",
}

// ExportWorkbook returns the scoreboard as an XLSX workbook.
func (s *LeaderboardService) ExportWorkbook(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error) {
	return observe(s, ctx, "ExportWorkbook", string(seasonID), func(ctx context.Context) ([]byte, error) {
		board, err := s.computeBoard(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return BuildWorkbook(board)
	})
}

// BuildWorkbook writes the ranked table to a "Scoreboard" sheet and the season details to a
// "Season" sheet.
func BuildWorkbook(board Board) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), scoreboardSheet); err != nil {
		return nil, fmt.Errorf("failed to name scoreboard sheet: %w", err)
	}
	if err := f.SetSheetRow(scoreboardSheet, "A1", &workbookHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(workbookHeader))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(scoreboardSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(scoreboardSheet, "B", "B", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(scoreboardSheet, "C", lastCol, 18); err != nil {
		return nil, err
	}

	for i, st := range board.Standings {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			st.Position, st.Name, st.CorrectMasks, st.WonCounterBets, st.Score, st.CounterBetPoints, st.TotalScore,
		}
		if err := f.SetSheetRow(scoreboardSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(seasonSheet); err != nil {
		return nil, fmt.Errorf("failed to create season sheet: %w", err)
	}
	details := [][2]interface{}{
		{"Season", board.SeasonName},
		{"Season ID", string(board.SeasonID)},
		{"Players", len(board.Standings)},
		{"Computed at", board.ComputedAt.Format(time.RFC3339)},
		{"Fingerprint", board.Fingerprint},
	}
	for i, d := range details {
		if err := f.SetCellValue(seasonSheet, fmt.Sprintf("A%d", i+1), d[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(seasonSheet, fmt.Sprintf("B%d", i+1), d[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(seasonSheet, "A", "A", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
