// Command scoreboard prints the standings of a season from an exported state file
// without touching the database.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	leaderboardservice "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/application"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "scoreboard",
		Usage: "compute standings from an exported state",
		Commands: []*cli.Command{
			showCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "print the ranked scoreboard of a season",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "exported state or legacy season JSON"},
			&cli.StringFlag{Name: "season", Usage: "season id, defaults to the first season in the file"},
			&cli.StringFlag{Name: "xlsx", Usage: "also write the scoreboard workbook to this path"},
			&cli.StringFlag{Name: "png", Usage: "also write the scoreboard chart to this path"},
		},
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.String("file"))
			if err != nil {
				return err
			}
			board, err := loadBoard(data, seasondomain.SeasonID(c.String("season")), time.Now())
			if err != nil {
				return err
			}

			if err := printBoard(c.App.Writer, board); err != nil {
				return err
			}
			if path := c.String("xlsx"); path != "" {
				workbook, err := leaderboardservice.BuildWorkbook(board)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, workbook, 0o644); err != nil {
					return err
				}
			}
			if path := c.String("png"); path != "" {
				chart, err := leaderboardservice.RenderBoardChart(board, leaderboardservice.DefaultPalette)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, chart, 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// loadBoard decodes any accepted import document and scores the chosen season.
func loadBoard(data []byte, id seasondomain.SeasonID, now time.Time) (leaderboardservice.Board, error) {
	imp, err := seasondomain.DecodeImport(data)
	if err != nil {
		return leaderboardservice.Board{}, err
	}
	state := imp.State()
	if len(state.Seasons) == 0 {
		return leaderboardservice.Board{}, seasondomain.ErrSeasonNotFound
	}

	season := state.Seasons[0]
	if id != "" {
		var ok bool
		if season, ok = state.Season(id); !ok {
			return leaderboardservice.Board{}, fmt.Errorf("%w: %s", seasondomain.ErrSeasonNotFound, id)
		}
	}
	return leaderboardservice.BuildBoard(season, state.Roster(season), now)
}

func printBoard(w io.Writer, board leaderboardservice.Board) error {
	fmt.Fprintf(w, "%s\n\n", board.SeasonName)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tPlayer\tMasks\tCounter-bets\tScore\tBets\tTotal\t")
	for _, s := range board.Standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%+d\t%d\t\n",
			s.Position, s.Name, s.CorrectMasks, s.WonCounterBets, s.Score, s.CounterBetPoints, s.TotalScore)
	}
	return tw.Flush()
}
