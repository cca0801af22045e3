package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robalobadob/numberdle/internal/render"
	"github.com/robalobadob/numberdle/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for finished games",
	Long: `Show win rate, streaks and the guess distribution.

Examples:
  numberdle stats                  # terminal games
  numberdle stats --owner <id>     # a server user's games
  numberdle stats --recent 10      # also list the last ten games`,
	RunE: runStats,
}

var (
	statsOwner  string
	statsRecent int
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsOwner, "owner", localOwner, "owner id to report on")
	statsCmd.Flags().IntVarP(&statsRecent, "recent", "n", 0, "list the most recent N games")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	st := stats.NewStore(db)
	sum, err := st.Summary(ctx, statsOwner)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Summary(sum))

	if statsRecent <= 0 {
		return nil
	}
	recs, err := st.Recent(ctx, statsOwner, statsRecent)
	if err != nil {
		return fmt.Errorf("load recent games: %w", err)
	}
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tMODE\tRESULT\tTRIES\tSECRET")
	for _, r := range recs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		if r.Daily {
			result += " (daily)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.FinishedAt.Local().Format("2006-01-02 15:04"), r.Mode, result, r.Attempts, r.Secret)
	}
	return tw.Flush()
}
