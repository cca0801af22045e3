package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numberdle/internal/daily"
	"github.com/robalobadob/numberdle/internal/game"
	"github.com/robalobadob/numberdle/internal/render"
	"github.com/robalobadob/numberdle/internal/stats"
)

// localOwner files terminal games in the stats DB.
const localOwner = "local"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play Numberdle on the command line.

Type a five-digit guess and press enter. "give up" reveals the number.

Examples:
  numberdle play                 # random number, default mode
  numberdle play --mode ultra    # every earlier clue must be respected
  numberdle play --daily         # today's shared number
  numberdle play --seed 42       # reproducible number`,
	RunE: runPlay,
}

var (
	playMode   string
	playSeed   int64
	playSecret string
	playDaily  bool
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVarP(&playMode, "mode", "m", "", "normal, hard or ultra (default from config)")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "derive the secret from a seed")
	playCmd.Flags().StringVar(&playSecret, "secret", "", "fixed secret (needs game.allow_fixed_secret)")
	playCmd.Flags().BoolVar(&playDaily, "daily", false, "play today's daily number")
	playCmd.MarkFlagsMutuallyExclusive("seed", "secret", "daily")
}

// recorder is where finished terminal games go.
type recorder interface {
	Insert(ctx context.Context, r stats.Record) error
	Summary(ctx context.Context, owner string) (stats.Summary, error)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	mode := cfg.Game.DefaultMode
	if playMode != "" {
		m, err := game.ParseMode(playMode)
		if err != nil {
			return err
		}
		mode = m
	}

	secret := ""
	switch {
	case playSecret != "":
		if !cfg.Game.AllowFixedSecret {
			return errors.New("fixed secrets are disabled; set game.allow_fixed_secret or ALLOW_FIXED_SECRET")
		}
		secret = playSecret
	case cmd.Flags().Changed("seed"):
		secret = game.SeededSecret(playSeed)
	case playDaily:
		secret = daily.Secret(time.Now(), cfg.Daily.Salt)
	}

	g, err := game.New(mode, secret)
	if err != nil {
		return err
	}

	var rec recorder
	var dailyStore *daily.Store
	db, err := openDB(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("stats disabled")
	} else {
		defer db.Close()
		rec = stats.NewStore(db)
		dailyStore = daily.NewStore(db)
	}

	date := daily.DateKey(time.Now())
	if playDaily && dailyStore != nil {
		played, err := dailyStore.AlreadyPlayed(ctx, localOwner, date)
		if err != nil {
			return err
		}
		if played {
			fmt.Fprintf(cmd.OutOrStdout(), "You already played the daily number for %s.\n", date)
			return nil
		}
	}

	res, err := playGame(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), g, rec, playDaily)
	if err != nil {
		return err
	}
	if playDaily && dailyStore != nil {
		if _, err := dailyStore.InsertResult(ctx, daily.Result{
			OwnerID:   localOwner,
			Date:      date,
			Mode:      res.Mode,
			Won:       res.Won,
			Attempts:  res.Attempts,
			ElapsedMs: time.Since(g.CreatedAt).Milliseconds(),
		}); err != nil {
			log.Warn().Err(err).Msg("record daily result")
		}
	}
	return nil
}

// playGame runs the read-guess-print loop until g ends. End of input counts
// as giving up. The result is recorded when rec is non-nil.
func playGame(ctx context.Context, in io.Reader, out io.Writer, g *game.Game, rec recorder, isDaily bool) (game.Result, error) {
	fmt.Fprintf(out, "Numberdle (%s mode): guess the 5-digit number in %d tries. Type \"give up\" to reveal it.\n\n",
		g.Mode, game.MaxAttempts)
	fmt.Fprintln(out, render.Board(nil))

	sc := bufio.NewScanner(in)
	for !g.Status().Terminal() {
		fmt.Fprintf(out, "\nGuess %d/%d> ", g.Attempts()+1, game.MaxAttempts)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return game.Result{}, err
			}
			_ = g.GiveUp()
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "give up", "giveup", "quit", "q":
			_ = g.GiveUp()
			continue
		}

		turn, err := g.ApplyGuess(line)
		if err != nil {
			fmt.Fprintln(out, render.Error(err))
			continue
		}
		fmt.Fprintln(out, render.Board(g.History()))
		if h := render.Hints(turn.Hints); h != "" {
			fmt.Fprintln(out, h)
		}
	}

	res, _ := g.Result()
	fmt.Fprintln(out, render.Outcome(res))
	if rec == nil {
		return res, nil
	}
	if err := rec.Insert(ctx, stats.FromResult(localOwner, res, isDaily, time.Now())); err != nil {
		log.Warn().Err(err).Msg("record result")
		return res, nil
	}
	if sum, err := rec.Summary(ctx, localOwner); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Summary(sum))
	}
	return res, nil
}
