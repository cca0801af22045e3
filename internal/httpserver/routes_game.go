package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numberdle/internal/game"
	"github.com/robalobadob/numberdle/internal/stats"
	"github.com/robalobadob/numberdle/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
	r.Post("/game/{id}/giveup", s.handleGiveUp)
}

type newGameReq struct {
	Mode   string `json:"mode"`
	Secret string `json:"secret"` // honoured only when fixed secrets are enabled
}

type newGameRes struct {
	GameID      string    `json:"gameId"`
	Mode        game.Mode `json:"mode"`
	MaxAttempts int       `json:"maxAttempts"`
}

// gameView is the read model of a game for GET /game/{id}.
type gameView struct {
	GameID    string             `json:"gameId"`
	Mode      game.Mode          `json:"mode"`
	Status    game.Status        `json:"status"`
	History   []game.GuessRecord `json:"history"`
	Remaining int                `json:"remaining"`
	Knowledge game.Summary       `json:"knowledge"`
	Secret    string             `json:"secret,omitempty"`
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	GameID string `json:"gameId"`
	*game.Turn
	Secret string         `json:"secret,omitempty"`
	Stats  *stats.Summary `json:"stats,omitempty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decodeOptional(w, r, &req) {
		return
	}
	mode := s.cfg.Game.DefaultMode
	if req.Mode != "" {
		m, err := game.ParseMode(req.Mode)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid_mode", err.Error())
			return
		}
		mode = m
	}
	if req.Secret != "" && !s.cfg.Game.AllowFixedSecret {
		writeErr(w, http.StatusBadRequest, "fixed_secret_disabled", "fixed secrets are not enabled on this server")
		return
	}

	g, err := game.New(mode, req.Secret)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	owner := s.owner(w, r)
	if err := s.games.Save(r.Context(), owner, g); err != nil {
		writeGameErr(w, r, err)
		return
	}
	hlog.FromRequest(r).Debug().Str("gameId", g.ID).Stringer("mode", mode).Msg("game created")
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Mode: mode, MaxAttempts: game.MaxAttempts})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	res, err := s.applyGuess(r, req.GameID, req.Guess)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// applyGuess runs one guess under the store lock and records the result
// when it ends the game. A daily game is recorded as such whichever route
// the final guess arrived on.
func (s *Server) applyGuess(r *http.Request, id, guess string) (*guessRes, error) {
	owner, err := s.authorize(r, id)
	if err != nil {
		return nil, err
	}
	isDaily := s.isDailyGame(owner, id)
	var (
		turn   *game.Turn
		result game.Result
		done   bool
	)
	err = s.games.Update(r.Context(), id, func(g *game.Game) error {
		t, err := g.ApplyGuess(guess)
		if err != nil {
			return err
		}
		turn = t
		result, done = g.Result()
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &guessRes{GameID: id, Turn: turn}
	if done {
		res.Secret = result.Secret
		res.Stats = s.record(r, owner, result, isDaily)
	}
	return res, nil
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.authorize(r, id); err != nil {
		writeGameErr(w, r, err)
		return
	}
	var view gameView
	err := s.games.Update(r.Context(), id, func(g *game.Game) error {
		view = gameView{
			GameID:    g.ID,
			Mode:      g.Mode,
			Status:    g.Status(),
			History:   g.History(),
			Remaining: g.Remaining(),
			Knowledge: g.Summary(),
		}
		view.Secret, _ = g.Secret()
		return nil
	})
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type giveUpRes struct {
	GameID string         `json:"gameId"`
	Status game.Status    `json:"status"`
	Secret string         `json:"secret"`
	Stats  *stats.Summary `json:"stats,omitempty"`
}

func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	owner, err := s.authorize(r, id)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	var result game.Result
	err = s.games.Update(r.Context(), id, func(g *game.Game) error {
		if err := g.GiveUp(); err != nil {
			return err
		}
		result, _ = g.Result()
		return nil
	})
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, giveUpRes{
		GameID: id,
		Status: game.Lost,
		Secret: result.Secret,
		Stats:  s.record(r, owner, result, s.isDailyGame(owner, id)),
	})
}

// authorize returns the owner of game id, answering not found for games
// the caller does not own.
func (s *Server) authorize(r *http.Request, id string) (string, error) {
	_, owner, err := s.games.Get(r.Context(), id)
	if err != nil {
		return "", err
	}
	if !s.owns(r, owner) {
		return "", store.ErrNotFound
	}
	return owner, nil
}

// record writes a finished game to the stats table and returns the owner's
// fresh summary. Failures are logged, never surfaced: the game itself is over.
func (s *Server) record(r *http.Request, owner string, res game.Result, isDaily bool) *stats.Summary {
	ctx := context.WithoutCancel(r.Context())
	logger := hlog.FromRequest(r)
	if err := s.stats.Insert(ctx, stats.FromResult(owner, res, isDaily, s.now())); err != nil {
		logger.Warn().Err(err).Str("gameId", res.GameID).Msg("record result")
		return nil
	}
	if isDaily {
		s.finishDaily(r, owner, res)
	}
	sum, err := s.stats.Summary(ctx, owner)
	if err != nil {
		logger.Warn().Err(err).Str("owner", owner).Msg("load summary")
		return nil
	}
	logger.Info().Str("gameId", res.GameID).Bool("won", res.Won).Int("attempts", res.Attempts).Msg("game finished")
	return &sum
}
