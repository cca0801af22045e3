// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
//   - POST /daily/new         → start (or resume) today's game
//   - POST /daily/guess       → submit a guess for today's game
//   - GET  /daily/leaderboard → winners for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same secret for a UTC day, derived from the date and
// DAILY_SALT. Each owner plays it once; the finished result is stored in
// daily_results and the owner's stats.

package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numberdle/internal/daily"
	"github.com/robalobadob/numberdle/internal/game"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/guess", s.handleDailyGuess)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

type dailyNewReq struct {
	Mode string `json:"mode"`
}

type dailyNewRes struct {
	GameID string    `json:"gameId,omitempty"`
	Date   string    `json:"date"`
	Mode   game.Mode `json:"mode"`
	Played bool      `json:"played"`
}

func sessionKey(owner, date string) string { return owner + "|" + date }

// handleDailyNew creates or resumes today's game for the caller.
// Owners with a stored result for today get Played=true and no game.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req dailyNewReq
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

	owner := s.owner(w, r)
	date := daily.DateKey(s.now())
	played, err := s.daily.AlreadyPlayed(r.Context(), owner, date)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Mode: mode, Played: true})
		return
	}

	key := sessionKey(owner, date)
	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()
	if sess, ok := s.dailySessions[key]; ok {
		if g, _, err := s.games.Get(r.Context(), sess.gameID); err == nil {
			writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.gameID, Date: date, Mode: g.Mode})
			return
		}
		delete(s.dailySessions, key)
	}

	g, err := game.New(mode, daily.SecretFor(date, s.cfg.Daily.Salt))
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	if err := s.games.Save(r.Context(), owner, g); err != nil {
		writeGameErr(w, r, err)
		return
	}
	s.dailySessions[key] = dailySession{gameID: g.ID, date: date}
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: g.ID, Date: date, Mode: mode})
}

// handleDailyGuess is /game/guess restricted to the caller's daily game.
func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	owner, err := s.authorize(r, req.GameID)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	if !s.isDailyGame(owner, req.GameID) {
		writeErr(w, http.StatusConflict, "no_session", "no daily game in progress with that id")
		return
	}
	res, err := s.applyGuess(r, req.GameID, req.Guess)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// isDailyGame reports whether id is owner's daily game for today.
func (s *Server) isDailyGame(owner, id string) bool {
	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()
	got, ok := s.dailySessions[sessionKey(owner, daily.DateKey(s.now()))]
	return ok && got.gameID == id
}

// PruneDaily drops daily sessions left open on earlier days and returns how
// many were removed. Their games expire through the store's own sweep.
func (s *Server) PruneDaily() int {
	today := daily.DateKey(s.now())
	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()
	n := 0
	for k, sess := range s.dailySessions {
		if sess.date != today {
			delete(s.dailySessions, k)
			n++
		}
	}
	return n
}

// finishDaily stores the daily result and closes the session.
func (s *Server) finishDaily(r *http.Request, owner string, res game.Result) {
	date := daily.DateKey(s.now())
	var elapsed int64
	if g, _, err := s.games.Get(r.Context(), res.GameID); err == nil {
		elapsed = max(0, s.now().Sub(g.CreatedAt).Milliseconds())
	}
	_, err := s.daily.InsertResult(context.WithoutCancel(r.Context()), daily.Result{
		OwnerID:   owner,
		Date:      date,
		Mode:      res.Mode,
		Won:       res.Won,
		Attempts:  res.Attempts,
		ElapsedMs: elapsed,
	})
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("owner", owner).Msg("record daily result")
	}
	s.dailyMu.Lock()
	delete(s.dailySessions, sessionKey(owner, date))
	s.dailyMu.Unlock()
}

type leaderboardRes struct {
	Date string        `json:"date"`
	Top  []daily.Entry `json:"top"`
}

// handleLeaderboard returns the winners for ?date= (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeErr(w, http.StatusBadRequest, "invalid_limit", "limit must be 1-100")
			return
		}
		limit = n
	}
	top, err := s.daily.Leaderboard(r.Context(), date, limit)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardRes{Date: date, Top: top})
}
