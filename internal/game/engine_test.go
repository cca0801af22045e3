package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, mode Mode, secret string) *Game {
	t.Helper()
	g, err := New(mode, secret)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	g := newGame(t, Hard, "")
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, Hard, g.Mode)
	assert.Equal(t, InProgress, g.Status())
	assert.Equal(t, MaxAttempts, g.Remaining())
	_, ok := g.Secret()
	assert.False(t, ok, "secret stays hidden while playing")

	_, err := New(Normal, "1234")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = New(Mode(9), "12345")
	assert.Error(t, err)
}

func TestApplyGuess_Win(t *testing.T) {
	g := newGame(t, Normal, "12345")

	turn, err := g.ApplyGuess("54321")
	require.NoError(t, err)
	assert.Equal(t, 1, turn.Round)
	assert.Equal(t, "YYGYY", turn.Feedback.String())
	assert.Equal(t, InProgress, turn.Status)
	assert.NotEmpty(t, turn.Hints)
	assert.Equal(t, 5, turn.Remaining)

	turn, err = g.ApplyGuess("12345")
	require.NoError(t, err)
	assert.Equal(t, Won, turn.Status)
	assert.Nil(t, turn.Hints)

	_, err = g.ApplyGuess("12345")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 2, g.Attempts())

	secret, ok := g.Secret()
	require.True(t, ok)
	assert.Equal(t, "12345", secret)

	res, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, Result{GameID: g.ID, Mode: Normal, Won: true, Attempts: 2, Secret: "12345"}, res)
}

func TestApplyGuess_LostAfterSixMisses(t *testing.T) {
	g := newGame(t, Normal, "00000")
	for i := 1; i <= MaxAttempts; i++ {
		turn, err := g.ApplyGuess("11111")
		require.NoError(t, err)
		assert.Equal(t, i, turn.Round)
		if i < MaxAttempts {
			assert.Equal(t, InProgress, turn.Status)
		}
	}
	assert.Equal(t, Lost, g.Status())

	_, err := g.ApplyGuess("00000")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, MaxAttempts, g.Attempts())

	res, ok := g.Result()
	require.True(t, ok)
	assert.False(t, res.Won)
	assert.Equal(t, MaxAttempts, res.Attempts)
}

func TestApplyGuess_InvalidFormatConsumesNothing(t *testing.T) {
	g := newGame(t, Ultra, "12345")
	for _, bad := range []string{"", "1234", "123456", "12a45", "12 45", "  67890\n"} {
		_, err := g.ApplyGuess(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
	assert.Zero(t, g.Attempts())

	turn, err := g.ApplyGuess("67890")
	require.NoError(t, err)
	assert.Equal(t, "67890", g.History()[0].Guess)
	assert.Equal(t, 1, turn.Round)
}

func TestApplyGuess_FirstRoundIsNeverValidated(t *testing.T) {
	g := newGame(t, Ultra, "12345")
	_, err := g.ApplyGuess("99999")
	assert.NoError(t, err)
}

func TestApplyGuess_HardRejectionKeepsAttempt(t *testing.T) {
	g := newGame(t, Hard, "71234")
	_, err := g.ApplyGuess("77000")
	require.NoError(t, err)
	before := g.Summary()

	_, err = g.ApplyGuess("17345")
	require.ErrorIs(t, err, ErrModeViolation)
	var v *RuleViolation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, MissingConfirmedDigit, v.Code)
	assert.Equal(t, "Position 1 must be 7 based on previous feedback.", v.Error())

	assert.Equal(t, 1, g.Attempts())
	assert.Equal(t, before, g.Summary())
	assert.Equal(t, InProgress, g.Status())

	// Hard lets the second 7 through; Ultra would not.
	_, err = g.ApplyGuess("77345")
	assert.NoError(t, err)
}

func TestApplyGuess_UltraMaxCount(t *testing.T) {
	g := newGame(t, Ultra, "71234")
	_, err := g.ApplyGuess("77000")
	require.NoError(t, err)
	assert.Equal(t, 1, g.Summary().MaxCount[7])

	_, err = g.ApplyGuess("77345")
	var v *RuleViolation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, ExceedsMaxCount, v.Code)
	assert.Equal(t, 7, v.Digit)
	assert.Equal(t, 1, g.Attempts())

	turn, err := g.ApplyGuess("71234")
	require.NoError(t, err)
	assert.Equal(t, Won, turn.Status)
}

func TestGiveUp(t *testing.T) {
	g := newGame(t, Normal, "24680")
	require.NoError(t, g.GiveUp())
	assert.Equal(t, Lost, g.Status())
	assert.ErrorIs(t, g.GiveUp(), ErrGameOver)

	_, err := g.ApplyGuess("24680")
	assert.ErrorIs(t, err, ErrGameOver)

	res, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, 0, res.Attempts)
	assert.Equal(t, "24680", res.Secret)
}

func TestHistoryIsACopy(t *testing.T) {
	g := newGame(t, Normal, "12345")
	_, err := g.ApplyGuess("11111")
	require.NoError(t, err)

	h := g.History()
	h[0].Guess = "99999"
	assert.Equal(t, "11111", g.History()[0].Guess)
	assert.Equal(t, 1, g.History()[0].Round)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Normal, "normal": Normal, "HARD": Hard, " ultra ": Ultra} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("nightmare")
	assert.Error(t, err)

	b, err := Ultra.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ultra", string(b))

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("hard")))
	assert.Equal(t, Hard, m)
}
