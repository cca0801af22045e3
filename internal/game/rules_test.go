package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violation(t *testing.T, err error) *RuleViolation {
	t.Helper()
	var v *RuleViolation
	require.True(t, errors.As(err, &v), "expected *RuleViolation, got %v", err)
	require.ErrorIs(t, err, ErrModeViolation)
	return v
}

func TestValidate_NormalAcceptsAnything(t *testing.T) {
	s := Accumulate(play("71234", "77000"))
	assert.NoError(t, Validate(s, Normal, "00000"))
	assert.NoError(t, Validate(s, Normal, "99999"))
}

func TestValidate_EmptyHistoryAcceptsAnything(t *testing.T) {
	for _, m := range []Mode{Normal, Hard, Ultra} {
		assert.NoError(t, Validate(NewSummary(), m, "77777"), m.String())
	}
}

func TestValidate_Hard(t *testing.T) {
	yellows := Accumulate(play("12345", "21000")) // YY___
	greens := Accumulate(play("71234", "77000"))  // G____

	tests := []struct {
		name      string
		summary   Summary
		candidate string
		code      ViolationCode
		digit     int
		position  int
	}{
		{"green must stay", greens, "17345", MissingConfirmedDigit, 7, 0},
		{"known digits must be used", yellows, "34567", MissingRequiredDigit, 1, -1},
		{"yellow spot reused", yellows, "21999", RepeatedYellowPosition, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := violation(t, Validate(tc.summary, Hard, tc.candidate))
			assert.Equal(t, tc.code, v.Code)
			assert.Equal(t, tc.digit, v.Digit)
			assert.Equal(t, tc.position, v.Position)
			assert.NotEmpty(t, v.Error())
		})
	}

	// Hard ignores eliminated digits and count ceilings.
	assert.NoError(t, Validate(yellows, Hard, "12000"))
	assert.NoError(t, Validate(greens, Hard, "77345"))
}

func TestValidate_Ultra(t *testing.T) {
	yellows := Accumulate(play("12345", "21000"))    // YY___
	greenGray := Accumulate(play("71234", "77000"))  // G____
	yellowGray := Accumulate(play("17234", "00707")) // __Y__
	require.Equal(t, "__Y__", Evaluate("17234", "00707").String())

	tests := []struct {
		name      string
		summary   Summary
		candidate string
		code      ViolationCode
		digit     int
	}{
		{"eliminated digit", yellows, "12000", EliminatedDigitUsed, 0},
		{"second copy after green+gray", greenGray, "77345", ExceedsMaxCount, 7},
		{"gray position reused", yellowGray, "12347", RuledOutPosition, 7},
		{"hard rules still apply", greenGray, "17345", MissingConfirmedDigit, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := violation(t, Validate(tc.summary, Ultra, tc.candidate))
			assert.Equal(t, tc.code, v.Code)
			assert.Equal(t, tc.digit, v.Digit)
		})
	}

	v := violation(t, Validate(greenGray, Ultra, "77345"))
	assert.Equal(t, 2, v.Have)
	assert.Equal(t, 1, v.Limit)
	assert.Equal(t, "Too many 7 digits; max allowed is 1.", v.Error())

	assert.NoError(t, Validate(yellows, Ultra, "12999"))
	assert.NoError(t, Validate(greenGray, Ultra, "71345"))
	assert.NoError(t, Validate(yellowGray, Ultra, "71234"))
	assert.NoError(t, Validate(yellowGray, Hard, "12347"))
}

func TestValidate_UltraIsStricterThanHard(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	random := func() string { return FormatSecret(rng.Intn(MaxSecret + 1)) }

	hardRejects := 0
	for n := 0; n < 500; n++ {
		secret := random()
		rounds := 1 + rng.Intn(3)
		guesses := make([]string, rounds)
		for i := range guesses {
			guesses[i] = random()
		}
		s := Accumulate(play(secret, guesses...))
		for k := 0; k < 20; k++ {
			c := random()
			if Validate(s, Hard, c) != nil {
				hardRejects++
				require.Error(t, Validate(s, Ultra, c), "secret=%s history=%v candidate=%s", secret, guesses, c)
			}
		}
		// The secret itself never breaks any rule.
		require.NoError(t, Validate(s, Ultra, secret), "secret=%s history=%v", secret, guesses)
	}
	require.Positive(t, hardRejects)
}
