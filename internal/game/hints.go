package game

import (
	"fmt"
	"strconv"
)

// hintsPerRound is how many hints follow a missed guess.
const hintsPerRound = 2

// hintCategory renders one kind of fact about the secret. ok is false when the
// category has nothing to add for this guess.
type hintCategory struct {
	name   string
	render func(secret, guess string, fb Feedback, round int) (text string, ok bool)
}

// catalogue order is part of the game's behaviour: rounds index into it.
var catalogue = []hintCategory{
	{"range", rangeHint},
	{"parity", parityHint},
	{"digit_sum", digitSumHint},
	{"relation", relationHint},
	{"repetition", repetitionHint},
}

// GenerateHints returns up to two hints for a missed guess. The output depends
// only on its arguments.
//
// Categories are tried in the order round%5, round%5+2, round%5+4, ... (mod 5),
// which visits all five, and the first two that have something to say are kept.
// A solved guess gets no hints.
func GenerateHints(secret, guess string, fb Feedback, round int) []string {
	if fb.Solved() || !IsNumberString(secret) || !IsNumberString(guess) {
		return nil
	}
	if round < 1 {
		round = 1
	}
	n := len(catalogue)
	out := make([]string, 0, hintsPerRound)
	for k := 0; k < n && len(out) < hintsPerRound; k++ {
		c := catalogue[(round+2*k)%n]
		if text, ok := c.render(secret, guess, fb, round); ok {
			out = append(out, text)
		}
	}
	return out
}

// rangeHint says which side of the guess the secret is on, inside a band that
// is the smallest power of ten covering the distance.
func rangeHint(secret, guess string, _ Feedback, _ int) (string, bool) {
	s, _ := strconv.Atoi(secret)
	g, _ := strconv.Atoi(guess)
	if s == g {
		return "", false
	}
	dist := s - g
	if dist < 0 {
		dist = -dist
	}
	band := 10
	for band < dist {
		band *= 10
	}
	if s > g {
		return fmt.Sprintf("The number is higher than your guess, between %05d and %05d.",
			g+1, min(MaxSecret, g+band)), true
	}
	return fmt.Sprintf("The number is lower than your guess, between %05d and %05d.",
		max(0, g-band), g-1), true
}

// parityHint only speaks up when the guess had the wrong parity.
func parityHint(secret, guess string, _ Feedback, _ int) (string, bool) {
	sp := (secret[Length-1] - '0') % 2
	gp := (guess[Length-1] - '0') % 2
	if sp == gp {
		return "", false
	}
	if sp == 0 {
		return "It is an even number.", true
	}
	return "It is an odd number.", true
}

func digitSumHint(secret, _ string, _ Feedback, _ int) (string, bool) {
	sum := 0
	for i := 0; i < Length; i++ {
		sum += int(secret[i] - '0')
	}
	return fmt.Sprintf("The digits add up to %d (mod 3).", sum%3), true
}

// relationHint compares two neighbouring digits of the secret. The pair rotates
// with the round and pairs that are already fully green are skipped.
func relationHint(secret, _ string, fb Feedback, round int) (string, bool) {
	const pairs = Length - 1
	for k := 0; k < pairs; k++ {
		i := (round + k) % pairs
		if fb[i] == Green && fb[i+1] == Green {
			continue
		}
		a, b := secret[i], secret[i+1]
		rel := "equal to"
		switch {
		case a < b:
			rel = "less than"
		case a > b:
			rel = "greater than"
		}
		return fmt.Sprintf("Digit %d is %s digit %d.", i+1, rel, i+2), true
	}
	return "", false
}

// repetitionHint is dropped when the tiles already show a digit matched twice.
func repetitionHint(secret, guess string, fb Feedback, _ int) (string, bool) {
	var matched [10]int
	for i := 0; i < Length; i++ {
		if fb[i] != Gray {
			d := guess[i] - '0'
			matched[d]++
			if matched[d] > 1 {
				return "", false
			}
		}
	}
	for _, c := range digitCounts(secret) {
		if c > 1 {
			return "At least one digit repeats.", true
		}
	}
	return "All digits are distinct.", true
}
