package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// Evaluate scores guess against secret using the two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches green and remove them from the secret's digit counts.
//
// Pass 2:
//   - Walk the remaining positions left to right: yellow while a copy of the
//     digit is still unclaimed in the secret, gray otherwise.
//
// Greens must be settled for the whole guess before any yellow is handed out,
// otherwise a repeated digit can steal the copy an exact match needs.
//
// Both arguments must be 5-digit strings; anything else is a caller bug and panics
// with ErrInvalidLength.
func Evaluate(secret, guess string) Feedback {
	if !IsNumberString(secret) || !IsNumberString(guess) {
		panic(fmt.Errorf("%w: secret=%q guess=%q", ErrInvalidLength, secret, guess))
	}

	var fb Feedback
	var avail [10]int
	for i := 0; i < Length; i++ {
		avail[secret[i]-'0']++
		fb[i] = Gray
	}

	for i := 0; i < Length; i++ {
		if guess[i] == secret[i] {
			fb[i] = Green
			avail[guess[i]-'0']--
		}
	}

	for i := 0; i < Length; i++ {
		if fb[i] == Green {
			continue
		}
		if d := guess[i] - '0'; avail[d] > 0 {
			fb[i] = Yellow
			avail[d]--
		}
	}
	return fb
}

// IsNumberString reports whether s is exactly Length ASCII digits.
func IsNumberString(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeGuess checks the digit format. Surrounding whitespace is rejected;
// callers reading lines from a terminal trim before calling.
func NormalizeGuess(s string) (string, error) {
	if !IsNumberString(s) {
		return "", ErrInvalidFormat
	}
	return s, nil
}

// digitCounts returns how many times each digit occurs in a NumberString.
func digitCounts(s string) [10]int {
	var c [10]int
	for i := 0; i < len(s); i++ {
		c[s[i]-'0']++
	}
	return c
}

// FormatSecret renders n as a zero-padded 5-digit string.
func FormatSecret(n int) string { return fmt.Sprintf("%05d", n) }

// RandomSecret returns a uniformly random secret in [00000, 99999] from crypto/rand.
func RandomSecret() string {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxSecret+1))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Errorf("random secret: %w", err))
	}
	return FormatSecret(int(n.Int64()))
}

// SeededSecret returns a reproducible secret for the given seed.
func SeededSecret(seed int64) string {
	return FormatSecret(mrand.New(mrand.NewSource(seed)).Intn(MaxSecret + 1))
}
