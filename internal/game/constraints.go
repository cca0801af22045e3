package game

import "math/bits"

// Unknown marks a position whose digit has not been confirmed.
const Unknown = -1

// PositionSet is a bitmask over the five guess positions.
type PositionSet uint8

func (s PositionSet) Has(p int) bool { return s&(1<<uint(p)) != 0 }

func (s PositionSet) With(p int) PositionSet { return s | 1<<uint(p) }

func (s PositionSet) Len() int { return bits.OnesCount8(uint8(s)) }

// Positions lists members in ascending order.
func (s PositionSet) Positions() []int {
	out := make([]int, 0, s.Len())
	for p := 0; p < Length; p++ {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Summary is everything the feedback so far says about the secret.
// It is derived from history by Accumulate and never edited in place.
type Summary struct {
	// Confirmed holds the digit at each position known from a green, or Unknown.
	Confirmed [Length]int `json:"confirmed"`
	// MinCount is the number of copies of each digit known to be in the secret.
	MinCount [10]int `json:"minCount"`
	// MaxCount bounds the copies of each digit; 5 means unconstrained.
	MaxCount [10]int `json:"maxCount"`
	// Excluded holds the positions where each digit was marked yellow.
	Excluded [10]PositionSet `json:"excluded"`
	// RuledOut holds the positions where each digit was marked gray.
	RuledOut [10]PositionSet `json:"ruledOut"`
}

// NewSummary returns the summary of an empty history.
func NewSummary() Summary {
	var s Summary
	for p := range s.Confirmed {
		s.Confirmed[p] = Unknown
	}
	for d := range s.MaxCount {
		s.MaxCount[d] = Length
	}
	return s
}

// Accumulate folds the whole history into a Summary. It keeps no state between
// calls, so replaying any prefix of a history gives that prefix's summary.
//
// Per round and digit d, with g copies guessed and m of them green or yellow:
//   - MinCount[d] = max(MinCount[d], m)
//   - if g > m the secret holds exactly m copies, so MaxCount[d] = min(MaxCount[d], m)
//   - green positions confirm d; yellow positions go to Excluded[d]; gray
//     positions go to RuledOut[d] only.
func Accumulate(history []GuessRecord) Summary {
	s := NewSummary()
	for _, rec := range history {
		s.apply(rec.Guess, rec.Feedback)
	}
	return s
}

func (s *Summary) apply(guess string, fb Feedback) {
	var guessed, matched [10]int
	for p := 0; p < Length; p++ {
		d := int(guess[p] - '0')
		guessed[d]++
		switch fb[p] {
		case Green:
			s.Confirmed[p] = d
			matched[d]++
		case Yellow:
			s.Excluded[d] = s.Excluded[d].With(p)
			matched[d]++
		default:
			s.RuledOut[d] = s.RuledOut[d].With(p)
		}
	}
	for d := 0; d < 10; d++ {
		if guessed[d] == 0 {
			continue
		}
		if matched[d] > s.MinCount[d] {
			s.MinCount[d] = matched[d]
		}
		if guessed[d] > matched[d] && matched[d] < s.MaxCount[d] {
			s.MaxCount[d] = matched[d]
		}
	}
}

// Eliminated reports whether the secret is known to contain no d.
func (s Summary) Eliminated(d int) bool { return s.MaxCount[d] == 0 }

// Known counts the confirmed positions.
func (s Summary) Known() int {
	n := 0
	for _, d := range s.Confirmed {
		if d != Unknown {
			n++
		}
	}
	return n
}
