package game

// Validate checks candidate against the constraint summary under mode.
// It returns nil when the guess is allowed, or a *RuleViolation naming the
// first broken rule. Candidate must already be a 5-digit string.
//
// Normal accepts everything. Hard requires confirmed digits to stay put, every
// known digit to be used often enough, and no digit to return to a yellow spot.
// Ultra adds the count ceilings and bans gray positions. Every Hard rejection is
// reached before any Ultra-only rule, so Ultra never accepts what Hard rejects.
func Validate(s Summary, mode Mode, candidate string) error {
	if mode == Normal {
		return nil
	}
	counts := digitCounts(candidate)

	if v := checkHard(s, candidate, counts); v != nil {
		return v
	}
	if mode == Ultra {
		if v := checkUltra(s, candidate, counts); v != nil {
			return v
		}
	}
	return nil
}

func checkHard(s Summary, candidate string, counts [10]int) *RuleViolation {
	for p, d := range s.Confirmed {
		if d != Unknown && int(candidate[p]-'0') != d {
			return &RuleViolation{Code: MissingConfirmedDigit, Digit: d, Position: p}
		}
	}
	for d, need := range s.MinCount {
		if counts[d] < need {
			return &RuleViolation{Code: MissingRequiredDigit, Digit: d, Position: -1, Need: need, Have: counts[d]}
		}
	}
	for d, banned := range s.Excluded {
		for _, p := range banned.Positions() {
			if int(candidate[p]-'0') == d {
				return &RuleViolation{Code: RepeatedYellowPosition, Digit: d, Position: p}
			}
		}
	}
	return nil
}

func checkUltra(s Summary, candidate string, counts [10]int) *RuleViolation {
	for d, limit := range s.MaxCount {
		if counts[d] == 0 {
			continue
		}
		if limit == 0 {
			return &RuleViolation{Code: EliminatedDigitUsed, Digit: d, Position: -1}
		}
		if counts[d] > limit {
			return &RuleViolation{Code: ExceedsMaxCount, Digit: d, Position: -1, Have: counts[d], Limit: limit}
		}
	}
	for d, banned := range s.RuledOut {
		for _, p := range banned.Positions() {
			if int(candidate[p]-'0') == d {
				return &RuleViolation{Code: RuledOutPosition, Digit: d, Position: p}
			}
		}
	}
	return nil
}
