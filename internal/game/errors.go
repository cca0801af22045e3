package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned for a guess that is not exactly five digits.
	ErrInvalidFormat = errors.New("guess must be exactly 5 digits")
	// ErrInvalidLength marks a broken Evaluate precondition. It is raised as a panic.
	ErrInvalidLength = errors.New("evaluate: inputs must be 5-digit strings")
	// ErrGameOver is returned for any guess after the game has ended.
	ErrGameOver = errors.New("game finished")
	// ErrModeViolation is the parent of every *RuleViolation.
	ErrModeViolation = errors.New("guess violates mode rules")
)

// ViolationCode names the rule a candidate guess broke.
type ViolationCode string

const (
	MissingConfirmedDigit  ViolationCode = "missing_confirmed_digit"
	MissingRequiredDigit   ViolationCode = "missing_required_digit"
	RepeatedYellowPosition ViolationCode = "repeated_yellow_position"
	ExceedsMaxCount        ViolationCode = "exceeds_max_count"
	EliminatedDigitUsed    ViolationCode = "eliminated_digit_used"
	RuledOutPosition       ViolationCode = "ruled_out_position"
)

// RuleViolation describes why a Hard or Ultra guess was rejected.
// Position is 0-based, or -1 when the rule is about counts only.
type RuleViolation struct {
	Code     ViolationCode `json:"code"`
	Digit    int           `json:"digit"`
	Position int           `json:"position"`
	Need     int           `json:"need,omitempty"`
	Have     int           `json:"have,omitempty"`
	Limit    int           `json:"limit,omitempty"`
}

func (v *RuleViolation) Error() string {
	switch v.Code {
	case MissingConfirmedDigit:
		return fmt.Sprintf("Position %d must be %d based on previous feedback.", v.Position+1, v.Digit)
	case MissingRequiredDigit:
		return fmt.Sprintf("Use digit %d at least %d time(s); missing %d.", v.Digit, v.Need, v.Need-v.Have)
	case RepeatedYellowPosition:
		return fmt.Sprintf("Digit %d cannot be in position %d (yellow earlier).", v.Digit, v.Position+1)
	case ExceedsMaxCount:
		return fmt.Sprintf("Too many %d digits; max allowed is %d.", v.Digit, v.Limit)
	case EliminatedDigitUsed:
		return fmt.Sprintf("Digit %d is not in the number based on earlier feedback.", v.Digit)
	case RuledOutPosition:
		return fmt.Sprintf("Digit %d cannot be in position %d (ruled out earlier).", v.Digit, v.Position+1)
	}
	return string(v.Code)
}

func (v *RuleViolation) Is(target error) bool { return target == ErrModeViolation }
