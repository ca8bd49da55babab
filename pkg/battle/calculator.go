package battle

import (
	"errors"
	"fmt"
	"math"
)

// Profile is the minimal description of one battle participant: its base
// attack and defense stats and its 1-2 element types. Profiles are value
// objects; a calculation never mutates them.
type Profile struct {
	Attack  int
	Defense int
	Types   []ElementType
}

// Move is the attacking move under consideration.
type Move struct {
	Power int
	Type  ElementType
}

// Parameters collects the inputs for one damage calculation.
type Parameters struct {
	Attacker Profile
	Defender Profile
	Move     Move
	Level    int
}

// Result is the outcome of one damage calculation.
type Result struct {
	Damage        int
	Multiplier    float64
	Effectiveness Effectiveness
}

var (
	// ErrInvalidProfile marks a combat profile that cannot take part in a
	// calculation, such as a defender with no defense stat to divide by.
	ErrInvalidProfile = errors.New("invalid combat profile")

	// ErrInvalidMove marks move parameters outside their valid ranges.
	ErrInvalidMove = errors.New("invalid move parameters")
)

const (
	MinLevel = 1
	MaxLevel = 100
)

func validate(params Parameters) error {
	if params.Attacker.Attack < 0 {
		return fmt.Errorf("attack stat %d is negative: %w", params.Attacker.Attack, ErrInvalidProfile)
	}
	if params.Defender.Defense <= 0 {
		return fmt.Errorf("defense stat %d is not positive: %w", params.Defender.Defense, ErrInvalidProfile)
	}
	if params.Move.Power < 1 {
		return fmt.Errorf("move power %d is not positive: %w", params.Move.Power, ErrInvalidMove)
	}
	if params.Level < MinLevel || params.Level > MaxLevel {
		return fmt.Errorf("level %d outside range [%d, %d]: %w", params.Level, MinLevel, MaxLevel, ErrInvalidMove)
	}

	return nil
}

// Calculate computes the damage a move deals from attacker to defender at
// the given level, along with the resolved type multiplier and its label.
// It is a pure function of its parameters: identical inputs always produce
// identical results, and it is safe to call concurrently.
//
// All intermediate arithmetic runs in float64; the result is truncated
// exactly once, after the type multiplier has been applied. Truncating any
// earlier would skew results for the fractional multipliers.
func Calculate(params Parameters) (Result, error) {
	if err := validate(params); err != nil {
		return Result{}, err
	}

	multiplier := ResolveMultiplier(params.Move.Type, params.Defender.Types)

	level := float64(params.Level)
	power := float64(params.Move.Power)
	attack := float64(params.Attacker.Attack)
	defense := float64(params.Defender.Defense)

	raw := ((2*level/5+2)*power*attack/defense)/50 + 2

	damage := int(math.Floor(raw * multiplier))
	if damage < 0 {
		damage = 0
	}

	return Result{
		Damage:        damage,
		Multiplier:    multiplier,
		Effectiveness: Classify(multiplier),
	}, nil
}
