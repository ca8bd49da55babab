package battle

import (
	"errors"
	"testing"
)

func baseParams(defenderTypes ...ElementType) Parameters {
	return Parameters{
		Attacker: Profile{Attack: 100, Defense: 100, Types: []ElementType{Water}},
		Defender: Profile{Attack: 100, Defense: 100, Types: defenderTypes},
		Move:     Move{Power: 80, Type: Water},
		Level:    50,
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name              string
		params            Parameters
		wantDamage        int
		wantMultiplier    float64
		wantEffectiveness Effectiveness
	}{
		{
			// raw = (((2*50/5+2)*80*100/100)/50)+2 = 37.2
			name:              "super effective against fire",
			params:            baseParams(Fire),
			wantDamage:        74,
			wantMultiplier:    2,
			wantEffectiveness: SuperEffective,
		},
		{
			name:              "resisted by water",
			params:            baseParams(Water),
			wantDamage:        18,
			wantMultiplier:    0.5,
			wantEffectiveness: NotVeryEffective,
		},
		{
			name:              "neutral against normal",
			params:            baseParams(Normal),
			wantDamage:        37,
			wantMultiplier:    1,
			wantEffectiveness: NormallyEffective,
		},
		{
			name: "electric has no effect on ground",
			params: Parameters{
				Attacker: Profile{Attack: 250, Types: []ElementType{Electric}},
				Defender: Profile{Defense: 40, Types: []ElementType{Ground}},
				Move:     Move{Power: 120, Type: Electric},
				Level:    100,
			},
			wantDamage:        0,
			wantMultiplier:    0,
			wantEffectiveness: NoEffect,
		},
		{
			name: "dual-typed double resistance",
			params: Parameters{
				Attacker: Profile{Attack: 100, Types: []ElementType{Grass}},
				Defender: Profile{Defense: 100, Types: []ElementType{Fire, Dragon}},
				Move:     Move{Power: 80, Type: Grass},
				Level:    50,
			},
			// floor(37.2 * 0.25) = 9
			wantDamage:        9,
			wantMultiplier:    0.25,
			wantEffectiveness: NotVeryEffective,
		},
		{
			name: "truncation happens after the multiplier",
			params: Parameters{
				Attacker: Profile{Attack: 105, Types: []ElementType{Water}},
				Defender: Profile{Defense: 100, Types: []ElementType{Fire}},
				Move:     Move{Power: 80, Type: Water},
				Level:    50,
			},
			// raw = 38.96; floor(38.96 * 2) = 77. Flooring raw before the
			// multiplier would yield 76.
			wantDamage:        77,
			wantMultiplier:    2,
			wantEffectiveness: SuperEffective,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(tt.params)
			if err != nil {
				t.Fatalf("Calculate returned error: %v", err)
			}

			if result.Damage != tt.wantDamage {
				t.Errorf("damage = %d, want %d", result.Damage, tt.wantDamage)
			}
			if result.Multiplier != tt.wantMultiplier {
				t.Errorf("multiplier = %v, want %v", result.Multiplier, tt.wantMultiplier)
			}
			if result.Effectiveness != tt.wantEffectiveness {
				t.Errorf("effectiveness = %q, want %q", result.Effectiveness, tt.wantEffectiveness)
			}
		})
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	params := baseParams(Grass, Poison)
	params.Move.Type = Psychic

	first, err := Calculate(params)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	for i := 0; i < 100; i++ {
		again, err := Calculate(params)
		if err != nil {
			t.Fatalf("Calculate returned error: %v", err)
		}
		if again != first {
			t.Fatalf("result changed between calls: %+v != %+v", again, first)
		}
	}
}

func TestCalculateDefenderTypeOrder(t *testing.T) {
	forward := baseParams(Grass, Poison)
	forward.Move.Type = Psychic
	reverse := baseParams(Poison, Grass)
	reverse.Move.Type = Psychic

	a, err := Calculate(forward)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	b, err := Calculate(reverse)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	if a != b {
		t.Fatalf("type order changed the result: %+v != %+v", a, b)
	}
}

func TestCalculateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr error
	}{
		{"zero defense", func(p *Parameters) { p.Defender.Defense = 0 }, ErrInvalidProfile},
		{"negative defense", func(p *Parameters) { p.Defender.Defense = -10 }, ErrInvalidProfile},
		{"negative attack", func(p *Parameters) { p.Attacker.Attack = -1 }, ErrInvalidProfile},
		{"zero power", func(p *Parameters) { p.Move.Power = 0 }, ErrInvalidMove},
		{"level below minimum", func(p *Parameters) { p.Level = 0 }, ErrInvalidMove},
		{"level above maximum", func(p *Parameters) { p.Level = 101 }, ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := baseParams(Fire)
			tt.mutate(&params)

			_, err := Calculate(params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Calculate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCalculateZeroAttackIsValid(t *testing.T) {
	params := baseParams(Fire)
	params.Attacker.Attack = 0

	result, err := Calculate(params)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	// raw collapses to the flat +2 term; floor(2 * 2) = 4.
	if result.Damage != 4 {
		t.Fatalf("damage = %d, want 4", result.Damage)
	}
}
