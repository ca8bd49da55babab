package battle

type typeSet map[ElementType]struct{}

func set(types ...ElementType) typeSet {
	s := make(typeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

func (s typeSet) has(t ElementType) bool {
	_, ok := s[t]
	return ok
}

// TypeEffectiveness describes how a single defending type receives attacks:
// attacks of a type in WeakTo deal double damage, ResistantTo half, ImmuneTo
// none. The three sets are pairwise disjoint for every entry.
type TypeEffectiveness struct {
	WeakTo      typeSet
	ResistantTo typeSet
	ImmuneTo    typeSet
}

// typeChart is the canonical full-generation type chart, keyed by defending
// type. It covers all 18 element types and is never mutated after init.
var typeChart = map[ElementType]TypeEffectiveness{
	Normal: {
		WeakTo:      set(Fighting),
		ResistantTo: set(),
		ImmuneTo:    set(Ghost),
	},
	Fire: {
		WeakTo:      set(Water, Ground, Rock),
		ResistantTo: set(Fire, Grass, Ice, Bug, Steel, Fairy),
		ImmuneTo:    set(),
	},
	Water: {
		WeakTo:      set(Electric, Grass),
		ResistantTo: set(Fire, Water, Ice, Steel),
		ImmuneTo:    set(),
	},
	Electric: {
		WeakTo:      set(Ground),
		ResistantTo: set(Electric, Flying, Steel),
		ImmuneTo:    set(),
	},
	Grass: {
		WeakTo:      set(Fire, Ice, Poison, Flying, Bug),
		ResistantTo: set(Water, Electric, Grass, Ground),
		ImmuneTo:    set(),
	},
	Ice: {
		WeakTo:      set(Fire, Fighting, Rock, Steel),
		ResistantTo: set(Ice),
		ImmuneTo:    set(),
	},
	Fighting: {
		WeakTo:      set(Flying, Psychic, Fairy),
		ResistantTo: set(Bug, Rock, Dark),
		ImmuneTo:    set(),
	},
	Poison: {
		WeakTo:      set(Ground, Psychic),
		ResistantTo: set(Grass, Fighting, Poison, Bug, Fairy),
		ImmuneTo:    set(),
	},
	Ground: {
		WeakTo:      set(Water, Grass, Ice),
		ResistantTo: set(Poison, Rock),
		ImmuneTo:    set(Electric),
	},
	Flying: {
		WeakTo:      set(Electric, Ice, Rock),
		ResistantTo: set(Grass, Fighting, Bug),
		ImmuneTo:    set(Ground),
	},
	Psychic: {
		WeakTo:      set(Bug, Ghost, Dark),
		ResistantTo: set(Fighting, Psychic),
		ImmuneTo:    set(),
	},
	Bug: {
		WeakTo:      set(Fire, Flying, Rock),
		ResistantTo: set(Grass, Fighting, Ground),
		ImmuneTo:    set(),
	},
	Rock: {
		WeakTo:      set(Water, Grass, Fighting, Ground, Steel),
		ResistantTo: set(Normal, Fire, Poison, Flying),
		ImmuneTo:    set(),
	},
	Ghost: {
		WeakTo:      set(Ghost, Dark),
		ResistantTo: set(Poison, Bug),
		ImmuneTo:    set(Normal, Fighting),
	},
	Dragon: {
		WeakTo:      set(Ice, Dragon, Fairy),
		ResistantTo: set(Fire, Water, Electric, Grass),
		ImmuneTo:    set(),
	},
	Dark: {
		WeakTo:      set(Fighting, Bug, Fairy),
		ResistantTo: set(Ghost, Dark),
		ImmuneTo:    set(Psychic),
	},
	Steel: {
		WeakTo:      set(Fire, Fighting, Ground),
		ResistantTo: set(Normal, Grass, Ice, Flying, Psychic, Bug, Rock, Dragon, Steel, Fairy),
		ImmuneTo:    set(Poison),
	},
	Fairy: {
		WeakTo:      set(Poison, Steel),
		ResistantTo: set(Fighting, Bug, Dark),
		ImmuneTo:    set(Dragon),
	},
}

// ResolveMultiplier combines the effectiveness of an attacking type against
// each of the defender's types into a single damage multiplier. The factors
// compose multiplicatively, so a zero factor from an immunity absorbs
// everything else without a special case. Types missing from the chart
// contribute a neutral factor.
func ResolveMultiplier(attackType ElementType, defenderTypes []ElementType) float64 {
	multiplier := 1.0
	for _, d := range defenderTypes {
		entry, ok := typeChart[d]
		if !ok {
			continue
		}

		switch {
		case entry.ImmuneTo.has(attackType):
			multiplier *= 0
		case entry.WeakTo.has(attackType):
			multiplier *= 2
		case entry.ResistantTo.has(attackType):
			multiplier *= 0.5
		}
	}

	return multiplier
}

// Effectiveness is the qualitative classification of a damage multiplier.
type Effectiveness string

const (
	NoEffect          Effectiveness = "no-effect"
	NotVeryEffective  Effectiveness = "not-very-effective"
	NormallyEffective Effectiveness = "normally-effective"
	SuperEffective    Effectiveness = "super-effective"
)

// Classify maps a multiplier onto its effectiveness label.
func Classify(multiplier float64) Effectiveness {
	switch {
	case multiplier == 0:
		return NoEffect
	case multiplier < 1:
		return NotVeryEffective
	case multiplier > 1:
		return SuperEffective
	default:
		return NormallyEffective
	}
}

// DefensiveMultipliers returns the damage multiplier every attacking type
// resolves to against the given defending type combination.
func DefensiveMultipliers(defenderTypes []ElementType) map[ElementType]float64 {
	multipliers := make(map[ElementType]float64, len(AllElementTypes))
	for _, attack := range AllElementTypes {
		multipliers[attack] = ResolveMultiplier(attack, defenderTypes)
	}

	return multipliers
}

// OffensiveMultipliers returns the damage multiplier the given attacking
// type resolves to against each single defending type.
func OffensiveMultipliers(attackType ElementType) map[ElementType]float64 {
	multipliers := make(map[ElementType]float64, len(AllElementTypes))
	for _, defender := range AllElementTypes {
		multipliers[defender] = ResolveMultiplier(attackType, []ElementType{defender})
	}

	return multipliers
}
