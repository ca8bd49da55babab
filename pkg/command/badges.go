package command

import (
	"fmt"
	"strings"

	"battledex/pkg/battle"
)

// TypeBadges maps element types to the emoji shown next to them in
// responses. Types without a badge fall back to inline code.
var TypeBadges = map[battle.ElementType]string{
	battle.Normal:   "⚪",
	battle.Fire:     "🔥",
	battle.Water:    "💧",
	battle.Electric: "⚡",
	battle.Grass:    "🌿",
	battle.Ice:      "❄️",
	battle.Fighting: "🥊",
	battle.Poison:   "☠️",
	battle.Ground:   "⛰️",
	battle.Flying:   "🪶",
	battle.Psychic:  "🔮",
	battle.Bug:      "🐛",
	battle.Rock:     "🪨",
	battle.Ghost:    "👻",
	battle.Dragon:   "🐉",
	battle.Dark:     "🌑",
	battle.Steel:    "⚙️",
	battle.Fairy:    "✨",
}

func badge(typ battle.ElementType) string {
	if b, ok := TypeBadges[typ]; ok {
		return fmt.Sprintf("%s %s", b, typ)
	}

	return fmt.Sprintf("`%s`", typ)
}

func badgeList(types []battle.ElementType) string {
	parts := make([]string, len(types))
	for i, typ := range types {
		parts[i] = badge(typ)
	}

	return strings.Join(parts, " / ")
}
