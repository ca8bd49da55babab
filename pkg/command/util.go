package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/battle"
)

// formatMultiplier renders an effectiveness multiplier the way players
// write it, without trailing zeroes.
func formatMultiplier(multiplier float64) string {
	switch multiplier {
	case 0:
		return "0×"
	case 0.25:
		return "¼×"
	case 0.5:
		return "½×"
	default:
		return fmt.Sprintf("%g×", multiplier)
	}
}

// multiplierBuckets groups types by their shared multiplier, strongest
// first, dropping the neutral bucket.
func multiplierBuckets(multipliers map[battle.ElementType]float64) []*discordgo.MessageEmbedField {
	buckets := make(map[float64][]battle.ElementType)
	for typ, multiplier := range multipliers {
		if multiplier == 1 {
			continue
		}

		buckets[multiplier] = append(buckets[multiplier], typ)
	}

	keys := make([]float64, 0, len(buckets))
	for multiplier := range buckets {
		keys = append(keys, multiplier)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(keys)))

	fields := make([]*discordgo.MessageEmbedField, len(keys))
	for i, multiplier := range keys {
		types := buckets[multiplier]
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

		names := make([]string, len(types))
		for j, typ := range types {
			names[j] = badge(typ)
		}

		fields[i] = &discordgo.MessageEmbedField{
			Name:  formatMultiplier(multiplier),
			Value: strings.Join(names, "\n"),
		}
	}

	return fields
}

func titleCase(name string) string {
	parts := strings.Split(name, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}

		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}

	return strings.Join(parts, " ")
}
