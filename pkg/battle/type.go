package battle

// ElementType is one of the 18 elemental affinities a move or Pokemon can
// carry. Values match the type names used by the PokeAPI database.
type ElementType string

const (
	Normal   ElementType = "normal"
	Fire     ElementType = "fire"
	Water    ElementType = "water"
	Electric ElementType = "electric"
	Grass    ElementType = "grass"
	Ice      ElementType = "ice"
	Fighting ElementType = "fighting"
	Poison   ElementType = "poison"
	Ground   ElementType = "ground"
	Flying   ElementType = "flying"
	Psychic  ElementType = "psychic"
	Bug      ElementType = "bug"
	Rock     ElementType = "rock"
	Ghost    ElementType = "ghost"
	Dragon   ElementType = "dragon"
	Dark     ElementType = "dark"
	Steel    ElementType = "steel"
	Fairy    ElementType = "fairy"
)

// AllElementTypes lists every element type in canonical dex order.
var AllElementTypes = []ElementType{
	Normal,
	Fire,
	Water,
	Electric,
	Grass,
	Ice,
	Fighting,
	Poison,
	Ground,
	Flying,
	Psychic,
	Bug,
	Rock,
	Ghost,
	Dragon,
	Dark,
	Steel,
	Fairy,
}

func (t ElementType) IsValid() bool {
	_, ok := typeChart[t]
	return ok
}
