package model

// Ability is one of a Pokemon's abilities.
type Ability struct {
	Name     string `db:"name"`
	IsHidden bool   `db:"is_hidden"`
}
