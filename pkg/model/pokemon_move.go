package model

import (
	"context"
	"fmt"
)

// PokemonMove is one row of a level-up learnset.
type PokemonMove struct {
	model *Model

	ID     int `db:"id"`
	Level  int `db:"level"`
	MoveID int `db:"move_id"`

	move *Move
}

func (pm *PokemonMove) Move(ctx context.Context) (*Move, error) {
	if pm.move == nil {
		move, err := pm.model.moveByID(ctx, pm.MoveID)
		if err != nil {
			return nil, fmt.Errorf("error while getting move: %w", err)
		}
		pm.move = move
	}

	return pm.move, nil
}
