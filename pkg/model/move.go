package model

import (
	"context"
	"fmt"

	"battledex/pkg/battle"
)

// Move is one attacking move. Power, PP and accuracy are nullable in the
// source data (status moves have no power).
type Move struct {
	model *Model

	ID       int    `db:"id"`
	Power    *int   `db:"power"`
	PP       *int   `db:"pp"`
	Accuracy *int   `db:"accuracy"`
	TypeID   int    `db:"type_id"`
	Name     string `db:"name"`

	local bool
	typ   battle.ElementType
}

// Type resolves the move's element type.
func (move *Move) Type(ctx context.Context) (battle.ElementType, error) {
	if move.typ == "" {
		typ, err := move.model.typeNameByID(ctx, move.TypeID)
		if err != nil {
			return "", fmt.Errorf("error while getting type for move: %w", err)
		}
		move.typ = typ
	}

	return move.typ, nil
}

// Spec converts the move into the calculator's move parameters. Moves with
// no power (status moves) are rejected with ErrInvalidMove so the caller
// can surface a useful message instead of a zero-power calculation.
func (move *Move) Spec(ctx context.Context) (battle.Move, error) {
	if move.Power == nil {
		return battle.Move{}, fmt.Errorf("move %q has no power: %w", move.Name, battle.ErrInvalidMove)
	}

	typ, err := move.Type(ctx)
	if err != nil {
		return battle.Move{}, fmt.Errorf("could not get type for move %q: %w", move.Name, err)
	}

	return battle.Move{
		Power: *move.Power,
		Type:  typ,
	}, nil
}
