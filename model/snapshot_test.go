package model

import (
	"errors"
	"testing"
)

func TestValidateAcceptsWellFormedSnapshot(t *testing.T) {
	snap := Snapshot{
		Player: Player{X: 400, Y: 550},
		Aliens: []Alien{{ID: 1, X: 100, Y: 100}, {ID: 2, X: 200, Y: 100}},
		Bounds: Bounds{Width: 800, Height: 600},
	}
	if err := snap.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
	}{
		{
			"duplicate alien ids",
			Snapshot{
				Aliens: []Alien{{ID: 1}, {ID: 1}},
				Bounds: Bounds{Width: 800, Height: 600},
			},
		},
		{
			"negative alien id",
			Snapshot{
				Aliens: []Alien{{ID: -1}},
				Bounds: Bounds{Width: 800, Height: 600},
			},
		},
		{
			"zero width",
			Snapshot{Bounds: Bounds{Width: 0, Height: 600}},
		},
		{
			"negative height",
			Snapshot{Bounds: Bounds{Width: 800, Height: -600}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.snap.Validate(); !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("Validate = %v, want ErrInvalidSnapshot", err)
			}
		})
	}
}
