package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

// Snapshot is the saved form of a sheet: the game-system discriminator and the character
// payload.
type Snapshot struct {
	GameSystem gamesystem.ID   `json:"gameSystem"`
	Character  json.RawMessage `json:"character"`
}

// Encode captures ch as a Snapshot.
func Encode(ch Character) (Snapshot, error) {
	if _, err := Calculate(ch); err != nil {
		return Snapshot{}, err
	}
	data, err := json.Marshal(ch)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encoding %s sheet: %w", ch.System(), err)
	}
	return Snapshot{GameSystem: ch.System(), Character: data}, nil
}

// Marshal renders the snapshot as an indented JSON document.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ParseSnapshot reads a sheet document.
//
// The top-level "gameSystem" field is the discriminator. Documents that are a bare character
// payload, or lack the top-level field, fall back to the payload's own "gameSystem".
// Postcondition: Returns ErrUnknownGameSystem when the marker is missing or matches no
// known game system; ErrMalformedSheet when the document is not a JSON object.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var envelope struct {
		GameSystem string          `json:"gameSystem"`
		Character  json.RawMessage `json:"character"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSheet, err)
	}
	payload := envelope.Character
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		payload = data
	}
	marker := envelope.GameSystem
	if marker == "" {
		var inner struct {
			GameSystem string `json:"gameSystem"`
		}
		if err := json.Unmarshal(payload, &inner); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSheet, err)
		}
		marker = inner.GameSystem
	}
	id, ok := gamesystem.Parse(marker)
	if !ok || id == gamesystem.None {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownGameSystem, marker)
	}
	return Snapshot{GameSystem: id, Character: append(json.RawMessage(nil), payload...)}, nil
}

// Decode rebuilds the character held by s. Fields absent from the payload keep the
// defaults of a blank sheet.
//
// Postcondition: Returns ErrUnknownGameSystem or ErrMalformedSheet on failure.
func Decode(s Snapshot) (Character, error) {
	switch s.GameSystem {
	case gamesystem.Changeling:
		c := cofd.NewChangeling()
		if err := unmarshal(s, c); err != nil {
			return nil, err
		}
		c.GameSystem = gamesystem.Changeling
		c.Size = cofd.ClampSize(c.Size)
		c.SyncTrackers()
		return c, nil
	case gamesystem.Mortal:
		m := cofd.NewMortal()
		if err := unmarshal(s, m); err != nil {
			return nil, err
		}
		m.GameSystem = gamesystem.Mortal
		m.Size = cofd.ClampSize(m.Size)
		m.SyncTrackers()
		return m, nil
	case gamesystem.Fifth:
		a := dnd5e.NewAdventurer()
		if err := unmarshal(s, a); err != nil {
			return nil, err
		}
		a.GameSystem = gamesystem.Fifth
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameSystem, s.GameSystem)
	}
}

func unmarshal(s Snapshot, into any) error {
	if len(s.Character) == 0 {
		return fmt.Errorf("%w: %s snapshot has no character", ErrMalformedSheet, s.GameSystem)
	}
	if err := json.Unmarshal(s.Character, into); err != nil {
		return fmt.Errorf("%w: %s character: %v", ErrMalformedSheet, s.GameSystem, err)
	}
	return nil
}
