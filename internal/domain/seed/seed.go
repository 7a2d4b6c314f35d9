// Package seed provides the activity catalog the store starts with.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mergington/internal/domain/model"
)

// keyDelim separates nested keys while parsing seed files. Activity names may
// contain dots, so the usual "." is not an option.
const keyDelim = "::"

// Default returns the built-in catalog. Every call returns a fresh copy.
func Default() model.Catalog {
	return model.Catalog{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Practice basketball skills and compete in school league",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu", "sarah@mergington.edu"},
		},
		"Soccer Club": {
			Description:     "Learn soccer techniques and participate in friendly matches",
			Schedule:        "Mondays and Wednesdays, 4:30 PM - 6:00 PM",
			MaxParticipants: 22,
			Participants:    []string{"david@mergington.edu", "maya@mergington.edu", "lucas@mergington.edu"},
		},
		"Art Club": {
			Description:     "Explore various art mediums including painting, drawing, and sculpture",
			Schedule:        "Fridays, 2:30 PM - 4:30 PM",
			MaxParticipants: 18,
			Participants:    []string{"grace@mergington.edu", "ethan@mergington.edu"},
		},
		"Drama Society": {
			Description:     "Practice acting, stage production, and perform in school plays",
			Schedule:        "Tuesdays and Thursdays, 5:00 PM - 7:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"isabella@mergington.edu", "noah@mergington.edu", "ava@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Develop critical thinking and public speaking through structured debates",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"william@mergington.edu", "charlotte@mergington.edu"},
		},
		"Science Club": {
			Description:     "Conduct experiments, explore scientific concepts, and participate in science fairs",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"james@mergington.edu", "amelia@mergington.edu", "benjamin@mergington.edu"},
		},
	}
}

// file layout of a seed document.
type document struct {
	Activities map[string]model.Activity `koanf:"activities"`
}

// LoadFile reads a YAML seed document from path and validates it.
func LoadFile(_ context.Context, path string) (model.Catalog, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}

	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}

	catalog := model.Catalog(doc.Activities)
	for name, a := range catalog {
		if a.Participants == nil {
			a.Participants = []string{}
			catalog[name] = a
		}
	}
	if err := Validate(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Validate checks that every activity in c satisfies the store invariants.
func Validate(c model.Catalog) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no activities", ErrInvalidSeed)
	}
	for name, a := range c {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty activity name", ErrInvalidSeed)
		}
		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q: max_participants must be positive", ErrInvalidSeed, name)
		}
		if len(a.Participants) > a.MaxParticipants {
			return fmt.Errorf("%w: %q: %d participants exceed capacity %d",
				ErrInvalidSeed, name, len(a.Participants), a.MaxParticipants)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := seen[p]; dup {
				return fmt.Errorf("%w: %q: duplicate participant %q", ErrInvalidSeed, name, p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}
