// Package model contains domain models passed between layers.
package model

// Activity is an extracurricular offering students can sign up for.
// The activity name is the key it is stored under and is not part of the record.
type Activity struct {
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	a.Participants = participants
	return a
}

// Has reports whether email is enrolled.
func (a Activity) Has(email string) bool {
	return a.indexOf(email) >= 0
}

// Full reports whether the activity reached its capacity.
func (a Activity) Full() bool {
	return a.SpotsLeft() == 0
}

// SpotsLeft returns how many participants can still join.
func (a Activity) SpotsLeft() int {
	if left := a.MaxParticipants - len(a.Participants); left > 0 {
		return left
	}
	return 0
}

// Without returns the participant list with email removed and whether it was present.
// Order of the remaining participants is preserved.
func (a Activity) Without(email string) ([]string, bool) {
	i := a.indexOf(email)
	if i < 0 {
		return a.Participants, false
	}
	out := make([]string, 0, len(a.Participants)-1)
	out = append(out, a.Participants[:i]...)
	out = append(out, a.Participants[i+1:]...)
	return out, true
}

func (a Activity) indexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// Catalog maps activity names to their records.
type Catalog map[string]Activity

// Clone deep-copies the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for name, a := range c {
		out[name] = a.Clone()
	}
	return out
}

// Participants returns the total number of enrolled participants across activities.
func (c Catalog) Participants() int {
	total := 0
	for _, a := range c {
		total += len(a.Participants)
	}
	return total
}

// Capacity returns the summed capacity across activities.
func (c Catalog) Capacity() int {
	total := 0
	for _, a := range c {
		total += a.MaxParticipants
	}
	return total
}

// SpotsLeft returns the number of open places across activities.
func (c Catalog) SpotsLeft() int {
	total := 0
	for _, a := range c {
		total += a.SpotsLeft()
	}
	return total
}
