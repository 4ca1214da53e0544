package entities

import "strings"

// StatusTarget is anything that carries status effects: the player and
// encounters.
type StatusTarget interface {
	Statuses() *StatusEffects
}

// StatusEffects is an insertion-ordered set of lower-case effect names
type StatusEffects []string

// Add inserts effect, normalised to lower case. Returns false when the
// effect was empty or already present.
func (s *StatusEffects) Add(effect string) bool {
	effect = normalizeEffect(effect)
	if effect == "" || s.Has(effect) {
		return false
	}
	*s = append(*s, effect)
	return true
}

// Remove deletes effect, matching case-insensitively
func (s *StatusEffects) Remove(effect string) bool {
	effect = normalizeEffect(effect)
	for i, existing := range *s {
		if existing == effect {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether effect is present
func (s StatusEffects) Has(effect string) bool {
	effect = normalizeEffect(effect)
	for _, existing := range s {
		if existing == effect {
			return true
		}
	}
	return false
}

func normalizeEffect(effect string) string {
	return strings.ToLower(strings.TrimSpace(effect))
}
