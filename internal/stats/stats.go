// Package stats converts between the free-form stat strings the narrator
// model emits ("Strength: 10, Agility: 12") and stat maps.
//
// Parsing never fails: malformed segments are skipped, an empty string is an
// empty map. Bonus strings ("+2 Strength, -1 Agility") are applied only to
// stats that already exist.
package stats

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	bonusPattern  = regexp.MustCompile(`([+-]\d+)\s+(.+)`)
	unlockPattern = regexp.MustCompile(`(?i)unlocks new skill:\s*(.+)`)
)

// Bonus is a signed adjustment to one named stat
type Bonus struct {
	Stat  string
	Delta int
}

// Parse turns "Name: value, Name: value" into a map.
func Parse(s string) map[string]int {
	out := make(map[string]int)
	for _, segment := range strings.Split(s, ",") {
		name, raw, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		out[name] = value
	}
	return out
}

// Format renders a stat map as "Key: value, ..." with keys sorted.
func Format(m map[string]int) string {
	keys := Names(m)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strconv.Itoa(m[k]))
	}
	return strings.Join(parts, ", ")
}

// Names returns the stat names in sorted order
func Names(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone copies a stat map; nil stays nil.
func Clone(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ParseBonus extracts every signed adjustment from a bonus string.
func ParseBonus(s string) []Bonus {
	var out []Bonus
	for _, segment := range strings.Split(s, ",") {
		match := bonusPattern.FindStringSubmatch(strings.TrimSpace(segment))
		if match == nil {
			continue
		}
		delta, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		out = append(out, Bonus{Stat: strings.TrimSpace(match[2]), Delta: delta})
	}
	return out
}

// FindKey returns the existing key matching name case-insensitively
func FindKey(m map[string]int, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if _, ok := m[name]; ok {
		return name, true
	}
	for k := range m {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

// ApplyBonusString adds each bonus in s to target and returns how many were
// applied. Bonuses naming a stat target does not have are dropped.
func ApplyBonusString(s string, target map[string]int) int {
	applied := 0
	for _, b := range ParseBonus(s) {
		key, ok := FindKey(target, b.Stat)
		if !ok {
			continue
		}
		target[key] += b.Delta
		applied++
	}
	return applied
}

// UnlockedSkill recognises "Unlocks new skill: X" and returns X.
func UnlockedSkill(s string) (string, bool) {
	match := unlockPattern.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	name := strings.TrimSpace(match[1])
	return name, name != ""
}
