// Package catalog holds the predefined races and classes offered at
// character creation.
package catalog

import (
	"embed"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

//go:embed data/*.yaml
var data embed.FS

// Catalog is a read-only set of races and classes. Lookups return copies.
type Catalog struct {
	races   []entities.Race
	classes []entities.Class
}

type raceFile struct {
	Races []entities.Race `yaml:"races"`
}

type classFile struct {
	Classes []entities.Class `yaml:"classes"`
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	var rf raceFile
	if err := decode("data/races.yaml", &rf); err != nil {
		return nil, err
	}
	var cf classFile
	if err := decode("data/classes.yaml", &cf); err != nil {
		return nil, err
	}
	return &Catalog{races: rf.Races, classes: cf.Classes}, nil
}

func decode(name string, target any) error {
	raw, err := data.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to parse %s", name)
	}
	return nil
}

// Race returns a copy of the named race, matched case-insensitively
func (c *Catalog) Race(name string) (*entities.Race, bool) {
	for _, r := range c.races {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			out := r
			out.RacialSkills = slices.Clone(r.RacialSkills)
			return &out, true
		}
	}
	return nil, false
}

// Class returns a copy of the named class, matched case-insensitively
func (c *Catalog) Class(name string) (*entities.Class, bool) {
	for _, cl := range c.classes {
		if strings.EqualFold(cl.Name, strings.TrimSpace(name)) {
			out := cl
			out.Moveset = slices.Clone(cl.Moveset)
			out.SkillTree = slices.Clone(cl.SkillTree)
			return &out, true
		}
	}
	return nil, false
}

// RaceNames lists the predefined races in catalog order
func (c *Catalog) RaceNames() []string {
	names := make([]string, 0, len(c.races))
	for _, r := range c.races {
		names = append(names, r.Name)
	}
	return names
}

// ClassNames lists the predefined classes in catalog order
func (c *Catalog) ClassNames() []string {
	names := make([]string, 0, len(c.classes))
	for _, cl := range c.classes {
		names = append(names, cl.Name)
	}
	return names
}
