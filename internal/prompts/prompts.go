// Package prompts renders the embedded prompt templates sent to the
// completion provider.
package prompts

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

//go:embed templates/*
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.tmpl"))

//go:embed templates/repair.txt
var repair string

// ContinueStory is the silent input sent on each autoplay turn
const ContinueStory = "Continue the story."

// NarratorData parameterises the system prompt
type NarratorData struct {
	Universe string
}

// EvolutionData parameterises the evolution prompt
type EvolutionData struct {
	Class string
	Level int
	Count int
}

// CreationData parameterises race and class generation
type CreationData struct {
	Name string
}

// OpeningData parameterises the first player message of a new game
type OpeningData struct {
	Universe string
	Race     string
	Class    string
	Traits   string
	Stats    string
	Moveset  string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "failed to render prompt %s", name)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Narrator renders the Dungeon Master system prompt
func Narrator(data NarratorData) (string, error) {
	return render("narrator.tmpl", data)
}

// Evolution renders the evolution-options prompt
func Evolution(data EvolutionData) (string, error) {
	return render("evolution.tmpl", data)
}

// Race renders the race generation prompt
func Race(data CreationData) (string, error) {
	return render("race.tmpl", data)
}

// Class renders the class generation prompt
func Class(data CreationData) (string, error) {
	return render("class.tmpl", data)
}

// Opening renders the first player message of a new game
func Opening(data OpeningData) (string, error) {
	return render("opening.tmpl", data)
}

// Repair returns the system prompt used to fix malformed JSON
func Repair() string {
	return strings.TrimSpace(repair)
}
