package turn

import (
	"encoding/json"
)

// Entry is what the conversation log shows for a stored assistant turn
type Entry struct {
	Narrative    string
	ImagePrompt  string
	LocationType string

	// Structured is false for legacy plain-text entries
	Structured bool
}

// ReadEntry reads a stored assistant message. Content that is not a JSON
// object is treated as plain narrative.
func ReadEntry(content string) Entry {
	var doc struct {
		Narrative    FlexString `json:"narrative"`
		ImagePrompt  FlexString `json:"image_prompt"`
		LocationType FlexString `json:"location_type"`
	}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return Entry{Narrative: content}
	}
	return Entry{
		Narrative:    doc.Narrative.String(),
		ImagePrompt:  doc.ImagePrompt.String(),
		LocationType: doc.LocationType.String(),
		Structured:   true,
	}
}

// RewriteNarrative replaces the narrative of a stored assistant message,
// keeping every other field. Plain-text entries are replaced outright.
func RewriteNarrative(content, narrative string) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil || fields == nil {
		return narrative, nil
	}

	encoded, err := json.Marshal(narrative)
	if err != nil {
		return "", err
	}
	fields["narrative"] = encoded

	out, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
