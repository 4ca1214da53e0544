// Package saves stores saved games in named slots. Every backend stores the
// encoded savegame document, so legacy migration applies on every read.
package saves

//go:generate mockgen -destination=mock/mock_repository.go -package=savesmock github.com/KirkDiggler/rpg-narrator/internal/repositories/saves Repository

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	"github.com/KirkDiggler/rpg-narrator/internal/savegame"
)

const (
	errSlotEmpty    = "slot cannot be empty"
	errDocumentNil  = "document cannot be nil"
	errSlotNotFound = "save slot %s not found"
)

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Summary describes a save without its conversation
type Summary struct {
	Slot    string
	SavedAt time.Time
	Level   int
	Race    string
	Class   string

	// Turns counts player messages in the conversation
	Turns int
}

// SaveInput contains parameters for writing a slot
type SaveInput struct {
	Slot     string
	Document *savegame.Document
}

// SaveOutput contains the result of writing a slot
type SaveOutput struct {
	Summary Summary
}

// GetInput contains parameters for reading a slot
type GetInput struct {
	Slot string
}

// GetOutput contains the result of reading a slot
type GetOutput struct {
	Document *savegame.Document
}

// ListInput contains parameters for listing slots
type ListInput struct{}

// ListOutput contains the saves, newest first
type ListOutput struct {
	Saves []Summary
}

// DeleteInput contains parameters for deleting a slot
type DeleteInput struct {
	Slot string
}

// DeleteOutput contains the result of deleting a slot
type DeleteOutput struct{}

// Repository defines the interface for save slot storage
type Repository interface {
	// Save writes the document, replacing any existing save in the slot
	// Returns errors.InvalidArgument for invalid slots or a nil document
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get reads a slot
	// Returns errors.NotFound if the slot is empty
	// Returns errors.DataLoss when the stored document is corrupt
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns a summary of every slot
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a slot
	// Returns errors.NotFound if the slot is empty
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// ValidateSlot checks that a slot name is usable as a key and a file name
func ValidateSlot(slot string) error {
	if slot == "" {
		return errors.InvalidArgument(errSlotEmpty)
	}
	if !slotPattern.MatchString(slot) {
		return errors.InvalidArgumentf("slot %q may only contain letters, digits, '-' and '_'", slot).
			WithMeta("slot", slot)
	}
	return nil
}

func validateSave(input SaveInput) error {
	if err := ValidateSlot(input.Slot); err != nil {
		return err
	}
	if input.Document == nil {
		return errors.InvalidArgument(errDocumentNil)
	}
	return nil
}

// Summarize builds the listing entry for a document
func Summarize(slot string, doc *savegame.Document) Summary {
	s := Summary{Slot: slot, SavedAt: doc.SavedAt}
	if p := doc.Player; p != nil {
		s.Level = p.Level
		if p.Race != nil {
			s.Race = p.Race.Name
		}
		if p.Class != nil {
			s.Class = p.Class.Name
		}
	}
	for _, m := range doc.Conversation {
		if m.Role == providers.RoleUser {
			s.Turns++
		}
	}
	return s
}

func sortSummaries(list []Summary) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].SavedAt.Equal(list[j].SavedAt) {
			return list[i].SavedAt.After(list[j].SavedAt)
		}
		return list[i].Slot < list[j].Slot
	})
}

func decode(slot string, data []byte) (*savegame.Document, error) {
	doc, err := savegame.Decode(data)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "save slot %s is corrupt", slot).
			WithMeta("slot", slot)
	}
	return doc, nil
}
