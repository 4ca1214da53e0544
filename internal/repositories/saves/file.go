package saves

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/savegame"
)

const fileExt = ".json"

// FileConfig holds the configuration for the file repository
type FileConfig struct {
	Dir string
}

// Validate ensures all required settings are provided
func (c *FileConfig) Validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return errors.InvalidArgument("save directory is required")
	}
	return nil
}

type fileRepository struct {
	dir string
}

// NewFileRepository stores each slot as <dir>/<slot>.json, creating dir
// when missing
func NewFileRepository(cfg *FileConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create save directory %s", cfg.Dir)
	}
	return &fileRepository{dir: cfg.Dir}, nil
}

// Ensure fileRepository implements Repository
var _ Repository = (*fileRepository)(nil)

func (r *fileRepository) path(slot string) string {
	return filepath.Join(r.dir, slot+fileExt)
}

// Save writes through a temp file and rename so a crash never leaves a
// half-written slot
func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(ctx)
	}

	data, err := savegame.Encode(input.Document)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(r.dir, "."+input.Slot+"-*.tmp")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp save file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, errors.Wrap(err, "failed to write save file")
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close save file")
	}
	if err := os.Rename(tmp.Name(), r.path(input.Slot)); err != nil {
		return nil, errors.Wrap(err, "failed to replace save file")
	}

	slog.Info("Game saved", "backend", "file", "slot", input.Slot, "bytes", len(data))
	return &SaveOutput{Summary: Summarize(input.Slot, input.Document)}, nil
}

func (r *fileRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := ValidateSlot(input.Slot); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path(input.Slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf(errSlotNotFound, input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to read save slot %s", input.Slot)
	}

	doc, err := decode(input.Slot, data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Document: doc}, nil
}

func (r *fileRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read save directory")
	}

	saves := []Summary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		slot := strings.TrimSuffix(name, fileExt)
		if ValidateSlot(slot) != nil {
			continue
		}

		out, err := r.Get(ctx, GetInput{Slot: slot})
		if err != nil {
			slog.Warn("Skipping unreadable save", "slot", slot, "error", err)
			continue
		}
		saves = append(saves, Summarize(slot, out.Document))
	}

	sortSummaries(saves)
	return &ListOutput{Saves: saves}, nil
}

func (r *fileRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateSlot(input.Slot); err != nil {
		return nil, err
	}

	if err := os.Remove(r.path(input.Slot)); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf(errSlotNotFound, input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to delete save slot %s", input.Slot)
	}

	slog.Info("Save deleted", "backend", "file", "slot", input.Slot)
	return &DeleteOutput{}, nil
}
