package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/fileutil"
)

const fileVersion = 1

// File is the on-disk JSON form of a strategy table.
type File struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
	Entries     []Entry   `json:"entries"`
}

// Entry is one row of a strategy file.
type Entry struct {
	Infoset string  `json:"infoset"`
	Hand    string  `json:"hand"`
	Fold    float64 `json:"fold"`
	AllIn   float64 `json:"all_in"`
}

// Decode reads a strategy file and builds a Table from it.
func Decode(r io.Reader) (*Table, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode strategy: %w", err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("unsupported strategy version %d", f.Version)
	}

	entries := make(map[Key]Probabilities, len(f.Entries))
	for i, e := range f.Entries {
		if e.Infoset == "" || e.Hand == "" {
			return nil, fmt.Errorf("entry %d: infoset and hand are required", i)
		}
		p := Probabilities{Fold: e.Fold, AllIn: e.AllIn}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%s %s): %w", i, e.Infoset, e.Hand, err)
		}
		entries[Key{Infoset: e.Infoset, Hand: e.Hand}] = p
	}
	return &Table{entries: entries}, nil
}

// Load reads a strategy table from path.
func Load(path string) (*Table, error) {
	if path == "" {
		return nil, errors.New("strategy path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadOrEmpty loads path, falling back to an empty table (every lookup then
// uses DefaultProbabilities) when the file is missing or unreadable.
func LoadOrEmpty(path string, logger *log.Logger) *Table {
	t, err := Load(path)
	switch {
	case err == nil:
		logger.Info("Loaded strategy", "path", path, "entries", t.Len())
		return t
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("Strategy file not found, using 50/50 defaults", "path", path)
	default:
		logger.Error("Failed to load strategy, using 50/50 defaults", "path", path, "error", err)
	}
	return Empty()
}

// Save atomically writes the table to path in the File format.
func (t *Table) Save(path string) error {
	if path == "" {
		return errors.New("destination path is required")
	}
	return fileutil.WriteAtomic(path, 0o644, t.Encode)
}

// Encode writes the table as indented JSON.
func (t *Table) Encode(w io.Writer) error {
	out := File{Version: fileVersion, GeneratedAt: time.Now().UTC()}
	if t != nil {
		for k, p := range t.entries {
			out.Entries = append(out.Entries, Entry{Infoset: k.Infoset, Hand: k.Hand, Fold: p.Fold, AllIn: p.AllIn})
		}
	}
	slices.SortFunc(out.Entries, func(a, b Entry) int {
		if c := strings.Compare(a.Infoset, b.Infoset); c != 0 {
			return c
		}
		return strings.Compare(a.Hand, b.Hand)
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
