// Package strategy holds the precomputed push/fold mixed strategy consulted by
// simulated seats. A Table is immutable once built and safe to share between
// sessions and goroutines.
package strategy

import (
	"fmt"
	"maps"
)

// Probabilities is the mixed strategy for one situation.
type Probabilities struct {
	Fold  float64 `json:"fold"`
	AllIn float64 `json:"all_in"`
}

// DefaultProbabilities is used when a situation is missing from the table.
var DefaultProbabilities = Probabilities{Fold: 0.5, AllIn: 0.5}

// Validate checks both probabilities lie in [0, 1].
func (p Probabilities) Validate() error {
	if p.Fold < 0 || p.Fold > 1 {
		return fmt.Errorf("fold probability %v out of range", p.Fold)
	}
	if p.AllIn < 0 || p.AllIn > 1 {
		return fmt.Errorf("all-in probability %v out of range", p.AllIn)
	}
	return nil
}

// Key identifies one table entry.
type Key struct {
	Infoset string
	Hand    string
}

func (k Key) String() string {
	return k.Infoset + "|" + k.Hand
}

// Lookup is the read-only view the decision simulator depends on.
type Lookup interface {
	Lookup(infoset, hand string) (Probabilities, bool)
}

// Table maps (infoset, starting hand) to probabilities.
type Table struct {
	entries map[Key]Probabilities
}

// NewTable copies entries into a new immutable table.
func NewTable(entries map[Key]Probabilities) *Table {
	return &Table{entries: maps.Clone(entries)}
}

// Empty returns a table with no entries; every lookup falls back to the default.
func Empty() *Table {
	return &Table{}
}

// Lookup returns the stored probabilities and whether the key was present.
func (t *Table) Lookup(infoset, hand string) (Probabilities, bool) {
	if t == nil {
		return Probabilities{}, false
	}
	p, ok := t.entries[Key{Infoset: infoset, Hand: hand}]
	return p, ok
}

// Probabilities returns the stored probabilities or DefaultProbabilities.
func (t *Table) Probabilities(infoset, hand string) Probabilities {
	if p, ok := t.Lookup(infoset, hand); ok {
		return p
	}
	return DefaultProbabilities
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
