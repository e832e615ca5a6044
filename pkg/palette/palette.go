package palette

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/ngimb64/Kolor-Kraken/internal/globals"
)

// Entry is one named reference color of a palette
type Entry struct {
    Name string
    R    uint8
    G    uint8
    B    uint8
}

// Palette is the ordered, read-only set of named reference colors. The
// order is the order of the source file and decides tie-breaks during
// matching. A Palette is never modified after construction, so a single
// instance may be shared across goroutines.
type Palette struct {
    entries []Entry
}


// Builds a palette from the passed in entries, preserving their order.
// The entries are copied so the caller may reuse its slice.
//
// @Parameters
// - entries:  The palette entries in lookup order
//
// @Returns
// - The initialized palette
// - Error if an entry has a blank name, otherwise nil on success
//
func New(entries []Entry) (*Palette, error) {
    // Iterate through the entries and ensure each has a name
    for index, entry := range entries {
        if strings.TrimSpace(entry.Name) == "" {
            return nil, &DataFormatError{
                Column: globals.NAME_COLUMN,
                Reason: fmt.Sprintf("entry %d has an empty color name", index),
            }
        }
    }

    return &Palette{entries: slices.Clone(entries)}, nil
}


// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
    if p == nil {
        return 0
    }
    return len(p.entries)
}

// Entry returns the entry at the passed in position.
func (p *Palette) Entry(index int) Entry {
    return p.entries[index]
}

// Entries returns a copy of the palette entries in order.
func (p *Palette) Entries() []Entry {
    if p == nil {
        return nil
    }
    return slices.Clone(p.entries)
}

// All iterates the entries in palette order without copying them.
func (p *Palette) All() iter.Seq2[int, Entry] {
    return func(yield func(int, Entry) bool) {
        if p == nil {
            return
        }

        for index, entry := range p.entries {
            if !yield(index, entry) {
                return
            }
        }
    }
}
