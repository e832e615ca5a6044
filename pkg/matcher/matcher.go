// Package matcher finds the palette entry nearest to a queried color by
// Manhattan distance in RGB space.
package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ngimb64/Kolor-Kraken/internal/globals"
	"github.com/ngimb64/Kolor-Kraken/pkg/data"
	"github.com/ngimb64/Kolor-Kraken/pkg/palette"
)

// ErrEmptyPalette is returned when a lookup is made against a palette
// with no entries. No fallback name is produced.
var ErrEmptyPalette = errors.New("palette has no entries")

// ErrInvalidQuery is matched by every InvalidQueryError via errors.Is
var ErrInvalidQuery = errors.New("invalid color query")

// InvalidQueryError reports a query channel outside 0-255
type InvalidQueryError struct {
    Channel string
    Value   int
}

func (e *InvalidQueryError) Error() string {
    return fmt.Sprintf("query channel %s=%d is outside 0-%d",
                       e.Channel, e.Value, globals.MAX_CHANNEL)
}

func (e *InvalidQueryError) Is(target error) bool {
    return target == ErrInvalidQuery
}

// Query is the color being looked up
type Query struct {
    R int
    G int
    B int
}

// Result is the outcome of a lookup. RGB echoes the query for display,
// while Entry holds the winning palette entry.
type Result struct {
    Name     string
    Distance int
    RGB      Query
    Entry    palette.Entry
}


// Validate rejects any channel outside 0-255. Values are never clamped.
func (q Query) Validate() error {
    channels := []struct {
        name  string
        value int
    } {
        {globals.RED_COLUMN, q.R},
        {globals.GREEN_COLUMN, q.G},
        {globals.BLUE_COLUMN, q.B},
    }

    for _, channel := range channels {
        if channel.value < 0 || channel.value > globals.MAX_CHANNEL {
            return &InvalidQueryError{Channel: channel.name, Value: channel.value}
        }
    }

    return nil
}

func (q Query) String() string {
    return fmt.Sprintf("(%d, %d, %d)", q.R, q.G, q.B)
}


// Confidence maps the distance onto 0-1, where 1 is an exact match and 0
// is the largest possible RGB distance.
func (r Result) Confidence() float64 {
    return 1 - float64(r.Distance)/float64(globals.MAX_DISTANCE)
}


// Computes the sum of absolute per-channel differences between the query
// and a palette entry.
func ManhattanDistance(q Query, entry palette.Entry) int {
    return data.AbsDiff(q.R, int(entry.R)) +
           data.AbsDiff(q.G, int(entry.G)) +
           data.AbsDiff(q.B, int(entry.B))
}


// Scans every palette entry in order and returns the one with the smallest
// Manhattan distance to the query. When several entries share the minimum,
// the earliest one in the palette wins.
//
// @Parameters
// - q:  The color to look up
// - pal:  The palette to search
//
// @Returns
// - The match with the winning name, its distance, and the echoed query
// - Error if the query is out of range or the palette is empty
//
func ClosestColor(q Query, pal *palette.Palette) (Result, error) {
    if err := q.Validate(); err != nil {
        return Result{}, err
    }

    if pal.Len() == 0 {
        return Result{}, ErrEmptyPalette
    }

    var result Result
    found := false

    for _, entry := range pal.All() {
        distance := ManhattanDistance(q, entry)
        // Strictly smaller only, so earlier entries keep ties
        if !found || distance < result.Distance {
            found = true
            result = Result{
                Name:     entry.Name,
                Distance: distance,
                RGB:      q,
                Entry:    entry,
            }
        }
    }

    return result, nil
}


// ParseQuery builds a query from "r,g,b" text and validates it.
func ParseQuery(input string) (Query, error) {
    channels, err := data.ParseIntList(input, ",", 3)
    if err != nil {
        return Query{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
    }

    q := Query{R: channels[0], G: channels[1], B: channels[2]}
    if err = q.Validate(); err != nil {
        return Query{}, err
    }

    return q, nil
}


const hexDigits = "0123456789abcdefABCDEF"


// QueryFromHex builds a query from "#rrggbb" or "#rgb" text.
func QueryFromHex(input string) (Query, error) {
    input = strings.TrimSpace(input)
    // Accept the value with or without the leading hash
    if !strings.HasPrefix(input, "#") {
        input = "#" + input
    }

    digits := input[1:]
    // Only #rgb and #rrggbb are accepted, trailing text is never ignored
    if (len(digits) != 3 && len(digits) != 6) || strings.Trim(digits, hexDigits) != "" {
        return Query{}, fmt.Errorf("%w: %q is not a #rgb or #rrggbb color",
                                   ErrInvalidQuery, input)
    }

    parsed, err := colorful.Hex(input)
    if err != nil {
        return Query{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
    }

    red, green, blue := parsed.RGB255()
    return Query{R: int(red), G: int(green), B: int(blue)}, nil
}
