package palette

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ngimb64/Kolor-Kraken/internal/globals"
)

//go:embed default_colors.csv
var defaultColors []byte

// Loads the embedded reference palette a single time for the process
var loadDefault = sync.OnceValues(func() (*Palette, error) {
    return Load(bytes.NewReader(defaultColors))
})

const utf8Bom = "\ufeff"

// Positions of the required columns within a record
type columnIndex struct {
    name  int
    red   int
    green int
    blue  int
}

// Highest position any required column occupies
func (index columnIndex) maxIndex() int {
    return max(index.name, index.red, index.green, index.blue)
}


// Reads a delimited table with a header row into a palette. Header labels
// are trimmed of surrounding whitespace before the required color_name, R,
// G and B columns are located; any other columns are ignored. Every row must
// carry a non-empty name and three integer channels within 0-255, otherwise
// loading fails with a DataFormatError rather than skipping the row.
//
// @Parameters
// - reader:  The source of the delimited palette data
//
// @Returns
// - The palette with entries in source row order
// - Error if it occurs, otherwise nil on success
//
func Load(reader io.Reader) (*Palette, error) {
    csvReader := csv.NewReader(reader)
    // Rows are checked against the required columns rather than header width
    csvReader.FieldsPerRecord = -1
    csvReader.ReuseRecord = true

    // Read the header row with the column labels
    header, err := csvReader.Read()
    if err != nil {
        if errors.Is(err, io.EOF) {
            return nil, &DataFormatError{Reason: "missing header row"}
        }
        return nil, readError(err)
    }

    // Leading blank lines are skipped, so the header may not be on line 1
    headerLine, _ := csvReader.FieldPos(0)

    // Find the required columns in the normalized header
    columns, err := locateColumns(header, headerLine)
    if err != nil {
        return nil, err
    }

    var entries []Entry

    for {
        record, err := csvReader.Read()
        if err != nil {
            // End of data reached
            if errors.Is(err, io.EOF) {
                break
            }
            return nil, readError(err)
        }

        // Get the source line of the record for error reporting
        line, _ := csvReader.FieldPos(0)

        entry, err := parseRecord(record, columns, line)
        if err != nil {
            return nil, err
        }

        entries = append(entries, entry)
    }

    return &Palette{entries: entries}, nil
}


// Opens the passed in file path and loads it as a palette via Load().
//
// @Parameters
// - filePath:  The path to the palette file
//
// @Returns
// - The loaded palette
// - Error if it occurs, otherwise nil on success
//
func LoadFile(filePath string) (*Palette, error) {
    file, err := os.Open(filePath)
    if err != nil {
        return nil, fmt.Errorf("could not open palette file: %w", err)
    }
    // Close file on local exit
    defer file.Close()

    palette, err := Load(file)
    if err != nil {
        return nil, fmt.Errorf("error loading palette %s: %w", filePath, err)
    }

    return palette, nil
}


// Default returns the reference palette compiled into the binary. The
// palette is parsed on first use and the same instance is returned after.
func Default() (*Palette, error) {
    return loadDefault()
}


// Trims the header labels and finds the position of each required column.
// When a label repeats, its first occurrence is used. The line is the
// position of the header in the source for error reporting.
func locateColumns(header []string, line int) (columnIndex, error) {
    positions := make(map[string]int, len(header))

    // Iterate through the header labels and record the first position of each
    for index, label := range header {
        // The first label may carry a byte order mark from the exporting tool
        if index == 0 {
            label = strings.TrimPrefix(label, utf8Bom)
        }

        label = strings.TrimSpace(label)
        if _, seen := positions[label]; !seen {
            positions[label] = index
        }
    }

    var missing []string
    // Iterate through the required columns and note those that are absent
    for _, required := range globals.PALETTE_COLUMNS {
        if _, ok := positions[required]; !ok {
            missing = append(missing, required)
        }
    }

    if len(missing) > 0 {
        return columnIndex{}, &DataFormatError{
            Line:   line,
            Reason: fmt.Sprintf("missing required column(s) %s",
                                strings.Join(missing, ", ")),
        }
    }

    return columnIndex{
        name:  positions[globals.NAME_COLUMN],
        red:   positions[globals.RED_COLUMN],
        green: positions[globals.GREEN_COLUMN],
        blue:  positions[globals.BLUE_COLUMN],
    }, nil
}


// Converts a single record into a palette entry.
func parseRecord(record []string, columns columnIndex, line int) (Entry, error) {
    // If the row is too short to hold every required column
    if len(record) <= columns.maxIndex() {
        return Entry{}, &DataFormatError{
            Line:   line,
            Reason: fmt.Sprintf("row has %d fields, required columns need %d",
                                len(record), columns.maxIndex()+1),
        }
    }

    name := strings.TrimSpace(record[columns.name])
    if name == "" {
        return Entry{}, &DataFormatError{
            Line:   line,
            Column: globals.NAME_COLUMN,
            Value:  record[columns.name],
            Reason: "color name is empty",
        }
    }

    red, err := parseChannel(record[columns.red], globals.RED_COLUMN, line)
    if err != nil {
        return Entry{}, err
    }

    green, err := parseChannel(record[columns.green], globals.GREEN_COLUMN, line)
    if err != nil {
        return Entry{}, err
    }

    blue, err := parseChannel(record[columns.blue], globals.BLUE_COLUMN, line)
    if err != nil {
        return Entry{}, err
    }

    return Entry{Name: name, R: red, G: green, B: blue}, nil
}


// Parses a channel field as an integer within 0-255. Out of range values
// are rejected, never clamped.
func parseChannel(field string, column string, line int) (uint8, error) {
    value, err := strconv.Atoi(strings.TrimSpace(field))
    if err != nil {
        return 0, &DataFormatError{
            Line:   line,
            Column: column,
            Value:  field,
            Reason: "channel is not an integer",
        }
    }

    if value < 0 || value > globals.MAX_CHANNEL {
        return 0, &DataFormatError{
            Line:   line,
            Column: column,
            Value:  field,
            Reason: fmt.Sprintf("channel is outside 0-%d", globals.MAX_CHANNEL),
        }
    }

    return uint8(value), nil
}


// Maps csv syntax errors to DataFormatError and wraps anything else.
func readError(err error) error {
    var parseErr *csv.ParseError

    if errors.As(err, &parseErr) {
        return &DataFormatError{Line: parseErr.Line, Reason: parseErr.Err.Error()}
    }

    return fmt.Errorf("error reading palette data: %w", err)
}
