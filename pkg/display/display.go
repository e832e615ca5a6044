package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ngimb64/Kolor-Kraken/internal/color"
	"github.com/ngimb64/Kolor-Kraken/pkg/matcher"
	"github.com/pterm/pterm"
)

const swatchBlock = "█"


// Clear the terminal display with a sleep prior if specified.
//
// @Parameters
// - sleepTime:  The number of seconds to sleep before clearing the display
//
func ClearScreen(sleepTime int) {
    // If there was a positive amount of sleep time, then sleep
    if sleepTime > 0 {
        time.Sleep(time.Duration(sleepTime) * time.Second)
    }

    // ANSI escape code to clear the screen
    fmt.Print("\x1b[H\x1b[2J")
}


// Formats a bracketed status symbol like [$] with separate bracket and
// symbol colors.
//
// @Parameters
// - bracketColor:  The ANSI color of the brackets
// - symbolColor:  The ANSI color of the symbol
// - symbol:  The symbol placed between the brackets
//
// @Returns
// - The colored prefix string
//
func CtextPrefix(bracketColor string, symbolColor string, symbol string) string {
    return bracketColor + "[" + symbolColor + symbol + bracketColor + "]" +
           color.AnsiReset
}


// Joins a prefix and colored message into a single status line.
//
// @Parameters
// - prefix:  The status prefix, usually from CtextPrefix()
// - padding:  Text placed between the prefix and message
// - textColor:  The ANSI color of the message
// - text:  The message to display
//
// @Returns
// - The formatted status line
//
func CtextMulti(prefix string, padding string, textColor string, text string) string {
    return prefix + " " + padding + textColor + text + color.AnsiReset
}


// Hex formats the query color as #rrggbb.
func Hex(q matcher.Query) string {
    return colorful.Color{
        R: float64(q.R) / 255.0,
        G: float64(q.G) / 255.0,
        B: float64(q.B) / 255.0,
    }.Hex()
}


// Swatch renders width block characters in the query's true color.
func Swatch(q matcher.Query, width int) string {
    return pterm.NewRGB(uint8(q.R), uint8(q.G), uint8(q.B)).Sprint(
        strings.Repeat(swatchBlock, width))
}


// Renders the lookup result as a table with the detected name, the sampled
// RGB (and hex), the distance and confidence, followed by a color swatch.
//
// @Parameters
// - result:  The result of the color lookup
// - swatchWidth:  The number of block characters per swatch row
// - showHex:  Whether to include the hex value row
//
// @Returns
// - The rendered output
// - Error if it occurs, otherwise nil on success
//
func RenderResult(result matcher.Result, swatchWidth int, showHex bool) (string, error) {
    rows := pterm.TableData{
        {"Field", "Value"},
        {"Color Name", result.Name},
        {"RGB", result.RGB.String()},
    }

    if showHex {
        rows = append(rows, []string{"Hex", Hex(result.RGB)})
    }

    rows = append(rows,
        []string{"Distance", strconv.Itoa(result.Distance)},
        []string{"Confidence", fmt.Sprintf("%.1f%%", result.Confidence()*100)},
    )

    table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
    if err != nil {
        return "", fmt.Errorf("error rendering result table: %w", err)
    }

    swatch := Swatch(result.RGB, swatchWidth)
    // Two rows of blocks give a roughly square swatch in most terminals
    return table + "\n" + swatch + "\n" + swatch + "\n", nil
}
