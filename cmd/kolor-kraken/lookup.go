package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/ngimb64/Kolor-Kraken/internal/color"
	"github.com/ngimb64/Kolor-Kraken/internal/conf"
	"github.com/ngimb64/Kolor-Kraken/internal/globals"
	"github.com/ngimb64/Kolor-Kraken/pkg/data"
	"github.com/ngimb64/Kolor-Kraken/pkg/display"
	"github.com/ngimb64/Kolor-Kraken/pkg/krakenlogs"
	"github.com/ngimb64/Kolor-Kraken/pkg/matcher"
	"github.com/ngimb64/Kolor-Kraken/pkg/palette"
	"github.com/ngimb64/Kolor-Kraken/pkg/pixel"
	"go.uber.org/zap"
)

// Lookup ties the loaded palette to rendering and logging of results
type Lookup struct {
    Palette       *palette.Palette
    DisplayConfig conf.DisplayConfig
    LogMan        *krakenlogs.LoggerManager
    Out           io.Writer
}


// Matches the query against the palette, renders the result table and logs it.
//
// @Parameters
// - query:  The color to name
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func (looker *Lookup) Run(query matcher.Query) error {
    result, err := matcher.ClosestColor(query, looker.Palette)
    if err != nil {
        return err
    }

    rendered, err := display.RenderResult(result, looker.DisplayConfig.SwatchWidth,
                                          looker.DisplayConfig.ShowHex)
    if err != nil {
        return err
    }

    fmt.Fprintln(looker.Out, display.CtextMulti(display.CtextPrefix(color.DeepLavender,
                                                                    color.BrightLime, "+"),
                                                "", color.FoamWhite,
                                                "Closest palette color for " +
                                                display.Hex(query)))
    fmt.Fprint(looker.Out, rendered)

    looker.LogMan.LogMessage("info", "Detected color %s", result.Name,
                             zap.Int("red", query.R), zap.Int("green", query.G),
                             zap.Int("blue", query.B), zap.Int("distance", result.Distance))
    return nil
}


// Reads "x y" coordinate lines until EOF or the quit command, sampling the
// image and naming each pixel. Bad input is reported and re-prompted.
//
// @Parameters
// - reader:  The source of coordinate lines
// - img:  The decoded image to sample
//
// @Returns
// - Error if reading input or matching fails, otherwise nil on success
//
func (looker *Lookup) Interactive(reader io.Reader, img image.Image) error {
    scanner := bufio.NewScanner(reader)
    prompt := display.CtextMulti(display.CtextPrefix(color.KrakenPurple, color.LightCyan, "?"),
                                 "", color.NeonAzure,
                                 fmt.Sprintf("Enter pixel coordinates as x y (%dx%d) ",
                                             img.Bounds().Dx(), img.Bounds().Dy())) +
              color.SlateGray + fmt.Sprintf("[%s to quit]:  ", globals.QUIT_COMMAND) +
              color.AnsiReset

    for {
        fmt.Fprint(looker.Out, prompt)

        // If EOF or a read error was hit
        if !scanner.Scan() {
            fmt.Fprintln(looker.Out)
            return scanner.Err()
        }

        line := strings.TrimSpace(scanner.Text())
        if line == "" {
            continue
        }

        if strings.EqualFold(line, globals.QUIT_COMMAND) {
            return nil
        }

        err := looker.lookupPixel(img, line)
        if err == nil {
            continue
        }

        // Caller mistakes get a message and another prompt
        if errors.Is(err, pixel.ErrCoordinate) || errors.Is(err, matcher.ErrInvalidQuery) ||
           errors.Is(err, errCoordinateFormat) {
            looker.LogMan.LogMessage("warn", "Rejected coordinates %q:  %v", line, err)
            fmt.Fprintln(looker.Out, display.CtextMulti(display.CtextPrefix(color.KrakenPurple,
                                                                            color.BrightOrange, "!"),
                                                        "", color.BrightOrange, err.Error()))
            continue
        }

        return err
    }
}


var errCoordinateFormat = errors.New("coordinates must be two integers as x y")


// Parses the coordinate line, samples the pixel and runs the lookup.
func (looker *Lookup) lookupPixel(img image.Image, line string) error {
    coords, err := data.ParseIntList(strings.Join(strings.Fields(line), ","), ",", 2)
    if err != nil {
        return fmt.Errorf("%w: %v", errCoordinateFormat, err)
    }

    query, err := pixel.Sample(img, coords[0], coords[1])
    if err != nil {
        return err
    }

    return looker.Run(query)
}
