package main

import (
	"bytes"
	"context"
	"image"
	imgcolor "image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/ngimb64/Kolor-Kraken/internal/color"
	"github.com/ngimb64/Kolor-Kraken/internal/conf"
	"github.com/ngimb64/Kolor-Kraken/pkg/display"
	"github.com/ngimb64/Kolor-Kraken/pkg/krakenlogs"
	"github.com/ngimb64/Kolor-Kraken/pkg/matcher"
	"github.com/ngimb64/Kolor-Kraken/pkg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Builds a lookup over a black and white palette writing into a buffer
func newTestLookup(t *testing.T) (*Lookup, *bytes.Buffer) {
    pal, err := palette.New([]palette.Entry{
        {Name: "Black", R: 0, G: 0, B: 0},
        {Name: "White", R: 255, G: 255, B: 255},
    })
    require.NoError(t, err)

    logMan, err := krakenlogs.NewLoggerManager(context.Background(), "local", "",
                                               aws.Config{}, "", true)
    require.NoError(t, err)

    out := new(bytes.Buffer)
    return &Lookup{
        Palette:       pal,
        DisplayConfig: conf.DisplayConfig{SwatchWidth: 4, ShowHex: true},
        LogMan:        logMan,
        Out:           out,
    }, out
}


func TestParseArgs(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    opts, err := parseArgs([]string{"-config", "config/config.yml", "-rgb", "1,2,3"})
    // Ensure the error is nil meaning successful operation
    assert.Equal(nil, err)
    assert.Equal("config/config.yml", opts.ConfigPath)
    assert.Equal("1,2,3", opts.Rgb)

    opts, err = parseArgs([]string{"-image", "photo.png", "-interactive"})
    assert.Equal(nil, err)
    assert.True(opts.Interactive)

    falacies := [][]string{
        {},
        {"-rgb", "1,2,3", "-hex", "#000000"},
        {"-image", "photo.png"},
        {"-image", "photo.png", "-x", "3"},
        {"-hex", "#000000", "-interactive"},
        {"-bogus"},
    }
    // Iterate through improper arg sets and ensure each fails
    for _, falacy := range falacies {
        _, err = parseArgs(falacy)
        assert.NotEqual(nil, err, falacy)
    }
}


func TestBuildQuery(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    query, err := buildQuery(&Options{Rgb: "10, 20, 30"}, nil)
    assert.Equal(nil, err)
    assert.Equal(matcher.Query{R: 10, G: 20, B: 30}, query)

    query, err = buildQuery(&Options{Hex: "#ff8000"}, nil)
    assert.Equal(nil, err)
    assert.Equal(matcher.Query{R: 255, G: 128, B: 0}, query)

    img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
    img.SetNRGBA(1, 1, imgcolor.NRGBA{R: 7, G: 8, B: 9, A: 255})

    query, err = buildQuery(&Options{ImagePath: "x.png", X: 1, Y: 1}, img)
    assert.Equal(nil, err)
    assert.Equal(matcher.Query{R: 7, G: 8, B: 9}, query)

    _, err = buildQuery(&Options{Rgb: "300,0,0"}, nil)
    assert.ErrorIs(err, matcher.ErrInvalidQuery)
}


func TestLoadPalette(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    // Ensure an empty source selects the built in palette
    pal, err := loadPalette(&conf.PaletteConfig{FetchTimeout: 5})
    require.NoError(t, err)
    assert.Greater(pal.Len(), 0)

    palettePath := filepath.Join(t.TempDir(), "colors.csv")
    err = os.WriteFile(palettePath, []byte("color_name,R,G,B\nTeal,0,128,128\n"), 0644)
    require.NoError(t, err)

    pal, err = loadPalette(&conf.PaletteConfig{Source: palettePath, FetchTimeout: 5})
    require.NoError(t, err)
    assert.Equal(1, pal.Len())
    assert.Equal("Teal", pal.Entry(0).Name)

    badPath := filepath.Join(t.TempDir(), "bad.csv")
    err = os.WriteFile(badPath, []byte("color_name,R,G,B\nTeal,0,128\n"), 0644)
    require.NoError(t, err)

    // Ensure malformed palettes surface as data format errors
    _, err = loadPalette(&conf.PaletteConfig{Source: badPath, FetchTimeout: 5})
    assert.ErrorIs(err, palette.ErrDataFormat)
}


func TestLookupRun(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)
    looker, out := newTestLookup(t)

    err := looker.Run(matcher.Query{R: 200, G: 210, B: 220})
    require.NoError(t, err)
    assert.Contains(out.String(), "White")
    assert.Contains(out.String(), "#c8d2dc")
    // Ensure the result header is highlighted ahead of the table
    assert.True(strings.HasPrefix(out.String(),
                                  display.CtextPrefix(color.DeepLavender, color.BrightLime, "+")))
    assert.Contains(out.String(), color.FoamWhite + "Closest palette color for #c8d2dc")
    // Ensure the detection was logged
    assert.Contains(looker.LogMan.GetLog(), "Detected color White")

    err = looker.Run(matcher.Query{R: -1, G: 0, B: 0})
    assert.ErrorIs(err, matcher.ErrInvalidQuery)
}


func TestLookupInteractive(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)
    looker, out := newTestLookup(t)

    img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
    img.SetNRGBA(0, 0, imgcolor.NRGBA{R: 10, G: 10, B: 10, A: 255})
    img.SetNRGBA(1, 0, imgcolor.NRGBA{R: 250, G: 250, B: 250, A: 255})

    input := strings.NewReader("0 0\n\n5 5\nnot numbers\n1   0\nq\n0 0\n")
    err := looker.Interactive(input, img)
    // Ensure the error is nil meaning successful operation
    require.NoError(t, err)

    output := out.String()
    assert.Contains(output, "Black")
    assert.Contains(output, "White")
    // Ensure bad lines were reported without ending the loop
    assert.Contains(output, "outside")
    assert.Contains(output, "two integers")
    // Ensure rejections are warnings rather than fatal errors
    assert.Contains(output, display.CtextPrefix(color.KrakenPurple, color.BrightOrange, "!"))
    assert.NotContains(output, color.CoralRed)
    assert.Contains(output, color.SlateGray + "[q to quit]:  ")
    // Ensure the line after quit was never processed
    assert.Equal(2, strings.Count(looker.LogMan.GetLog(), "Detected color"))
}


func TestLookupInteractiveEOF(t *testing.T) {
    looker, _ := newTestLookup(t)
    img := image.NewNRGBA(image.Rect(0, 0, 1, 1))

    // Ensure EOF without the quit command ends cleanly
    err := looker.Interactive(strings.NewReader("0 0"), img)
    assert.Equal(t, nil, err)
}
