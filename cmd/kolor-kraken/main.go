package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/ngimb64/Kolor-Kraken/internal/color"
	"github.com/ngimb64/Kolor-Kraken/internal/conf"
	"github.com/ngimb64/Kolor-Kraken/internal/validate"
	"github.com/ngimb64/Kolor-Kraken/pkg/awsutils"
	"github.com/ngimb64/Kolor-Kraken/pkg/display"
	"github.com/ngimb64/Kolor-Kraken/pkg/krakenlogs"
	"github.com/ngimb64/Kolor-Kraken/pkg/matcher"
	"github.com/ngimb64/Kolor-Kraken/pkg/palette"
	"github.com/ngimb64/Kolor-Kraken/pkg/pixel"
	"go.uber.org/zap"
)

// Deadline for resolving AWS credentials before giving up
const credentialTimeout = 10 * time.Second

// Options holds the parsed command line flags
type Options struct {
    ConfigPath  string
    Rgb         string
    Hex         string
    ImagePath   string
    X           int
    Y           int
    Interactive bool
}


// Parse the command line flags and ensure exactly one query source was
// selected. A missing -config is left empty for the prompt in main.
//
// @Parameters
// - args:  The command line args excluding the program name
//
// @Returns
// - The parsed options
// - Error if it occurs, otherwise nil on success
//
func parseArgs(args []string) (*Options, error) {
    opts := new(Options)
    flags := flag.NewFlagSet("kolor-kraken", flag.ContinueOnError)

    flags.StringVar(&opts.ConfigPath, "config", "", "Path to the YAML config file")
    flags.StringVar(&opts.Rgb, "rgb", "", "Query color as r,g,b")
    flags.StringVar(&opts.Hex, "hex", "", "Query color as #rrggbb")
    flags.StringVar(&opts.ImagePath, "image", "", "Image to sample the query pixel from")
    flags.IntVar(&opts.X, "x", -1, "Pixel column in the image")
    flags.IntVar(&opts.Y, "y", -1, "Pixel row in the image")
    flags.BoolVar(&opts.Interactive, "interactive", false,
                  "Read x y coordinates for the image from stdin")

    err := flags.Parse(args)
    if err != nil {
        return nil, err
    }

    sources := 0
    // Count the query sources that were specified
    for _, selected := range []bool{opts.Rgb != "", opts.Hex != "", opts.ImagePath != ""} {
        if selected {
            sources++
        }
    }

    if sources != 1 {
        return nil, fmt.Errorf("exactly one of -rgb, -hex, or -image must be specified")
    }

    // If interactive mode was requested without an image to sample
    if opts.Interactive && opts.ImagePath == "" {
        return nil, fmt.Errorf("-interactive requires -image")
    }

    // If sampling a single pixel without coordinates
    if opts.ImagePath != "" && !opts.Interactive && (opts.X < 0 || opts.Y < 0) {
        return nil, fmt.Errorf("-image requires -x and -y or -interactive")
    }

    return opts, nil
}


// Loads AWS config through the default credential chain for the region.
//
// @Parameters
// - region:  The AWS region of the service being accessed
// - purpose:  What the credentials are for, used in the error message
//
// @Returns
// - The loaded AWS config
// - Error if no usable credentials were found
//
func loadAwsConfig(region string, purpose string) (aws.Config, error) {
    awsConfig, ok := awsutils.AttemptLoadDefaultCredChain(region, credentialTimeout)
    if !ok {
        return aws.Config{}, fmt.Errorf("no usable AWS credentials found for %s in %s",
                                        purpose, region)
    }

    return awsConfig, nil
}


// Builds the palette cache for the configured source: the embedded palette
// when empty, S3 for s3:// uris, otherwise a local file.
//
// @Parameters
// - paletteConfig:  The palette section of the config
//
// @Returns
// - The palette cache, nil when the embedded palette is used
// - Error if it occurs, otherwise nil on success
//
func newPaletteCache(paletteConfig *conf.PaletteConfig) (*palette.Cache, error) {
    if paletteConfig.Source == "" {
        return nil, nil
    }

    // If the palette is stored in S3
    if awsutils.IsS3Uri(paletteConfig.Source) {
        awsConfig, err := loadAwsConfig(paletteConfig.Region, "palette download")
        if err != nil {
            return nil, err
        }

        opener, err := awsutils.S3Opener(awsutils.NewS3Client(awsConfig), paletteConfig.Source)
        if err != nil {
            return nil, err
        }

        return palette.NewCache(opener), nil
    }

    return palette.NewCache(palette.FileOpener(paletteConfig.Source)), nil
}


// Loads the reference palette within the configured fetch timeout.
//
// @Parameters
// - paletteConfig:  The palette section of the config
//
// @Returns
// - The loaded palette
// - Error if it occurs, otherwise nil on success
//
func loadPalette(paletteConfig *conf.PaletteConfig) (*palette.Palette, error) {
    cache, err := newPaletteCache(paletteConfig)
    if err != nil {
        return nil, err
    }

    // If no source was configured use the built in palette
    if cache == nil {
        return palette.Default()
    }

    ctx, cancel := context.WithTimeout(context.Background(), paletteConfig.Timeout())
    defer cancel()

    return cache.Get(ctx)
}


// Builds the single query from the -rgb, -hex, or -image flags.
//
// @Parameters
// - opts:  The parsed command line options
// - img:  The decoded image when -image was passed, otherwise nil
//
// @Returns
// - The query color
// - Error if it occurs, otherwise nil on success
//
func buildQuery(opts *Options, img image.Image) (matcher.Query, error) {
    switch {
    case opts.Rgb != "":
        return matcher.ParseQuery(opts.Rgb)
    case opts.Hex != "":
        return matcher.QueryFromHex(opts.Hex)
    default:
        return pixel.Sample(img, opts.X, opts.Y)
    }
}


// Prints the error and exits, logging it first when the log manager is up.
func fatal(logMan *krakenlogs.LoggerManager, message string, err error) {
    fmt.Fprintln(os.Stderr, display.CtextMulti(display.CtextPrefix(color.KrakenPurple,
                                                                   color.CoralRed, "X"),
                                               "", color.CoralRed,
                                               fmt.Sprintf("%s:  %v", message, err)))
    if logMan != nil {
        logMan.LogMessage("error", "%s:  %v", message, err)
        logMan.Sync()
    }

    os.Exit(1)
}


// Parse command line args and load the YAML config, set up logging, load the
// palette, then run a single lookup or the interactive pixel loop.
//
func main() {
    opts, err := parseArgs(os.Args[1:])
    if err != nil {
        // The flag set already printed usage for parse failures
        if !errors.Is(err, flag.ErrHelp) {
            fmt.Fprintln(os.Stderr, err)
        }
        os.Exit(2)
    }

    // Prompt the user until a proper config path is passed in
    validate.ValidateConfigPath(&opts.ConfigPath)

    // Load the configuration from the YAML file
    appConfig, err := conf.LoadConfig(opts.ConfigPath)
    if err != nil {
        log.Fatalf("Error loading config:  %v", err)
    }

    var awsConfig aws.Config
    logConfig := appConfig.LogConfig

    // If CloudWatch logging is active, AWS credentials are required
    if logConfig.LogMode != "local" {
        awsConfig, err = loadAwsConfig(logConfig.Region, "CloudWatch logging")
        if err != nil {
            log.Fatalf("Error loading AWS config:  %v", err)
        }
    }

    // Initialize the LoggerManager based on the config
    logMan, err := krakenlogs.NewLoggerManager(context.Background(), logConfig.LogMode,
                                               logConfig.LogPath, awsConfig,
                                               logConfig.LogGroup, false)
    if err != nil {
        log.Fatalf("Error initializing logger manager:  %v", err)
    }
    // Flush the logs on local exit
    defer logMan.Sync()

    pal, err := loadPalette(&appConfig.PaletteConfig)
    if err != nil {
        var formatErr *palette.DataFormatError

        // Point at the offending line when the palette is malformed
        if errors.As(err, &formatErr) {
            logMan.LogMessage("error", "Malformed palette data", zap.Int("line", formatErr.Line),
                              zap.String("column", formatErr.Column))
        }

        fatal(logMan, "Error loading palette", err)
    }

    logMan.LogMessage("info", "Palette loaded with %d colors", pal.Len(),
                      zap.String("source", appConfig.PaletteConfig.Source))

    var img image.Image

    // If the query is sampled from an image
    if opts.ImagePath != "" {
        err = validate.ValidateImagePath(opts.ImagePath)
        if err != nil {
            fatal(logMan, "Error validating image", err)
        }

        var format string

        img, format, err = pixel.DecodeFile(opts.ImagePath)
        if err != nil {
            fatal(logMan, "Error decoding image", err)
        }

        logMan.LogMessage("info", "Decoded %s image %s", format, opts.ImagePath,
                          zap.Int("width", img.Bounds().Dx()),
                          zap.Int("height", img.Bounds().Dy()))
    }

    looker := &Lookup{
        Palette:       pal,
        DisplayConfig: appConfig.DisplayConfig,
        LogMan:        logMan,
        Out:           os.Stdout,
    }

    // If reading coordinates from the user
    if opts.Interactive {
        err = looker.Interactive(os.Stdin, img)
        if err != nil {
            fatal(logMan, "Error reading coordinates", err)
        }
        return
    }

    query, err := buildQuery(opts, img)
    if err != nil {
        fatal(logMan, "Error building query", err)
    }

    err = looker.Run(query)
    if err != nil {
        fatal(logMan, "Error matching color", err)
    }
}
