package conf

import (
	"fmt"
	"os"
	"time"

	"github.com/ngimb64/Kolor-Kraken/internal/globals"
	"github.com/ngimb64/Kolor-Kraken/internal/validate"
	"github.com/ngimb64/Kolor-Kraken/pkg/awsutils"
	"gopkg.in/yaml.v3"
)

// AppConfig is a wrapper that ties the palette, log, and display yaml configs
type AppConfig struct {
    PaletteConfig PaletteConfig `yaml:"palette_config"`
    LogConfig     LogConfig     `yaml:"log_config"`
    DisplayConfig DisplayConfig `yaml:"display_config"`
}

// PaletteConfig contains where the reference palette is loaded from
type PaletteConfig struct {
    Source       string `yaml:"source"`
    Region       string `yaml:"region"`
    FetchTimeout int    `yaml:"fetch_timeout"`
}

// LogConfig contains the yaml configuration for logging
type LogConfig struct {
    LogMode  string `yaml:"log_mode"`
    LogPath  string `yaml:"log_path"`
    LogGroup string `yaml:"log_group"`
    Region   string `yaml:"region"`
}

// DisplayConfig contains the yaml configuration for result rendering
type DisplayConfig struct {
    SwatchWidth int  `yaml:"swatch_width"`
    ShowHex     bool `yaml:"show_hex"`
}


// LoadConfig reads the YAML file and unmarshals it into AppConfig struct in
// memory, then validates the parsed data from each section of yaml.
//
// @Parameters
// - filePath:  The path to the YAML config file
//
// @Returns
// - The initialized AppConfig struct loaded with validated data
// - Error if it occurs, otherwise nil on success
//
func LoadConfig(filePath string) (*AppConfig, error) {
    // Open the YAML file
    file, err := os.Open(filePath)
    if err != nil {
        return nil, fmt.Errorf("could not open YAML file:  %w", err)
    }
    // Close file on local exit
    defer file.Close()

    // Create a new AppConfig instance with defaults for omitted fields
    config := AppConfig{
        PaletteConfig: PaletteConfig{FetchTimeout: 30},
        DisplayConfig: DisplayConfig{SwatchWidth: 12, ShowHex: true},
    }

    // Decode YAML into AppConfig struct, rejecting unknown keys
    decoder := yaml.NewDecoder(file)
    decoder.KnownFields(true)
    err = decoder.Decode(&config)
    if err != nil {
        return nil, fmt.Errorf("could not decode YAML into AppConfig:  %w", err)
    }

    // Validate palette config section of YAML data
    err = ValidatePaletteConfig(&config.PaletteConfig)
    if err != nil {
        return nil, fmt.Errorf("invalid palette config:  %w", err)
    }

    // Validate log config section of YAML data
    err = ValidateLogConfig(&config.LogConfig)
    if err != nil {
        return nil, fmt.Errorf("invalid log config:  %w", err)
    }

    // Validate display config section of YAML data
    err = ValidateDisplayConfig(&config.DisplayConfig)
    if err != nil {
        return nil, fmt.Errorf("invalid display config:  %w", err)
    }

    return &config, nil
}


// Takes the parsed data in PaletteConfig struct and passes each
// struct member into its corresponding validation routine.
//
// @Parameters
// - paletteConfig:  The PaletteConfig section of the parsed yaml data
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func ValidatePaletteConfig(paletteConfig *PaletteConfig) error {
    // Ensure the source is embedded, in S3, or an existing file
    err := validate.ValidatePaletteSource(paletteConfig.Source)
    if err != nil {
        return err
    }

    // If the palette is in S3 a proper region is required
    if awsutils.IsS3Uri(paletteConfig.Source) && !validate.ValidateRegion(paletteConfig.Region) {
        return fmt.Errorf("improper region specified for s3 palette source")
    }

    // If the fetch timeout is not a positive number of seconds
    if !validate.ValidateFetchTimeout(paletteConfig.FetchTimeout) {
        return fmt.Errorf("fetch_timeout must be a positive integer")
    }

    return nil
}


// Takes the parsed data in LogConfig struct and passes each
// struct member into its corresponding validation routine.
//
// @Parameters
// - logConfig:  The LogConfig section of the parsed yaml data
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func ValidateLogConfig(logConfig *LogConfig) error {
    var err error

    // If the log mode was not in supported modes
    if !validate.ValidateLogMode(logConfig.LogMode) {
        return fmt.Errorf("improper log_mode specified")
    }

    // If logging to the local file system
    if logConfig.LogMode != "cloudwatch" {
        // Ensure log path is of proper format
        logConfig.LogPath, err = validate.ValidatePath(logConfig.LogPath)
        if err != nil {
            return fmt.Errorf("improper log_path specified - %w", err)
        }
    }

    // If logging to CloudWatch
    if logConfig.LogMode != "local" {
        if logConfig.LogGroup == "" {
            return fmt.Errorf("log_group is required for log_mode %s", logConfig.LogMode)
        }

        // If an improper region was specified in log config
        if !validate.ValidateRegion(logConfig.Region) {
            return fmt.Errorf("improper region specified")
        }
    }

    return nil
}


// Takes the parsed data in DisplayConfig struct and validates it.
//
// @Parameters
// - displayConfig:  The DisplayConfig section of the parsed yaml data
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func ValidateDisplayConfig(displayConfig *DisplayConfig) error {
    if !validate.ValidateSwatchWidth(displayConfig.SwatchWidth) {
        return fmt.Errorf("swatch_width must be between 1 and %d",
                          globals.MAX_SWATCH_WIDTH)
    }

    return nil
}


// Returns the palette fetch timeout as a duration.
func (paletteConfig *PaletteConfig) Timeout() time.Duration {
    return time.Duration(paletteConfig.FetchTimeout) * time.Second
}
