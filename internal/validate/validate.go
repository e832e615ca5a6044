package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws/endpoints"
	"github.com/ngimb64/Kolor-Kraken/internal/globals"
	"github.com/ngimb64/Kolor-Kraken/pkg/awsutils"
	"github.com/ngimb64/Kolor-Kraken/pkg/data"
	"github.com/ngimb64/Kolor-Kraken/pkg/disk"
	"github.com/ngimb64/Kolor-Kraken/pkg/display"
)

var validPath = regexp.MustCompile(`^[a-zA-Z0-9\._\-\/]+$`)


// In a continous loop, the input is gathered and tested to see if the path
// exists that is a yaml file with data inside it.
//
// @Parameters
// - configFilePath:  The path to the configuration to attempt to load
//
func ValidateConfigPath(configFilePath *string) {
    for {
        if *configFilePath == "" {
            fmt.Print("Enter the path of the YAML config file to use:  ")
            // Read the YAML file path from user input
            _, err := fmt.Scanln(configFilePath)
            if err != nil {
                fmt.Println("Error occurred reading user input path: ", err)
                // Sleep for a few seconds and clear screen before re-prompt
                display.ClearScreen(3)
                // Reset the config file path
                *configFilePath = ""
                continue
            }
        }

        err := ValidateConfigFile(*configFilePath)
        if err != nil {
            fmt.Println(err)
            // Sleep for a few seconds and clear screen before re-prompt
            display.ClearScreen(3)
            // Reset the config file path
            *configFilePath = ""
            continue
        }

        break
    }
}


// Ensure the config path is an existing YAML file with data in it.
//
// @Parameters
// - filePath:  The path to the YAML config file
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func ValidateConfigFile(filePath string) error {
    // If the path is not a YAML file type
    if !data.StringHasAnySuffix([]string{".yml", ".yaml"}, filePath) {
        return fmt.Errorf("config path %s is not a YAML file type", filePath)
    }

    return ValidateFile(filePath)
}


// Ensure the passed in file path exists and is a file that has data.
//
// @Parameters
// - filePath:  The path to the file to validate
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func ValidateFile(filePath string) error {
    // Check to see if the file exists
    exists, isDir, hasData, err := disk.PathExists(filePath)
    if err != nil {
        return err
    }

    // If file path does not exist OR is a directory OR does not have data
    if !exists || isDir || !hasData {
        return fmt.Errorf("file path %s does not exist or is a directory or" +
                          " does not have data in it", filePath)
    }

    return nil
}


// Ensure the fetch timeout is a positive number of seconds.
//
// @Parameters
// - seconds:  The configured palette fetch timeout
//
// @Returns
// - true/false depending on whether the timeout is usable
//
func ValidateFetchTimeout(seconds int) bool {
    return seconds > 0
}


// Ensure the image path exists with a supported image extension.
//
// @Parameters
// - imagePath:  The path to the image to sample pixels from
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func ValidateImagePath(imagePath string) error {
    // If the extension is not one of the registered decoders
    if !data.StringHasAnySuffix(globals.IMAGE_EXTENSIONS, strings.ToLower(imagePath)) {
        return fmt.Errorf("image %s is not a supported type %v", imagePath,
                          globals.IMAGE_EXTENSIONS)
    }

    return ValidateFile(imagePath)
}


// Ensure the passed in log mode is supported.
//
// @Parameters
// - logMode:  The log mode to be validated
//
// @Returns
// - true/false depending on whether log mode is supported or not
//
func ValidateLogMode(logMode string) bool {
    // Check to see if arg logging mode is in allowed modes
    return data.StringSliceHasItem(globals.LOG_MODES, logMode)
}


// Ensure the palette source is either empty (embedded palette), an
// s3://bucket/key uri, or an existing local file.
//
// @Parameters
// - source:  The palette source from the config
//
// @Returns
// - Error if it occurs, otherwise nil on success
//
func ValidatePaletteSource(source string) error {
    if source == "" {
        return nil
    }

    // If the source is in S3 the object is resolved on fetch
    if awsutils.IsS3Uri(source) {
        _, _, err := awsutils.ParseS3Uri(source)
        return err
    }

    return ValidateFile(source)
}


// Validates the path to ensure it is not empty and contains only
// valid characters, cleaning it in the process.
//
// @Parameters
// - path:  The path to validate
//
// @Returns
// - The validated path
// - Error if it occurs, otherwise nil on success
//
func ValidatePath(path string) (string, error) {
    // Ensure the path is not empty
    if path == "" {
        return "", fmt.Errorf("passed in path cannot be empty")
    }

    // Clean the path (removes redundant slashes, etc.)
    cleanedPath := filepath.Clean(path)

    // Validate path format with regex
    if !validPath.MatchString(cleanedPath) {
        return "", fmt.Errorf("path %s contains invalid characters", path)
    }

    return cleanedPath, nil
}


// Ensure the passed in region is a valid AWS region.
//
// @Parameters
// - region:  The AWS region to be validated
//
// @Returns
// - true/false boolean depending on whether the AWS region is valid or not
//
func ValidateRegion(region string) bool {
    // Iterate through the endpoint partitions
    for _, currPartitions := range endpoints.DefaultPartitions() {
        // Iterate through the regions in the current partition
        for _, currRegion := range currPartitions.Regions() {
            // It the current region ID matches arg string
            if currRegion.ID() == region {
                return true
            }
        }
    }

    return false
}


// Ensure the swatch width fits a terminal line.
//
// @Parameters
// - width:  The number of swatch blocks to render
//
// @Returns
// - true/false depending on whether the width is in range
//
func ValidateSwatchWidth(width int) bool {
    return width >= 1 && width <= globals.MAX_SWATCH_WIDTH
}
