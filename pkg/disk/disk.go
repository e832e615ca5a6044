package disk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)


// Checks whether the passed in path exists, whether it is a directory,
// and whether it holds any data (non-zero file size or non-empty dir).
//
// @Parameters
// - path:  The path to be probed
//
// @Returns
// - Whether the path exists
// - Whether the path is a directory
// - Whether the path has data in it
// - Error if it occurs, otherwise nil on success
//
func PathExists(path string) (bool, bool, bool, error) {
    fileInfo, err := os.Stat(path)
    if err != nil {
        // A missing path is not an error, just a negative result
        if errors.Is(err, fs.ErrNotExist) {
            return false, false, false, nil
        }

        return false, false, false, fmt.Errorf("error checking path %s: %w", path, err)
    }

    // If the path is a file, check the size for data
    if !fileInfo.IsDir() {
        return true, false, fileInfo.Size() > 0, nil
    }

    // Read the dir entries to see if it contains anything
    entries, err := os.ReadDir(path)
    if err != nil {
        return true, true, false, fmt.Errorf("error reading dir %s: %w", path, err)
    }

    return true, true, len(entries) > 0, nil
}
