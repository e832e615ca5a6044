package data

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)


// Computes the absolute difference between two signed integers.
//
// @Parameters
// - a:  The first operand
// - b:  The second operand
//
// @Returns
// - The non-negative distance between a and b
//
func AbsDiff[T constraints.Signed](a, b T) T {
    if a > b {
        return a - b
    }
    return b - a
}


// Splits the passed in string on the separator and parses each trimmed
// field as a base 10 integer, requiring exactly count fields.
//
// @Parameters
// - input:  The string to be parsed (ex: "10, 20, 30")
// - separator:  The separator between the integer fields
// - count:  The exact number of fields expected
//
// @Returns
// - The slice of parsed integers
// - Error if it occurs, otherwise nil on success
//
func ParseIntList(input string, separator string, count int) ([]int, error) {
    fields := strings.Split(input, separator)
    // If the number of fields does not match the expected count
    if len(fields) != count {
        return nil, fmt.Errorf("expected %d fields separated by %q, got %d",
                               count, separator, len(fields))
    }

    ints := make([]int, 0, count)

    // Iterate through the split fields and convert each to integer
    for _, field := range fields {
        number, err := strconv.Atoi(strings.TrimSpace(field))
        if err != nil {
            return nil, fmt.Errorf("error converting %q to integer: %w", field, err)
        }

        ints = append(ints, number)
    }

    return ints, nil
}


// Checks to see if the target string is in the slice.
//
// @Parameters
// - slice:  The string slice to check for the target
// - target:  The target string to search for
//
// @Returns
// - true/false depending on whether the target is in the slice
//
func StringSliceHasItem(slice []string, target string) bool {
    // Iterate over the slice and compare each item to the target
    for _, item := range slice {
        if item == target {
            return true
        }
    }
    return false
}


// Checks whether the target string ends with any of the suffixes in the slice.
func StringHasAnySuffix(suffixes []string, target string) bool {
    for _, suffix := range suffixes {
        if strings.HasSuffix(target, suffix) {
            return true
        }
    }
    return false
}
