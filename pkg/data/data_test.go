package data_test

import (
	"testing"

	"github.com/ngimb64/Kolor-Kraken/internal/globals"
	"github.com/ngimb64/Kolor-Kraken/pkg/data"
	"github.com/stretchr/testify/assert"
)


func TestAbsDiff(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    tests := []struct {
        a      int
        b      int
        output int
    } {
        {10, 0, 10},
        {0, 10, 10},
        {255, 255, 0},
        {-5, 5, 10},
    }

    // Iterate through slice of test structs
    for _, test := range tests {
        assert.Equal(test.output, data.AbsDiff(test.a, test.b))
    }

    // Ensure the generic works with narrower signed types
    assert.Equal(int16(245), data.AbsDiff(int16(10), int16(255)))
}


func TestParseIntList(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    ints, err := data.ParseIntList("10, 20,30", ",", 3)
    // Ensure the error is nil meaning successful operation
    assert.Equal(nil, err)
    // Ensure the fields were trimmed and parsed in order
    assert.Equal([]int{10, 20, 30}, ints)

    falacies := []string{"10,20", "10,20,30,40", "10,abc,30", ""}
    // Iterate through improper inputs and ensure each fails
    for _, falacy := range falacies {
        _, err = data.ParseIntList(falacy, ",", 3)
        assert.NotEqual(nil, err)
    }
}


func TestStringSliceHasItem(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    // Set true values and test them in loop
    trues := []string{"local", "cloudwatch", "both"}

    for _, truth := range trues {
        assert.True(data.StringSliceHasItem(globals.LOG_MODES, truth))
    }

    // Set false values and test them in loop
    falses := []string{"loc", "cloud", "Both"}

    for _, falacy := range falses {
        assert.False(data.StringSliceHasItem(globals.LOG_MODES, falacy))
    }
}


func TestStringHasAnySuffix(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    assert.True(data.StringHasAnySuffix(globals.IMAGE_EXTENSIONS, "photo.png"))
    assert.True(data.StringHasAnySuffix(globals.IMAGE_EXTENSIONS, "dir/photo.webp"))
    assert.False(data.StringHasAnySuffix(globals.IMAGE_EXTENSIONS, "photo.txt"))
}
