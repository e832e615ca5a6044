package pixel_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ngimb64/Kolor-Kraken/pkg/matcher"
	"github.com/ngimb64/Kolor-Kraken/pkg/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// Builds a 3x2 test image with a distinct color per pixel
func testImage() *image.NRGBA {
    img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
    img.Set(0, 0, color.NRGBA{R: 255, A: 255})
    img.Set(1, 0, color.NRGBA{G: 255, A: 255})
    img.Set(2, 0, color.NRGBA{B: 255, A: 255})
    img.Set(0, 1, color.NRGBA{R: 34, G: 139, B: 34, A: 255})
    img.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
    img.Set(2, 1, color.NRGBA{A: 255})
    return img
}


func TestDecodeAndSample(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    var buffer bytes.Buffer
    // Encode the test image to PNG in memory
    err := png.Encode(&buffer, testImage())
    require.NoError(t, err)

    img, format, err := pixel.Decode(&buffer)
    // Ensure the error is nil meaning successful operation
    require.NoError(t, err)
    assert.Equal("png", format)

    tests := []struct {
        x      int
        y      int
        output matcher.Query
    } {
        {0, 0, matcher.Query{R: 255}},
        {2, 0, matcher.Query{B: 255}},
        {0, 1, matcher.Query{R: 34, G: 139, B: 34}},
        // Translucent pixels keep their own color
        {1, 1, matcher.Query{R: 10, G: 20, B: 30}},
    }

    // Iterate through slice of test structs and sample each pixel
    for _, test := range tests {
        query, err := pixel.Sample(img, test.x, test.y)
        assert.Equal(nil, err)
        assert.Equal(test.output, query)
    }
}


func TestSampleOutOfBounds(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)
    img := testImage()

    falacies := [][2]int{{3, 0}, {0, 2}, {-1, 0}, {0, -1}, {100, 100}}
    // Iterate through the out of range coordinates
    for _, falacy := range falacies {
        _, err := pixel.Sample(img, falacy[0], falacy[1])
        assert.True(errors.Is(err, pixel.ErrCoordinate))

        var coordErr *pixel.CoordinateError
        require.True(t, errors.As(err, &coordErr))
        assert.Equal(3, coordErr.Width)
        assert.Equal(2, coordErr.Height)
    }
}


func TestSampleOffsetBounds(t *testing.T) {
    // Image whose bounds do not start at the origin
    img := testImage().SubImage(image.Rect(1, 1, 3, 2))

    query, err := pixel.Sample(img, 1, 0)
    require.NoError(t, err)
    // Ensure coordinates are relative to the image bounds
    assert.Equal(t, matcher.Query{}, query)

    _, err = pixel.Sample(img, 2, 0)
    assert.True(t, errors.Is(err, pixel.ErrCoordinate))
}


func TestDecodeFile(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    filePath := filepath.Join(t.TempDir(), "sample.bmp")
    file, err := os.Create(filePath)
    require.NoError(t, err)
    // Encode the test image as BMP to exercise the extended decoders
    err = bmp.Encode(file, testImage())
    require.NoError(t, err)
    file.Close()

    img, format, err := pixel.DecodeFile(filePath)
    assert.Equal(nil, err)
    assert.Equal("bmp", format)

    query, err := pixel.Sample(img, 0, 1)
    assert.Equal(nil, err)
    assert.Equal(matcher.Query{R: 34, G: 139, B: 34}, query)

    // Ensure non image data fails to decode
    textPath := filepath.Join(t.TempDir(), "notes.txt")
    err = os.WriteFile(textPath, []byte("not an image"), 0644)
    require.NoError(t, err)
    _, _, err = pixel.DecodeFile(textPath)
    assert.True(errors.Is(err, image.ErrFormat))
}
