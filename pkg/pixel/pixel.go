package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/ngimb64/Kolor-Kraken/pkg/matcher"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrCoordinate is matched by every CoordinateError via errors.Is
var ErrCoordinate = errors.New("pixel coordinate out of range")

// CoordinateError reports a sample point outside the image
type CoordinateError struct {
    X      int
    Y      int
    Width  int
    Height int
}

func (e *CoordinateError) Error() string {
    return fmt.Sprintf("pixel (%d, %d) is outside the %dx%d image, valid x is 0-%d and y is 0-%d",
                       e.X, e.Y, e.Width, e.Height, e.Width-1, e.Height-1)
}

func (e *CoordinateError) Is(target error) bool {
    return target == ErrCoordinate
}


// Decodes an image from the passed in reader using whichever registered
// format matches (png, jpeg, gif, bmp, tiff, webp).
//
// @Parameters
// - reader:  The source of the encoded image
//
// @Returns
// - The decoded image
// - The name of the detected format
// - Error if it occurs, otherwise nil on success
//
func Decode(reader io.Reader) (image.Image, string, error) {
    img, format, err := image.Decode(reader)
    if err != nil {
        return nil, "", fmt.Errorf("unable to decode image: %w", err)
    }

    return img, format, nil
}


// DecodeFile opens and decodes the image at the passed in path.
func DecodeFile(filePath string) (image.Image, string, error) {
    file, err := os.Open(filePath)
    if err != nil {
        return nil, "", fmt.Errorf("unable to open %s: %w", filePath, err)
    }
    // Close file on local exit
    defer file.Close()

    img, format, err := Decode(file)
    if err != nil {
        return nil, "", fmt.Errorf("%s: %w", filePath, err)
    }

    return img, format, nil
}


// Reads the color at column x and row y, counted from the top left corner
// of the image, and returns it as a lookup query. Alpha is dropped after
// converting to non-premultiplied RGBA, so translucent pixels report their
// own color rather than one blended against a background.
//
// @Parameters
// - img:  The decoded image to sample
// - x:  The column of the pixel
// - y:  The row of the pixel
//
// @Returns
// - The sampled color as a query
// - Error if the coordinates fall outside the image
//
func Sample(img image.Image, x int, y int) (matcher.Query, error) {
    bounds := img.Bounds()

    // If the coordinates are outside of the image dimensions
    if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
        return matcher.Query{}, &CoordinateError{
            X:      x,
            Y:      y,
            Width:  bounds.Dx(),
            Height: bounds.Dy(),
        }
    }

    // Translate to the image origin which may not be 0,0
    pixel := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)

    return matcher.Query{R: int(pixel.R), G: int(pixel.G), B: int(pixel.B)}, nil
}
