package exif

import (
	"context"
	"os"

	goexif "github.com/rwcarlsen/goexif/exif"
)

// Orientation values 1..8 as defined by the EXIF standard. 1 is upright.
const OrientationNormal = 1

type Reader struct{}

// Orientation returns the EXIF orientation tag of an image. Images without
// EXIF data or without the tag are reported as upright.
func (Reader) Orientation(ctx context.Context, path string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	// Non-critical decode errors still yield usable tags.
	x, err := goexif.Decode(file)
	if (err != nil && goexif.IsCriticalError(err)) || x == nil {
		return OrientationNormal, nil
	}

	tag, err := x.Get(goexif.Orientation)
	if err != nil {
		return OrientationNormal, nil
	}
	value, err := tag.Int(0)
	if err != nil || value < 1 || value > 8 {
		return OrientationNormal, nil
	}
	return value, nil
}

// NeedsRotation reports whether orientation describes anything but an
// upright image.
func NeedsRotation(orientation int) bool {
	return orientation > OrientationNormal && orientation <= 8
}
