package preview

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Extra decoders beyond imaging's built-ins (png/jpeg/gif/tiff/bmp).
	_ "golang.org/x/image/webp"
)

// maxPreviewDim bounds the decoded preview image. Anything larger is
// downscaled before it reaches the pane; the host's memory budget is tight
// and a 100-megapixel photo must not blow it.
const maxPreviewDim = 2048

// DecodeError reports unreadable or corrupt image content. Recovered
// locally by the resolver via the icon fallback; never reaches the host.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeImage decodes an image file for the preview pane, honoring EXIF
// orientation and downscaling to fit maxPreviewDim.
func DecodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	bounds := img.Bounds()
	if bounds.Dx() > maxPreviewDim || bounds.Dy() > maxPreviewDim {
		img = imaging.Fit(img, maxPreviewDim, maxPreviewDim, imaging.Lanczos)
	}
	return img, nil
}
