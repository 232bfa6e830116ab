package icons

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// MaxUploadDimension is the largest edge, in pixels, kept for an uploaded icon.
const MaxUploadDimension = 128

// MaxUploadBytes caps the raw upload size accepted by FromUpload.
const MaxUploadBytes = 5 << 20

// UploadError reports an icon image that could not be decoded or encoded.
type UploadError struct {
	Message string
	Cause   error
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("icon upload: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("icon upload: %s", e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// FromUpload decodes an uploaded image, scales it down so neither edge exceeds
// maxDim (MaxUploadDimension when maxDim <= 0), and returns it as an embedded
// PNG data URI icon.
func FromUpload(r io.Reader, maxDim int) (Icon, error) {
	if maxDim <= 0 {
		maxDim = MaxUploadDimension
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Icon{}, &UploadError{Message: "failed to read image", Cause: err}
	}
	if len(data) > MaxUploadBytes {
		return Icon{}, &UploadError{Message: fmt.Sprintf("image exceeds %d bytes", MaxUploadBytes)}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Icon{}, &UploadError{Message: fmt.Sprintf("failed to decode image (format: %s)", format), Cause: err}
	}

	scaled := scaleToFit(img, maxDim)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return Icon{}, &UploadError{Message: "failed to encode image", Cause: err}
	}

	return Image("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// scaleToFit keeps the aspect ratio and never enlarges.
func scaleToFit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return img
	}

	newWidth, newHeight := maxDim, maxDim
	if width > height {
		newHeight = max(1, height*maxDim/width)
	} else {
		newWidth = max(1, width*maxDim/height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
