package Report

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage is returned when an embedded photo or signature cannot
// be decoded.
var ErrInvalidImage = errors.New("invalid image")

type imageSpec struct {
	maxW, maxH int
	format     imaging.Format
}

var imageSpecs = map[string]imageSpec{
	PhotoImage:     {1800, 1000, imaging.JPEG},
	SignatureImage: {800, 400, imaging.PNG},
}

type encodedImage struct {
	data []byte
	// kind is the fpdf image type.
	kind string
}

// decodePayload accepts a data URL or a bare base64 string.
func decodePayload(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, errors.New("data url without payload")
		}
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	return raw, err
}

// normalizeImage decodes an embedded image, applies EXIF orientation,
// bounds its size, flattens it onto white and re-encodes it in a format
// the PDF writer embeds directly.
func normalizeImage(name, payload string) (*encodedImage, error) {
	spec, ok := imageSpecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown image %q", ErrInvalidImage, name)
	}
	raw, err := decodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, name, err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, name, err)
	}

	img = imaging.Fit(img, spec.maxW, spec.maxH, imaging.Lanczos)
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	flat := imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	switch spec.format {
	case imaging.JPEG:
		err = imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(85))
	default:
		err = imaging.Encode(&buf, flat, imaging.PNG)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	kind := "PNG"
	if spec.format == imaging.JPEG {
		kind = "JPG"
	}
	return &encodedImage{data: buf.Bytes(), kind: kind}, nil
}
