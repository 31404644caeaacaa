package imagefetch

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/tuumbleweed/xerr"

	_ "golang.org/x/image/webp" // registers the webp decoder with image.Decode
)

/*
normalize turns any decodable image into a JPEG the PDF writer can embed.

The steps are:
  - Decode, honouring EXIF orientation.
  - Downscale to fit maxDimension x maxDimension (never upscale).
  - Flatten transparency onto white.
  - Encode as JPEG at the configured quality.
*/
func normalize(raw []byte, maxDimension int, quality int, sourceURL string) (payload *Payload, e *xerr.Error) {
	decoded, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, xerr.NewError(err, "decode image", sourceURL)
	}

	fitted := imaging.Fit(decoded, maxDimension, maxDimension, imaging.Lanczos)
	bounds := fitted.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, xerr.NewError(fmt.Errorf("decoded bounds are %v", bounds), "image has no pixels", sourceURL)
	}

	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flattened := imaging.Overlay(background, fitted, image.Pt(0, 0), 1.0)

	var encoded bytes.Buffer
	err = imaging.Encode(&encoded, flattened, imaging.JPEG, imaging.JPEGQuality(quality))
	if err != nil {
		return nil, xerr.NewError(err, "encode jpeg", sourceURL)
	}

	return &Payload{
		Data:      encoded.Bytes(),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		SourceURL: sourceURL,
	}, nil
}
