package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
)

// Size and dimension bounds for stored images
const (
	// Images at or under this size are stored as-is to avoid pointless
	// recompression latency.
	PassThroughBytes = 300 * 1024
	// The aggressive pass aims for output at or under this size.
	CompressTargetBytes = 100 * 1024
	// Per-record ceiling of the document store when images are inlined,
	// measured in encoded characters.
	InlineCeilingChars = 750000
	// Long-edge bound for the extra shrink pass used to fit under the
	// inline ceiling. Best-effort, not a guarantee.
	InlineLongEdge = 600
)

// NormalizedImage is the outcome of running an image through the normalizer.
type NormalizedImage struct {
	Data []byte
	MIME string
	// Transformed is false when the original bytes passed through unchanged,
	// either because they were small enough or because every compression
	// pass failed.
	Transformed bool
}

// compressPass is one rung of the fallback ladder: fit the image inside a
// square of longEdge and re-encode as JPEG, stepping down the quality ladder
// until the target size is met (a zero target accepts the first encoding).
type compressPass struct {
	name        string
	longEdge    int
	qualities   []int
	targetBytes int
}

// ImageNormalizer produces a size-bounded representation of a raw image by
// trying an ordered list of compression passes. The order of the passes is
// the fallback policy: aggressive first, then a gentler pass when the
// aggressive result fails or would blow the inline storage ceiling, then the
// unmodified original.
type ImageNormalizer struct {
	passes []compressPass
}

// NewImageNormalizer creates a normalizer with the standard pass ladder.
func NewImageNormalizer() *ImageNormalizer {
	return &ImageNormalizer{
		passes: []compressPass{
			{name: "aggressive", longEdge: 800, qualities: []int{70, 55, 40, 25}, targetBytes: CompressTargetBytes},
			{name: "gentle", longEdge: 1024, qualities: []int{80}},
		},
	}
}

// Normalize returns a storable representation of the raw image. It never
// fails the submission: when every pass errors out the original bytes come
// back untransformed and the store layer enforces whatever limits it has.
func (n *ImageNormalizer) Normalize(data []byte, mimeType string) NormalizedImage {
	if len(data) <= PassThroughBytes {
		return NormalizedImage{Data: data, MIME: mimeType}
	}

	for _, pass := range n.passes {
		out, err := pass.apply(data)
		if err != nil {
			log.Printf("Image %s pass failed: %v", pass.name, err)
			continue
		}
		if base64.StdEncoding.EncodedLen(len(out)) > InlineCeilingChars {
			log.Printf("Image %s pass output exceeds the inline ceiling, trying next pass", pass.name)
			continue
		}
		return NormalizedImage{Data: out, MIME: "image/jpeg", Transformed: true}
	}

	log.Println("All compression passes failed, storing the original image unmodified")
	return NormalizedImage{Data: data, MIME: mimeType}
}

// ReduceToFit re-encodes the image bounded to InlineLongEdge so it has a
// chance of fitting under ceilingChars once encoded as text. The result is
// advisory: if the image still does not fit, it is returned anyway.
func (n *ImageNormalizer) ReduceToFit(data []byte, ceilingChars int) []byte {
	pass := compressPass{name: "inline-fit", longEdge: InlineLongEdge, qualities: []int{60, 40, 25}, targetBytes: ceilingChars / 2}
	out, err := pass.apply(data)
	if err != nil {
		log.Printf("Inline fit pass failed: %v", err)
		return data
	}
	return out
}

func (p compressPass) apply(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	img = fitLongEdge(img, p.longEdge)

	var out []byte
	for _, q := range p.qualities {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
			return nil, fmt.Errorf("encode at quality %d: %w", q, err)
		}
		out = buf.Bytes()
		if p.targetBytes == 0 || len(out) <= p.targetBytes {
			return out, nil
		}
	}
	// Target missed even at the lowest quality; hand back the smallest
	// encoding and let the store layer decide.
	return out, nil
}

// fitLongEdge scales the image down so its longer side is at most edge,
// preserving aspect ratio. Images already within bounds are untouched.
func fitLongEdge(img image.Image, edge int) image.Image {
	b := img.Bounds()
	if b.Dx() <= edge && b.Dy() <= edge {
		return img
	}
	return imaging.Fit(img, edge, edge, imaging.Lanczos)
}
