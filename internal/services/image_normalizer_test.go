package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyPNG builds a PNG of random pixels. Noise defeats PNG's filters, so
// even modest dimensions produce files well past the pass-through bound.
func noisyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeSmallImagePassesThrough(t *testing.T) {
	n := NewImageNormalizer()
	data := noisyPNG(t, 50, 50)
	require.LessOrEqual(t, len(data), PassThroughBytes)

	out := n.Normalize(data, "image/png")
	assert.False(t, out.Transformed)
	assert.Equal(t, data, out.Data)
	assert.Equal(t, "image/png", out.MIME)
}

func TestNormalizeLargeImageCompresses(t *testing.T) {
	n := NewImageNormalizer()
	data := noisyPNG(t, 900, 700)
	require.Greater(t, len(data), PassThroughBytes)

	out := n.Normalize(data, "image/png")
	assert.True(t, out.Transformed)
	assert.Equal(t, "image/jpeg", out.MIME)
	assert.Less(t, len(out.Data), len(data))

	img, format, err := image.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	b := img.Bounds()
	assert.LessOrEqual(t, b.Dx(), 1024)
	assert.LessOrEqual(t, b.Dy(), 1024)
}

func TestNormalizeGarbageReturnsOriginal(t *testing.T) {
	n := NewImageNormalizer()
	data := bytes.Repeat([]byte("definitely not an image "), 20000)
	require.Greater(t, len(data), PassThroughBytes)

	out := n.Normalize(data, "application/octet-stream")
	assert.False(t, out.Transformed, "undecodable input falls back to the original bytes")
	assert.Equal(t, data, out.Data)
	assert.Equal(t, "application/octet-stream", out.MIME)
}

func TestReduceToFitBoundsTheLongEdge(t *testing.T) {
	n := NewImageNormalizer()
	data := noisyPNG(t, 900, 700)

	out := n.ReduceToFit(data, InlineCeilingChars)
	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	b := img.Bounds()
	assert.LessOrEqual(t, b.Dx(), InlineLongEdge)
	assert.LessOrEqual(t, b.Dy(), InlineLongEdge)
}

func TestReduceToFitGarbageReturnsInput(t *testing.T) {
	n := NewImageNormalizer()
	data := []byte("not an image")
	assert.Equal(t, data, n.ReduceToFit(data, InlineCeilingChars))
}

func TestInlineStoreProducesDataURI(t *testing.T) {
	store := NewInlineImageStore(NewImageNormalizer())
	data := []byte("tiny image bytes")

	ref, err := store.StoreImage(context.Background(), data, "image/jpeg", "photo.jpg")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "data:image/jpeg;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestInlineStoreShrinksOversizedImages(t *testing.T) {
	store := NewInlineImageStore(NewImageNormalizer())
	// Large enough that its base64 form clears the record ceiling.
	data := noisyPNG(t, 1600, 1200)
	require.Greater(t, base64.StdEncoding.EncodedLen(len(data)), InlineCeilingChars)

	ref, err := store.StoreImage(context.Background(), data, "image/png", "big.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "data:image/jpeg;base64,"), "shrink pass re-encodes as JPEG")
	assert.LessOrEqual(t, len(ref), InlineCeilingChars+len("data:image/jpeg;base64,"))
}
