package docimage_test

import (
	"bytes"
	"image/jpeg"
	"testing"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/meuboleto/meuboleto_backend/internal/docimage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholder_ProducesDecodableJPEG(t *testing.T) {
	now := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)

	data := docimage.Placeholder("conta-enel-julho.pdf", now)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 1100, img.Bounds().Dy())
}

func TestPrepare_ImagePassesThroughUntouched(t *testing.T) {
	payload := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x01}, 32)...)

	doc := docimage.Prepare("foto.jpg", payload, "image/jpeg", time.Now())

	assert.Equal(t, domain.RenderOriginal, doc.Kind)
	assert.Equal(t, payload, doc.Data)
	assert.Equal(t, "image/jpeg", doc.Media)
}

func TestPrepare_BrokenPDFFallsBackToPlaceholder(t *testing.T) {
	now := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	broken := []byte("%PDF-1.4 truncated garbage")

	doc := docimage.Prepare("conta.pdf", broken, "application/pdf", now)

	assert.Equal(t, domain.RenderPlaceholder, doc.Kind)
	assert.Equal(t, "image/jpeg", doc.Media)
	_, err := jpeg.Decode(bytes.NewReader(doc.Data))
	require.NoError(t, err)
}

func TestRasterizeFirstPage_RejectsInvalidPDF(t *testing.T) {
	_, err := docimage.RasterizeFirstPage([]byte("not a pdf"))

	assert.Error(t, err)
}
