// Package docimage prepares the image payload forwarded to the AI provider.
// PDF uploads get their first page rasterized; when that fails or produces a
// uselessly small image, a synthesized placeholder page is substituted so the
// pipeline always has some image to forward. Degraded output is tagged, never
// guessed at by inspecting pixels.
package docimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"time"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

const (
	// minRasterDim rejects rasterized pages smaller than this on either side.
	minRasterDim = 100

	placeholderWidth  = 800
	placeholderHeight = 1100
	jpegQuality       = 85
)

// Prepare produces the tagged image payload for an upload. Image uploads pass
// through untouched; PDFs are rasterized with the placeholder fallback.
func Prepare(filename string, data []byte, media string, now time.Time) domain.RenderedDocument {
	if media != "application/pdf" {
		return domain.RenderedDocument{Kind: domain.RenderOriginal, Data: data, Media: media}
	}

	rendered, err := RasterizeFirstPage(data)
	if err != nil {
		return domain.RenderedDocument{
			Kind:  domain.RenderPlaceholder,
			Data:  Placeholder(filename, now),
			Media: "image/jpeg",
		}
	}
	return domain.RenderedDocument{Kind: domain.RenderRasterized, Data: rendered, Media: "image/jpeg"}
}

// RasterizeFirstPage renders the first page of a PDF into a JPEG.
func RasterizeFirstPage(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize first page: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() < minRasterDim || bounds.Dy() < minRasterDim {
		return nil, fmt.Errorf("rasterized page too small: %dx%d", bounds.Dx(), bounds.Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode rasterized page: %w", err)
	}
	return buf.Bytes(), nil
}

// Placeholder synthesizes a blank page carrying the filename and timestamp.
// It cannot fail; the pipeline relies on that.
func Placeholder(filename string, now time.Time) []byte {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawLine(img, 40, 60, "Documento PDF")
	drawLine(img, 40, 90, filename)
	drawLine(img, 40, 120, now.Format(time.RFC3339))
	drawLine(img, 40, 160, "(pre-visualizacao indisponivel)")

	var buf bytes.Buffer
	// Encoding an in-memory RGBA image cannot fail in practice.
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	return buf.Bytes()
}

func drawLine(img draw.Image, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
