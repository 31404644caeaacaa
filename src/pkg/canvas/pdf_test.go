package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestPDFRendersPages(t *testing.T) {
	pdf := NewPDF("Complete Report")
	pdf.AddPage()
	pdf.FillRect(14, 14, 182, 14, Color{R: 37, G: 99, B: 235})
	pdf.Text(105, 24, TextStyle{Size: 12, Bold: true, Color: White, Align: AlignCenter}, "Laporan Rp 1.550.000")
	pdf.AddPage()
	pdf.StrokeRect(14, 14, 50, 50, Color{R: 200, G: 200, B: 200})
	require.NoError(t, pdf.Image("proof-1", tinyJPEG(t), 14, 14, 40, 20))

	assert.Equal(t, 2, pdf.PageCount())

	pdf.SetPage(1)
	pdf.Text(105, 290, TextStyle{Size: 8, Color: Black, Align: AlignCenter}, "Page 1 / 2")

	var out bytes.Buffer
	require.NoError(t, pdf.Output(&out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF")))
}

func TestPDFImageRejectsGarbage(t *testing.T) {
	pdf := NewPDF("Broken")
	pdf.AddPage()

	err := pdf.Image("garbage", []byte("not a jpeg"), 0, 0, 10, 10)
	assert.Error(t, err)

	// document stays usable after a rejected image
	pdf.Text(10, 10, TextStyle{Size: 10, Color: Black}, "still fine")
	var out bytes.Buffer
	require.NoError(t, pdf.Output(&out))
}

func TestTextWidthGrowsWithSize(t *testing.T) {
	pdf := NewPDF("Widths")
	pdf.AddPage()
	small := pdf.TextWidth(TextStyle{Size: 8}, "Surplus")
	large := pdf.TextWidth(TextStyle{Size: 16}, "Surplus")
	assert.Greater(t, small, 0.0)
	assert.InDelta(t, small*2, large, 0.01)
}

func TestPDFAutoPrint(t *testing.T) {
	render := func(autoPrint bool) string {
		pdf := NewPDF("Complete Report")
		pdf.AddPage()
		pdf.Text(14, 20, TextStyle{Size: 10, Color: Black}, "Laporan")
		if autoPrint {
			pdf.AutoPrint()
		}
		var out bytes.Buffer
		require.NoError(t, pdf.Output(&out))
		return out.String()
	}

	assert.Contains(t, render(true), "/JavaScript")
	assert.NotContains(t, render(false), "/JavaScript")
}
