// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/ui/styles"
)

// Default thumbnail bounds in terminal cells.
const (
	ThumbnailCols = 24
	ThumbnailRows = 8
)

// halfBlock paints the top pixel as foreground and the bottom one as background.
const halfBlock = "▀"

// Thumbnail renders a preview as half-block cells within cols x rows. Previews
// that are released or cannot be decoded render as a plain label.
func Thumbnail(theme *styles.Theme, p *attachment.Preview, cols, rows int) string {
	if p == nil {
		return ""
	}
	img, err := p.Image()
	if err != nil {
		return ImageLabel(theme, p.Name())
	}
	return RenderImage(theme, img, cols, rows)
}

// ImageLabel renders the textual stand-in for an image.
func ImageLabel(theme *styles.Theme, name string) string {
	if name == "" {
		return theme.ImageLabel.Render("[image]")
	}
	return theme.ImageLabel.Render("[image] " + name)
}

// RenderImage scales img into at most cols x rows cells, keeping the
// aspect ratio. Each cell covers two vertically stacked pixels.
func RenderImage(theme *styles.Theme, img image.Image, cols, rows int) string {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || cols <= 0 || rows <= 0 {
		return ""
	}

	scale := float64(cols) / float64(w)
	if s := float64(rows*2) / float64(h); s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	outW := max(1, int(float64(w)*scale))
	outH := max(2, int(float64(h)*scale))
	if outH%2 == 1 {
		outH++
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	sample := func(x, y int) lipgloss.Color {
		c := dst.RGBAAt(x, y)
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	}

	cell := theme.Renderer().NewStyle()
	lines := make([]string, 0, outH/2)
	for y := 0; y < outH; y += 2 {
		var line strings.Builder
		for x := 0; x < outW; x++ {
			line.WriteString(cell.
				Foreground(sample(x, y)).
				Background(sample(x, y+1)).
				Render(halfBlock))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
