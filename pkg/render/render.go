// Package render draws feature summaries as an image: one coloured
// rectangle per cell with a stroke per histogram bin pointing the way
// the cell moves.
package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tauraamui/mvextract/pkg/features"
	"github.com/tauraamui/xerror"
	"golang.org/x/image/math/fixed"
)

const (
	padding       = 20
	captionHeight = 30
	strokeWidth   = 2
)

var background = colorful.Color{R: 0.1, G: 0.1, B: 0.1}

// CellColour maps a normalised magnitude and variance onto red and
// green over a fixed blue.
func CellColour(magnitude, variance float64) colorful.Color {
	return colorful.Color{
		R: math.Floor(clamp(magnitude)*250) / 255,
		G: math.Floor(clamp(variance)*250) / 255,
		B: 150.0 / 255,
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Summary renders s onto a width x height canvas captioned with caption.
func Summary(s features.Summary, width, height int, caption string) (*image.RGBA, error) {
	if width <= 2*padding || height <= 2*padding+captionHeight {
		return nil, xerror.Errorf("canvas %dx%d is too small to render onto", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	xCells := len(s.AvgHist)
	if xCells > 0 && len(s.AvgHist[0]) > 0 {
		drawCells(img, s, width-2*padding, height-2*padding-captionHeight)
	}

	if len(caption) > 0 {
		if err := drawText(img, padding, height-captionHeight/2, caption); err != nil {
			return nil, xerror.Errorf("unable to draw caption: %w", err)
		}
	}
	return img, nil
}

func drawCells(img *image.RGBA, s features.Summary, areaW, areaH int) {
	xCells, yCells := len(s.AvgHist), len(s.AvgHist[0])
	cw, ch := float64(areaW)/float64(xCells), float64(areaH)/float64(yCells)

	var maxSum float64
	for i := range s.AvgHist {
		for j := range s.AvgHist[i] {
			if sum := total(s.AvgHist[i][j]); sum > maxSum {
				maxSum = sum
			}
		}
	}

	r := raster.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	painter := raster.NewRGBAPainter(img)
	painter.SetColor(colorful.Color{R: 1, G: 1, B: 1})

	for i := 0; i < xCells; i++ {
		for j := 0; j < yCells; j++ {
			x0 := padding + int(float64(i)*cw)
			y0 := padding + int(float64(j)*ch)
			x1 := padding + int(float64(i+1)*cw)
			y1 := padding + int(float64(j+1)*ch)
			colour := CellColour(cellValue(s.AvgMagnitude, i, j), cellValue(s.Variance, i, j)).Clamped()
			// one pixel gutter between cells
			draw.Draw(img, image.Rect(x0, y0, x1-1, y1-1), image.NewUniform(colour), image.Point{}, draw.Src)

			if maxSum == 0 {
				continue
			}
			radius := math.Min(cw, ch) / 2
			cx, cy := float64(x0)+cw/2, float64(y0)+ch/2
			for b, weight := range s.AvgHist[i][j] {
				if weight <= 0 {
					continue
				}
				θ := binAngle(s.Edges, len(s.AvgHist[i][j]), b)
				length := radius * weight / maxSum
				stroke(r, cx, cy, cx+length*math.Sin(θ), cy+length*math.Cos(θ))
			}
		}
	}
	r.Rasterize(painter)
}

func cellValue(values [][]float64, i, j int) float64 {
	if i < len(values) && j < len(values[i]) {
		return values[i][j]
	}
	return 0
}

func total(hist []float64) float64 {
	var sum float64
	for _, h := range hist {
		sum += h
	}
	return sum
}

// binAngle is the centre of bin b, orientations follow atan2(x, y) so a
// stroke goes out along (sin θ, cos θ).
func binAngle(edges []float64, bins, b int) float64 {
	if len(edges) == bins+1 {
		return (edges[b] + edges[b+1]) / 2
	}
	width := 2 * math.Pi / float64(bins)
	return -math.Pi + (float64(b)+0.5)*width
}

func stroke(r *raster.Rasterizer, x0, y0, x1, y1 float64) {
	var path raster.Path
	path.Start(point(x0, y0))
	path.Add1(point(x1, y1))
	raster.Stroke(r, path, fixed.I(strokeWidth), nil, nil)
}

func point(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}
