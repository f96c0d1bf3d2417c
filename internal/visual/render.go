package visual

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/shaiso/Kannon/internal/dataset"
)

// Поля области графика в пикселях.
const (
	marginLeft   = 40
	marginRight  = 40
	marginTop    = 60
	marginBottom = 70

	pathWidth = 2
	dashLen   = 6
	gapLen    = 4

	minStoneRadius = 5
	maxStoneRadius = 30

	gridLines = 5
)

// Render перерисовывает холст по текущей раскладке, палитре и декору.
//
// Результат детерминирован: одинаковая Story даёт одинаковые пиксели.
func (s *Story) Render() {
	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	plot := image.Rect(marginLeft, marginTop, CanvasWidth-marginRight, CanvasHeight-marginBottom)

	fillRect(img, img.Bounds(), s.Palette.Background)

	if s.Grid {
		s.drawGrid(img, plot)
	}

	n := len(s.Stones)
	radius := stoneRadius(plot.Dx(), n)

	for _, stone := range s.Stones {
		x := s.xPixel(plot, stone.X)
		y := s.yPixel(plot, stone.Height)

		dashedVLine(img, x, plot.Max.Y, y, s.Palette.Path)
		fillCircle(img, x, y, radius, s.Palette.StoneColor(stone.Status))
		drawText(img, x, y-radius-4, stone.Label, s.Palette.Text, true)
	}

	drawText(img, CanvasWidth/2, marginTop/2+5, s.Title, s.Palette.Text, true)
	s.drawLegend(img)

	if s.Frame {
		strokeRect(img, plot, s.Palette.FrameColor)
	}

	s.canvas = img
}

// xPixel отображает номер колонки в диапазон [-1, n+1] по оси X.
func (s *Story) xPixel(plot image.Rectangle, x int) int {
	span := len(s.Stones) + 2
	return plot.Min.X + (x+1)*plot.Dx()/span
}

// yPixel отображает дни в диапазон [0, YMax] по оси Y.
func (s *Story) yPixel(plot image.Rectangle, days int) int {
	if s.YMax <= 0 {
		return plot.Max.Y
	}
	return plot.Max.Y - days*plot.Dy()/s.YMax
}

func (s *Story) drawGrid(img *image.RGBA, plot image.Rectangle) {
	for i := 1; i < gridLines; i++ {
		y := plot.Max.Y - i*plot.Dy()/gridLines
		dashedHLine(img, plot.Min.X, plot.Max.X, y, s.Palette.Grid)
	}
}

func (s *Story) drawLegend(img *image.RGBA) {
	entries := []dataset.Status{dataset.StatusCompleted, dataset.StatusInProgress, dataset.StatusPending}

	x := marginLeft
	y := CanvasHeight - marginBottom/2
	for _, status := range entries {
		fillCircle(img, x+6, y, 6, s.Palette.StoneColor(status))
		drawText(img, x+18, y+4, string(status), s.Palette.Text, false)
		x += 130
	}
}

func stoneRadius(plotWidth, n int) int {
	r := plotWidth / (2 * (n + 2))
	return min(max(r, minStoneRadius), maxStoneRadius)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// dashedVLine рисует пунктир от y0 вверх до y1 (y1 <= y0).
func dashedVLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y > y1; y -= dashLen + gapLen {
		top := max(y-dashLen, y1)
		fillRect(img, image.Rect(x-pathWidth/2, top, x+pathWidth-pathWidth/2, y), c)
	}
}

func dashedHLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x < x1; x += dashLen + gapLen {
		right := min(x+dashLen, x1)
		fillRect(img, image.Rect(x, y, right, y+1), c)
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(cx+dx, cy+dy, c)
			}
		}
	}
}

// drawText пишет строку базовым шрифтом 7x13; y задаёт базовую линию.
func drawText(img *image.RGBA, x, y int, text string, c color.RGBA, centered bool) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	if centered {
		x -= d.MeasureString(text).Round() / 2
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
