package visual

import (
	"image/color"

	"github.com/shaiso/Kannon/internal/dataset"
)

// Palette: набор цветов для отрисовки.
type Palette struct {
	Background color.RGBA
	Path       color.RGBA
	Text       color.RGBA
	Grid       color.RGBA
	FrameColor color.RGBA

	Completed  color.RGBA
	InProgress color.RGBA
	Pending    color.RGBA
}

// StoneColor возвращает цвет камня для статуса.
func (p Palette) StoneColor(status dataset.Status) color.RGBA {
	switch status {
	case dataset.StatusCompleted:
		return p.Completed
	case dataset.StatusInProgress:
		return p.InProgress
	default:
		return p.Pending
	}
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// NeutralPalette используется при генерации, до применения стиля.
var NeutralPalette = Palette{
	Background: rgb(0xff, 0xff, 0xff),
	Path:       rgb(0x80, 0x80, 0x80),
	Text:       rgb(0x00, 0x00, 0x00),
	Grid:       rgb(0xd3, 0xd3, 0xd3),
	FrameColor: rgb(0x80, 0x80, 0x80),
	Completed:  rgb(0x00, 0x00, 0x00),
	InProgress: rgb(0x00, 0x00, 0xff),
	Pending:    rgb(0xff, 0x00, 0x00),
}
