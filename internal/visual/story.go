package visual

import (
	"image"

	"github.com/shaiso/Kannon/internal/dataset"
	"github.com/shaiso/Kannon/internal/domain"
)

// Размер холста: 10x6 дюймов при 100 dpi.
const (
	CanvasWidth  = 1000
	CanvasHeight = 600

	// Title: заголовок визуализации.
	Title = "Zen Garden Project Timeline"
)

// Stone: камень на вершине дорожки одной задачи.
type Stone struct {
	// X: номер колонки (индекс записи).
	X int

	// Height: длительность задачи в днях.
	Height int

	Label  string
	Status dataset.Status
}

// Story: сгенерированный артефакт.
//
// Принадлежит задаче, которая его построила, до передачи в Sink.
type Story struct {
	Title  string
	Stones []Stone

	// YMax: верхняя граница оси Y в днях.
	YMax int

	// Requested: стиль, запрошенный при генерации.
	Requested domain.Style

	// Applied: стиль, применённый Stylist. Пустой до стилизации.
	Applied domain.Style

	Palette Palette
	Grid    bool
	Frame   bool

	canvas *image.RGBA
}

// Image возвращает отрисованный холст или nil, если story не отрисована.
func (s *Story) Image() image.Image {
	if s == nil || s.canvas == nil {
		return nil
	}
	return s.canvas
}

// Bounds возвращает размеры холста.
func (s *Story) Bounds() image.Rectangle {
	if s.canvas == nil {
		return image.Rectangle{}
	}
	return s.canvas.Bounds()
}
