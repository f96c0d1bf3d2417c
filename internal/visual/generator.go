package visual

import (
	"fmt"

	"github.com/shaiso/Kannon/internal/dataset"
	"github.com/shaiso/Kannon/internal/domain"
)

// yHeadroom: запас по оси Y над самой длинной задачей, в днях.
const yHeadroom = 10

// Generator строит visual story из проверенных данных.
type Generator struct{}

// NewGenerator создаёт Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate строит раскладку и рисует её нейтральной палитрой.
// Чистая функция входных данных.
func (g *Generator) Generate(data *dataset.Data, style domain.Style) (*Story, error) {
	if data == nil || data.Len() == 0 {
		return nil, fmt.Errorf("%w: no records to draw", ErrGeneration)
	}

	stones := make([]Stone, 0, data.Len())
	for i, r := range data.Records {
		stones = append(stones, Stone{
			X:      i,
			Height: r.Duration,
			Label:  r.Task,
			Status: r.Status,
		})
	}

	story := &Story{
		Title:     Title,
		Stones:    stones,
		YMax:      data.MaxDuration() + yHeadroom,
		Requested: style,
		Palette:   NeutralPalette,
	}
	story.Render()

	return story, nil
}

// Stylist применяет японскую эстетику к готовой story.
type Stylist struct {
	registry *Registry
}

// NewStylist создаёт Stylist. Если registry nil, используется DefaultRegistry().
func NewStylist(registry *Registry) *Stylist {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Stylist{registry: registry}
}

// Apply меняет story на месте: палитра, сетка, рамка, затем перерисовка.
func (s *Stylist) Apply(story *Story, style domain.Style) error {
	if story == nil {
		return fmt.Errorf("%w: nil story", ErrGeneration)
	}

	aesthetic, err := s.registry.Get(style)
	if err != nil {
		return err
	}

	story.Palette = aesthetic.Palette
	story.Grid = aesthetic.Grid
	story.Frame = aesthetic.Frame
	story.Applied = style
	story.Render()

	return nil
}
