package visual

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shaiso/Kannon/internal/domain"
)

// Aesthetic: описание японского стиля.
type Aesthetic struct {
	Style   domain.Style
	Palette Palette

	// Grid: светло-серая пунктирная сетка.
	Grid bool

	// Frame: серая рамка по краю холста.
	Frame bool
}

// Registry: реестр стилей. Потокобезопасен.
type Registry struct {
	mu         sync.RWMutex
	aesthetics map[domain.Style]Aesthetic
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		aesthetics: make(map[domain.Style]Aesthetic),
	}
}

// DefaultRegistry создаёт реестр со стилями ukiyo-e, sumi-e, minimalist.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(Aesthetic{
		Style: domain.StyleUkiyoE,
		Palette: Palette{
			Background: rgb(0xf4, 0xec, 0xd8), // washi
			Path:       rgb(0x8c, 0x7b, 0x6b),
			Text:       rgb(0x26, 0x3a, 0x5c), // ai-iro
			Grid:       rgb(0xd9, 0xcf, 0xba),
			FrameColor: rgb(0x8c, 0x7b, 0x6b),
			Completed:  rgb(0x2b, 0x2b, 0x2b),
			InProgress: rgb(0x16, 0x5e, 0x83),
			Pending:    rgb(0xd0, 0x4a, 0x2f), // shu
		},
		Grid:  true,
		Frame: true,
	})

	r.Register(Aesthetic{
		Style: domain.StyleSumiE,
		Palette: Palette{
			Background: rgb(0xfa, 0xf8, 0xf3),
			Path:       rgb(0x70, 0x70, 0x70),
			Text:       rgb(0x1a, 0x1a, 0x1a),
			Grid:       rgb(0xe0, 0xe0, 0xe0),
			FrameColor: rgb(0x80, 0x80, 0x80),
			Completed:  rgb(0x1a, 0x1a, 0x1a),
			InProgress: rgb(0x5a, 0x5a, 0x5a),
			Pending:    rgb(0x9a, 0x9a, 0x9a),
		},
		Grid:  true,
		Frame: true,
	})

	r.Register(Aesthetic{
		Style: domain.StyleMinimalist,
		Palette: Palette{
			Background: rgb(0xff, 0xff, 0xff),
			Path:       rgb(0xc0, 0xc0, 0xc0),
			Text:       rgb(0x33, 0x33, 0x33),
			Grid:       rgb(0xee, 0xee, 0xee),
			FrameColor: rgb(0xc0, 0xc0, 0xc0),
			Completed:  rgb(0x33, 0x33, 0x33),
			InProgress: rgb(0x77, 0x77, 0x77),
			Pending:    rgb(0xbb, 0xbb, 0xbb),
		},
		Grid:  true,
		Frame: false,
	})

	return r
}

// Register регистрирует стиль. Существующий стиль перезаписывается.
func (r *Registry) Register(a Aesthetic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aesthetics[a.Style] = a
}

// Get возвращает стиль по имени.
func (r *Registry) Get(style domain.Style) (Aesthetic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.aesthetics[style]
	if !ok {
		return Aesthetic{}, fmt.Errorf("%w: %s", ErrStyleNotFound, style)
	}
	return a, nil
}

// Has проверяет, зарегистрирован ли стиль.
func (r *Registry) Has(style domain.Style) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.aesthetics[style]
	return ok
}

// Styles возвращает отсортированный список зарегистрированных стилей.
func (r *Registry) Styles() []domain.Style {
	r.mu.RLock()
	defer r.mu.RUnlock()

	styles := make([]domain.Style, 0, len(r.aesthetics))
	for s := range r.aesthetics {
		styles = append(styles, s)
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i] < styles[j] })
	return styles
}
