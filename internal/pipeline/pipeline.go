package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shaiso/Kannon/internal/dataset"
	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/sink"
	"github.com/shaiso/Kannon/internal/telemetry"
	"github.com/shaiso/Kannon/internal/visual"
)

// Loader: process_data.
type Loader interface {
	Load(ctx context.Context, ref string) (*dataset.Data, error)
}

// Checker: check_data_quality.
type Checker interface {
	Check(data *dataset.Data) (*dataset.Data, error)
}

// Generator: generate_visual_story.
type Generator interface {
	Generate(data *dataset.Data, style domain.Style) (*visual.Story, error)
}

// Stylist: apply_japanese_aesthetics, меняет story на месте.
type Stylist interface {
	Apply(story *visual.Story, style domain.Style) error
}

// Sink сохраняет артефакт и возвращает путь.
type Sink interface {
	Persist(artifact sink.Artifact, outputDir, taskName string) (string, error)
}

// Body: тело задачи, которое исполняют стратегии и воркеры.
type Body interface {
	Produce(ctx context.Context, task domain.Task) (sink.Artifact, error)
	Persist(artifact sink.Artifact, task domain.Task) (string, error)
}

// Config: конфигурация Pipeline.
type Config struct {
	// Style: художественный стиль для всех задач run'а.
	Style domain.Style

	// OutputDir: каталог для артефактов.
	OutputDir string

	// Коллабораторы (опционально; nil заменяется реализацией по умолчанию)
	Loader    Loader
	Checker   Checker
	Generator Generator
	Stylist   Stylist
	Sink      Sink

	Logger *slog.Logger
}

// Pipeline реализует Body поверх коллабораторов.
type Pipeline struct {
	style     domain.Style
	outputDir string

	loader    Loader
	checker   Checker
	generator Generator
	stylist   Stylist
	sink      Sink
}

// New создаёт Pipeline.
func New(cfg Config) (*Pipeline, error) {
	style, err := domain.ParseStyle(string(cfg.Style))
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		style:     style,
		outputDir: cfg.OutputDir,
		loader:    cfg.Loader,
		checker:   cfg.Checker,
		generator: cfg.Generator,
		stylist:   cfg.Stylist,
		sink:      cfg.Sink,
	}

	if p.loader == nil {
		p.loader = dataset.NewLoader()
	}
	if p.checker == nil {
		p.checker = dataset.NewChecker()
	}
	if p.generator == nil {
		p.generator = visual.NewGenerator()
	}
	if p.stylist == nil {
		p.stylist = visual.NewStylist(nil)
	}
	if p.sink == nil {
		p.sink = sink.New(logger)
	}

	return p, nil
}

// Default создаёт Pipeline со всеми коллабораторами по умолчанию.
func Default(outputDir string, style domain.Style, logger *slog.Logger) (*Pipeline, error) {
	return New(Config{Style: style, OutputDir: outputDir, Logger: logger})
}

// Produce: load → check → generate → style.
func (p *Pipeline) Produce(ctx context.Context, task domain.Task) (sink.Artifact, error) {
	data, err := p.loader.Load(ctx, task.Dataset)
	if err != nil {
		return nil, classify(ErrDataLoad, fmt.Errorf("load %s: %w", task.Dataset, err))
	}

	data, err = p.checker.Check(data)
	if err != nil {
		return nil, classify(ErrDataQuality, err)
	}
	telemetry.FromContext(ctx).Debug("dataset checked", "dataset", task.Dataset, "records", data.Len())

	story, err := p.generator.Generate(data, p.style)
	if err != nil {
		return nil, classify(ErrGeneration, err)
	}

	if err := p.stylist.Apply(story, p.style); err != nil {
		return nil, classify(ErrGeneration, fmt.Errorf("apply %s: %w", p.style, err))
	}

	return story, nil
}

// Persist сохраняет артефакт задачи.
func (p *Pipeline) Persist(artifact sink.Artifact, task domain.Task) (string, error) {
	path, err := p.sink.Persist(artifact, p.outputDir, task.Name)
	if err != nil {
		return "", classify(ErrIOFailure, err)
	}
	return path, nil
}

// Execute выполняет всё тело задачи.
func (p *Pipeline) Execute(ctx context.Context, task domain.Task) (string, error) {
	return Execute(ctx, p, task)
}

// Execute выполняет Produce и Persist для любого Body.
func Execute(ctx context.Context, body Body, task domain.Task) (string, error) {
	artifact, err := body.Produce(ctx, task)
	if err != nil {
		return "", err
	}
	return body.Persist(artifact, task)
}

// classify гарантирует, что err относится к категории kind.
func classify(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
