// Package sink сохраняет visual stories на диск.
//
// Путь результата детерминирован: {outputDir}/{taskName}_visual_story.png.
// Запись идёт через временный файл и rename, поэтому повторное сохранение
// той же задачи перезаписывает файл целиком по тому же пути.
package sink

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSuffix добавляется к имени задачи.
const FileSuffix = "_visual_story.png"

// ErrIOFailure: не удалось создать каталог или записать файл.
var ErrIOFailure = errors.New("io failure")

// Artifact: то, что умеет отдать изображение для сохранения.
type Artifact interface {
	Image() image.Image
}

// FileSink пишет PNG-файлы.
type FileSink struct {
	logger *slog.Logger
}

// New создаёт FileSink. Если logger nil, используется slog.Default().
func New(logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{logger: logger}
}

// PathFor возвращает путь артефакта для задачи.
func PathFor(outputDir, taskName string) string {
	return filepath.Join(outputDir, taskName+FileSuffix)
}

// EnsureDir создаёт каталог вывода. Идемпотентна.
func EnsureDir(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("%w: create output dir: %v", ErrIOFailure, err)
	}
	return nil
}

// Persist сохраняет артефакт и возвращает путь к файлу.
func (s *FileSink) Persist(artifact Artifact, outputDir, taskName string) (string, error) {
	if artifact == nil || artifact.Image() == nil {
		return "", fmt.Errorf("%w: nothing to persist for %s", ErrIOFailure, taskName)
	}

	if err := EnsureDir(outputDir); err != nil {
		return "", err
	}

	path := PathFor(outputDir, taskName)
	if err := writePNG(path, artifact.Image()); err != nil {
		return "", err
	}

	s.logger.Info("saved visual story", "task", taskName, "path", path)
	return path, nil
}

// writePNG кодирует изображение во временный файл в том же каталоге
// и переименовывает его в path.
func writePNG(path string, img image.Image) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kannon-*.png")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrIOFailure, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: encode png: %v", ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %v", ErrIOFailure, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename: %v", ErrIOFailure, err)
	}
	return nil
}
