package pipeline

import (
	"github.com/shaiso/Kannon/internal/dataset"
	"github.com/shaiso/Kannon/internal/sink"
	"github.com/shaiso/Kannon/internal/visual"
)

// Категории ошибок тела задачи.
var (
	ErrDataLoad    = dataset.ErrDataLoad
	ErrDataQuality = dataset.ErrDataQuality
	ErrGeneration  = visual.ErrGeneration
	ErrIOFailure   = sink.ErrIOFailure
)
