package worker

import (
	"context"
	"errors"

	"github.com/shaiso/Kannon/internal/domain"
)

// multiRecorder рассылает события нескольким Recorder'ам.
type multiRecorder []Recorder

// Recorders объединяет Recorder'ы; nil пропускаются.
// Возвращает nil, если не осталось ни одного.
func Recorders(recs ...Recorder) Recorder {
	var m multiRecorder
	for _, r := range recs {
		if r != nil {
			m = append(m, r)
		}
	}

	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	default:
		return m
	}
}

func (m multiRecorder) TaskStarted(ctx context.Context, a *domain.TaskAttempt) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.TaskStarted(ctx, a))
	}
	return errors.Join(errs...)
}

func (m multiRecorder) TaskFinished(ctx context.Context, a *domain.TaskAttempt) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.TaskFinished(ctx, a))
	}
	return errors.Join(errs...)
}
