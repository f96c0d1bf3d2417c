// Package pipeline собирает тело задачи из внешних коллабораторов.
//
// Тело задачи:
//
//	load → check → generate → style → persist
//
// Produce выполняет первые четыре шага и возвращает артефакт,
// Persist сохраняет его через Sink, Execute делает всё вместе.
// Разделение нужно воркеру, когда эксклюзивная область охватывает
// только сохранение (ScopePersist).
//
// Коллабораторы передаются явно через Config; по умолчанию используются
// dataset.Loader, dataset.Checker, visual.Generator, visual.Stylist и sink.FileSink.
//
// # Ошибки
//
// Ошибки коллабораторов всегда оборачиваются в одну из категорий:
// ErrDataLoad, ErrDataQuality, ErrGeneration, ErrIOFailure.
// Восстановления и повторов нет, ошибка уходит вызывающему.
package pipeline
