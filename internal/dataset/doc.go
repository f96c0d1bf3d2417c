// Package dataset загружает и проверяет входные данные для visual story.
//
// Формат входа: CSV с заголовком task,start_date,end_date,status
// (порядок колонок произвольный, регистр заголовков не важен).
//
//	task,start_date,end_date,status
//	Rake gravel,2024-01-01,2024-01-15,Completed
//	Place stones,2024-01-10,2024-02-01,In Progress
//
// Load читает файл и парсит даты (ErrDataLoad при ошибке),
// Check нормализует записи и проверяет их качество (ErrDataQuality).
package dataset
