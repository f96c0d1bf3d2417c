// Package scheduler запускает пакетную генерацию по расписанию.
//
// Scheduler раз в TickInterval проверяет, наступило ли время next_due,
// и если да, синхронно выполняет Job (один полный run), после чего
// вычисляет следующее время. Run'ы не перекрываются: сроки, пропущенные
// во время долгого run'а, не догоняются.
//
// Структура:
//   - scheduler.go: цикл Scheduler (Run, Tick)
//   - cron.go:      разбор cron-выражений и вычисление следующего времени
//
// Использование:
//
//	sched, err := scheduler.New(scheduler.Config{
//	    CronExpr: "0 3 * * *",
//	    Timezone: "Asia/Tokyo",
//	    Job:      runBatch,
//	    Logger:   logger,
//	})
//	if err != nil {
//	    return err
//	}
//	return sched.Run(ctx)
//
// Ошибка Job логируется и не останавливает расписание.
package scheduler
