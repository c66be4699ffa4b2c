package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pribylovaa/go-news-aggregator/pkg/log"
)

var (
	sweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stories_sweep_runs_total",
		Help: "Total number of expiry sweep cycles.",
	})

	storiesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stories_expired_total",
		Help: "Total number of stories marked expired by the sweeper.",
	})

	mediaRemoveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stories_media_remove_errors_total",
		Help: "Total number of failed best-effort media removals.",
	})
)

// StartSweeper запускает фоновый цикл обработки истёкших историй: первый
// проход сразу, далее по тикеру с интервалом cfg.Sweep.Interval. Блокирует
// вызывающую горутину до отмены контекста.
//
// Проходы никогда не перекрываются: цикл однопоточный, следующий тик
// обрабатывается только после завершения предыдущего прохода.
func (s *Service) StartSweeper(ctx context.Context) {
	const op = "service/sweeper/StartSweeper"

	lg := log.From(ctx).With("op", op)
	lg.Info("sweeper started", "interval", s.cfg.Sweep.Interval.String())

	s.sweepOnce(ctx)

	ticker := time.NewTicker(s.cfg.Sweep.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

// sweepOnce — один проход свипера: выбирает истёкшие, но ещё не обработанные
// истории, для каждой best-effort удаляет медиа и помечает запись флагом
// is_expired.
//
// Порядок фиксирован: сначала медиа, затем флаг. Если удаление медиа не
// удалось, флаг всё равно выставляется — повторных попыток для осиротевшего
// объекта нет, сбой попадает в лог и метрику. Условное обновление в
// хранилище гарантирует, что каждая история помечается ровно один раз,
// даже при конкурирующих экземплярах сервиса.
func (s *Service) sweepOnce(ctx context.Context) {
	const op = "service/sweeper/sweepOnce"

	lg := log.From(ctx).With("op", op)
	sweepRuns.Inc()

	expired, err := s.stories.ListUnsweptExpired(ctx, time.Now().UTC())
	if err != nil {
		lg.Error("list unswept expired failed", "err", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	var marked int
	for i := range expired {
		story := &expired[i]

		if ctx.Err() != nil {
			break
		}

		s.removeMediaBestEffort(ctx, story)

		ok, err := s.stories.MarkExpired(ctx, story.ID)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				lg.Error("mark expired failed", "story_id", story.ID, "err", err)
			}

			continue
		}

		// ok=false: историю успел пометить конкурирующий проход.
		if ok {
			marked++
			storiesExpired.Inc()
		}
	}

	lg.Info("sweep pass finished", "candidates", len(expired), "marked", marked)
}
