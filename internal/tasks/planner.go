package tasks

import (
	"context"
	"time"

	"careplus/internal/models"
	"careplus/internal/storage"
	"careplus/internal/ws"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCloseSpec закрывает прошедшие дни в 00:05 каждый день.
const DefaultCloseSpec = "0 5 0 * * *"

// DayCloser деактивирует очереди за дни раньше указанного.
type DayCloser interface {
	CloseDaysBefore(ctx context.Context, day string) ([]storage.DayKey, error)
}

type Notifier interface {
	BroadcastWSMessage(msg ws.WSMessage)
}

// DayCloseJob закрывает очереди прошедших дней. Данные дней не удаляются.
type DayCloseJob struct {
	closer DayCloser
	notify Notifier
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

func NewDayCloseJob(closer DayCloser, notify Notifier, loc *time.Location, log *zap.Logger) *DayCloseJob {
	if loc == nil {
		loc = time.Local
	}
	return &DayCloseJob{closer: closer, notify: notify, loc: loc, now: time.Now, log: log}
}

// WithClock подменяет часы задачи.
func (j *DayCloseJob) WithClock(now func() time.Time) *DayCloseJob {
	j.now = now
	return j
}

// CloseStaleDays закрывает все активные дни до сегодняшнего и оповещает подписчиков.
func (j *DayCloseJob) CloseStaleDays(ctx context.Context) ([]storage.DayKey, error) {
	today := j.now().In(j.loc).Format(models.DayLayout)

	closed, err := j.closer.CloseDaysBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	for _, key := range closed {
		j.notify.BroadcastWSMessage(ws.WSMessage{
			EventType: ws.EventQueueClosed,
			ClinicID:  key.ClinicID,
			Data:      map[string]interface{}{"day": key.Day},
		})
	}
	return closed, nil
}

// Run обёртка для cron.
func (j *DayCloseJob) Run() {
	closed, err := j.CloseStaleDays(context.Background())
	if err != nil {
		j.log.Error("failed to close stale queue days", zap.Error(err))
		return
	}
	if len(closed) > 0 {
		j.log.Info("closed stale queue days", zap.Int("count", len(closed)))
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler(spec string, job *DayCloseJob, log *zap.Logger) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultCloseSpec
	}
	c := cron.New(cron.WithSeconds(), cron.WithLocation(job.loc))

	if _, err := c.AddJob(spec, job); err != nil {
		return nil, err
	}

	c.Start()
	log.Info("cron scheduler started", zap.String("close_spec", spec))
	return c, nil
}
