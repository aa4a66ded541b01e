package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/base/metrics"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/service/cache"
)

const (
	defaultQueueLength     = 4096
	defaultScheduleTimeout = 10 * time.Millisecond
)

type EventUseCaseCfg struct {
	Repo auction.EventRepo
	// HistoryCache holds per auction history, optional
	HistoryCache cache.Service
	// QueueLength and ScheduleTimeout fall back to defaults when zero
	QueueLength     int
	ScheduleTimeout time.Duration
}

type impl struct {
	repo            auction.EventRepo
	history         cache.Service
	met             metrics.Service
	scheduleTimeout time.Duration

	// a single worker keeps inserts in publish order
	workerPool *goroutines.Pool
}

func New(cfg *EventUseCaseCfg) auction.EventUsecase {
	queueLength := cfg.QueueLength
	if queueLength <= 0 {
		queueLength = defaultQueueLength
	}
	timeout := cfg.ScheduleTimeout
	if timeout <= 0 {
		timeout = defaultScheduleTimeout
	}
	return &impl{
		repo:            cfg.Repo,
		history:         cfg.HistoryCache,
		met:             metrics.New("event"),
		scheduleTimeout: timeout,
		workerPool:      goroutines.NewPool(1, goroutines.WithTaskQueueLength(queueLength), goroutines.WithPreAllocWorkers(1)),
	}
}

// Publish queues events for storage and returns without waiting for mongo. When
// the queue stays full for longer than the schedule timeout the event is dropped.
func (im *impl) Publish(c ctx.Ctx, events ...*auction.Event) {
	// the request context may be gone before the worker runs
	bg := ctx.Ctx{Context: context.Background(), Logger: c.Logger}

	for _, ev := range events {
		e := *ev
		if len(e.Id) == 0 {
			e.Id = uuid.NewString()
		}

		if err := im.workerPool.ScheduleWithTimeout(im.scheduleTimeout, func() { im.store(bg, &e) }); err != nil {
			c.WithFields(log.Fields{"err": err, "id": e.Id, "seq": e.Seq, "type": e.Type}).Error("workerPool.ScheduleWithTimeout failed, event dropped")
			im.met.BumpSum("publish.err", 1, "type", string(e.Type))
		}
	}
}

func (im *impl) store(c ctx.Ctx, e *auction.Event) {
	defer im.met.BumpTime("store.time").End()

	if err := im.repo.Insert(c, e); err != nil {
		c.WithFields(log.Fields{"err": err, "id": e.Id, "seq": e.Seq}).Error("repo.Insert failed")
		im.met.BumpSum("store.err", 1, "type", string(e.Type))
		return
	}
	im.met.BumpSum("store.count", 1, "type", string(e.Type))

	if e.AuctionId != nil && im.history != nil {
		if err := im.history.Del(c, historyKey(*e.AuctionId)); err != nil {
			c.WithFields(log.Fields{"err": err, "auctionId": *e.AuctionId}).Warn("history.Del failed")
		}
	}
}

func historyKey(auctionId uint64) string {
	return strconv.FormatUint(auctionId, 10)
}

func (im *impl) AuctionHistory(c ctx.Ctx, auctionId uint64) ([]auction.Event, error) {
	getter := func() (interface{}, error) {
		return im.repo.FindEvents(c, auction.EventWithAuctionId(auctionId))
	}

	if im.history == nil {
		res, err := getter()
		if err != nil {
			return nil, err
		}
		return res.([]auction.Event), nil
	}

	res := []auction.Event{}
	if err := im.history.GetByFunc(c, historyKey(auctionId), &res, getter); err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("history.GetByFunc failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) AccountHistory(c ctx.Ctx, account domain.Address, offset, limit int) ([]auction.Event, int, error) {
	opts := []auction.FindEventOptions{
		auction.EventWithAccount(account),
		auction.EventWithNewestFirst(),
	}

	total, err := im.repo.CountEvents(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "account": account}).Error("repo.CountEvents failed")
		return nil, 0, err
	}

	res, err := im.repo.FindEvents(c, append(opts, auction.EventWithPagination(offset, limit))...)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "account": account}).Error("repo.FindEvents failed")
		return nil, 0, err
	}
	return res, total, nil
}

// Close stops the worker, events still queued may be dropped.
func (im *impl) Close() {
	im.workerPool.Release()
}
