package repository

import (
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

var indexes = []query.Index{
	{Keys: []string{"id"}, Unique: true},
	{Keys: []string{"auctionId", "seq"}},
	{Keys: []string{"account", "-seq"}},
	{Keys: []string{"type", "-seq"}},
}

func makeFindQuery(optFns ...auction.FindEventOptions) (bson.M, error) {
	opts, err := auction.GetFindEventOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.AuctionId != nil {
		qry["auctionId"] = *opts.AuctionId
	}

	if opts.Account != nil {
		qry["account"] = *opts.Account
	}

	if len(opts.Types) > 1 {
		qry["type"] = bson.M{"$in": opts.Types}
	} else if len(opts.Types) > 0 {
		qry["type"] = opts.Types[0]
	}

	return qry, nil
}

func makeSort(dir int) string {
	if dir < 0 {
		return "-seq"
	}
	return "seq"
}

type eventRepo struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) auction.EventRepo {
	return &eventRepo{q: q}
}

// EnsureIndexes is called once at startup
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	if err := q.EnsureIndexes(c, domain.TableAuctionEvents, indexes...); err != nil {
		c.WithField("err", err).Error("q.EnsureIndexes failed")
		return err
	}
	return nil
}

// Insert is idempotent on the event id.
func (r *eventRepo) Insert(c ctx.Ctx, ev *auction.Event) error {
	err := r.q.Insert(c, domain.TableAuctionEvents, ev)
	if err == query.ErrDuplicateKey {
		c.WithField("id", ev.Id).Warn("event already stored")
		return nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"event": ev,
			"err":   err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *eventRepo) FindEvents(c ctx.Ctx, optFns ...auction.FindEventOptions) ([]auction.Event, error) {
	opts, err := auction.GetFindEventOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetFindEventOptions failed")
		return nil, err
	}

	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	offset := 0
	limit := 0

	if opts.Offset != nil {
		offset = *opts.Offset
	}

	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []auction.Event{}
	if err := r.q.Search(c, domain.TableAuctionEvents, offset, limit, makeSort(opts.SortDir), qry, &res); err != nil {
		c.WithField("err", err).WithField("query", qry).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (r *eventRepo) CountEvents(c ctx.Ctx, optFns ...auction.FindEventOptions) (int, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	cnt, err := r.q.Count(c, domain.TableAuctionEvents, qry)
	if err != nil {
		c.WithField("err", err).WithField("query", qry).Error("q.Count failed")
		return 0, err
	}

	return cnt, nil
}
