package auction

import (
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

type EventType string

const (
	EventAuctionCreated  EventType = "auctionCreated"
	EventBidPlaced       EventType = "bidPlaced"
	EventRefundPushed    EventType = "refundPushed"
	EventRefundCredited  EventType = "refundCredited"
	EventRefundWithdrawn EventType = "refundWithdrawn"
	EventAuctionEnded    EventType = "auctionEnded"
	EventAuctionClaimed  EventType = "auctionClaimed"
)

// Event is an observable state change. Amounts are base-10 strings in the
// currency's native unit, Normalized is in the unit of account.
type Event struct {
	Id        string         `json:"id" bson:"id"`
	Seq       uint64         `json:"seq" bson:"seq"`
	Type      EventType      `json:"type" bson:"type"`
	AuctionId *uint64        `json:"auctionId,omitempty" bson:"auctionId,omitempty"`
	Account   domain.Address `json:"account" bson:"account"`
	Asset     *AssetRef      `json:"asset,omitempty" bson:"asset,omitempty"`
	Currency  domain.Address `json:"currency,omitempty" bson:"currency,omitempty"`
	Amount    string         `json:"amount,omitempty" bson:"amount,omitempty"`

	Normalized   string         `json:"normalized,omitempty" bson:"normalized,omitempty"`
	PlatformFee  string         `json:"platformFee,omitempty" bson:"platformFee,omitempty"`
	FeeRecipient domain.Address `json:"feeRecipient,omitempty" bson:"feeRecipient,omitempty"`
	Deadline     *time.Time     `json:"deadline,omitempty" bson:"deadline,omitempty"`

	Time time.Time `json:"time" bson:"time"`
}

type EventPublisher interface {
	// Publish must not block on storage, events are delivered in call order.
	Publish(c ctx.Ctx, events ...*Event)
}

type findEventOptions struct {
	Offset    *int
	Limit     *int
	AuctionId *uint64
	Account   *domain.Address
	Types     []EventType
	SortDir   int
}

type FindEventOptions func(*findEventOptions) error

func GetFindEventOptions(opts ...FindEventOptions) (*findEventOptions, error) {
	res := &findEventOptions{SortDir: 1}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func EventWithPagination(offset, limit int) FindEventOptions {
	return func(opts *findEventOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

func EventWithAuctionId(id uint64) FindEventOptions {
	return func(opts *findEventOptions) error {
		opts.AuctionId = &id
		return nil
	}
}

func EventWithAccount(account domain.Address) FindEventOptions {
	return func(opts *findEventOptions) error {
		opts.Account = account.ToLowerPtr()
		return nil
	}
}

func EventWithTypes(types ...EventType) FindEventOptions {
	return func(opts *findEventOptions) error {
		opts.Types = types
		return nil
	}
}

// EventWithNewestFirst sorts by descending sequence.
func EventWithNewestFirst() FindEventOptions {
	return func(opts *findEventOptions) error {
		opts.SortDir = -1
		return nil
	}
}

type EventRepo interface {
	Insert(c ctx.Ctx, ev *Event) error
	FindEvents(c ctx.Ctx, opts ...FindEventOptions) ([]Event, error)
	CountEvents(c ctx.Ctx, opts ...FindEventOptions) (int, error)
}

type EventUsecase interface {
	EventPublisher
	AuctionHistory(c ctx.Ctx, auctionId uint64) ([]Event, error)
	AccountHistory(c ctx.Ctx, account domain.Address, offset, limit int) ([]Event, int, error)
	Close()
}
