package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/metrics"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/currency"
	"github.com/x-xyz/settlement/domain/settings"
)

var timeNow = time.Now

type AuctionUseCaseCfg struct {
	Settings   settings.Store
	Normalizer currency.Normalizer
	Custody    auction.CustodyProvider
	Transfer   auction.ValueTransfer
	// Publisher is optional
	Publisher auction.EventPublisher
}

type refundKey struct {
	bidder   domain.Address
	currency domain.Address
}

// settlePlan is fixed by the first claim attempt so that retries pay the same
// split and skip the legs that already went through.
type settlePlan struct {
	fee         settings.FeeConfig
	platformFee *big.Int
	proceeds    *big.Int

	assetDelivered bool
	sellerPaid     bool
	feePaid        bool
}

type record struct {
	auction  *auction.Auction
	settling bool
	plan     *settlePlan
}

// impl serializes every state transition behind mu. Outbound pushes, custody
// releases and event publishing happen only after the transition is committed
// and mu is released. Normalize and Pull run while mu is held, so collaborators
// must not call back into the engine from those two methods.
type impl struct {
	settings   settings.Store
	normalizer currency.Normalizer
	custody    auction.CustodyProvider
	transfer   auction.ValueTransfer
	publisher  auction.EventPublisher
	met        metrics.Service

	mu       sync.Mutex
	auctions []*record
	escrowed map[auction.AssetRef]uint64
	pending  map[refundKey]*big.Int

	// events are numbered at commit and wait in outbox, both guarded by mu
	seq    uint64
	outbox []*auction.Event

	// pubMu keeps publishing in Seq order, never taken while holding mu
	pubMu sync.Mutex
}

func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &impl{
		settings:   cfg.Settings,
		normalizer: cfg.Normalizer,
		custody:    cfg.Custody,
		transfer:   cfg.Transfer,
		publisher:  publisher,
		met:        metrics.New("auction"),
		escrowed:   make(map[auction.AssetRef]uint64),
		pending:    make(map[refundKey]*big.Int),
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(c ctx.Ctx, events ...*auction.Event) {}

// get must be called with mu held
func (im *impl) get(id uint64) (*record, error) {
	if id >= uint64(len(im.auctions)) {
		return nil, auction.ErrAuctionNotFound
	}
	return im.auctions[id], nil
}

// stage numbers ev and queues it for the next flush, must be called with mu held
func (im *impl) stage(ev *auction.Event) {
	ev.Seq = im.seq
	im.seq++
	if ev.Time.IsZero() {
		ev.Time = timeNow()
	}
	im.outbox = append(im.outbox, ev)
}

// flush hands staged events to the publisher, must be called without mu.
func (im *impl) flush(c ctx.Ctx) {
	im.pubMu.Lock()
	defer im.pubMu.Unlock()

	im.mu.Lock()
	events := im.outbox
	im.outbox = nil
	im.mu.Unlock()

	if len(events) > 0 {
		im.publisher.Publish(c, events...)
	}
}

// emit stages and publishes ev for callers that do not hold mu.
func (im *impl) emit(c ctx.Ctx, ev *auction.Event) {
	im.mu.Lock()
	im.stage(ev)
	im.mu.Unlock()
	im.flush(c)
}

func idPtr(id uint64) *uint64 {
	return &id
}
