package pricefeed

import (
	"math/big"
	"sync"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/currency"
)

var timeNow = time.Now

// Feeds is a settable in-process price source for deployments without an oracle
// network and for tests.
type Feeds struct {
	mu     sync.RWMutex
	prices map[domain.Address]currency.Price
}

func New() *Feeds {
	return &Feeds{prices: make(map[domain.Address]currency.Price)}
}

// Set publishes answer / 10^decimals as the current price, stamped now.
func (f *Feeds) Set(feed domain.Address, answer *big.Int, decimals int32) {
	f.SetPrice(feed, currency.Price{
		Answer:    answer,
		Decimals:  decimals,
		UpdatedAt: timeNow(),
	})
}

// SetPrice stores a reading verbatim, including its timestamp.
func (f *Feeds) SetPrice(feed domain.Address, p currency.Price) {
	p.Answer = domain.CopyInt(p.Answer)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[feed.ToLower()] = p
}

func (f *Feeds) CurrentPrice(c ctx.Ctx, feed domain.Address) (*currency.Price, error) {
	f.mu.RLock()
	p, ok := f.prices[feed.ToLower()]
	f.mu.RUnlock()

	if !ok {
		return nil, currency.ErrNoPriceFeed
	}
	p.Answer = domain.CopyInt(p.Answer)
	return &p, nil
}
