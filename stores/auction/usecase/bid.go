package usecase

import (
	"math/big"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"golang.org/x/xerrors"
)

func (im *impl) PlaceBid(c ctx.Ctx, id uint64, bidder, cur domain.Address, amount *big.Int) error {
	defer im.met.BumpTime("bid.time").End()

	bidder = bidder.ToLower()
	cur = cur.ToLower()

	displaced, err := im.acceptBid(c, id, bidder, cur, amount)
	if err != nil {
		return err
	}
	im.met.BumpSum("bid.count", 1, "currency", string(cur))

	if displaced != nil {
		im.pushRefund(c, id, displaced.Bidder, displaced.Currency, displaced.Amount)
	}
	return nil
}

// acceptBid validates, pulls funds and swaps the leader in one critical section.
// The displaced bid is credited to the pending ledger before returning, the caller
// then tries to push it out.
func (im *impl) acceptBid(c ctx.Ctx, id uint64, bidder, cur domain.Address, amount *big.Int) (*auction.LeadingBid, error) {
	defer im.flush(c)
	im.mu.Lock()
	defer im.mu.Unlock()

	r, err := im.get(id)
	if err != nil {
		return nil, err
	}
	a := r.auction
	if a.Status != auction.StatusOpen {
		return nil, auction.ErrAuctionNotOpen
	}
	now := timeNow()
	if !now.Before(a.Deadline) {
		return nil, auction.ErrAuctionExpired
	}
	if bidder.Equals(a.Seller) {
		return nil, auction.ErrSelfBid
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	normalized, err := im.normalizer.Normalize(c, cur, amount)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id, "currency": cur, "amount": amount}).Warn("normalizer.Normalize failed")
		return nil, err
	}

	// compare against the leader's stored value, never a recomputed one
	if normalized.Cmp(a.StartPrice) <= 0 {
		return nil, auction.ErrBidTooLow
	}
	if a.LeadingBid != nil && normalized.Cmp(a.LeadingBid.Normalized) <= 0 {
		return nil, auction.ErrBidTooLow
	}

	if err := im.transfer.Pull(c, cur, bidder, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id, "bidder": bidder, "currency": cur, "amount": amount}).Warn("transfer.Pull failed")
		return nil, xerrors.Errorf("pull %s %s from %s: %w", amount, cur, bidder, auction.ErrTransferFailed)
	}

	displaced := a.LeadingBid
	a.LeadingBid = &auction.LeadingBid{
		Bidder:     bidder,
		Currency:   cur,
		Amount:     domain.CopyInt(amount),
		Normalized: normalized,
		PlacedAt:   now,
	}
	if displaced != nil {
		im.credit(refundKey{displaced.Bidder, displaced.Currency}, displaced.Amount)
	}

	im.stage(&auction.Event{
		Type:       auction.EventBidPlaced,
		AuctionId:  idPtr(id),
		Account:    bidder,
		Currency:   cur,
		Amount:     amount.String(),
		Normalized: normalized.String(),
		Time:       now,
	})

	return displaced, nil
}
