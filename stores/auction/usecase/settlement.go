package usecase

import (
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain/auction"
	"golang.org/x/xerrors"
)

// Claim settles an ended auction. Legs run in order: asset to the winner, proceeds
// to the seller, fee to the recipient. The first failing leg aborts the claim with
// the auction still Ended, a later Claim resumes from that leg with the same split.
func (im *impl) Claim(c ctx.Ctx, id uint64) (*auction.Settlement, error) {
	defer im.met.BumpTime("claim.time").End()

	a, plan, err := im.beginClaim(c, id)
	if err != nil {
		return nil, err
	}

	settleErr := im.settle(c, a, plan)

	defer im.flush(c)
	im.mu.Lock()
	defer im.mu.Unlock()

	r := im.auctions[id]
	r.settling = false
	if settleErr != nil {
		im.met.BumpSum("claim.err", 1)
		return nil, settleErr
	}

	now := timeNow()
	s := &auction.Settlement{NoBids: a.LeadingBid == nil, ClaimedAt: now}
	ev := &auction.Event{
		Type:      auction.EventAuctionClaimed,
		AuctionId: idPtr(id),
		Account:   a.Seller,
		Asset:     &r.auction.Asset,
		Time:      now,
	}
	if bid := a.LeadingBid; bid != nil {
		s.Winner = bid.Bidder
		s.Currency = bid.Currency
		s.SellerProceeds = plan.proceeds
		s.PlatformFee = plan.platformFee
		s.FeeRecipient = plan.fee.Recipient
		s.FeeRateBps = plan.fee.RateBps

		ev.Account = bid.Bidder
		ev.Currency = bid.Currency
		ev.Amount = plan.proceeds.String()
		ev.PlatformFee = plan.platformFee.String()
		ev.FeeRecipient = plan.fee.Recipient
	}

	r.auction.Status = auction.StatusClaimed
	r.auction.Settlement = s
	r.plan = nil
	delete(im.escrowed, r.auction.Asset)

	im.stage(ev)
	im.met.BumpSum("claim.count", 1)

	return s.Copy(), nil
}

// beginClaim checks the state, pins the settlement plan and marks the auction as
// settling. The returned auction is a snapshot.
func (im *impl) beginClaim(c ctx.Ctx, id uint64) (*auction.Auction, *settlePlan, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	r, err := im.get(id)
	if err != nil {
		return nil, nil, err
	}
	switch r.auction.Status {
	case auction.StatusOpen:
		return nil, nil, auction.ErrAuctionNotEnded
	case auction.StatusClaimed:
		return nil, nil, auction.ErrAlreadyClaimed
	}
	if r.settling {
		return nil, nil, auction.ErrClaimInProgress
	}

	if r.plan == nil {
		plan := &settlePlan{}
		if bid := r.auction.LeadingBid; bid != nil {
			fee, err := im.settings.Fee(c)
			if err != nil {
				c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("settings.Fee failed")
				return nil, nil, err
			}
			plan.fee = fee
			plan.platformFee, plan.proceeds = fee.Split(bid.Amount)
		}
		r.plan = plan
	}

	r.settling = true
	return r.auction.Copy(), r.plan, nil
}

// settle runs the outstanding legs. Only the goroutine that set settling touches plan.
func (im *impl) settle(c ctx.Ctx, a *auction.Auction, plan *settlePlan) error {
	fields := log.Fields{"auctionId": a.Id, "asset": a.Asset}

	bid := a.LeadingBid
	if bid == nil {
		if err := im.custody.ReleaseCustody(c, a.Asset, a.Seller); err != nil {
			c.WithFields(fields).WithField("err", err).Error("release to seller failed")
			return xerrors.Errorf("return %s to seller: %w", a.Asset, auction.ErrPayoutFailed)
		}
		return nil
	}

	if !plan.assetDelivered {
		if err := im.custody.ReleaseCustody(c, a.Asset, bid.Bidder); err != nil {
			c.WithFields(fields).WithField("err", err).Error("release to winner failed")
			return xerrors.Errorf("deliver %s to winner: %w", a.Asset, auction.ErrPayoutFailed)
		}
		plan.assetDelivered = true
	}

	if !plan.sellerPaid {
		if plan.proceeds.Sign() > 0 {
			if err := im.transfer.Push(c, bid.Currency, a.Seller, plan.proceeds); err != nil {
				c.WithFields(fields).WithField("err", err).Error("seller payout failed")
				return xerrors.Errorf("pay seller %s: %w", plan.proceeds, auction.ErrPayoutFailed)
			}
		}
		plan.sellerPaid = true
	}

	if !plan.feePaid {
		if plan.platformFee.Sign() > 0 {
			if err := im.transfer.Push(c, bid.Currency, plan.fee.Recipient, plan.platformFee); err != nil {
				c.WithFields(fields).WithField("err", err).Error("fee payout failed")
				return xerrors.Errorf("pay fee %s: %w", plan.platformFee, auction.ErrPayoutFailed)
			}
		}
		plan.feePaid = true
	}

	return nil
}
