package usecase

import (
	"math/big"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/settings"
	"golang.org/x/xerrors"
)

func (im *impl) CreateAuction(c ctx.Ctx, seller domain.Address, asset auction.AssetRef, startPrice *big.Int, duration time.Duration) (uint64, error) {
	defer im.met.BumpTime("create.time").End()

	if !im.settings.Initialized() {
		return 0, settings.ErrNotInitialized
	}
	if duration <= 0 {
		return 0, auction.ErrInvalidDuration
	}
	if startPrice == nil || startPrice.Sign() <= 0 {
		return 0, auction.ErrInvalidStartPrice
	}
	if !asset.IsValid() {
		return 0, auction.ErrInvalidAsset
	}
	if seller.IsEmpty() {
		return 0, domain.ErrInvalidAddress
	}
	seller = seller.ToLower()
	asset = asset.ToLower()

	defer im.flush(c)
	im.mu.Lock()
	defer im.mu.Unlock()

	if owner, ok := im.escrowed[asset]; ok {
		c.WithFields(log.Fields{"asset": asset, "auctionId": owner}).Warn("asset already escrowed")
		return 0, auction.ErrAssetInCustody
	}

	if err := im.custody.TakeCustody(c, asset, seller); err != nil {
		c.WithFields(log.Fields{"err": err, "asset": asset, "seller": seller}).Error("custody.TakeCustody failed")
		return 0, xerrors.Errorf("take custody of %s: %w", asset, auction.ErrCustodyFailed)
	}

	now := timeNow()
	id := uint64(len(im.auctions))
	a := &auction.Auction{
		Id:         id,
		Asset:      asset,
		Seller:     seller,
		StartPrice: domain.CopyInt(startPrice),
		CreatedAt:  now,
		Deadline:   now.Add(duration),
		Status:     auction.StatusOpen,
	}
	im.auctions = append(im.auctions, &record{auction: a})
	im.escrowed[asset] = id

	im.stage(&auction.Event{
		Type:      auction.EventAuctionCreated,
		AuctionId: idPtr(id),
		Account:   seller,
		Asset:     &a.Asset,
		Amount:    startPrice.String(),
		Deadline:  &a.Deadline,
		Time:      now,
	})
	im.met.BumpSum("create.count", 1)

	return id, nil
}

func (im *impl) GetAuction(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	r, err := im.get(id)
	if err != nil {
		return nil, err
	}
	return r.auction.Copy(), nil
}

func (im *impl) ListAuctions(c ctx.Ctx, optFns ...auction.FindAuctionOptions) ([]*auction.Auction, error) {
	opts, err := auction.GetFindAuctionOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetFindAuctionOptions failed")
		return nil, err
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	now := timeNow()
	res := []*auction.Auction{}

	im.mu.Lock()
	defer im.mu.Unlock()

	skipped := 0
	for _, r := range im.auctions {
		if !opts.Match(r.auction, now) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		res = append(res, r.auction.Copy())
		if limit > 0 && len(res) >= limit {
			break
		}
	}
	return res, nil
}

func (im *impl) CountAuctions(c ctx.Ctx, optFns ...auction.FindAuctionOptions) (int, error) {
	opts, err := auction.GetFindAuctionOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetFindAuctionOptions failed")
		return 0, err
	}

	now := timeNow()

	im.mu.Lock()
	defer im.mu.Unlock()

	cnt := 0
	for _, r := range im.auctions {
		if opts.Match(r.auction, now) {
			cnt++
		}
	}
	return cnt, nil
}

func (im *impl) AuctionCount(c ctx.Ctx) uint64 {
	im.mu.Lock()
	defer im.mu.Unlock()
	return uint64(len(im.auctions))
}

func (im *impl) EndAuction(c ctx.Ctx, id uint64) error {
	defer im.flush(c)
	im.mu.Lock()
	defer im.mu.Unlock()

	r, err := im.get(id)
	if err != nil {
		return err
	}
	a := r.auction
	if a.Status != auction.StatusOpen {
		return auction.ErrAuctionNotOpen
	}
	now := timeNow()
	if now.Before(a.Deadline) {
		return auction.ErrDeadlineNotReached
	}

	a.Status = auction.StatusEnded

	ev := &auction.Event{
		Type:      auction.EventAuctionEnded,
		AuctionId: idPtr(id),
		Account:   a.Seller,
		Time:      now,
	}
	if a.LeadingBid != nil {
		ev.Account = a.LeadingBid.Bidder
		ev.Currency = a.LeadingBid.Currency
		ev.Amount = a.LeadingBid.Amount.String()
		ev.Normalized = a.LeadingBid.Normalized.String()
	}
	im.stage(ev)

	return nil
}

func (im *impl) PriceInUnit(c ctx.Ctx, cur domain.Address, amount *big.Int) (*big.Int, error) {
	return im.normalizer.Normalize(c, cur.ToLower(), amount)
}
