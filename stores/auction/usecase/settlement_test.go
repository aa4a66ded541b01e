package usecase

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
)

// endWithBid runs a default auction to its end with one bid of amount X from bidder.
func (t *testsuite) endWithBid(bidder domain.Address, amount int64) uint64 {
	id := t.create()
	t.Require().NoError(t.bid(id, bidder, curX, amount))
	t.advance(week)
	t.Require().NoError(t.im.EndAuction(mockCtx, id))
	return id
}

func (t *testsuite) TestClaimRejections() {
	id := t.create()

	_, err := t.im.Claim(mockCtx, 9)
	t.Equal(auction.ErrAuctionNotFound, err)

	_, err = t.im.Claim(mockCtx, id)
	t.Equal(auction.ErrAuctionNotEnded, err)

	// past the deadline but not ended yet
	t.advance(week)
	_, err = t.im.Claim(mockCtx, id)
	t.Equal(auction.ErrAuctionNotEnded, err)

	t.NoError(t.im.EndAuction(mockCtx, id))
	_, err = t.im.Claim(mockCtx, id)
	t.NoError(err)

	_, err = t.im.Claim(mockCtx, id)
	t.Equal(auction.ErrAlreadyClaimed, err)
	t.Len(t.events.ofType(auction.EventAuctionClaimed), 1)
}

func (t *testsuite) TestClaimUsesFeeAtClaimTime() {
	id := t.endWithBid(alice, 1000)

	t.NoError(t.settings.SetFeeRate(mockCtx, configurator, 500))
	newRecipient := domain.Address("0xfee1000000000000000000000000000000000000")
	t.NoError(t.settings.SetFeeRecipient(mockCtx, configurator, newRecipient))

	s, err := t.im.Claim(mockCtx, id)
	t.NoError(err)
	t.Equal(big.NewInt(50), s.PlatformFee)
	t.Equal(big.NewInt(950), s.SellerProceeds)
	t.Equal(newRecipient, s.FeeRecipient)
	t.Equal(int64(50), t.balance(curX, newRecipient))
	t.Equal(int64(0), t.balance(curX, feeRecipient))
}

func (t *testsuite) TestClaimResumesAfterSellerRejects() {
	id := t.endWithBid(carol, 1500)

	t.ledger.Reject(seller, true)
	_, err := t.im.Claim(mockCtx, id)
	t.True(errors.Is(err, auction.ErrPayoutFailed))
	t.Equal(auction.StatusEnded, t.status(id))
	t.Equal(carol, t.owner(t.asset), "asset leg already done")
	t.Equal(int64(0), t.balance(curX, feeRecipient))
	t.Empty(t.events.ofType(auction.EventAuctionClaimed))

	// the split stays pinned to the first attempt
	t.NoError(t.settings.SetFeeRate(mockCtx, configurator, 1000))

	t.ledger.Reject(seller, false)
	s, err := t.im.Claim(mockCtx, id)
	t.NoError(err)
	t.Equal(big.NewInt(1463), s.SellerProceeds)
	t.Equal(big.NewInt(37), s.PlatformFee)
	t.Equal(uint32(250), s.FeeRateBps)

	t.Equal(carol, t.owner(t.asset))
	t.Equal(int64(1463), t.balance(curX, seller))
	t.Equal(int64(37), t.balance(curX, feeRecipient))
	t.Equal(int64(0), t.balance(curX, escrow))
	t.Equal(auction.StatusClaimed, t.status(id))
}

func (t *testsuite) TestClaimResumesAfterWinnerRejects() {
	id := t.endWithBid(carol, 1500)

	t.ledger.Reject(carol, true)
	_, err := t.im.Claim(mockCtx, id)
	t.True(errors.Is(err, auction.ErrPayoutFailed))
	t.Equal(escrow, t.owner(t.asset))
	t.Equal(int64(0), t.balance(curX, seller))
	t.Equal(int64(1500), t.balance(curX, escrow))

	t.ledger.Reject(carol, false)
	_, err = t.im.Claim(mockCtx, id)
	t.NoError(err)
	t.Equal(carol, t.owner(t.asset))
	t.Equal(int64(1463), t.balance(curX, seller))
}

func (t *testsuite) TestClaimResumesAfterFeeRecipientRejects() {
	id := t.endWithBid(carol, 1500)

	t.ledger.Reject(feeRecipient, true)
	_, err := t.im.Claim(mockCtx, id)
	t.True(errors.Is(err, auction.ErrPayoutFailed))
	t.Equal(int64(1463), t.balance(curX, seller))

	t.ledger.Reject(feeRecipient, false)
	_, err = t.im.Claim(mockCtx, id)
	t.NoError(err)
	t.Equal(int64(1463), t.balance(curX, seller), "seller paid once")
	t.Equal(int64(37), t.balance(curX, feeRecipient))
}

func (t *testsuite) TestClaimNoBidsSellerRejects() {
	id := t.create()
	t.advance(week)
	t.NoError(t.im.EndAuction(mockCtx, id))

	t.ledger.Reject(seller, true)
	_, err := t.im.Claim(mockCtx, id)
	t.True(errors.Is(err, auction.ErrPayoutFailed))
	t.Equal(escrow, t.owner(t.asset))

	_, err = t.im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1), week)
	t.Equal(auction.ErrAssetInCustody, err)

	t.ledger.Reject(seller, false)
	s, err := t.im.Claim(mockCtx, id)
	t.NoError(err)
	t.True(s.NoBids)
	t.Equal(seller, t.owner(t.asset))
}

type blockingCustody struct {
	auction.CustodyProvider
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCustody) ReleaseCustody(c ctx.Ctx, asset auction.AssetRef, to domain.Address) error {
	b.entered <- struct{}{}
	<-b.release
	return b.CustodyProvider.ReleaseCustody(c, asset, to)
}

func (t *testsuite) TestClaimInProgress() {
	custody := &blockingCustody{
		CustodyProvider: t.ledger,
		entered:         make(chan struct{}, 1),
		release:         make(chan struct{}),
	}
	im := t.newEngine(custody, t.ledger)
	id, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.Require().NoError(err)
	t.Require().NoError(im.PlaceBid(mockCtx, id, carol, curX, big.NewInt(1500)))
	t.advance(week)
	t.Require().NoError(im.EndAuction(mockCtx, id))

	done := make(chan error, 1)
	go func() {
		_, err := im.Claim(mockCtx, id)
		done <- err
	}()
	<-custody.entered

	_, err = im.Claim(mockCtx, id)
	t.Equal(auction.ErrClaimInProgress, err)

	// reads are not blocked by an outstanding leg
	a, err := im.GetAuction(mockCtx, id)
	t.NoError(err)
	t.Equal(auction.StatusEnded, a.Status)

	close(custody.release)
	t.NoError(<-done)
	t.Equal(carol, t.owner(t.asset))

	_, err = im.Claim(mockCtx, id)
	t.Equal(auction.ErrAlreadyClaimed, err)
}

func (t *testsuite) TestClaimFeeSplit() {
	amounts := []int64{1, 39, 40, 999, 1001, 12345, 99999}
	rates := []uint32{0, 1, 250, 999, 1000}

	tokenId := 100
	for _, rate := range rates {
		t.NoError(t.settings.SetFeeRate(mockCtx, configurator, rate))
		for _, amount := range amounts {
			name := fmt.Sprintf("rate %d amount %d", rate, amount)
			tokenId++

			sellerBefore := t.balance(curX, seller)
			feeBefore := t.balance(curX, feeRecipient)

			id, err := t.im.CreateAuction(mockCtx, seller, t.mint(tokenId), big.NewInt(1), week)
			t.Require().NoError(err, name)
			t.Require().NoError(t.bid(id, bob, curX, amount), name)
			t.advance(week)
			t.Require().NoError(t.im.EndAuction(mockCtx, id), name)

			s, err := t.im.Claim(mockCtx, id)
			t.Require().NoError(err, name)

			wantFee := amount * int64(rate) / 10000
			t.Equal(wantFee, s.PlatformFee.Int64(), name)
			t.Equal(amount-wantFee, s.SellerProceeds.Int64(), name)
			t.Equal(sellerBefore+amount-wantFee, t.balance(curX, seller), name)
			t.Equal(feeBefore+wantFee, t.balance(curX, feeRecipient), name)
			t.Equal(int64(0), t.balance(curX, escrow), name)
		}
	}
}
