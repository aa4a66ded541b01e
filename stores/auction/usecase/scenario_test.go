package usecase

import (
	"errors"
	"math/big"

	"github.com/x-xyz/settlement/domain/auction"
)

func (t *testsuite) TestScenarioMultiCurrency() {
	id := t.create()
	t.Equal(uint64(0), id)
	t.Equal(escrow, t.owner(t.asset))

	t.NoError(t.bid(id, alice, curX, 1000))
	t.Equal(big.NewInt(2000), t.leader(id).Normalized)
	t.Equal(initialFunds-1000, t.balance(curX, alice))

	t.NoError(t.bid(id, bob, curY, 2500))
	t.Equal(big.NewInt(2500), t.leader(id).Normalized)
	t.Equal(initialFunds, t.balance(curX, alice), "A refunded in full")

	t.NoError(t.bid(id, carol, curX, 1500))
	t.Equal(big.NewInt(3000), t.leader(id).Normalized)
	t.Equal(initialFunds, t.balance(curY, bob), "B refunded in full")

	t.advance(week)
	t.NoError(t.im.EndAuction(mockCtx, id))

	s, err := t.im.Claim(mockCtx, id)
	t.NoError(err)
	t.False(s.NoBids)
	t.Equal(carol, s.Winner)
	t.Equal(curX, s.Currency)
	t.Equal(big.NewInt(1463), s.SellerProceeds)
	t.Equal(big.NewInt(37), s.PlatformFee)
	t.Equal(feeRecipient, s.FeeRecipient)
	t.Equal(uint32(250), s.FeeRateBps)

	t.Equal(carol, t.owner(t.asset))
	t.Equal(int64(1463), t.balance(curX, seller))
	t.Equal(int64(37), t.balance(curX, feeRecipient))
	t.Equal(initialFunds-1500, t.balance(curX, carol))
	t.Equal(int64(0), t.balance(curX, escrow))
	t.Equal(int64(0), t.balance(curY, escrow))
	t.Equal(int64(0), t.balance(curY, seller))

	a, err := t.im.GetAuction(mockCtx, id)
	t.NoError(err)
	t.Equal(auction.StatusClaimed, a.Status)
	t.Equal(s, a.Settlement)

	t.Equal([]auction.EventType{
		auction.EventAuctionCreated,
		auction.EventBidPlaced,
		auction.EventBidPlaced,
		auction.EventRefundPushed,
		auction.EventBidPlaced,
		auction.EventRefundPushed,
		auction.EventAuctionEnded,
		auction.EventAuctionClaimed,
	}, t.events.types())
	for i, e := range t.events.events {
		t.Equal(uint64(i), e.Seq)
	}

	bids := t.events.ofType(auction.EventBidPlaced)
	t.Equal("2000", bids[0].Normalized)
	t.Equal("2500", bids[1].Normalized)
	t.Equal("3000", bids[2].Normalized)

	claimed := t.events.ofType(auction.EventAuctionClaimed)[0]
	t.Equal("1463", claimed.Amount)
	t.Equal("37", claimed.PlatformFee)
}

func (t *testsuite) TestScenarioNoBids() {
	id := t.create()

	t.advance(week)
	t.NoError(t.im.EndAuction(mockCtx, id))

	s, err := t.im.Claim(mockCtx, id)
	t.NoError(err)
	t.True(s.NoBids)
	t.Nil(s.SellerProceeds)
	t.Nil(s.PlatformFee)

	t.Equal(seller, t.owner(t.asset))
	t.Equal(int64(0), t.balance(curX, seller))
	t.Equal(int64(0), t.balance(curX, feeRecipient))
	t.Equal(int64(0), t.balance(curY, feeRecipient))
	t.Equal(int64(0), t.balance(curX, escrow))

	t.Equal([]auction.EventType{
		auction.EventAuctionCreated,
		auction.EventAuctionEnded,
		auction.EventAuctionClaimed,
	}, t.events.types())

	// the asset is free to be auctioned again
	id2, err := t.im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1), week)
	t.NoError(err)
	t.Equal(uint64(1), id2)
}

func (t *testsuite) TestScenarioRejectedRefund() {
	id := t.create()
	t.NoError(t.bid(id, alice, curX, 1000))

	t.ledger.Reject(alice, true)
	t.NoError(t.bid(id, bob, curY, 2500), "new bid accepted despite the failed refund")
	t.Equal(bob, t.leader(id).Bidder)

	t.Equal(big.NewInt(1000), t.im.PendingRefund(mockCtx, alice, curX))
	t.Equal(initialFunds-1000, t.balance(curX, alice))
	t.Equal(int64(1000), t.balance(curX, escrow))

	credited := t.events.ofType(auction.EventRefundCredited)
	t.Len(credited, 1)
	t.Equal(alice, credited[0].Account)
	t.Equal("1000", credited[0].Amount)
	t.Empty(t.events.ofType(auction.EventRefundPushed))

	// still rejecting, the credit survives
	_, err := t.im.WithdrawRefund(mockCtx, alice, curX)
	t.True(errors.Is(err, auction.ErrTransferFailed))
	t.Equal(big.NewInt(1000), t.im.PendingRefund(mockCtx, alice, curX))

	t.ledger.Reject(alice, false)
	amount, err := t.im.WithdrawRefund(mockCtx, alice, curX)
	t.NoError(err)
	t.Equal(big.NewInt(1000), amount)
	t.Equal(initialFunds, t.balance(curX, alice))
	t.Equal(big.NewInt(0), t.im.PendingRefund(mockCtx, alice, curX))

	_, err = t.im.WithdrawRefund(mockCtx, alice, curX)
	t.Equal(auction.ErrNothingToWithdraw, err)
	t.Len(t.events.ofType(auction.EventRefundWithdrawn), 1)
}
