package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/currency"
	mockAuction "github.com/x-xyz/settlement/domain/auction/mocks"
)

func (t *testsuite) TestBidThresholds() {
	id := t.create()

	// 500 X is worth exactly the start price
	t.Equal(auction.ErrBidTooLow, t.bid(id, alice, curX, 500))
	t.Nil(t.leader(id))
	t.Equal(initialFunds, t.balance(curX, alice))

	t.NoError(t.bid(id, alice, curX, 501))

	// 1002 Y equals the leader's 1002 units
	t.Equal(auction.ErrBidTooLow, t.bid(id, bob, curY, 1002))
	t.NoError(t.bid(id, bob, curY, 1003))
	t.Equal(bob, t.leader(id).Bidder)
}

func (t *testsuite) TestBidComparesStoredValue() {
	id := t.create()
	t.NoError(t.bid(id, alice, curX, 1000))

	// X doubles after acceptance, the leader stays at 2000 units
	t.feeds.Set(feedX, big.NewInt(400000000), 8)
	t.Equal(big.NewInt(2000), t.leader(id).Normalized)

	t.NoError(t.bid(id, bob, curY, 2001))
	t.Equal(big.NewInt(2001), t.leader(id).Normalized)
	t.Equal(initialFunds, t.balance(curX, alice))
}

func (t *testsuite) TestBidRejections() {
	id := t.create()
	unknown := domain.Address("0x3333333333333333333333333333333333333333")

	cases := []struct {
		name   string
		id     uint64
		bidder domain.Address
		cur    domain.Address
		amount *big.Int
		want   error
	}{
		{"unknown auction", 42, alice, curX, big.NewInt(1000), auction.ErrAuctionNotFound},
		{"seller", id, seller, curX, big.NewInt(1000), auction.ErrSelfBid},
		{"seller mixed case", id, "0x5E11000000000000000000000000000000000000", curX, big.NewInt(1000), auction.ErrSelfBid},
		{"zero amount", id, alice, curX, big.NewInt(0), domain.ErrInvalidAmount},
		{"negative amount", id, alice, curX, big.NewInt(-1), domain.ErrInvalidAmount},
		{"nil amount", id, alice, curX, nil, domain.ErrInvalidAmount},
		{"unregistered currency", id, alice, unknown, big.NewInt(1000), currency.ErrUnregisteredCurrency},
	}

	for _, c := range cases {
		err := t.im.PlaceBid(mockCtx, c.id, c.bidder, c.cur, c.amount)
		t.True(errors.Is(err, c.want), c.name)
	}
	t.Nil(t.leader(id))
	t.Equal([]auction.EventType{auction.EventAuctionCreated}, t.events.types())
}

func (t *testsuite) TestBidWithoutFunds() {
	id := t.create()

	err := t.bid(id, dave, curX, 1000)
	t.True(errors.Is(err, auction.ErrTransferFailed))
	t.Nil(t.leader(id))

	t.ledger.Credit(curX, dave, big.NewInt(1000))
	t.True(errors.Is(t.bid(id, dave, curX, 1000), auction.ErrTransferFailed), "allowance missing")

	t.ledger.Approve(curX, dave, big.NewInt(1000))
	t.NoError(t.bid(id, dave, curX, 1000))
	t.Equal(int64(0), t.balance(curX, dave))
}

func (t *testsuite) TestBidPullFailure() {
	transfer := &mockAuction.ValueTransfer{}
	transfer.On("Pull", mockCtx, curX, alice, big.NewInt(1000)).Return(errors.New("reverted")).Once()
	defer transfer.AssertExpectations(t.T())

	im := t.newEngine(t.ledger, transfer)
	id, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.Require().NoError(err)

	err = im.PlaceBid(mockCtx, id, alice, curX, big.NewInt(1000))
	t.True(errors.Is(err, auction.ErrTransferFailed))

	a, err := im.GetAuction(mockCtx, id)
	t.NoError(err)
	t.Nil(a.LeadingBid)
	transfer.AssertNotCalled(t.T(), "Push", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (t *testsuite) TestBidOracleFailure() {
	id := t.create()

	t.feeds.Set(feedX, big.NewInt(0), 8)
	t.True(errors.Is(t.bid(id, alice, curX, 1000), currency.ErrInvalidPrice))

	t.feeds.Set(feedX, big.NewInt(200000000), 8)
	t.NoError(t.bid(id, alice, curX, 1000))
}

func (t *testsuite) TestBidAfterDeadline() {
	id := t.create()

	t.advance(week - time.Second)
	t.NoError(t.bid(id, alice, curX, 1000))

	t.advance(time.Second)
	t.Equal(auction.ErrAuctionExpired, t.bid(id, bob, curX, 2000))
	t.Equal(alice, t.leader(id).Bidder)

	t.NoError(t.im.EndAuction(mockCtx, id))
	t.Equal(auction.ErrAuctionNotOpen, t.bid(id, bob, curX, 2000))
}

func (t *testsuite) TestBidOutbidsSelf() {
	id := t.create()
	t.NoError(t.bid(id, alice, curX, 1000))
	t.NoError(t.bid(id, alice, curY, 2500))

	t.Equal(curY, t.leader(id).Currency)
	t.Equal(initialFunds, t.balance(curX, alice))
	t.Equal(initialFunds-2500, t.balance(curY, alice))
}

type reentrantTransfer struct {
	auction.ValueTransfer
	im    *impl
	id    uint64
	seen  []*auction.Auction
	onErr func(error)
}

func (r *reentrantTransfer) Push(c ctx.Ctx, cur, to domain.Address, amount *big.Int) error {
	a, err := r.im.GetAuction(c, r.id)
	if err != nil {
		r.onErr(err)
	}
	r.seen = append(r.seen, a)
	return r.ValueTransfer.Push(c, cur, to, amount)
}

func (t *testsuite) TestRefundObservesCommittedState() {
	tr := &reentrantTransfer{ValueTransfer: t.ledger, onErr: func(err error) { t.NoError(err) }}
	im := t.newEngine(t.ledger, tr)
	tr.im = im

	id, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.Require().NoError(err)
	tr.id = id

	t.NoError(im.PlaceBid(mockCtx, id, alice, curX, big.NewInt(1000)))
	t.NoError(im.PlaceBid(mockCtx, id, bob, curY, big.NewInt(2500)))

	// the refund to alice sees bob already leading
	t.Require().Len(tr.seen, 1)
	t.Equal(bob, tr.seen[0].LeadingBid.Bidder)
	t.Equal(initialFunds, t.balance(curX, alice))
}
