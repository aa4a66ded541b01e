package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/settings"
	settingsUC "github.com/x-xyz/settlement/stores/settings/usecase"
)

func (t *testsuite) TestCreateAuction() {
	id := t.create()

	a, err := t.im.GetAuction(mockCtx, id)
	t.NoError(err)
	t.Equal(&auction.Auction{
		Id:         id,
		Asset:      t.asset,
		Seller:     seller,
		StartPrice: big.NewInt(1000),
		CreatedAt:  t.now,
		Deadline:   t.now.Add(week),
		Status:     auction.StatusOpen,
	}, a)
	t.Equal(uint64(1), t.im.AuctionCount(mockCtx))

	created := t.events.ofType(auction.EventAuctionCreated)
	t.Require().Len(created, 1)
	t.Equal(id, *created[0].AuctionId)
	t.Equal(seller, created[0].Account)
	t.Equal("1000", created[0].Amount)
	t.Equal(t.now.Add(week), *created[0].Deadline)
}

func (t *testsuite) TestCreateAuctionRejections() {
	cases := []struct {
		name     string
		seller   domain.Address
		asset    auction.AssetRef
		price    *big.Int
		duration time.Duration
		want     error
	}{
		{"zero duration", seller, t.asset, big.NewInt(1), 0, auction.ErrInvalidDuration},
		{"negative duration", seller, t.asset, big.NewInt(1), -time.Hour, auction.ErrInvalidDuration},
		{"zero price", seller, t.asset, big.NewInt(0), week, auction.ErrInvalidStartPrice},
		{"nil price", seller, t.asset, nil, week, auction.ErrInvalidStartPrice},
		{"no token id", seller, auction.AssetRef{Contract: nftContract}, big.NewInt(1), week, auction.ErrInvalidAsset},
		{"no contract", seller, auction.AssetRef{TokenId: "1"}, big.NewInt(1), week, auction.ErrInvalidAsset},
		{"no seller", "", t.asset, big.NewInt(1), week, domain.ErrInvalidAddress},
		{"not the owner", bob, t.asset, big.NewInt(1), week, auction.ErrCustodyFailed},
		{"unknown asset", seller, auction.AssetRef{Contract: nftContract, TokenId: "999"}, big.NewInt(1), week, auction.ErrCustodyFailed},
	}

	for _, c := range cases {
		_, err := t.im.CreateAuction(mockCtx, c.seller, c.asset, c.price, c.duration)
		t.True(errors.Is(err, c.want), c.name)
	}
	t.Equal(uint64(0), t.im.AuctionCount(mockCtx))
	t.Empty(t.events.types())
	t.Equal(seller, t.owner(t.asset))
}

func (t *testsuite) TestCreateAuctionNotInitialized() {
	t.settings = settingsUC.New()
	im := t.newEngine(t.ledger, t.ledger)

	_, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.Equal(settings.ErrNotInitialized, err)
	t.Equal(seller, t.owner(t.asset))
}

func (t *testsuite) TestCreateAuctionAssetInCustody() {
	id := t.create()

	_, err := t.im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1), week)
	t.Equal(auction.ErrAssetInCustody, err)

	upper := auction.AssetRef{Contract: "0xA55E700000000000000000000000000000000000", TokenId: t.asset.TokenId}
	_, err = t.im.CreateAuction(mockCtx, seller, upper, big.NewInt(1), week)
	t.Equal(auction.ErrAssetInCustody, err)

	// still escrowed while ended
	t.advance(week)
	t.NoError(t.im.EndAuction(mockCtx, id))
	_, err = t.im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1), week)
	t.Equal(auction.ErrAssetInCustody, err)
	t.Equal(uint64(1), t.im.AuctionCount(mockCtx))
}

func (t *testsuite) TestGetAuctionReturnsCopy() {
	id := t.create()
	t.NoError(t.bid(id, alice, curX, 1000))

	a, err := t.im.GetAuction(mockCtx, id)
	t.NoError(err)
	a.Status = auction.StatusClaimed
	a.StartPrice.SetInt64(1)
	a.LeadingBid.Normalized.SetInt64(1)

	t.Equal(auction.StatusOpen, t.status(id))
	t.Equal(big.NewInt(2000), t.leader(id).Normalized)

	_, err = t.im.GetAuction(mockCtx, 7)
	t.Equal(auction.ErrAuctionNotFound, err)
}

func (t *testsuite) TestEndAuction() {
	id := t.create()

	t.Equal(auction.ErrAuctionNotFound, t.im.EndAuction(mockCtx, 3))
	t.Equal(auction.ErrDeadlineNotReached, t.im.EndAuction(mockCtx, id))

	t.NoError(t.bid(id, alice, curX, 1000))
	t.advance(week)
	t.NoError(t.im.EndAuction(mockCtx, id))
	t.Equal(auction.StatusEnded, t.status(id))
	t.Equal(auction.ErrAuctionNotOpen, t.im.EndAuction(mockCtx, id))

	ended := t.events.ofType(auction.EventAuctionEnded)
	t.Require().Len(ended, 1)
	t.Equal(alice, ended[0].Account)
	t.Equal("1000", ended[0].Amount)
	t.Equal("2000", ended[0].Normalized)
}

func (t *testsuite) TestListAuctions() {
	first := t.create()
	second, err := t.im.CreateAuction(mockCtx, seller, t.mint(2), big.NewInt(10), 2*week)
	t.Require().NoError(err)
	t.ledger.Mint(auction.AssetRef{Contract: nftContract, TokenId: "3"}, bob)
	third, err := t.im.CreateAuction(mockCtx, bob, auction.AssetRef{Contract: nftContract, TokenId: "3"}, big.NewInt(10), week)
	t.Require().NoError(err)

	t.NoError(t.bid(second, alice, curY, 100))
	t.NoError(t.bid(third, alice, curY, 100))

	t.advance(week)
	t.NoError(t.im.EndAuction(mockCtx, first))

	ids := func(opts ...auction.FindAuctionOptions) []uint64 {
		res, err := t.im.ListAuctions(mockCtx, opts...)
		t.Require().NoError(err)
		out := []uint64{}
		for _, a := range res {
			out = append(out, a.Id)
		}
		return out
	}

	t.Equal([]uint64{first, second, third}, ids())
	t.Equal([]uint64{first, second}, ids(auction.AuctionWithSeller("0x5E11000000000000000000000000000000000000")))
	t.Equal([]uint64{second, third}, ids(auction.AuctionWithBidder(alice)))
	t.Equal([]uint64{first}, ids(auction.AuctionWithStatus(auction.StatusEnded)))
	t.Equal([]uint64{second, third}, ids(auction.AuctionWithStatus(auction.StatusOpen)))
	t.Equal([]uint64{second}, ids(auction.AuctionWithActiveOnly()))
	t.Equal([]uint64{second}, ids(auction.AuctionWithPagination(1, 1)))
	t.Equal([]uint64{third}, ids(auction.AuctionWithPagination(2, 0)))
	t.Equal([]uint64{}, ids(auction.AuctionWithSeller(carol)))

	_, err = t.im.ListAuctions(mockCtx, auction.AuctionWithStatus("bogus"))
	t.Equal(domain.ErrBadParamInput, err)

	count := func(opts ...auction.FindAuctionOptions) int {
		n, err := t.im.CountAuctions(mockCtx, opts...)
		t.Require().NoError(err)
		return n
	}
	t.Equal(3, count())
	t.Equal(2, count(auction.AuctionWithSeller(seller)))
	t.Equal(2, count(auction.AuctionWithStatus(auction.StatusOpen)))
	t.Equal(1, count(auction.AuctionWithActiveOnly()))
	// pagination does not shrink the count
	t.Equal(3, count(auction.AuctionWithPagination(2, 1)))

	_, err = t.im.CountAuctions(mockCtx, auction.AuctionWithStatus("bogus"))
	t.Equal(domain.ErrBadParamInput, err)
}

func (t *testsuite) TestPriceInUnit() {
	v, err := t.im.PriceInUnit(mockCtx, curX, big.NewInt(1000))
	t.NoError(err)
	t.Equal(big.NewInt(2000), v)

	v, err = t.im.PriceInUnit(mockCtx, "0x2222222222222222222222222222222222222222", big.NewInt(7))
	t.NoError(err)
	t.Equal(big.NewInt(7), v)

	_, err = t.im.PriceInUnit(mockCtx, curX, big.NewInt(0))
	t.True(errors.Is(err, domain.ErrInvalidAmount))
}
