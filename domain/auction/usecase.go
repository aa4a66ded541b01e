package auction

import (
	"math/big"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

type Usecase interface {
	CreateAuction(c ctx.Ctx, seller domain.Address, asset AssetRef, startPrice *big.Int, duration time.Duration) (uint64, error)
	GetAuction(c ctx.Ctx, id uint64) (*Auction, error)
	ListAuctions(c ctx.Ctx, opts ...FindAuctionOptions) ([]*Auction, error)
	// CountAuctions counts the auctions matching opts, pagination is ignored.
	CountAuctions(c ctx.Ctx, opts ...FindAuctionOptions) (int, error)
	AuctionCount(c ctx.Ctx) uint64
	EndAuction(c ctx.Ctx, id uint64) error

	PlaceBid(c ctx.Ctx, id uint64, bidder domain.Address, currency domain.Address, amount *big.Int) error
	WithdrawRefund(c ctx.Ctx, bidder domain.Address, currency domain.Address) (*big.Int, error)
	PendingRefund(c ctx.Ctx, bidder domain.Address, currency domain.Address) *big.Int

	Claim(c ctx.Ctx, id uint64) (*Settlement, error)

	// PriceInUnit quotes amount of currency in the unit of account at the live price.
	PriceInUnit(c ctx.Ctx, currency domain.Address, amount *big.Int) (*big.Int, error)
}
