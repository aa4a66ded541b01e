package auction

import (
	"math/big"
	"strings"
	"time"

	"github.com/x-xyz/settlement/domain"
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusEnded   Status = "ended"
	StatusClaimed Status = "claimed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusEnded, StatusClaimed:
		return true
	}
	return false
}

// AssetRef points at one non-fungible item of a custody contract.
type AssetRef struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
}

func (a AssetRef) ToLower() AssetRef {
	return AssetRef{Contract: a.Contract.ToLower(), TokenId: a.TokenId}
}

func (a AssetRef) String() string {
	return strings.Join([]string{a.Contract.ToLowerStr(), a.TokenId.String()}, "/")
}

func (a AssetRef) IsValid() bool {
	return !a.Contract.IsEmpty() && len(a.TokenId) > 0
}

type LeadingBid struct {
	Bidder     domain.Address `json:"bidder"`
	Currency   domain.Address `json:"currency"`
	Amount     *big.Int       `json:"amount"`
	Normalized *big.Int       `json:"normalized"` // unit of account, fixed at acceptance
	PlacedAt   time.Time      `json:"placedAt"`
}

func (b *LeadingBid) Copy() *LeadingBid {
	if b == nil {
		return nil
	}
	res := *b
	res.Amount = domain.CopyInt(b.Amount)
	res.Normalized = domain.CopyInt(b.Normalized)
	return &res
}

type Settlement struct {
	// NoBids is set when the asset went back to the seller
	NoBids         bool           `json:"noBids"`
	Winner         domain.Address `json:"winner,omitempty"`
	Currency       domain.Address `json:"currency,omitempty"`
	SellerProceeds *big.Int       `json:"sellerProceeds,omitempty"`
	PlatformFee    *big.Int       `json:"platformFee,omitempty"`
	FeeRecipient   domain.Address `json:"feeRecipient,omitempty"`
	FeeRateBps     uint32         `json:"feeRateBps"`
	ClaimedAt      time.Time      `json:"claimedAt"`
}

func (s *Settlement) Copy() *Settlement {
	if s == nil {
		return nil
	}
	res := *s
	res.SellerProceeds = domain.CopyInt(s.SellerProceeds)
	res.PlatformFee = domain.CopyInt(s.PlatformFee)
	return &res
}

type Auction struct {
	Id         uint64         `json:"id"`
	Asset      AssetRef       `json:"asset"`
	Seller     domain.Address `json:"seller"`
	StartPrice *big.Int       `json:"startPrice"` // unit of account
	CreatedAt  time.Time      `json:"createdAt"`
	Deadline   time.Time      `json:"deadline"`
	Status     Status         `json:"status"`
	LeadingBid *LeadingBid    `json:"leadingBid,omitempty"`
	Settlement *Settlement    `json:"settlement,omitempty"`
}

// Copy returns a deep copy safe to hand out of the engine.
func (a *Auction) Copy() *Auction {
	res := *a
	res.StartPrice = domain.CopyInt(a.StartPrice)
	res.LeadingBid = a.LeadingBid.Copy()
	res.Settlement = a.Settlement.Copy()
	return &res
}

// IsActive reports whether the auction still accepts bids at now.
func (a *Auction) IsActive(now time.Time) bool {
	return a.Status == StatusOpen && now.Before(a.Deadline)
}

type findAuctionOptions struct {
	Offset     *int
	Limit      *int
	Seller     *domain.Address
	Bidder     *domain.Address
	Status     *Status
	ActiveOnly bool
}

type FindAuctionOptions func(*findAuctionOptions) error

func GetFindAuctionOptions(opts ...FindAuctionOptions) (*findAuctionOptions, error) {
	res := &findAuctionOptions{}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func AuctionWithPagination(offset, limit int) FindAuctionOptions {
	return func(opts *findAuctionOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

func AuctionWithSeller(seller domain.Address) FindAuctionOptions {
	return func(opts *findAuctionOptions) error {
		opts.Seller = seller.ToLowerPtr()
		return nil
	}
}

// AuctionWithBidder matches auctions currently led by bidder.
func AuctionWithBidder(bidder domain.Address) FindAuctionOptions {
	return func(opts *findAuctionOptions) error {
		opts.Bidder = bidder.ToLowerPtr()
		return nil
	}
}

func AuctionWithStatus(status Status) FindAuctionOptions {
	return func(opts *findAuctionOptions) error {
		if !status.IsValid() {
			return domain.ErrBadParamInput
		}
		opts.Status = &status
		return nil
	}
}

// AuctionWithActiveOnly keeps open auctions whose deadline has not passed.
func AuctionWithActiveOnly() FindAuctionOptions {
	return func(opts *findAuctionOptions) error {
		opts.ActiveOnly = true
		return nil
	}
}

// Match reports whether a satisfies the options at now. Pagination is not applied.
func (o *findAuctionOptions) Match(a *Auction, now time.Time) bool {
	if o.Seller != nil && !a.Seller.Equals(*o.Seller) {
		return false
	}
	if o.Bidder != nil && (a.LeadingBid == nil || !a.LeadingBid.Bidder.Equals(*o.Bidder)) {
		return false
	}
	if o.Status != nil && a.Status != *o.Status {
		return false
	}
	if o.ActiveOnly && !a.IsActive(now) {
		return false
	}
	return true
}
