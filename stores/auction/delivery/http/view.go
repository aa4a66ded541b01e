package http

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
)

// amounts leave the service as base-10 strings, unit of account values also get a
// decimal rendering

type leadingBidView struct {
	Bidder            domain.Address `json:"bidder"`
	Currency          domain.Address `json:"currency"`
	Amount            string         `json:"amount"`
	Normalized        string         `json:"normalized"`
	NormalizedDisplay string         `json:"normalizedDisplay"`
	PlacedAt          time.Time      `json:"placedAt"`
}

type settlementView struct {
	NoBids         bool           `json:"noBids"`
	Winner         domain.Address `json:"winner,omitempty"`
	Currency       domain.Address `json:"currency,omitempty"`
	SellerProceeds string         `json:"sellerProceeds,omitempty"`
	PlatformFee    string         `json:"platformFee,omitempty"`
	FeeRecipient   domain.Address `json:"feeRecipient,omitempty"`
	FeeRateBps     uint32         `json:"feeRateBps"`
	ClaimedAt      time.Time      `json:"claimedAt"`
}

type auctionView struct {
	Id                uint64           `json:"id"`
	Asset             auction.AssetRef `json:"asset"`
	Seller            domain.Address   `json:"seller"`
	StartPrice        string           `json:"startPrice"`
	StartPriceDisplay string           `json:"startPriceDisplay"`
	CreatedAt         time.Time        `json:"createdAt"`
	Deadline          time.Time        `json:"deadline"`
	Status            auction.Status   `json:"status"`
	LeadingBid        *leadingBidView  `json:"leadingBid,omitempty"`
	Settlement        *settlementView  `json:"settlement,omitempty"`
}

type formatter struct {
	unitDecimals int32
}

func (f formatter) display(v *big.Int) string {
	if v == nil {
		return ""
	}
	return decimal.NewFromBigInt(v, -f.unitDecimals).String()
}

func str(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func (f formatter) settlement(s *auction.Settlement) *settlementView {
	if s == nil {
		return nil
	}
	return &settlementView{
		NoBids:         s.NoBids,
		Winner:         s.Winner,
		Currency:       s.Currency,
		SellerProceeds: str(s.SellerProceeds),
		PlatformFee:    str(s.PlatformFee),
		FeeRecipient:   s.FeeRecipient,
		FeeRateBps:     s.FeeRateBps,
		ClaimedAt:      s.ClaimedAt,
	}
}

func (f formatter) auction(a *auction.Auction) *auctionView {
	res := &auctionView{
		Id:                a.Id,
		Asset:             a.Asset,
		Seller:            a.Seller,
		StartPrice:        str(a.StartPrice),
		StartPriceDisplay: f.display(a.StartPrice),
		CreatedAt:         a.CreatedAt,
		Deadline:          a.Deadline,
		Status:            a.Status,
		Settlement:        f.settlement(a.Settlement),
	}
	if b := a.LeadingBid; b != nil {
		res.LeadingBid = &leadingBidView{
			Bidder:            b.Bidder,
			Currency:          b.Currency,
			Amount:            str(b.Amount),
			Normalized:        str(b.Normalized),
			NormalizedDisplay: f.display(b.Normalized),
			PlacedAt:          b.PlacedAt,
		}
	}
	return res
}

func (f formatter) auctions(as []*auction.Auction) []*auctionView {
	res := make([]*auctionView, 0, len(as))
	for _, a := range as {
		res = append(res, f.auction(a))
	}
	return res
}
