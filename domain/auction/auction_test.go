package auction

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/settlement/domain"
)

func TestAuctionCopyIsDeep(t *testing.T) {
	a := &Auction{
		Id:         1,
		StartPrice: big.NewInt(10),
		LeadingBid: &LeadingBid{Amount: big.NewInt(20), Normalized: big.NewInt(40)},
	}
	cp := a.Copy()
	cp.StartPrice.SetInt64(11)
	cp.LeadingBid.Amount.SetInt64(21)
	cp.LeadingBid.Bidder = "0xother"

	assert.Equal(t, int64(10), a.StartPrice.Int64())
	assert.Equal(t, int64(20), a.LeadingBid.Amount.Int64())
	assert.Equal(t, domain.Address(""), a.LeadingBid.Bidder)
	assert.Nil(t, cp.Settlement)
}

func TestFindAuctionOptionsMatch(t *testing.T) {
	now := time.Unix(1000, 0)
	a := &Auction{
		Seller:     "0xseller",
		Status:     StatusOpen,
		Deadline:   now.Add(time.Hour),
		LeadingBid: &LeadingBid{Bidder: "0xbidder"},
	}

	cases := []struct {
		desc string
		opts []FindAuctionOptions
		want bool
	}{
		{"no filter", nil, true},
		{"seller matches case-insensitively", []FindAuctionOptions{AuctionWithSeller("0xSELLER")}, true},
		{"other seller", []FindAuctionOptions{AuctionWithSeller("0xnobody")}, false},
		{"bidder", []FindAuctionOptions{AuctionWithBidder("0xbidder")}, true},
		{"status", []FindAuctionOptions{AuctionWithStatus(StatusEnded)}, false},
		{"active", []FindAuctionOptions{AuctionWithActiveOnly()}, true},
	}
	for _, c := range cases {
		o, err := GetFindAuctionOptions(c.opts...)
		require.NoError(t, err, c.desc)
		assert.Equal(t, c.want, o.Match(a, now), c.desc)
	}

	o, err := GetFindAuctionOptions(AuctionWithActiveOnly())
	require.NoError(t, err)
	assert.False(t, o.Match(a, a.Deadline), "deadline itself is not active")

	_, err = GetFindAuctionOptions(AuctionWithStatus("bogus"))
	assert.Equal(t, domain.ErrBadParamInput, err)
}
