package usecase

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
)

func (t *testsuite) TestConcurrentBids() {
	id := t.create()

	bidders := []domain.Address{}
	for i := 0; i < 8; i++ {
		b := domain.Address(fmt.Sprintf("0xb1dde%035d", i))
		t.fund(b)
		bidders = append(bidders, b)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []int64
	)
	for i, b := range bidders {
		wg.Add(1)
		go func(i int, b domain.Address) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				amount := int64(600 + j*50 + i)
				err := t.bid(id, b, curX, amount)
				if err == nil {
					mu.Lock()
					accepted = append(accepted, amount)
					mu.Unlock()
					continue
				}
				if !errors.Is(err, auction.ErrBidTooLow) {
					t.Fail("unexpected error", err.Error())
				}
			}
		}(i, b)
	}
	wg.Wait()

	max := int64(0)
	for _, a := range accepted {
		if a > max {
			max = a
		}
	}
	leader := t.leader(id)
	t.Equal(max, leader.Amount.Int64())
	t.Equal(big.NewInt(2*max), leader.Normalized)

	// everything not held for the leader is back with its bidder
	total := int64(0)
	for _, b := range bidders {
		total += t.balance(curX, b) + t.im.PendingRefund(mockCtx, b, curX).Int64()
	}
	t.Equal(int64(len(bidders))*initialFunds-max, total)
	t.Equal(max, t.balance(curX, escrow))

	t.Len(t.events.ofType(auction.EventBidPlaced), len(accepted))
	t.Len(t.events.ofType(auction.EventRefundPushed), len(accepted)-1)
	for i, e := range t.events.events {
		t.Equal(uint64(i), e.Seq)
	}

	// accepted bids are strictly increasing in the order they were published
	prev := big.NewInt(0)
	for _, e := range t.events.ofType(auction.EventBidPlaced) {
		v, ok := new(big.Int).SetString(e.Normalized, 10)
		t.Require().True(ok)
		t.Equal(1, v.Cmp(prev))
		prev = v
	}
}

func (t *testsuite) TestConcurrentWithdrawals() {
	id := t.create()
	t.NoError(t.bid(id, alice, curX, 1000))
	t.ledger.Reject(alice, true)
	t.NoError(t.bid(id, bob, curX, 1500))
	t.ledger.Reject(alice, false)
	t.Equal(big.NewInt(1000), t.im.PendingRefund(mockCtx, alice, curX))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		paid    []*big.Int
		nothing int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			amount, err := t.im.WithdrawRefund(mockCtx, alice, curX)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				paid = append(paid, amount)
			} else if err == auction.ErrNothingToWithdraw {
				nothing++
			}
		}()
	}
	wg.Wait()

	t.Require().Len(paid, 1)
	t.Equal(big.NewInt(1000), paid[0])
	t.Equal(15, nothing)
	t.Equal(initialFunds, t.balance(curX, alice))
	t.Equal(int64(1500), t.balance(curX, escrow))
}

func (t *testsuite) TestConcurrentClaims() {
	id := t.endWithBid(carol, 1500)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		settled int
		refused int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := t.im.Claim(mockCtx, id)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				settled++
			} else if err == auction.ErrAlreadyClaimed || err == auction.ErrClaimInProgress {
				refused++
			}
		}()
	}
	wg.Wait()

	t.Equal(1, settled)
	t.Equal(15, refused)
	t.Equal(int64(1463), t.balance(curX, seller))
	t.Equal(int64(37), t.balance(curX, feeRecipient))
	t.Equal(int64(0), t.balance(curX, escrow))
	t.Len(t.events.ofType(auction.EventAuctionClaimed), 1)
}

func (t *testsuite) TestConcurrentCreateSameAsset() {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := t.im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1), week)
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	t.Equal(1, created)
	t.Equal(uint64(1), t.im.AuctionCount(mockCtx))
}
