package usecase

import (
	"math/big"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"golang.org/x/xerrors"
)

// credit must be called with mu held
func (im *impl) credit(k refundKey, amount *big.Int) {
	if cur, ok := im.pending[k]; ok {
		im.pending[k] = new(big.Int).Add(cur, amount)
		return
	}
	im.pending[k] = new(big.Int).Set(amount)
}

// debit must be called with mu held, it reports false when less than amount is pending
func (im *impl) debit(k refundKey, amount *big.Int) bool {
	cur, ok := im.pending[k]
	if !ok || cur.Cmp(amount) < 0 {
		return false
	}
	rest := new(big.Int).Sub(cur, amount)
	if rest.Sign() == 0 {
		delete(im.pending, k)
	} else {
		im.pending[k] = rest
	}
	return true
}

// pushRefund moves a freshly credited refund out to its bidder. On failure the
// amount goes back to the pending ledger for WithdrawRefund.
func (im *impl) pushRefund(c ctx.Ctx, id uint64, bidder, cur domain.Address, amount *big.Int) {
	k := refundKey{bidder, cur}

	im.mu.Lock()
	ok := im.debit(k, amount)
	im.mu.Unlock()
	if !ok {
		// already withdrawn by the bidder
		return
	}

	if err := im.transfer.Push(c, cur, bidder, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id, "bidder": bidder, "currency": cur, "amount": amount}).Warn("refund push failed, credited")
		im.met.BumpSum("refund.credited", 1, "currency", string(cur))

		im.mu.Lock()
		im.credit(k, amount)
		im.stage(&auction.Event{
			Type:      auction.EventRefundCredited,
			AuctionId: idPtr(id),
			Account:   bidder,
			Currency:  cur,
			Amount:    amount.String(),
		})
		im.mu.Unlock()
		im.flush(c)
		return
	}

	im.emit(c, &auction.Event{
		Type:      auction.EventRefundPushed,
		AuctionId: idPtr(id),
		Account:   bidder,
		Currency:  cur,
		Amount:    amount.String(),
	})
}

func (im *impl) WithdrawRefund(c ctx.Ctx, bidder, cur domain.Address) (*big.Int, error) {
	k := refundKey{bidder.ToLower(), cur.ToLower()}

	im.mu.Lock()
	amount, ok := im.pending[k]
	if !ok || amount.Sign() == 0 {
		im.mu.Unlock()
		return nil, auction.ErrNothingToWithdraw
	}
	// zeroed before the push so concurrent withdrawals cannot both pay
	delete(im.pending, k)
	im.mu.Unlock()

	if err := im.transfer.Push(c, k.currency, k.bidder, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "bidder": k.bidder, "currency": k.currency, "amount": amount}).Warn("transfer.Push failed")

		im.mu.Lock()
		im.credit(k, amount)
		im.mu.Unlock()
		return nil, xerrors.Errorf("withdraw %s %s: %w", amount, k.currency, auction.ErrTransferFailed)
	}

	im.emit(c, &auction.Event{
		Type:     auction.EventRefundWithdrawn,
		Account:  k.bidder,
		Currency: k.currency,
		Amount:   amount.String(),
	})
	return new(big.Int).Set(amount), nil
}

func (im *impl) PendingRefund(c ctx.Ctx, bidder, cur domain.Address) *big.Int {
	im.mu.Lock()
	defer im.mu.Unlock()

	if amount, ok := im.pending[refundKey{bidder.ToLower(), cur.ToLower()}]; ok {
		return new(big.Int).Set(amount)
	}
	return new(big.Int)
}
