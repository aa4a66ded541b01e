package ledger

import (
	"math/big"
	"sync"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
)

type balanceKey struct {
	currency domain.Address
	account  domain.Address
}

// Ledger is an in-process asset registry and multi-currency balance sheet. It acts as
// the custody provider and value transfer for the engine when no chain adapter is
// configured, escrow is the engine's own account.
type Ledger struct {
	mu         sync.Mutex
	escrow     domain.Address
	owners     map[auction.AssetRef]domain.Address
	balances   map[balanceKey]*big.Int
	allowances map[balanceKey]*big.Int
	rejecting  map[domain.Address]bool
}

func New(escrow domain.Address) *Ledger {
	return &Ledger{
		escrow:     escrow.ToLower(),
		owners:     make(map[auction.AssetRef]domain.Address),
		balances:   make(map[balanceKey]*big.Int),
		allowances: make(map[balanceKey]*big.Int),
		rejecting:  make(map[domain.Address]bool),
	}
}

func (l *Ledger) Escrow() domain.Address {
	return l.escrow
}

// Mint registers a new asset owned by owner, replacing any previous owner.
func (l *Ledger) Mint(asset auction.AssetRef, owner domain.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.owners[asset.ToLower()] = owner.ToLower()
}

func (l *Ledger) OwnerOf(asset auction.AssetRef) (domain.Address, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.owners[asset.ToLower()]
	return o, ok
}

// Credit adds amount of cur to account out of thin air.
func (l *Ledger) Credit(cur, account domain.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.add(l.balances, balanceKey{cur.ToLower(), account.ToLower()}, amount)
}

// Approve sets how much of cur the escrow may pull from owner.
func (l *Ledger) Approve(cur, owner domain.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowances[balanceKey{cur.ToLower(), owner.ToLower()}] = new(big.Int).Set(amount)
}

func (l *Ledger) BalanceOf(cur, account domain.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.get(l.balances, balanceKey{cur.ToLower(), account.ToLower()})
}

// Reject makes account refuse incoming pushes and asset releases while on is true.
func (l *Ledger) Reject(account domain.Address, on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if on {
		l.rejecting[account.ToLower()] = true
	} else {
		delete(l.rejecting, account.ToLower())
	}
}

func (l *Ledger) TakeCustody(c ctx.Ctx, asset auction.AssetRef, from domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	asset = asset.ToLower()
	owner, ok := l.owners[asset]
	if !ok {
		return ErrUnknownAsset
	}
	if owner != from.ToLower() {
		c.WithFields(log.Fields{"asset": asset, "owner": owner, "from": from}).Warn("custody from non owner")
		return ErrNotOwner
	}
	l.owners[asset] = l.escrow
	return nil
}

func (l *Ledger) ReleaseCustody(c ctx.Ctx, asset auction.AssetRef, to domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	asset = asset.ToLower()
	owner, ok := l.owners[asset]
	if !ok {
		return ErrUnknownAsset
	}
	if owner != l.escrow {
		return ErrNotOwner
	}
	if l.rejecting[to.ToLower()] {
		return ErrRejected
	}
	l.owners[asset] = to.ToLower()
	return nil
}

// Pull moves amount from the bidder to escrow. Token pulls spend the allowance
// given to escrow, native coin is attached to the bid itself and needs none.
func (l *Ledger) Pull(c ctx.Ctx, cur, from domain.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	src := balanceKey{cur.ToLower(), from.ToLower()}
	native := cur.IsNative()
	if !native && l.get(l.allowances, src).Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if l.get(l.balances, src).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if !native {
		l.sub(l.allowances, src, amount)
	}
	l.sub(l.balances, src, amount)
	l.add(l.balances, balanceKey{cur.ToLower(), l.escrow}, amount)
	return nil
}

func (l *Ledger) Push(c ctx.Ctx, cur, to domain.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rejecting[to.ToLower()] {
		return ErrRejected
	}
	src := balanceKey{cur.ToLower(), l.escrow}
	if l.get(l.balances, src).Cmp(amount) < 0 {
		c.WithFields(log.Fields{"currency": cur, "amount": amount}).Error("escrow underfunded")
		return ErrInsufficientBalance
	}
	l.sub(l.balances, src, amount)
	l.add(l.balances, balanceKey{cur.ToLower(), to.ToLower()}, amount)
	return nil
}

func (l *Ledger) get(m map[balanceKey]*big.Int, k balanceKey) *big.Int {
	if v, ok := m[k]; ok {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

func (l *Ledger) add(m map[balanceKey]*big.Int, k balanceKey, amount *big.Int) {
	m[k] = new(big.Int).Add(l.get(m, k), amount)
}

func (l *Ledger) sub(m map[balanceKey]*big.Int, k balanceKey, amount *big.Int) {
	m[k] = new(big.Int).Sub(l.get(m, k), amount)
}
