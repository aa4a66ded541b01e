package auction

import (
	"math/big"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

// CustodyProvider moves non-fungible items in and out of the engine's escrow.
type CustodyProvider interface {
	TakeCustody(c ctx.Ctx, asset AssetRef, from domain.Address) error
	ReleaseCustody(c ctx.Ctx, asset AssetRef, to domain.Address) error
}

// ValueTransfer moves fungible value, native coin when currency is domain.NativeCurrency.
type ValueTransfer interface {
	Pull(c ctx.Ctx, currency domain.Address, from domain.Address, amount *big.Int) error
	Push(c ctx.Ctx, currency domain.Address, to domain.Address, amount *big.Int) error
}
