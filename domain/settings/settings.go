package settings

import (
	"math/big"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/currency"
)

const (
	// BpsDenominator is 100% in basis points
	BpsDenominator = 10000
	// MaxFeeRateBps caps the platform fee at 10%
	MaxFeeRateBps = 1000
	// DefaultFeeRateBps is 2.5%
	DefaultFeeRateBps = 250
)

type FeeConfig struct {
	RateBps   uint32         `json:"rateBps"`
	Recipient domain.Address `json:"recipient"`
}

func (f FeeConfig) Validate() error {
	if f.RateBps > MaxFeeRateBps {
		return ErrInvalidFeeRate
	}
	if f.Recipient.IsEmpty() || f.Recipient.Equals(domain.EmptyAddress) {
		return ErrInvalidFeeRecipient
	}
	return nil
}

// Split divides amount into the platform fee, rounded down, and the seller's remainder.
func (f FeeConfig) Split(amount *big.Int) (fee *big.Int, proceeds *big.Int) {
	fee = new(big.Int).Mul(amount, big.NewInt(int64(f.RateBps)))
	fee.Quo(fee, big.NewInt(BpsDenominator))
	proceeds = new(big.Int).Sub(amount, fee)
	return fee, proceeds
}

// Snapshot is a read-only view of the whole configuration.
type Snapshot struct {
	Initialized  bool                    `json:"initialized"`
	Configurator domain.Address          `json:"configurator"`
	Fee          FeeConfig               `json:"fee"`
	Currencies   []currency.Registration `json:"currencies"`
}

// Store holds process-wide settlement configuration. Mutations are
// restricted to the configurator, an auction cannot be created before Init.
type Store interface {
	currency.Registry

	Init(c ctx.Ctx, configurator domain.Address, fee FeeConfig) error
	Initialized() bool
	Snapshot(c ctx.Ctx) *Snapshot

	RegisterCurrency(c ctx.Ctx, caller domain.Address, reg currency.Registration) error
	Currencies(c ctx.Ctx) []currency.Registration

	Fee(c ctx.Ctx) (FeeConfig, error)
	SetFeeRate(c ctx.Ctx, caller domain.Address, bps uint32) error
	SetFeeRecipient(c ctx.Ctx, caller domain.Address, recipient domain.Address) error

	TransferConfigurator(c ctx.Ctx, caller domain.Address, next domain.Address) error
}
