package currency

import (
	"math/big"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

// Registration binds a currency to the price feed that quotes it in the unit of account.
type Registration struct {
	Currency      domain.Address `json:"currency" bson:"currency"`
	Symbol        string         `json:"symbol" bson:"symbol"`
	Feed          domain.Address `json:"feed" bson:"feed"`
	TokenDecimals int32          `json:"tokenDecimals" bson:"tokenDecimals"` // decimals of the currency itself
}

func (r *Registration) Validate() error {
	if r.Currency.IsEmpty() || r.Feed.IsEmpty() {
		return ErrInvalidRegistration
	}
	if r.TokenDecimals < 0 || r.TokenDecimals > 77 {
		return ErrInvalidRegistration
	}
	return nil
}

// Price is one oracle reading: Answer / 10^Decimals units of account per whole currency unit.
type Price struct {
	Answer    *big.Int  `json:"answer"`
	Decimals  int32     `json:"decimals"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PriceSource interface {
	CurrentPrice(c ctx.Ctx, feed domain.Address) (*Price, error)
}

// Registry resolves currency registrations.
type Registry interface {
	Currency(c ctx.Ctx, currency domain.Address) (*Registration, error)
}

type Normalizer interface {
	// Normalize converts amount of currency into the unit of account using the live price.
	Normalize(c ctx.Ctx, currency domain.Address, amount *big.Int) (*big.Int, error)
}
