package usecase

import (
	"math/big"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/currency"
)

var timeNow = time.Now

type NormalizerCfg struct {
	Registry currency.Registry
	Prices   currency.PriceSource
	// UnitDecimals is the fixed-point scale of the unit of account
	UnitDecimals int32
	// MaxPriceAge rejects older readings, zero disables the age check
	MaxPriceAge time.Duration
}

type normalizer struct {
	registry     currency.Registry
	prices       currency.PriceSource
	unitDecimals int32
	maxPriceAge  time.Duration
}

func NewNormalizer(cfg *NormalizerCfg) currency.Normalizer {
	return &normalizer{
		registry:     cfg.Registry,
		prices:       cfg.Prices,
		unitDecimals: cfg.UnitDecimals,
		maxPriceAge:  cfg.MaxPriceAge,
	}
}

// Normalize computes
//
//     amount * answer * 10^unitDecimals / (10^priceDecimals * 10^tokenDecimals)
//
// multiplying before the single division so precision is lost only once.
func (im *normalizer) Normalize(c ctx.Ctx, cur domain.Address, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	reg, err := im.registry.Currency(c, cur)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "currency": cur}).Warn("registry.Currency failed")
		return nil, err
	}

	price, err := im.prices.CurrentPrice(c, reg.Feed)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "currency": cur, "feed": reg.Feed}).Error("prices.CurrentPrice failed")
		return nil, err
	}

	if err := im.check(price); err != nil {
		c.WithFields(log.Fields{"err": err, "currency": cur, "feed": reg.Feed, "price": price}).Warn("rejected oracle price")
		return nil, err
	}

	num := new(big.Int).Mul(amount, price.Answer)
	num.Mul(num, domain.Pow10(im.unitDecimals))
	den := new(big.Int).Mul(domain.Pow10(price.Decimals), domain.Pow10(reg.TokenDecimals))

	return num.Quo(num, den), nil
}

func (im *normalizer) check(price *currency.Price) error {
	if price == nil || price.Answer == nil || price.Answer.Sign() <= 0 {
		return currency.ErrInvalidPrice
	}
	if price.Decimals < 0 {
		return currency.ErrInvalidPrice
	}
	if price.UpdatedAt.IsZero() {
		return currency.ErrStalePrice
	}
	if im.maxPriceAge > 0 && timeNow().Sub(price.UpdatedAt) > im.maxPriceAge {
		return currency.ErrStalePrice
	}
	return nil
}
