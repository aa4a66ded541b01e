package usecase

import (
	"sort"
	"sync"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/currency"
	"github.com/x-xyz/settlement/domain/settings"
)

type impl struct {
	mu           sync.RWMutex
	initialized  bool
	configurator domain.Address
	fee          settings.FeeConfig
	currencies   map[domain.Address]currency.Registration
}

func New() settings.Store {
	return &impl{
		currencies: make(map[domain.Address]currency.Registration),
	}
}

func (im *impl) Init(c ctx.Ctx, configurator domain.Address, fee settings.FeeConfig) error {
	if configurator.IsEmpty() {
		return settings.ErrInvalidConfigurator
	}
	if err := fee.Validate(); err != nil {
		c.WithFields(log.Fields{"err": err, "fee": fee}).Error("fee.Validate failed")
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	if im.initialized {
		return settings.ErrAlreadyInitialized
	}
	im.configurator = configurator.ToLower()
	im.fee = settings.FeeConfig{RateBps: fee.RateBps, Recipient: fee.Recipient.ToLower()}
	im.initialized = true

	c.WithFields(log.Fields{"configurator": im.configurator, "fee": im.fee}).Info("settlement configuration initialized")
	return nil
}

func (im *impl) Initialized() bool {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.initialized
}

func (im *impl) Snapshot(c ctx.Ctx) *settings.Snapshot {
	currencies := im.Currencies(c)

	im.mu.RLock()
	defer im.mu.RUnlock()
	return &settings.Snapshot{
		Initialized:  im.initialized,
		Configurator: im.configurator,
		Fee:          im.fee,
		Currencies:   currencies,
	}
}

// authorize must be called with im.mu held.
func (im *impl) authorize(caller domain.Address) error {
	if !im.initialized {
		return settings.ErrNotInitialized
	}
	if !im.configurator.Equals(caller) {
		return settings.ErrUnauthorized
	}
	return nil
}

func (im *impl) RegisterCurrency(c ctx.Ctx, caller domain.Address, reg currency.Registration) error {
	if err := reg.Validate(); err != nil {
		c.WithFields(log.Fields{"err": err, "registration": reg}).Error("reg.Validate failed")
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	if err := im.authorize(caller); err != nil {
		c.WithFields(log.Fields{"err": err, "caller": caller}).Warn("authorize failed")
		return err
	}

	reg.Currency = reg.Currency.ToLower()
	reg.Feed = reg.Feed.ToLower()
	im.currencies[reg.Currency] = reg

	c.WithField("registration", reg).Info("currency registered")
	return nil
}

func (im *impl) Currency(c ctx.Ctx, addr domain.Address) (*currency.Registration, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	reg, ok := im.currencies[addr.ToLower()]
	if !ok {
		return nil, currency.ErrUnregisteredCurrency
	}
	return &reg, nil
}

func (im *impl) Currencies(c ctx.Ctx) []currency.Registration {
	im.mu.RLock()
	defer im.mu.RUnlock()

	res := make([]currency.Registration, 0, len(im.currencies))
	for _, reg := range im.currencies {
		res = append(res, reg)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Currency < res[j].Currency
	})
	return res
}

func (im *impl) Fee(c ctx.Ctx) (settings.FeeConfig, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	if !im.initialized {
		return settings.FeeConfig{}, settings.ErrNotInitialized
	}
	return im.fee, nil
}

func (im *impl) SetFeeRate(c ctx.Ctx, caller domain.Address, bps uint32) error {
	if bps > settings.MaxFeeRateBps {
		return settings.ErrInvalidFeeRate
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	if err := im.authorize(caller); err != nil {
		c.WithFields(log.Fields{"err": err, "caller": caller}).Warn("authorize failed")
		return err
	}
	im.fee.RateBps = bps

	c.WithField("rateBps", bps).Info("fee rate updated")
	return nil
}

func (im *impl) SetFeeRecipient(c ctx.Ctx, caller domain.Address, recipient domain.Address) error {
	if err := (settings.FeeConfig{Recipient: recipient}).Validate(); err != nil {
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	if err := im.authorize(caller); err != nil {
		c.WithFields(log.Fields{"err": err, "caller": caller}).Warn("authorize failed")
		return err
	}
	im.fee.Recipient = recipient.ToLower()

	c.WithField("recipient", im.fee.Recipient).Info("fee recipient updated")
	return nil
}

func (im *impl) TransferConfigurator(c ctx.Ctx, caller domain.Address, next domain.Address) error {
	if next.IsEmpty() || next.Equals(domain.EmptyAddress) {
		return settings.ErrInvalidConfigurator
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	if err := im.authorize(caller); err != nil {
		c.WithFields(log.Fields{"err": err, "caller": caller}).Warn("authorize failed")
		return err
	}
	im.configurator = next.ToLower()

	c.WithField("configurator", im.configurator).Info("configurator transferred")
	return nil
}
