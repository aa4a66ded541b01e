package currency

import "errors"

var (
	ErrUnregisteredCurrency = errors.New("currency is not registered")
	ErrInvalidRegistration  = errors.New("invalid currency registration")
	ErrInvalidPrice         = errors.New("oracle reported a non-positive price")
	ErrStalePrice           = errors.New("oracle price is stale")
	ErrNoPriceFeed          = errors.New("no price for feed")
)
