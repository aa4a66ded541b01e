package settings

import "errors"

var (
	ErrNotInitialized      = errors.New("settlement configuration is not initialized")
	ErrAlreadyInitialized  = errors.New("settlement configuration is already initialized")
	ErrUnauthorized        = errors.New("caller is not the configurator")
	ErrInvalidFeeRate      = errors.New("fee rate exceeds the maximum")
	ErrInvalidFeeRecipient = errors.New("invalid fee recipient")
	ErrInvalidConfigurator = errors.New("invalid configurator")
)
