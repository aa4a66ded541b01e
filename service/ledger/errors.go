package ledger

import "errors"

var (
	ErrNotOwner              = errors.New("asset not owned by account")
	ErrUnknownAsset          = errors.New("unknown asset")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrRejected              = errors.New("recipient rejected transfer")
)
