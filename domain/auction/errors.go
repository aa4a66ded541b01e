package auction

import "errors"

var (
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrAuctionNotOpen     = errors.New("auction is not open")
	ErrAuctionExpired     = errors.New("auction deadline has passed")
	ErrAuctionNotEnded    = errors.New("auction has not ended")
	ErrAlreadyClaimed     = errors.New("auction already claimed")
	ErrDeadlineNotReached = errors.New("auction deadline not reached")
	ErrClaimInProgress    = errors.New("auction claim in progress")

	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidStartPrice = errors.New("start price must be positive")
	ErrInvalidAsset      = errors.New("invalid asset reference")
	ErrAssetInCustody    = errors.New("asset is already escrowed by an unclaimed auction")
	ErrCustodyFailed     = errors.New("asset custody transfer failed")

	ErrSelfBid           = errors.New("seller cannot bid on own auction")
	ErrBidTooLow         = errors.New("bid does not exceed start price and leading bid")
	ErrTransferFailed    = errors.New("value transfer failed")
	ErrNothingToWithdraw = errors.New("no pending refund")
	ErrPayoutFailed      = errors.New("settlement payout failed")
)
