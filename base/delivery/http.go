package delivery

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/currency"
	"github.com/x-xyz/settlement/domain/settings"
	"github.com/x-xyz/settlement/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errStatus = []struct {
	errs   []error
	status int
}{
	{
		[]error{domain.ErrNotFound, query.ErrNotFound, auction.ErrAuctionNotFound},
		http.StatusNotFound,
	},
	{
		[]error{domain.ErrUnauthenticated, domain.ErrInvalidSignature},
		http.StatusUnauthorized,
	},
	{
		[]error{settings.ErrUnauthorized},
		http.StatusForbidden,
	},
	{
		[]error{
			domain.ErrBadParamInput, domain.ErrInvalidNumberFormat, domain.ErrInvalidAmount, domain.ErrInvalidAddress,
			auction.ErrInvalidDuration, auction.ErrInvalidStartPrice, auction.ErrInvalidAsset, auction.ErrSelfBid,
			currency.ErrUnregisteredCurrency, currency.ErrInvalidRegistration,
			settings.ErrInvalidFeeRate, settings.ErrInvalidFeeRecipient, settings.ErrInvalidConfigurator,
		},
		http.StatusBadRequest,
	},
	{
		[]error{
			auction.ErrAuctionNotOpen, auction.ErrAuctionExpired, auction.ErrAuctionNotEnded, auction.ErrAlreadyClaimed,
			auction.ErrDeadlineNotReached, auction.ErrClaimInProgress, auction.ErrAssetInCustody, auction.ErrBidTooLow,
			auction.ErrNothingToWithdraw, settings.ErrNotInitialized, settings.ErrAlreadyInitialized,
		},
		http.StatusConflict,
	},
	{
		[]error{
			auction.ErrTransferFailed, auction.ErrPayoutFailed, auction.ErrCustodyFailed,
			currency.ErrInvalidPrice, currency.ErrStalePrice, currency.ErrNoPriceFeed,
		},
		http.StatusBadGateway,
	},
}

// StatusOf maps a usecase error to its HTTP status, falling back to 500.
func StatusOf(err error) int {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	for _, m := range errStatus {
		for _, e := range m.errs {
			if errors.Is(err, e) {
				return m.status
			}
		}
	}
	return http.StatusInternalServerError
}

// MakeJsonResp writes data wrapped in a JsonResponse. When data is an error the status
// is derived from it unless the caller already picked a 4xx.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if s := StatusOf(err); s != http.StatusInternalServerError || status < 400 {
			status = s
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
