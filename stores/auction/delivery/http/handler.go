package http

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/validator"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/middleware"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

const defaultLimit = 50

type handler struct {
	auction auction.Usecase
	event   auction.EventUsecase
	format  formatter
}

// New registers the auction routes, auth guards every call that acts for the caller.
func New(
	e *echo.Echo,
	auctionUC auction.Usecase,
	eventUC auction.EventUsecase,
	auth echo.MiddlewareFunc,
	unitDecimals int32,
) {
	h := &handler{
		auction: auctionUC,
		event:   eventUC,
		format:  formatter{unitDecimals: unitDecimals},
	}

	ga := e.Group("/auctions")
	ga.POST("", h.createAuction, auth)
	ga.GET("", h.listAuctions)
	ga.GET("/:id", h.getAuction)
	ga.POST("/:id/bids", h.placeBid, auth)
	ga.POST("/:id/end", h.endAuction)
	ga.POST("/:id/claim", h.claim)
	ga.GET("/:id/events", h.getAuctionEvents)

	gr := e.Group("/refunds", auth)
	gr.GET("/:currency", h.getPendingRefund, middleware.IsValidAddress("currency"))
	gr.POST("/:currency/withdraw", h.withdrawRefund, middleware.IsValidAddress("currency"))

	e.GET("/accounts/:address/events", h.getAccountEvents, middleware.IsValidAddress("address"))
	e.GET("/prices/:currency", h.getPrice, middleware.IsValidAddress("currency"))
}

func parseId(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return id, nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return v, nil
}

func caller(c echo.Context) (domain.Address, error) {
	address, ok := authMiddleware.Caller(c)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return address, nil
}

type createParams struct {
	Contract   domain.Address `json:"contract" validate:"required,address"`
	TokenId    domain.TokenId `json:"tokenId" validate:"required"`
	StartPrice string         `json:"startPrice" validate:"required,amount"`
	// Duration is in seconds
	Duration int64 `json:"duration" validate:"required,gt=0"`
}

func (h *handler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	seller, err := caller(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}

	p := &createParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := validator.New().Struct(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	price, err := parseAmount(p.StartPrice)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	asset := auction.AssetRef{Contract: p.Contract, TokenId: p.TokenId}
	id, err := h.auction.CreateAuction(ctx, seller, asset, price, time.Duration(p.Duration)*time.Second)
	if err != nil {
		ctx.WithField("err", err).Warn("auction.CreateAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Id uint64 `json:"id"`
	}{id}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

type listParams struct {
	Seller     domain.Address `query:"seller"`
	Bidder     domain.Address `query:"bidder"`
	Status     auction.Status `query:"status"`
	ActiveOnly bool           `query:"active"`
	Offset     int            `query:"offset"`
	Limit      int            `query:"limit"`
}

func (h *handler) listAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}

	opts := []auction.FindAuctionOptions{}
	if !p.Seller.IsEmpty() {
		opts = append(opts, auction.AuctionWithSeller(p.Seller))
	}
	if !p.Bidder.IsEmpty() {
		opts = append(opts, auction.AuctionWithBidder(p.Bidder))
	}
	if len(p.Status) > 0 {
		opts = append(opts, auction.AuctionWithStatus(p.Status))
	}
	if p.ActiveOnly {
		opts = append(opts, auction.AuctionWithActiveOnly())
	}

	cnt, err := h.auction.CountAuctions(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res, err := h.auction.ListAuctions(ctx, append(opts, auction.AuctionWithPagination(p.Offset, p.Limit))...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, struct {
		Items []*auctionView `json:"items"`
		Count int            `json:"count"`
	}{
		Items: h.format.auctions(res),
		Count: cnt,
	})
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.GetAuction(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.format.auction(a))
}

type bidParams struct {
	Currency domain.Address `json:"currency" validate:"required,address"`
	Amount   string         `json:"amount" validate:"required,amount"`
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	bidder, err := caller(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}
	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := &bidParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := validator.New().Struct(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := parseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.PlaceBid(ctx, id, bidder, p.Currency, amount); err != nil {
		ctx.WithField("err", err).WithField("auctionId", id).Info("auction.PlaceBid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	a, err := h.auction.GetAuction(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, h.format.auction(a))
}

func (h *handler) endAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.EndAuction(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) claim(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	s, err := h.auction.Claim(ctx, id)
	if err != nil {
		ctx.WithField("err", err).WithField("auctionId", id).Warn("auction.Claim failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.format.settlement(s))
}

func (h *handler) getAuctionEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.event.AuctionHistory(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type pageParams struct {
	Offset int `query:"offset"`
	Limit  int `query:"limit"`
}

func (h *handler) getAccountEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &pageParams{}
	if err := c.Bind(p); err != nil || p.Offset < 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}

	res, total, err := h.event.AccountHistory(ctx, domain.Address(c.Param("address")), p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, struct {
		Items []auction.Event `json:"items"`
		Count int             `json:"count"`
	}{res, total})
}

func (h *handler) getPendingRefund(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	bidder, err := caller(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}
	cur := domain.Address(c.Param("currency"))

	return delivery.MakeJsonResp(c, http.StatusOK, struct {
		Currency domain.Address `json:"currency"`
		Amount   string         `json:"amount"`
	}{cur.ToLower(), h.auction.PendingRefund(ctx, bidder, cur).String()})
}

func (h *handler) withdrawRefund(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	bidder, err := caller(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}
	cur := domain.Address(c.Param("currency"))

	amount, err := h.auction.WithdrawRefund(ctx, bidder, cur)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, struct {
		Currency domain.Address `json:"currency"`
		Amount   string         `json:"amount"`
	}{cur.ToLower(), amount.String()})
}

func (h *handler) getPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	amount, err := parseAmount(c.QueryParam("amount"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	cur := domain.Address(c.Param("currency"))

	v, err := h.auction.PriceInUnit(ctx, cur, amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, struct {
		Currency domain.Address `json:"currency"`
		Amount   string         `json:"amount"`
		Value    string         `json:"value"`
		Display  string         `json:"display"`
	}{cur.ToLower(), amount.String(), v.String(), h.format.display(v)})
}
