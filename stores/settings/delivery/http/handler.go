package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/validator"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/currency"
	"github.com/x-xyz/settlement/domain/settings"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	settings settings.Store
}

// New registers the configuration routes, every mutation goes through auth and is
// checked against the configurator by the store.
func New(e *echo.Echo, store settings.Store, auth echo.MiddlewareFunc) {
	h := &handler{store}

	gs := e.Group("/settings")
	gs.GET("", h.getSettings)
	gs.PUT("/feeRate", h.setFeeRate, auth)
	gs.PUT("/feeRecipient", h.setFeeRecipient, auth)
	gs.POST("/currencies", h.registerCurrency, auth)
	gs.PUT("/configurator", h.transferConfigurator, auth)
}

func (h *handler) getSettings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.settings.Snapshot(ctx))
}

// bind reads the caller and the validated body, on failure the response is already written
func bind(c echo.Context, p interface{}) (domain.Address, error) {
	caller, ok := authMiddleware.Caller(c)
	if !ok {
		return "", delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthenticated)
	}
	if err := c.Bind(p); err != nil {
		return "", delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := validator.New().Struct(p); err != nil {
		return "", delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return caller, nil
}

func (h *handler) setFeeRate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		RateBps *uint32 `json:"rateBps" validate:"required"`
	}{}
	caller, err := bind(c, p)
	if len(caller) == 0 {
		return err
	}

	if err := h.settings.SetFeeRate(ctx, caller, *p.RateBps); err != nil {
		ctx.WithField("err", err).WithField("caller", caller).Warn("settings.SetFeeRate failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.settings.Snapshot(ctx))
}

func (h *handler) setFeeRecipient(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		Recipient domain.Address `json:"recipient" validate:"required,address"`
	}{}
	caller, err := bind(c, p)
	if len(caller) == 0 {
		return err
	}

	if err := h.settings.SetFeeRecipient(ctx, caller, p.Recipient); err != nil {
		ctx.WithField("err", err).WithField("caller", caller).Warn("settings.SetFeeRecipient failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.settings.Snapshot(ctx))
}

func (h *handler) registerCurrency(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		Currency      domain.Address `json:"currency" validate:"required,address"`
		Symbol        string         `json:"symbol"`
		Feed          domain.Address `json:"feed" validate:"required,address"`
		TokenDecimals int32          `json:"tokenDecimals" validate:"gte=0,lte=77"`
	}{}
	caller, err := bind(c, p)
	if len(caller) == 0 {
		return err
	}

	reg := currency.Registration{
		Currency:      p.Currency,
		Symbol:        p.Symbol,
		Feed:          p.Feed,
		TokenDecimals: p.TokenDecimals,
	}
	if err := h.settings.RegisterCurrency(ctx, caller, reg); err != nil {
		ctx.WithField("err", err).WithField("caller", caller).Warn("settings.RegisterCurrency failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, h.settings.Currencies(ctx))
}

func (h *handler) transferConfigurator(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		Configurator domain.Address `json:"configurator" validate:"required,address"`
	}{}
	caller, err := bind(c, p)
	if len(caller) == 0 {
		return err
	}

	if err := h.settings.TransferConfigurator(ctx, caller, p.Configurator); err != nil {
		ctx.WithField("err", err).WithField("caller", caller).Warn("settings.TransferConfigurator failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.settings.Snapshot(ctx))
}
