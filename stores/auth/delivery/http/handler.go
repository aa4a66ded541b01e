package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/validator"
	"github.com/x-xyz/settlement/domain"
)

type authHandler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.POST("/sign", handler.sign)
	g.GET("/signingMsg/:address", handler.getSigningMsg)
}

type signParams struct {
	Address   domain.Address `json:"address" validate:"required,address"`
	Signature string         `json:"signature" validate:"required"`
}

// sign issues a bearer token once the signature over the signing message checks out
func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &signParams{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err.Error())
	}

	if err := validator.New().Struct(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if tkn, err := h.auth.SignToken(ctx, p.Address, p.Signature); err != nil {
		ctx.WithField("err", err).Warn("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}

func (h *authHandler) getSigningMsg(c echo.Context) error {
	address := domain.Address(c.Param("address"))
	if !validator.IsValidAddress(address.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}
	res := struct {
		Msg string `json:"msg"`
	}{
		Msg: h.auth.SigningMessage(address),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
