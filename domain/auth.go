package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/settlement/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken issues a token for address once signature proves ownership of it.
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
	SigningMessage(address Address) string
}
