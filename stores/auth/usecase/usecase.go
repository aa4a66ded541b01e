package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/ethereum"
	"github.com/x-xyz/settlement/domain"
)

const tokenTTL = 24 * time.Hour

var timeNow = time.Now

type impl struct {
	jwtSecret  []byte
	signingMsg string
}

// New takes the message template accounts sign to log in, %s is replaced by the address.
func New(jwtSecret string, signingMsg string) domain.AuthUsecase {
	return &impl{
		jwtSecret:  []byte(jwtSecret),
		signingMsg: signingMsg,
	}
}

func (im *impl) SigningMessage(address domain.Address) string {
	if strings.Contains(im.signingMsg, "%s") {
		return fmt.Sprintf(im.signingMsg, address.ToLower())
	}
	return im.signingMsg
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if address.IsEmpty() {
		return "", domain.ErrInvalidAddress
	}

	ok, err := ethereum.ValidateMsgSignature([]byte(im.SigningMessage(address)), signature, address)
	if err != nil {
		ctx.WithField("err", err).WithField("address", address).Warn("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	}
	if !ok {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: timeNow().Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return claims.Address, nil
		}
	}

	if err == nil {
		err = domain.ErrUnauthenticated
	}
	return "", err
}
