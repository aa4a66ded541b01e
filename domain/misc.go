package domain

import (
	"math/big"
	"strings"
)

var (
	Big10 = big.NewInt(10)
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// NativeCurrency identifies the chain's native coin wherever a currency is expected.
const NativeCurrency = EmptyAddress

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) IsNative() bool {
	return a.Equals(NativeCurrency)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ParseAmount parses a base-10 integer amount, rejecting anything that is not a whole number.
func ParseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}

// Pow10 returns 10^n for n >= 0.
func Pow10(n int32) *big.Int {
	return new(big.Int).Exp(Big10, big.NewInt(int64(n)), nil)
}

// CopyInt returns an independent copy, nil stays nil.
func CopyInt(n *big.Int) *big.Int {
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}
