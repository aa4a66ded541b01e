package pricefeed

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/currency"
)

var (
	mockCtx = ctx.Background()
	feed    = domain.Address("0xFeed000000000000000000000000000000000001")
)

type testsuite struct {
	suite.Suite
	now time.Time
	im  *Feeds
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.now = time.Unix(1700000000, 0)
	timeNow = func() time.Time { return t.now }
	t.im = New()
}

func (t *testsuite) TearDownTest() {
	timeNow = time.Now
}

func (t *testsuite) TestSet() {
	_, err := t.im.CurrentPrice(mockCtx, feed)
	t.Equal(currency.ErrNoPriceFeed, err)

	answer := big.NewInt(200000000)
	t.im.Set(feed, answer, 8)
	answer.SetInt64(1)

	p, err := t.im.CurrentPrice(mockCtx, domain.Address("0xfeed000000000000000000000000000000000001"))
	t.NoError(err)
	t.Equal(big.NewInt(200000000), p.Answer)
	t.Equal(int32(8), p.Decimals)
	t.Equal(t.now, p.UpdatedAt)

	// callers cannot mutate the stored reading
	p.Answer.SetInt64(5)
	p, err = t.im.CurrentPrice(mockCtx, feed)
	t.NoError(err)
	t.Equal(big.NewInt(200000000), p.Answer)
}

func (t *testsuite) TestSetPrice() {
	t.im.SetPrice(feed, currency.Price{Answer: big.NewInt(-1), Decimals: 8})

	p, err := t.im.CurrentPrice(mockCtx, feed)
	t.NoError(err)
	t.Equal(big.NewInt(-1), p.Answer)
	t.True(p.UpdatedAt.IsZero())
}
