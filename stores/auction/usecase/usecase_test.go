package usecase

import (
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/currency"
	"github.com/x-xyz/settlement/domain/settings"
	"github.com/x-xyz/settlement/service/ledger"
	"github.com/x-xyz/settlement/service/pricefeed"
	currencyUC "github.com/x-xyz/settlement/stores/currency/usecase"
	settingsUC "github.com/x-xyz/settlement/stores/settings/usecase"
)

var (
	mockCtx = ctx.Background()
)

const (
	configurator = domain.Address("0xc0f1000000000000000000000000000000000000")
	feeRecipient = domain.Address("0xfee0000000000000000000000000000000000000")
	escrow       = domain.Address("0xe5c0000000000000000000000000000000000000")
	seller       = domain.Address("0x5e11000000000000000000000000000000000000")
	alice        = domain.Address("0xa11ce00000000000000000000000000000000000")
	bob          = domain.Address("0xb0b0000000000000000000000000000000000000")
	carol        = domain.Address("0xca20100000000000000000000000000000000000")
	dave         = domain.Address("0xda7e000000000000000000000000000000000000")

	curX  = domain.Address("0x1111111111111111111111111111111111111111")
	curY  = domain.Address("0x2222222222222222222222222222222222222222")
	feedX = domain.Address("0xf000000000000000000000000000000000000001")
	feedY = domain.Address("0xf000000000000000000000000000000000000002")

	nftContract = domain.Address("0xa55e700000000000000000000000000000000000")

	initialFunds = int64(1000000)
	week         = 7 * 24 * time.Hour
)

type recorder struct {
	mu     sync.Mutex
	events []*auction.Event
}

func (r *recorder) Publish(c ctx.Ctx, events ...*auction.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *recorder) types() []auction.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []auction.EventType{}
	for _, e := range r.events {
		res = append(res, e.Type)
	}
	return res
}

func (r *recorder) ofType(t auction.EventType) []*auction.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*auction.Event{}
	for _, e := range r.events {
		if e.Type == t {
			res = append(res, e)
		}
	}
	return res
}

type testsuite struct {
	suite.Suite
	now      time.Time
	settings settings.Store
	feeds    *pricefeed.Feeds
	ledger   *ledger.Ledger
	events   *recorder
	im       *impl
	asset    auction.AssetRef
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return t.now }

	t.settings = settingsUC.New()
	t.Require().NoError(t.settings.Init(mockCtx, configurator, settings.FeeConfig{RateBps: settings.DefaultFeeRateBps, Recipient: feeRecipient}))
	t.Require().NoError(t.settings.RegisterCurrency(mockCtx, configurator, currency.Registration{Currency: curX, Symbol: "X", Feed: feedX}))
	t.Require().NoError(t.settings.RegisterCurrency(mockCtx, configurator, currency.Registration{Currency: curY, Symbol: "Y", Feed: feedY}))

	// X trades at 2.0 and Y at 1.0 units of account, 8 decimals like chainlink
	t.feeds = pricefeed.New()
	t.feeds.Set(feedX, big.NewInt(200000000), 8)
	t.feeds.Set(feedY, big.NewInt(100000000), 8)

	t.ledger = ledger.New(escrow)
	t.asset = auction.AssetRef{Contract: nftContract, TokenId: "1"}
	t.ledger.Mint(t.asset, seller)
	for _, acct := range []domain.Address{alice, bob, carol} {
		t.fund(acct)
	}

	t.events = &recorder{}
	t.im = t.newEngine(t.ledger, t.ledger)
}

func (t *testsuite) TearDownTest() {
	timeNow = time.Now
}

func (t *testsuite) newEngine(custody auction.CustodyProvider, transfer auction.ValueTransfer) *impl {
	return New(&AuctionUseCaseCfg{
		Settings: t.settings,
		Normalizer: currencyUC.NewNormalizer(&currencyUC.NormalizerCfg{
			Registry: t.settings,
			Prices:   t.feeds,
		}),
		Custody:   custody,
		Transfer:  transfer,
		Publisher: t.events,
	}).(*impl)
}

func (t *testsuite) fund(acct domain.Address) {
	for _, cur := range []domain.Address{curX, curY} {
		t.ledger.Credit(cur, acct, big.NewInt(initialFunds))
		t.ledger.Approve(cur, acct, big.NewInt(initialFunds))
	}
}

func (t *testsuite) balance(cur, acct domain.Address) int64 {
	return t.ledger.BalanceOf(cur, acct).Int64()
}

func (t *testsuite) advance(d time.Duration) {
	t.now = t.now.Add(d)
}

// create opens the default auction: start price 1000, one week
func (t *testsuite) create() uint64 {
	id, err := t.im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.Require().NoError(err)
	return id
}

func (t *testsuite) mint(tokenId int) auction.AssetRef {
	asset := auction.AssetRef{Contract: nftContract, TokenId: domain.TokenId(fmt.Sprint(tokenId))}
	t.ledger.Mint(asset, seller)
	return asset
}

func (t *testsuite) bid(id uint64, bidder, cur domain.Address, amount int64) error {
	return t.im.PlaceBid(mockCtx, id, bidder, cur, big.NewInt(amount))
}

func (t *testsuite) leader(id uint64) *auction.LeadingBid {
	a, err := t.im.GetAuction(mockCtx, id)
	t.Require().NoError(err)
	return a.LeadingBid
}

func (t *testsuite) status(id uint64) auction.Status {
	a, err := t.im.GetAuction(mockCtx, id)
	t.Require().NoError(err)
	return a.Status
}

func (t *testsuite) owner(asset auction.AssetRef) domain.Address {
	o, ok := t.ledger.OwnerOf(asset)
	t.Require().True(ok)
	return o
}
