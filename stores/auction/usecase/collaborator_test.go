package usecase

import (
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain/auction"
	mockAuction "github.com/x-xyz/settlement/domain/auction/mocks"
	currencyUC "github.com/x-xyz/settlement/stores/currency/usecase"
)

func (t *testsuite) newMockedEngine(custody auction.CustodyProvider, publisher auction.EventPublisher) *impl {
	return New(&AuctionUseCaseCfg{
		Settings: t.settings,
		Normalizer: currencyUC.NewNormalizer(&currencyUC.NormalizerCfg{
			Registry: t.settings,
			Prices:   t.feeds,
		}),
		Custody:   custody,
		Transfer:  t.ledger,
		Publisher: publisher,
	}).(*impl)
}

func (t *testsuite) TestCreateCustodyFailure() {
	custody := &mockAuction.CustodyProvider{}
	publisher := &mockAuction.EventPublisher{}
	custody.On("TakeCustody", mock.Anything, t.asset, seller).Return(errors.New("reverted")).Once()

	im := t.newMockedEngine(custody, publisher)
	_, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.True(errors.Is(err, auction.ErrCustodyFailed))
	t.Equal(uint64(0), im.AuctionCount(mockCtx))

	// the asset is not marked as escrowed, so a second attempt reaches custody again
	custody.On("TakeCustody", mock.Anything, t.asset, seller).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(ev *auction.Event) bool {
		return ev.Type == auction.EventAuctionCreated && ev.Seq == 0 && *ev.AuctionId == 0
	})).Once()

	id, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.NoError(err)
	t.Equal(uint64(0), id)

	custody.AssertExpectations(t.T())
	publisher.AssertExpectations(t.T())
}

func (t *testsuite) TestNoNotificationOnRejectedBid() {
	custody := &mockAuction.CustodyProvider{}
	publisher := &mockAuction.EventPublisher{}
	custody.On("TakeCustody", mock.Anything, t.asset, seller).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Once()

	im := t.newMockedEngine(custody, publisher)
	id, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
	t.Require().NoError(err)

	err = im.PlaceBid(mockCtx, id, alice, curX, big.NewInt(1))
	t.True(errors.Is(err, auction.ErrBidTooLow))

	publisher.AssertNumberOfCalls(t.T(), "Publish", 1)
	custody.AssertExpectations(t.T())
}

// stalledPublisher blocks every Publish until release is closed.
type stalledPublisher struct {
	release chan struct{}
	entered chan struct{}
	once    sync.Once

	mu     sync.Mutex
	events []*auction.Event
}

func (p *stalledPublisher) Publish(c ctx.Ctx, events ...*auction.Event) {
	p.once.Do(func() { close(p.entered) })
	<-p.release

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (t *testsuite) TestStalledPublisherDoesNotFreezeEngine() {
	pub := &stalledPublisher{release: make(chan struct{}), entered: make(chan struct{})}
	im := t.newMockedEngine(t.ledger, pub)

	created := make(chan error, 1)
	go func() {
		_, err := im.CreateAuction(mockCtx, seller, t.asset, big.NewInt(1000), week)
		created <- err
	}()

	select {
	case <-pub.entered:
	case <-time.After(time.Second):
		t.FailNow("auction was never published")
	}

	// the auction is committed while its event is still being published
	a, err := im.GetAuction(mockCtx, 0)
	t.Require().NoError(err)
	t.Equal(auction.StatusOpen, a.Status)

	bid := make(chan error, 1)
	go func() { bid <- im.PlaceBid(mockCtx, 0, alice, curX, big.NewInt(600)) }()
	t.Eventually(func() bool {
		a, err := im.GetAuction(mockCtx, 0)
		return err == nil && a.LeadingBid != nil && a.LeadingBid.Bidder == alice
	}, time.Second, 5*time.Millisecond)

	close(pub.release)
	t.NoError(<-created)
	t.NoError(<-bid)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	t.Require().Len(pub.events, 2)
	t.Equal(auction.EventAuctionCreated, pub.events[0].Type)
	t.Equal(uint64(0), pub.events[0].Seq)
	t.Equal(auction.EventBidPlaced, pub.events[1].Type)
	t.Equal(uint64(1), pub.events[1].Seq)
}
