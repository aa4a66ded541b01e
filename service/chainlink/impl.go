package chainlink

import (
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/settlement/base/abi"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/currency"
	"github.com/x-xyz/settlement/domain/keys"
	"github.com/x-xyz/settlement/service/cache"
	"github.com/x-xyz/settlement/service/cache/provider/primitive"
	"github.com/x-xyz/settlement/service/chain"
)

type Cfg struct {
	ChainId     domain.ChainId
	ChainClient chain.Client
	// DecimalsCache overrides the default in-process cache for feed decimals
	DecimalsCache cache.Service
}

type impl struct {
	chainId     domain.ChainId
	chainClient chain.Client
	decimals    cache.Service
}

// New reads Chainlink AggregatorV3 feeds. Feed decimals never change so they are
// cached, answers are always read live.
func New(cfg *Cfg) currency.PriceSource {
	decimals := cfg.DecimalsCache
	if decimals == nil {
		decimals = cache.New(cache.ServiceConfig{
			Ttl:   24 * time.Hour,
			Pfx:   keys.PfxFeedDecimals,
			Cache: primitive.NewPrimitive(keys.PfxFeedDecimals, 1),
		})
	}
	return &impl{
		chainId:     cfg.ChainId,
		chainClient: cfg.ChainClient,
		decimals:    decimals,
	}
}

func (im *impl) CurrentPrice(c ctx.Ctx, feed domain.Address) (*currency.Price, error) {
	decimals, err := im.feedDecimals(c, feed)
	if err != nil {
		return nil, err
	}

	res, err := im.chainClient.Call(c, int32(im.chainId), common.HexToAddress(string(feed)), nil, abi.AggregatorV3ABI, abi.MethodLatestRoundData)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": im.chainId,
			"feed":    feed,
		}).Error("chainClient.Call latestRoundData failed")
		return nil, err
	}
	if len(res) != 5 {
		c.WithFields(log.Fields{"feed": feed, "res": res}).Error("unexpected latestRoundData output")
		return nil, currency.ErrInvalidPrice
	}

	answer, ok := res[1].(*big.Int)
	if !ok {
		return nil, currency.ErrInvalidPrice
	}
	updatedAt, ok := res[3].(*big.Int)
	if !ok {
		return nil, currency.ErrInvalidPrice
	}

	price := &currency.Price{
		Answer:   answer,
		Decimals: decimals,
	}
	// a zero updatedAt marks an incomplete round, keep UpdatedAt zero so it reads stale
	if updatedAt.Sign() > 0 {
		price.UpdatedAt = time.Unix(updatedAt.Int64(), 0)
	}
	return price, nil
}

func (im *impl) feedDecimals(c ctx.Ctx, feed domain.Address) (int32, error) {
	var res int32

	key := keys.RedisKey(strconv.Itoa(int(im.chainId)), feed.ToLowerStr())

	if err := im.decimals.GetByFunc(c, key, &res, func() (interface{}, error) {
		out, err := im.chainClient.Call(c, int32(im.chainId), common.HexToAddress(string(feed)), nil, abi.AggregatorV3ABI, abi.MethodDecimals)
		if err != nil {
			return nil, err
		}
		d, ok := out[0].(uint8)
		if !ok {
			return nil, currency.ErrInvalidPrice
		}
		return int32(d), nil
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": im.chainId,
			"feed":    feed,
		}).Error("decimals.GetByFunc failed")
		return 0, err
	}

	return res, nil
}
