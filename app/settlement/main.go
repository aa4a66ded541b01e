package main

import (
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/base/database/redisclient"
	"github.com/x-xyz/settlement/base/goroutine"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/base/metrics"
	bValidator "github.com/x-xyz/settlement/base/validator"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/currency"
	"github.com/x-xyz/settlement/domain/keys"
	"github.com/x-xyz/settlement/domain/settings"
	mmiddleware "github.com/x-xyz/settlement/middleware"
	"github.com/x-xyz/settlement/service/cache"
	"github.com/x-xyz/settlement/service/cache/provider"
	"github.com/x-xyz/settlement/service/cache/provider/compound"
	"github.com/x-xyz/settlement/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/settlement/service/cache/provider/redis"
	"github.com/x-xyz/settlement/service/chain"
	"github.com/x-xyz/settlement/service/chainlink"
	"github.com/x-xyz/settlement/service/ledger"
	"github.com/x-xyz/settlement/service/pricefeed"
	"github.com/x-xyz/settlement/service/query"
	"github.com/x-xyz/settlement/service/redis"
	auction_delivery "github.com/x-xyz/settlement/stores/auction/delivery/http"
	auction_usecase "github.com/x-xyz/settlement/stores/auction/usecase"
	auth_delivery "github.com/x-xyz/settlement/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/settlement/stores/auth/usecase"
	currency_usecase "github.com/x-xyz/settlement/stores/currency/usecase"
	event_repository "github.com/x-xyz/settlement/stores/event/repository"
	event_usecase "github.com/x-xyz/settlement/stores/event/usecase"
	settings_delivery "github.com/x-xyz/settlement/stores/settings/delivery/http"
	settings_usecase "github.com/x-xyz/settlement/stores/settings/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func mustInitSettings(c ctx.Ctx) settings.Store {
	store := settings_usecase.New()

	configurator := domain.Address(viper.GetString("settlement.configurator"))
	fee := settings.FeeConfig{
		RateBps:   viper.GetUint32("settlement.feeRateBps"),
		Recipient: domain.Address(viper.GetString("settlement.feeRecipient")),
	}
	if err := store.Init(c, configurator, fee); err != nil {
		c.WithField("err", err).Panic("settings.Init failed")
	}

	currencies := viper.Sub("currencies")
	if currencies == nil {
		return store
	}
	for k := range currencies.AllSettings() {
		reg := currency.Registration{
			Currency:      domain.Address(currencies.GetString(fmt.Sprintf("%s.address", k))),
			Symbol:        currencies.GetString(fmt.Sprintf("%s.symbol", k)),
			Feed:          domain.Address(currencies.GetString(fmt.Sprintf("%s.feed", k))),
			TokenDecimals: currencies.GetInt32(fmt.Sprintf("%s.tokenDecimals", k)),
		}
		if err := store.RegisterCurrency(c, configurator, reg); err != nil {
			c.WithFields(log.Fields{"err": err, "currency": k}).Panic("settings.RegisterCurrency failed")
		}
	}
	return store
}

// mustInitPriceSource reads chainlink aggregators, or serves the answers from config when
// oracle.kind is static.
func mustInitPriceSource(c ctx.Ctx) currency.PriceSource {
	switch kind := viper.GetString("oracle.kind"); kind {
	case "chainlink":
		networks := viper.Sub("networks")
		if networks == nil {
			c.Panic("oracle.kind chainlink requires networks")
		}
		rpcs := make(map[int32]string)
		for k := range networks.AllSettings() {
			chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
			rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		}
		chainService, err := chain.NewClient(c, &chain.ClientCfg{RpcUrls: rpcs})
		if err != nil {
			c.WithField("err", err).Warn("chainService started with error")
		}
		return chainlink.New(&chainlink.Cfg{
			ChainId:     domain.ChainId(viper.GetInt32("oracle.chainId")),
			ChainClient: chainService,
		})
	case "static":
		feeds := pricefeed.New()
		currencies := viper.Sub("currencies")
		if currencies == nil {
			return feeds
		}
		for k := range currencies.AllSettings() {
			answer, ok := new(big.Int).SetString(currencies.GetString(fmt.Sprintf("%s.price", k)), 10)
			if !ok {
				c.WithField("currency", k).Panic("invalid static price")
			}
			feed := domain.Address(currencies.GetString(fmt.Sprintf("%s.feed", k)))
			feeds.Set(feed, answer, currencies.GetInt32(fmt.Sprintf("%s.priceDecimals", k)))
		}
		return feeds
	default:
		c.WithField("kind", kind).Panic("unknown oracle.kind")
	}
	return nil
}

// mustInitLedger builds the in-process custody and value ledger and applies the seed section.
func mustInitLedger(c ctx.Ctx) *ledger.Ledger {
	l := ledger.New(domain.Address(viper.GetString("ledger.escrow")))

	assets := viper.Sub("ledger.assets")
	if assets != nil {
		for k := range assets.AllSettings() {
			l.Mint(auction.AssetRef{
				Contract: domain.Address(assets.GetString(fmt.Sprintf("%s.contract", k))),
				TokenId:  domain.TokenId(assets.GetString(fmt.Sprintf("%s.tokenId", k))),
			}, domain.Address(assets.GetString(fmt.Sprintf("%s.owner", k))))
		}
	}

	balances := viper.Sub("ledger.balances")
	if balances != nil {
		for k := range balances.AllSettings() {
			amount, ok := new(big.Int).SetString(balances.GetString(fmt.Sprintf("%s.amount", k)), 10)
			if !ok {
				c.WithField("balance", k).Panic("invalid seed amount")
			}
			cur := domain.Address(balances.GetString(fmt.Sprintf("%s.currency", k)))
			account := domain.Address(balances.GetString(fmt.Sprintf("%s.account", k)))
			l.Credit(cur, account, amount)
			if !cur.IsNative() {
				l.Approve(cur, account, amount)
			}
		}
	}
	return l
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()
	defer log.Sync()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)
	if err := event_repository.EnsureIndexes(context, q); err != nil {
		context.WithField("err", err).Panic("event_repository.EnsureIndexes failed")
	}

	historyLayers := []provider.Provider{primitive.NewPrimitive(keys.PfxAuctionHistory, viper.GetInt("cache.localSizeMB"))}
	if redisCacheURI := viper.GetString("redis_cache.uri"); len(redisCacheURI) > 0 {
		context.Info("init redis cache")
		redisCacheName := viper.GetString("redis_cache.name")
		redisCachePool := redisclient.MustConnectRedis(redisCacheURI, viper.GetString("redis_cache.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		})
		redisService := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)
		historyLayers = append(historyLayers, redisCache.NewRedis(redisService))
	}
	historyCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.ttl"),
		Pfx:   keys.PfxAuctionHistory,
		Cache: compound.NewCompound(historyLayers),
	})

	settingsStore := mustInitSettings(context)
	normalizer := currency_usecase.NewNormalizer(&currency_usecase.NormalizerCfg{
		Registry:     settingsStore,
		Prices:       mustInitPriceSource(context),
		UnitDecimals: viper.GetInt32("settlement.unitDecimals"),
		MaxPriceAge:  viper.GetDuration("settlement.maxPriceAge"),
	})
	ledgerService := mustInitLedger(context)

	eventRepo := event_repository.NewEventRepo(q)
	event := event_usecase.New(&event_usecase.EventUseCaseCfg{
		Repo:            eventRepo,
		HistoryCache:    historyCache,
		QueueLength:     viper.GetInt("event.queueLength"),
		ScheduleTimeout: viper.GetDuration("event.scheduleTimeout"),
	})
	defer event.Close()

	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Settings:   settingsStore,
		Normalizer: normalizer,
		Custody:    ledgerService,
		Transfer:   ledgerService,
		Publisher:  event,
	})

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetString("auth.signatureMsg"))
	authM := auth_middleware.New(auth)

	auth_delivery.New(e, auth)
	auction_delivery.New(e, auctionUC, event, authM.Auth(), viper.GetInt32("settlement.unitDecimals"))
	settings_delivery.New(e, settingsStore, authM.Auth())

	e.GET("/check", func(c echo.Context) error {
		address, _ := auth_middleware.Caller(c)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": address,
		})
	}, authM.Auth())

	serverDone := goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}, goroutine.WithName("http"))

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case p := <-serverDone:
		if p != nil {
			log.Log().WithField("panic", p.Panic).Error("server panicked")
		}
	}
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
