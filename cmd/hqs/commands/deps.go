package commands

import (
	"fmt"

	"github.com/wonny/hqs/backend/internal/backtest"
	"github.com/wonny/hqs/backend/internal/calibration"
	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/external/finnhub"
	"github.com/wonny/hqs/backend/internal/external/fmp"
	"github.com/wonny/hqs/backend/internal/external/stooq"
	"github.com/wonny/hqs/backend/internal/marketphase"
	"github.com/wonny/hqs/backend/internal/portfolio"
	"github.com/wonny/hqs/backend/internal/region"
	"github.com/wonny/hqs/backend/internal/scoring"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/database"
	"github.com/wonny/hqs/backend/pkg/httputil"
	"github.com/wonny/hqs/backend/pkg/logger"
	"github.com/wonny/hqs/backend/pkg/redis"
)

// deps is the wired object graph shared by the CLI commands. Database
// and Redis are optional; commands that need them check explicitly.
type deps struct {
	cfg    *config.Config
	logger *logger.Logger

	db    *database.DB
	redis *redis.Client
	cache *redis.Cache

	fmp        *fmp.Client
	dispatcher *region.Dispatcher
	service    *scoring.Service
	simulator  *backtest.PortfolioSimulator
	aggregator *portfolio.Aggregator
	detector   *marketphase.Detector
	calibrator *calibration.Engine
}

// buildDeps wires the full dependency graph from config.
// withDB controls whether a missing database is fatal.
func buildDeps(withDB bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	d := &deps{cfg: cfg, logger: log}

	// Redis is optional; without it quote caching and distributed rate
	// limiting are skipped
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, caching disabled")
	} else if redisClient.Enabled() {
		d.redis = redisClient
		d.cache = redis.NewCache(redisClient, "hqs")
	}

	if withDB {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.db = db
	}

	// External clients share one HTTP client; the JSON providers run
	// behind the Redis rate limiter when available
	httpClient := httputil.New(cfg, log)
	fmpHTTP := httpClient
	finnhubHTTP := httpClient
	if d.redis != nil {
		limiter := redis.NewRateLimiter(d.redis, "ratelimit")
		fmpHTTP = httputil.New(cfg, log).WithRateLimiter(limiter, redis.FMPRateLimit)
		finnhubHTTP = httputil.New(cfg, log).WithRateLimiter(limiter, redis.FinnhubRateLimit)
	}

	d.fmp = fmp.NewClient(fmpHTTP, cfg.FMP.APIKey, log)
	finnhubClient := finnhub.NewClient(finnhubHTTP, cfg.Finnhub.APIKey, log)
	stooqClient := stooq.NewClient(httpClient, log)

	// Provider chains per region. FMP leads everywhere; Finnhub backs up
	// US symbols, the Stooq scraper is the global last resort.
	usChain := []contracts.QuoteProvider{d.fmp, finnhubClient}
	defaultChain := []contracts.QuoteProvider{d.fmp}
	if cfg.Stooq.Enabled {
		usChain = append(usChain, stooqClient)
		defaultChain = append(defaultChain, stooqClient)
	}
	chains := map[string][]contracts.QuoteProvider{
		"us":   usChain,
		"eu":   defaultChain,
		"asia": defaultChain,
	}

	d.dispatcher = region.NewDispatcher(chains, defaultChain, d.cache, cfg.Redis.QuoteTTL, log)

	engine := scoring.NewEngine(cfg, log)
	d.service = scoring.NewService(d.dispatcher, d.fmp, d.fmp, d.fmp, engine, cfg.Scoring.HistoryDays, log)

	d.simulator = backtest.NewPortfolioSimulator(d.fmp, cfg.Scoring.RiskFreeRate, log)
	d.detector = marketphase.NewDetector(d.fmp, cfg.Scoring.BenchmarkSymbol, log)
	d.aggregator = portfolio.NewAggregator(d.detector, log)
	d.calibrator = calibration.NewEngine(cfg, log)

	return d, nil
}

// close releases held connections
func (d *deps) close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.redis != nil {
		d.redis.Close()
	}
}

// factorRepo returns the pgx-backed factor repository; requires the DB
func (d *deps) factorRepo() (contracts.FactorRepository, error) {
	if d.db == nil {
		return nil, fmt.Errorf("database connection required")
	}
	return calibration.NewRepository(d.db.Pool), nil
}
