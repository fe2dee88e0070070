package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"scraper.local/instagram-crawler/common"
	"scraper.local/instagram-crawler/config"
	"scraper.local/instagram-crawler/crawler"
	"scraper.local/instagram-crawler/instagram"
	"scraper.local/instagram-crawler/repositories"
)

type CrawlHandler struct {
	Db *gorm.DB
}

func NewCrawlCommand() *cli.Command {
	var h CrawlHandler
	return &cli.Command{
		Name:  "crawl",
		Usage: "",
		Before: func(c *cli.Context) error {
			h = CrawlHandler{
				Db: common.NewDB(),
			}
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "",
				Flags: crawlFlags(),
				Action: func(c *cli.Context) error {
					if err := h.run(c); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return nil
				},
			},
			{
				Name:  "cron",
				Usage: "",
				Flags: append(crawlFlags(), &cli.StringFlag{
					Name:  "schedule",
					Value: config.CRAWLER_CRON_SCHEDULE,
				}),
				Action: func(c *cli.Context) error {
					if err := h.cron(c); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return nil
				},
			},
		},
	}
}

func crawlFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "seed-location",
			Aliases: []string{"l"},
			Usage:   "seed the frontier with recent accounts at LAT,LNG instead of sampling the store",
		},
		&cli.IntFlag{
			Name:    "max-except",
			Aliases: []string{"e"},
			Value:   config.CRAWLER_MAX_FAULTS,
		},
		&cli.IntFlag{
			Name:  "branching",
			Value: config.CRAWLER_MAX_BRANCHING,
		},
		&cli.IntFlag{
			Name:  "queue-size",
			Value: config.CRAWLER_QUEUE_SIZE,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
		},
	}
}

func (h *CrawlHandler) run(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("verbose")).With().Str("run", xid.New().String()).Logger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := h.newCrawler(c, logger)
	if err != nil {
		return err
	}
	if raw := c.String("seed-location"); raw != "" {
		latitude, longitude, err := parseCoordinates(raw)
		if err != nil {
			return err
		}
		if err := worker.SeedByLocation(ctx, latitude, longitude); err != nil {
			return err
		}
	} else {
		if err := worker.SeedFromStore(); err != nil {
			return err
		}
	}
	worker.Run(ctx)
	return nil
}

// cron re-seeds from the store and runs the loop on every tick, skipping a
// tick when the previous run is still active.
func (h *CrawlHandler) cron(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("verbose"))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	tick := func() {
		if !mu.TryLock() {
			logger.Warn().Msg("previous crawl still running, skipping tick")
			return
		}
		defer mu.Unlock()
		runLogger := logger.With().Str("run", xid.New().String()).Logger()
		worker, err := h.newCrawler(c, runLogger)
		if err != nil {
			runLogger.Error().Err(err).Msg("crawler init failed")
			return
		}
		if err := worker.SeedFromStore(); err != nil {
			runLogger.Error().Err(err).Msg("seeding failed")
			return
		}
		worker.Run(ctx)
	}

	job := cron.New()
	if _, err := job.AddFunc(c.String("schedule"), tick); err != nil {
		return err
	}
	logger.Info().Str("schedule", c.String("schedule")).Msg("crawl cron running")
	job.Start()
	tick()
	<-ctx.Done()
	<-job.Stop().Done()
	return nil
}

func (h *CrawlHandler) newCrawler(c *cli.Context, logger zerolog.Logger) (*crawler.Crawler, error) {
	clientID := common.GetEnvString("INSTAGRAM_CLIENT_ID")
	if clientID == "" {
		return nil, errors.New("INSTAGRAM_CLIENT_ID is empty")
	}
	return crawler.New(crawler.Config{
		Store:     &repositories.PgStore{Db: h.Db},
		Client:    instagram.NewClient(clientID, logger),
		QueueSize: c.Int("queue-size"),
		Branching: c.Int("branching"),
		MaxFaults: c.Int("max-except"),
		Logger:    logger,
	}), nil
}

func parseCoordinates(raw string) (float64, float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid seed location %q", raw)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid seed location %q", raw)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid seed location %q", raw)
	}
	return latitude, longitude, nil
}
