package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"scraper.local/instagram-crawler/config"
	"scraper.local/instagram-crawler/instagram"
	"scraper.local/instagram-crawler/models"
	"scraper.local/instagram-crawler/repositories"
)

// Client is the slice of the Instagram API the crawler consumes.
type Client interface {
	RecentMedia(ctx context.Context, accountID int64, cursor string) ([]instagram.Media, string, error)
	Followers(ctx context.Context, accountID int64) ([]instagram.AccountRef, error)
	SearchMedia(ctx context.Context, latitude float64, longitude float64) ([]instagram.Media, error)
}

type Config struct {
	Store     repositories.Store
	Client    Client
	QueueSize int
	Branching int
	MaxFaults int
	Logger    zerolog.Logger
}

// Crawler walks the follower graph one account per iteration, keeping
// geotagged media. Strictly sequential; horizontal scale comes from running
// more processes against the same store.
type Crawler struct {
	store     repositories.Store
	client    Client
	frontier  *Frontier
	faults    *FaultBudget
	branching int
	log       zerolog.Logger
}

func New(cfg Config) *Crawler {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = config.CRAWLER_QUEUE_SIZE
	}
	if cfg.Branching <= 0 {
		cfg.Branching = config.CRAWLER_MAX_BRANCHING
	}
	if cfg.MaxFaults <= 0 {
		cfg.MaxFaults = config.CRAWLER_MAX_FAULTS
	}
	return &Crawler{
		store:     cfg.Store,
		client:    cfg.Client,
		frontier:  NewFrontier(cfg.QueueSize),
		faults:    NewFaultBudget(cfg.MaxFaults),
		branching: cfg.Branching,
		log:       cfg.Logger,
	}
}

// Run drives the dequeue/scrape/branch/commit loop until the frontier is
// empty, the fault budget runs out, or ctx is cancelled. Cancellation is
// observed only at the top of an iteration; a started visit always finishes.
func (c *Crawler) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			c.log.Info().Msg("stopping crawler")
			return
		}
		if c.faults.Exhausted() {
			c.log.Error().Msg("stopping due to fault budget exhaustion")
			return
		}
		id, ok := c.frontier.Pop()
		if !ok {
			c.log.Info().Msg("frontier empty")
			return
		}
		c.visit(ctx, id)
	}
}

// visit runs one iteration inside a single store transaction. Phase
// failures are recoverable: they roll back the pending writes, spend one
// fault and never terminate the process.
func (c *Crawler) visit(ctx context.Context, id int64) {
	logger := c.log.With().Int64("account", id).Logger()
	tx, err := c.store.Begin()
	if err != nil {
		c.fault(logger, err)
		return
	}
	account, err := c.resolve(tx, id)
	if err != nil {
		c.fault(logger, err)
		tx.Rollback()
		return
	}
	if err := c.scrape(ctx, tx, account); err != nil {
		c.fault(logger, err)
		tx.Rollback()
		return
	}
	c.branch(ctx, logger, account)
	if err := tx.SaveAccount(account); err != nil {
		c.fault(logger, err)
		tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		c.fault(logger, err)
		tx.Rollback()
	}
}

func (c *Crawler) fault(logger zerolog.Logger, err error) {
	if errors.Is(err, repositories.ErrConflict) {
		logger.Warn().Err(err).Msg("write conflict with concurrent crawler")
	} else {
		logger.Error().Err(err).Msg("recoverable fault")
	}
	c.faults.Spend()
}

func (c *Crawler) resolve(tx repositories.Tx, id int64) (*models.Account, error) {
	account, err := tx.Account(id)
	if err != nil || account != nil {
		return account, err
	}
	return tx.CreateAccount(id)
}

// scrape walks the account's recent media pages from the stored cursor,
// persisting geotagged items. It halts at the first page without a single
// geotagged item, trading completeness for bounded per-account cost.
func (c *Crawler) scrape(ctx context.Context, tx repositories.Tx, account *models.Account) error {
	if account.Private || account.FullyScraped {
		return nil
	}
	cursor := account.Cursor
	for {
		items, next, err := c.client.RecentMedia(ctx, account.ID, cursor)
		if errors.Is(err, instagram.ErrPrivateAccount) {
			account.Private = true
			return nil
		}
		if err != nil {
			return err
		}
		account.Cursor = next
		if next == "" {
			account.FullyScraped = true
		}
		geotagged := 0
		for i := range items {
			media := &items[i]
			if !media.Location.HasCoordinates() {
				continue
			}
			geotagged++
			if err := c.storeMedia(tx, account, media); err != nil {
				return err
			}
		}
		if geotagged == 0 || account.FullyScraped {
			return nil
		}
		cursor = next
	}
}

// storeMedia persists one geotagged media item, deduplicating posts by id
// and resolving the location with get-or-create.
func (c *Crawler) storeMedia(tx repositories.Tx, account *models.Account, media *instagram.Media) error {
	id, err := media.NumericID()
	if err != nil {
		return fmt.Errorf("media id %q: %w", media.ID, err)
	}
	exists, err := tx.PostExists(id)
	if err != nil || exists {
		return err
	}
	location, err := c.resolveLocation(tx, media.Location)
	if err != nil {
		return err
	}
	postedAt, err := media.PostedAt()
	if err != nil {
		return fmt.Errorf("media %d: %w", id, err)
	}
	return tx.CreatePost(&models.Post{
		ID:         id,
		PostedAt:   postedAt,
		Caption:    media.CaptionText(),
		Tags:       datatypes.JSONSlice[string](media.Tags),
		Type:       media.Type,
		AccountID:  account.ID,
		LocationID: location.ID,
	})
}

func (c *Crawler) resolveLocation(tx repositories.Tx, loc *instagram.Location) (*models.Location, error) {
	id, err := loc.NumericID()
	if err != nil {
		return nil, fmt.Errorf("location id %q: %w", loc.ID.String(), err)
	}
	location, err := tx.Location(id)
	if err != nil || location != nil {
		return location, err
	}
	return tx.CreateLocation(id, loc.Name, *loc.Latitude, *loc.Longitude)
}

// branch discovers successor accounts and admits a bounded random sample
// into the frontier. Successors stay ids; records are created when an id is
// eventually dequeued.
func (c *Crawler) branch(ctx context.Context, logger zerolog.Logger, account *models.Account) {
	if account.Private {
		return
	}
	followers, err := c.client.Followers(ctx, account.ID)
	if errors.Is(err, instagram.ErrPrivateAccount) {
		account.Private = true
		return
	}
	if err != nil {
		c.fault(logger, err)
		return
	}
	ids := make([]int64, 0, len(followers))
	for _, follower := range followers {
		id, err := follower.NumericID()
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	c.frontier.Extend(ids, c.branching)
}
