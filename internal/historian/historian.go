// Package historian drains the game action queue from Redis and persists it in batches.
package historian

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/thegame/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Sink persists action records. Implemented by database.ActionSink.
type Sink interface {
	WriteActions(ctx context.Context, records []cache.GameActionRecord) error
	MarkAbandoned(ctx context.Context, gameID uuid.UUID) error
}

// Config tunes the service. Zero values fall back to defaults.
type Config struct {
	Queue           string
	BatchSize       int
	FlushDelay      time.Duration
	PopTimeout      time.Duration // BLPOP timeout; go-redis rounds this to whole seconds
	Inactivity      time.Duration // idle time after which an unfinished game is marked abandoned
	InactivityCheck time.Duration
}

func (c Config) withDefaults() Config {
	if c.Queue == "" {
		c.Queue = cache.DefaultQueueName
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 20
	}
	if c.FlushDelay <= 0 {
		c.FlushDelay = 500 * time.Millisecond
	}
	if c.PopTimeout <= 0 {
		c.PopTimeout = 3 * time.Second
	}
	if c.Inactivity <= 0 {
		c.Inactivity = 10 * time.Minute
	}
	if c.InactivityCheck <= 0 {
		c.InactivityCheck = time.Minute
	}
	return c
}

// Service encapsulates the Redis + sink logic for capturing game actions
// and marking games abandoned when a certain inactivity threshold is reached.
type Service struct {
	rdb    *redis.Client
	sink   Sink
	cfg    Config
	logger *logrus.Logger

	lastActivity sync.Map // map[uuid.UUID]time.Time for tracking last activity per game

	batchMu sync.Mutex
	batch   []cache.GameActionRecord
}

// NewService builds a historian reading cfg.Queue on rdb and writing to sink.
func NewService(rdb *redis.Client, sink Sink, cfg Config, logger *logrus.Logger) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		rdb:    rdb,
		sink:   sink,
		cfg:    cfg,
		logger: logger,
		batch:  make([]cache.GameActionRecord, 0, cfg.BatchSize),
	}
}

// Run blocks until ctx is cancelled, then flushes whatever is still batched.
func (s *Service) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		s.readLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		s.flushLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		s.inactivityLoop(ctx)
	}()

	s.logger.WithField("queue", s.cfg.Queue).Info("thegame-historian service started.")
	wg.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Flush(flushCtx)
	s.logger.Info("thegame-historian shutting down.")
}

// readLoop continuously uses BLPop to retrieve messages from the Redis queue.
func (s *Service) readLoop(ctx context.Context) {
	for ctx.Err() == nil {
		res, err := s.rdb.BLPop(ctx, s.cfg.PopTimeout, s.cfg.Queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			s.logger.WithError(err).Error("BLPop failed.")
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		// res[0] is the queue name and res[1] the payload.
		if len(res) < 2 {
			continue
		}

		var record cache.GameActionRecord
		if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
			s.logger.WithError(err).Warn("Invalid action record.")
			continue
		}
		s.track(record)
		s.appendToBatch(ctx, record)
	}
}

// track updates the last activity of the record's game. Finished games stop being tracked.
func (s *Service) track(record cache.GameActionRecord) {
	switch record.ActionType {
	case "game_won", "game_lost":
		s.lastActivity.Delete(record.GameID)
	default:
		s.lastActivity.Store(record.GameID, time.Now())
	}
}

// appendToBatch adds a record to the in-memory batch and flushes if the threshold is reached.
func (s *Service) appendToBatch(ctx context.Context, record cache.GameActionRecord) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	s.batch = append(s.batch, record)
	if len(s.batch) >= s.cfg.BatchSize {
		s.flushLocked(ctx)
	}
}

func (s *Service) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.FlushDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Flush(ctx)
		}
	}
}

// Flush writes the current batch to the sink.
func (s *Service) Flush(ctx context.Context) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	s.flushLocked(ctx)
}

// flushLocked writes and clears the batch. Assumes batchMu is held.
func (s *Service) flushLocked(ctx context.Context) {
	if len(s.batch) == 0 {
		return
	}
	batchCopy := make([]cache.GameActionRecord, len(s.batch))
	copy(batchCopy, s.batch)
	s.batch = s.batch[:0]

	if err := s.sink.WriteActions(ctx, batchCopy); err != nil {
		s.logger.WithError(err).Errorf("Failed to flush %d actions.", len(batchCopy))
		return
	}
	s.logger.Debugf("Flushed %d actions.", len(batchCopy))
}

// inactivityLoop periodically checks if any game has been inactive beyond the configured threshold,
// and marks such games as abandoned.
func (s *Service) inactivityLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.InactivityCheck)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweepInactive(ctx, now)
		}
	}
}

func (s *Service) sweepInactive(ctx context.Context, now time.Time) {
	s.lastActivity.Range(func(key, val interface{}) bool {
		gameID, ok1 := key.(uuid.UUID)
		last, ok2 := val.(time.Time)
		if !ok1 || !ok2 || now.Sub(last) <= s.cfg.Inactivity {
			return true
		}
		// Pending actions for the game land before it is closed out.
		s.Flush(ctx)
		if err := s.sink.MarkAbandoned(ctx, gameID); err != nil {
			s.logger.WithError(err).Errorf("Failed to mark game %v abandoned.", gameID)
			return true
		}
		s.lastActivity.Delete(gameID)
		s.logger.Infof("Marked game %v as 'abandoned' due to inactivity.", gameID)
		return true
	})
}
