package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Store is a persistence backend for the serialized session document.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}

type WriterConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		MaxRetries: 2,
		RetryDelay: 200 * time.Millisecond,
	}
}

// WriterStats counts what the writer has done since it was created.
type WriterStats struct {
	Written   int `json:"written"`
	Failed    int `json:"failed"`
	Coalesced int `json:"coalesced"`
}

// Writer saves documents to a Store from a background goroutine so callers
// never wait on disk. Only the latest pending document is kept; older ones
// that were never written are superseded. Before Start and after Stop, Save
// writes synchronously.
type Writer struct {
	store  Store
	config WriterConfig
	clock  clockwork.Clock

	mu         sync.Mutex
	running    bool
	pending    []byte
	hasPending bool
	stats      WriterStats

	wakeCh   chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewWriter(store Store, cfg WriterConfig) *Writer {
	return &Writer{
		store:  store,
		config: cfg,
		clock:  clockwork.NewRealClock(),
		wakeCh: make(chan struct{}, 1),
	}
}

func (w *Writer) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("state writer already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	log.Info().
		Int("max_retries", w.config.MaxRetries).
		Dur("retry_delay", w.config.RetryDelay).
		Msg("state writer started")
	return nil
}

// Stop waits for the background goroutine and flushes whatever is pending.
func (w *Writer) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return fmt.Errorf("state writer not running")
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()
	w.flush(context.Background())

	log.Info().Msg("state writer stopped")
	return nil
}

// Save queues data for writing. It only returns an error when the writer is
// not running and the synchronous write fails.
func (w *Writer) Save(ctx context.Context, data []byte) error {
	data = slices.Clone(data)

	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.write(ctx, data)
	}
	if w.hasPending {
		w.stats.Coalesced++
	}
	w.pending = data
	w.hasPending = true
	w.mu.Unlock()

	select {
	case w.wakeCh <- struct{}{}:
	default:
	}
	return nil
}

// Load reads straight from the underlying store.
func (w *Writer) Load(ctx context.Context) ([]byte, error) {
	return w.store.Load(ctx)
}

func (w *Writer) Stats() WriterStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Writer) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.wakeCh:
			w.flush(ctx)
		}
	}
}

func (w *Writer) flush(ctx context.Context) {
	w.mu.Lock()
	if !w.hasPending {
		w.mu.Unlock()
		return
	}
	data := w.pending
	w.pending = nil
	w.hasPending = false
	w.mu.Unlock()

	if err := w.write(ctx, data); err != nil {
		log.Error().Err(err).Int("bytes", len(data)).Msg("failed to persist state")
	}
}

func (w *Writer) write(ctx context.Context, data []byte) error {
	err := w.writeWithRetry(ctx, data)

	w.mu.Lock()
	if err != nil {
		w.stats.Failed++
	} else {
		w.stats.Written++
	}
	w.mu.Unlock()
	return err
}

func (w *Writer) writeWithRetry(ctx context.Context, data []byte) error {
	var lastErr error

	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-w.clock.After(w.config.RetryDelay * time.Duration(attempt)):
			}
		}

		if err := w.store.Save(ctx, data); err != nil {
			lastErr = err
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Msg("failed to save state, retrying")
			continue
		}
		return nil
	}

	return fmt.Errorf("failed after %d attempts: %w", w.config.MaxRetries+1, lastErr)
}
