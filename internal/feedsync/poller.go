package feedsync

import (
	"context"
	"log"
	"time"
)

// StartPolling launches the background poll loop. Ticks only poll while
// the consuming surface is in the foreground; OnBackground suspends them
// and OnForeground resumes with an immediate poll. It returns immediately.
func (s *Synchronizer) StartPolling(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.pollCancel != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.pollCancel = cancel
	s.foreground = true
	s.mu.Unlock()

	go s.pollLoop(ctx)
}

// StopPolling cancels the poll loop. In-flight fetches are not aborted but
// their results are discarded once the synchronizer is closed.
func (s *Synchronizer) StopPolling() {
	s.mu.Lock()
	cancel := s.pollCancel
	s.pollCancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// OnForeground resumes polling and triggers an immediate poll so the feed
// catches up right away after being backgrounded.
func (s *Synchronizer) OnForeground() {
	s.mu.Lock()
	s.foreground = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// OnBackground suspends poll ticks. The loop keeps running so a later
// OnForeground picks up without restarting it.
func (s *Synchronizer) OnBackground() {
	s.mu.Lock()
	s.foreground = false
	s.mu.Unlock()
}

func (s *Synchronizer) isForeground() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.foreground
}

func (s *Synchronizer) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.isForeground() {
				continue
			}
			if err := s.PollNewer(ctx); err != nil && err != ErrClosed {
				log.Printf("feed poll failed: %v", err)
			}
		case <-s.wake:
			if err := s.PollNewer(ctx); err != nil && err != ErrClosed {
				log.Printf("feed poll failed: %v", err)
			}
		}
	}
}
