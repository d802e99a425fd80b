package post

import (
	"fmt"
	"log"
	"sync"
)

// effect is one conditional fan-out step: a predicate deciding whether
// it applies to this creation, and the action itself.
type effect struct {
	name string
	when bool
	run  func() error
}

// runStrict executes effects in order and stops at the first failure.
// Callers run it under the creating transaction, so a failure here
// unwinds the post insert as well.
func runStrict(effects []effect) error {
	for _, e := range effects {
		if !e.when {
			continue
		}
		if err := e.run(); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
	}
	return nil
}

// runBestEffort dispatches effects concurrently and waits for all of
// them. The steps are independent of each other; a failure is logged
// and counted but never stops a sibling or the already-committed post.
func runBestEffort(postID uint64, effects []effect) {
	var wg sync.WaitGroup
	for _, e := range effects {
		if !e.when {
			continue
		}
		wg.Add(1)
		go func(e effect) {
			defer wg.Done()
			if err := e.run(); err != nil {
				log.Printf("post %d: fanout %s: %v", postID, e.name, err)
				fanoutFailures.WithLabelValues(e.name).Inc()
			}
		}(e)
	}
	wg.Wait()
}
