package clipboard

import (
	"context"
	"time"
)

// Watch polls the system clipboard and records new text through AddItem.
// Read failures (permission denied, no clipboard utility available) are
// routine in sandboxed environments and are silently ignored. Watch returns
// when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			text, err := s.readClipboard()
			if err != nil {
				continue
			}
			if text == "" || text == last {
				continue
			}
			last = text
			s.AddItem(text, "")
		}
	}
}
