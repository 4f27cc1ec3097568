// Package desk composes the state stores over a shared persistence
// backend. Surfaces (CLI, MCP, web) construct one Desk and talk to its
// stores; the notification store is attached to the signal bus here.
package desk

import (
	"github.com/zdesklabs/zdesk/internal/bus"
	"github.com/zdesklabs/zdesk/internal/clipboard"
	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/notify"
	"github.com/zdesklabs/zdesk/internal/recents"
	"github.com/zdesklabs/zdesk/internal/spaces"
	"github.com/zdesklabs/zdesk/internal/store"
	"github.com/zdesklabs/zdesk/internal/tags"
	"github.com/zdesklabs/zdesk/internal/widgets"
)

// Desk is the composed state layer: every store hydrated from the same
// backend, plus the notification signal bus.
type Desk struct {
	Backend       store.Backend
	Bus           *bus.Bus
	Clipboard     *clipboard.Store
	Tags          *tags.Store
	Notifications *notify.Store
	Recents       *recents.Store
	Spaces        *spaces.Store
	Widgets       *widgets.Store

	detach func()
}

// New builds all stores over the given backend and wires the notification
// store to the bus.
func New(b store.Backend, cfg *config.Config) *Desk {
	d := &Desk{
		Backend:       b,
		Bus:           bus.New(),
		Clipboard:     clipboard.NewStore(b, cfg),
		Tags:          tags.NewStore(b),
		Notifications: notify.NewStore(b),
		Recents:       recents.NewStore(b, cfg),
		Spaces:        spaces.NewStore(b),
		Widgets:       widgets.NewStore(b, cfg),
	}
	d.detach = d.Notifications.Attach(d.Bus)
	return d
}

// Close detaches the notification store from the bus.
func (d *Desk) Close() {
	if d.detach != nil {
		d.detach()
		d.detach = nil
	}
}
