package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/desk"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"notify_post": {
		def:     notifyPostToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNotifyPost },
	},
	"notify_dismiss": {
		def:     notifyDismissToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNotifyDismiss },
	},
	"notify_dismiss_all": {
		def:     notifyDismissAllToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNotifyDismissAll },
	},
	"notify_list": {
		def:     notifyListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNotifyList },
	},
	"clipboard_add": {
		def:     clipboardAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClipboardAdd },
	},
	"clipboard_list": {
		def:     clipboardListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClipboardList },
	},
	"recents_add": {
		def:     recentsAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRecentsAdd },
	},
	"space_list": {
		def:     spaceListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSpaceList },
	},
	"space_activate": {
		def:     spaceActivateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSpaceActivate },
	},
	"widget_list": {
		def:     widgetListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWidgetList },
	},
	"tag_list": {
		def:     tagListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTagList },
	},
	"tag_file_set": {
		def:     tagFileSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTagFileSet },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with zdesk tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(d *desk.Desk, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"zdesk",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(d, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(d *desk.Desk, cfg *config.Config, version string) error {
	s := NewServer(d, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
