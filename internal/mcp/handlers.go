package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zdesklabs/zdesk/internal/bus"
	"github.com/zdesklabs/zdesk/internal/clipboard"
	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/desk"
	"github.com/zdesklabs/zdesk/internal/errors"
	"github.com/zdesklabs/zdesk/internal/recents"
	"github.com/zdesklabs/zdesk/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	desk *desk.Desk
	cfg  *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(d *desk.Desk, cfg *config.Config) *Handlers {
	return &Handlers{desk: d, cfg: cfg}
}

// Request types for each tool

// NotifyPostRequest represents the arguments for notify_post.
type NotifyPostRequest struct {
	Title   string `json:"title"`
	Body    string `json:"body,omitempty"`
	Type    string `json:"type,omitempty"`
	AppName string `json:"app_name,omitempty"`
	AppIcon string `json:"app_icon,omitempty"`
}

// NotifyDismissRequest represents the arguments for notify_dismiss.
type NotifyDismissRequest struct {
	ID string `json:"id"`
}

// ClipboardAddRequest represents the arguments for clipboard_add.
type ClipboardAddRequest struct {
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
}

// RecentsAddRequest represents the arguments for recents_add.
type RecentsAddRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Path  string `json:"path,omitempty"`
	Type  string `json:"type,omitempty"`
	AppID string `json:"app_id,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// SpaceActivateRequest represents the arguments for space_activate.
type SpaceActivateRequest struct {
	ID string `json:"id"`
}

// TagFileSetRequest represents the arguments for tag_file_set.
type TagFileSetRequest struct {
	Path   string   `json:"path"`
	TagIDs []string `json:"tag_ids,omitempty"`
}

// Handler implementations

// HandleNotifyPost handles the notify_post tool call.
func (h *Handlers) HandleNotifyPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NotifyPostRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Title == "" {
		return errorResult(errors.NewInvalidRequest("title is required")), nil
	}

	id := store.NewID()
	h.desk.Bus.Post(bus.PostSignal{
		ID:      id,
		Title:   input.Title,
		Body:    input.Body,
		Type:    input.Type,
		Icon:    input.AppIcon,
		AppName: input.AppName,
	})

	// Under do-not-disturb the store drops the signal, so report whether
	// the notification actually landed.
	suppressed := true
	for _, n := range h.desk.Notifications.Notifications() {
		if n.ID == id {
			suppressed = false
			break
		}
	}
	return successResult(map[string]any{"id": id, "suppressed": suppressed})
}

// HandleNotifyDismiss handles the notify_dismiss tool call.
func (h *Handlers) HandleNotifyDismiss(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NotifyDismissRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	found := false
	for _, n := range h.desk.Notifications.Notifications() {
		if n.ID == input.ID {
			found = true
			break
		}
	}
	if !found {
		return errorResult(errors.NewNotFound(input.ID)), nil
	}

	h.desk.Bus.Dismiss(input.ID)
	return successResult(map[string]any{"dismissed": input.ID})
}

// HandleNotifyDismissAll handles the notify_dismiss_all tool call.
func (h *Handlers) HandleNotifyDismissAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := len(h.desk.Notifications.Notifications())
	h.desk.Bus.DismissAll()
	return successResult(map[string]any{"dismissed": count})
}

// HandleNotifyList handles the notify_list tool call.
func (h *Handlers) HandleNotifyList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := h.desk.Notifications.Notifications()
	return successResult(map[string]any{
		"items":          items,
		"unread":         h.desk.Notifications.UnreadCount(),
		"do_not_disturb": h.desk.Notifications.DoNotDisturb(),
	})
}

// HandleClipboardAdd handles the clipboard_add tool call.
func (h *Handlers) HandleClipboardAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClipboardAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Content == "" {
		return errorResult(errors.NewInvalidRequest("content is required")), nil
	}
	switch input.Type {
	case "", "text", "image", "url", "file":
	default:
		return errorResult(errors.NewInvalidRequest("type must be text, image, url, or file")), nil
	}

	h.desk.Clipboard.AddItem(input.Content, clipboard.ItemType(input.Type))

	items := h.desk.Clipboard.Items()
	if len(items) == 0 || items[0].Content != input.Content {
		return errorResult(errors.NewInvalidRequest("content is empty")), nil
	}
	return successResult(map[string]any{"item": items[0]})
}

// HandleClipboardList handles the clipboard_list tool call.
func (h *Handlers) HandleClipboardList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"items": h.desk.Clipboard.Items()})
}

// HandleRecentsAdd handles the recents_add tool call.
func (h *Handlers) HandleRecentsAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RecentsAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}
	typ := recents.ItemType(input.Type)
	switch typ {
	case "":
		typ = recents.TypeFile
	case recents.TypeFile, recents.TypeFolder, recents.TypeApp:
	default:
		return errorResult(errors.NewInvalidRequest("type must be file, folder, or app")), nil
	}

	h.desk.Recents.AddRecent(recents.Item{
		ID:    input.ID,
		Name:  input.Name,
		Path:  input.Path,
		Type:  typ,
		AppID: input.AppID,
		Icon:  input.Icon,
	})
	if input.AppID != "" {
		h.desk.Recents.AddRecentApp(input.AppID)
	}

	return successResult(map[string]any{"item": h.desk.Recents.Items()[0]})
}

// HandleSpaceList handles the space_list tool call.
func (h *Handlers) HandleSpaceList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{
		"spaces": h.desk.Spaces.Spaces(),
		"active": h.desk.Spaces.ActiveSpace().ID,
	})
}

// HandleSpaceActivate handles the space_activate tool call.
func (h *Handlers) HandleSpaceActivate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SpaceActivateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	found := false
	for _, sp := range h.desk.Spaces.Spaces() {
		if sp.ID == input.ID {
			found = true
			break
		}
	}
	if !found {
		return errorResult(errors.NewNotFound(input.ID)), nil
	}

	h.desk.Spaces.SetActiveSpace(input.ID)
	return successResult(map[string]any{"active": input.ID})
}

// HandleWidgetList handles the widget_list tool call.
func (h *Handlers) HandleWidgetList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"items": h.desk.Widgets.Widgets()})
}

// HandleTagList handles the tag_list tool call.
func (h *Handlers) HandleTagList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{
		"tags":          h.desk.Tags.Tags(),
		"smart_folders": h.desk.Tags.SmartFolders(),
	})
}

// HandleTagFileSet handles the tag_file_set tool call.
func (h *Handlers) HandleTagFileSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TagFileSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Path == "" {
		return errorResult(errors.NewInvalidRequest("path is required")), nil
	}

	known := make(map[string]bool)
	for _, tag := range h.desk.Tags.Tags() {
		known[tag.ID] = true
	}
	for _, id := range input.TagIDs {
		if !known[id] {
			return errorResult(errors.NewNotFound(id)), nil
		}
	}

	h.desk.Tags.SetFileTags(input.Path, input.TagIDs)
	return successResult(map[string]any{
		"path": input.Path,
		"tags": h.desk.Tags.FileTags(input.Path),
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if deskErr, ok := err.(*errors.DeskError); ok {
		errorObj := map[string]any{
			"code":    deskErr.Code,
			"message": deskErr.Message,
			"status":  deskErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if deskErr.Code != errors.ErrInternal && deskErr.Details != nil {
			errorObj["details"] = deskErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
