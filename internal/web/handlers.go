package web

import (
	"net/http"
	"strings"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/desk"
	"github.com/zdesklabs/zdesk/internal/errors"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	desk     *desk.Desk
	cfg      *config.Config
	renderer *Renderer
}

// HandleDesk handles GET /desk, the overview page with spaces and widgets.
func (h *Handlers) HandleDesk(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "desk", DeskPageData{
		PageData: PageData{
			Title:   "Desk",
			Version: h.renderer.version,
			Nav:     "desk",
		},
		Spaces:      h.desk.Spaces.Spaces(),
		ActiveSpace: h.desk.Spaces.ActiveSpace(),
		Widgets:     h.desk.Widgets.Widgets(),
		EditMode:    h.desk.Widgets.EditMode(),
	})
}

// HandleNotifications handles GET /notifications, the notification center.
// Notification bodies are treated as markdown.
func (h *Handlers) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	items := h.desk.Notifications.Notifications()
	views := make([]NotificationView, len(items))
	for i, n := range items {
		views[i] = NotificationView{
			ID:           n.ID,
			Type:         string(n.Type),
			Title:        n.Title,
			AppName:      n.AppName,
			Read:         n.Read,
			Timestamp:    n.Timestamp,
			RenderedBody: renderMarkdown(n.Body),
		}
	}

	h.renderer.renderPage(w, r, "notifications", NotificationsPageData{
		PageData: PageData{
			Title:   "Notifications",
			Version: h.renderer.version,
			Nav:     "notifications",
		},
		Items:        views,
		Unread:       h.desk.Notifications.UnreadCount(),
		DoNotDisturb: h.desk.Notifications.DoNotDisturb(),
	})
}

// HandleNotificationDismiss handles DELETE /notifications/{id}.
func (h *Handlers) HandleNotificationDismiss(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("notification ID is required"))
		return
	}

	found := false
	for _, n := range h.desk.Notifications.Notifications() {
		if n.ID == id {
			found = true
			break
		}
	}
	if !found {
		h.renderer.renderError(w, r, errors.NewNotFound(id))
		return
	}

	h.desk.Bus.Dismiss(id)

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/notifications")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{"dismissed": id})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/notifications", http.StatusFound)
}

// HandleToggleDND handles POST /notifications/dnd: flip do-not-disturb.
func (h *Handlers) HandleToggleDND(w http.ResponseWriter, r *http.Request) {
	active := h.desk.Notifications.ToggleDoNotDisturb()

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{"do_not_disturb": active})
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusFound)
}

// HandleClipboard handles GET /clipboard, the clipboard history page.
func (h *Handlers) HandleClipboard(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "clipboard", ClipboardPageData{
		PageData: PageData{
			Title:   "Clipboard",
			Version: h.renderer.version,
			Nav:     "clipboard",
		},
		Items: h.desk.Clipboard.Items(),
	})
}

// HandleTags handles GET /tags: tags, tagged files, and smart folders.
func (h *Handlers) HandleTags(w http.ResponseWriter, r *http.Request) {
	allTags := h.desk.Tags.Tags()
	rows := make([]TagRow, len(allTags))
	for i, tag := range allTags {
		rows[i] = TagRow{
			Tag:   tag,
			Files: h.desk.Tags.FilesByTag(tag.ID),
		}
	}

	h.renderer.renderPage(w, r, "tags", TagsPageData{
		PageData: PageData{
			Title:   "Tags",
			Version: h.renderer.version,
			Nav:     "tags",
		},
		Rows:    rows,
		Folders: h.desk.Tags.SmartFolders(),
	})
}
