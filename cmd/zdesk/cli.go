package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/zdesklabs/zdesk/internal/bus"
	"github.com/zdesklabs/zdesk/internal/clipboard"
	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/desk"
	"github.com/zdesklabs/zdesk/internal/errors"
	"github.com/zdesklabs/zdesk/internal/recents"
	"github.com/zdesklabs/zdesk/internal/store"
	"github.com/zdesklabs/zdesk/internal/tags"
	"github.com/zdesklabs/zdesk/internal/web"
	"github.com/zdesklabs/zdesk/internal/widgets"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(d *desk.Desk, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "zdesk",
		Usage:   "Desktop state layer",
		Version: Version,
		Commands: []*cli.Command{
			clipboardCmd(d),
			tagCmd(d),
			folderCmd(d),
			notifyCmd(d),
			recentsCmd(d),
			spaceCmd(d),
			widgetCmd(d),
			exportCmd(d, baseDir),
			importCmd(d),
			uiCmd(d, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// clipboardCmd creates the clipboard command group.
func clipboardCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "clipboard",
		Usage: "Clipboard history",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Record content in the history (argument or stdin)",
				ArgsUsage: "[content]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Content type: text|image|url|file (inferred when omitted)"},
				},
				Action: func(c *cli.Context) error {
					content := c.Args().First()
					if content == "" && stdinHasData() {
						var err error
						content, err = readStdin()
						if err != nil {
							return outputError(errors.NewInternal(err))
						}
					}
					if content == "" {
						return outputError(errors.NewInvalidRequest("content is required"))
					}
					typ := c.String("type")
					switch typ {
					case "", "text", "image", "url", "file":
					default:
						return outputError(errors.NewInvalidRequest("type must be text, image, url, or file"))
					}

					d.Clipboard.AddItem(content, clipboard.ItemType(typ))
					items := d.Clipboard.Items()
					if len(items) == 0 || items[0].Content != content {
						return outputError(errors.NewInvalidRequest("content is empty"))
					}
					return outputJSON(items[0])
				},
			},
			{
				Name:  "list",
				Usage: "List history entries, most recent first",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{"items": d.Clipboard.Items()})
				},
			},
			{
				Name:      "pin",
				Usage:     "Pin an entry so it survives eviction and clears",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					return clipboardSetPinned(d, c.Args().First(), true)
				},
			},
			{
				Name:      "unpin",
				Usage:     "Unpin an entry",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					return clipboardSetPinned(d, c.Args().First(), false)
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove an entry",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !clipboardHas(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Clipboard.RemoveItem(id)
					return outputJSON(map[string]any{"removed": id})
				},
			},
			{
				Name:  "clear",
				Usage: "Clear the history (pinned entries survive)",
				Action: func(c *cli.Context) error {
					d.Clipboard.ClearHistory()
					return outputJSON(map[string]any{"items": d.Clipboard.Items()})
				},
			},
			{
				Name:      "paste",
				Usage:     "Write an entry back to the system clipboard",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !clipboardHas(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Clipboard.PasteItem(id)
					return outputJSON(map[string]any{"pasted": id})
				},
			},
			{
				Name:  "watch",
				Usage: "Poll the system clipboard and record changes until interrupted",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "interval", Aliases: []string{"i"}, Value: 2 * time.Second, Usage: "Poll interval"},
				},
				Action: func(c *cli.Context) error {
					ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					fmt.Fprintln(os.Stderr, "watching clipboard, Ctrl-C to stop")
					d.Clipboard.Watch(ctx, c.Duration("interval"))
					return nil
				},
			},
		},
	}
}

func clipboardHas(d *desk.Desk, id string) bool {
	for _, it := range d.Clipboard.Items() {
		if it.ID == id {
			return true
		}
	}
	return false
}

func clipboardSetPinned(d *desk.Desk, id string, pinned bool) error {
	if id == "" {
		return outputError(errors.NewInvalidRequest("id is required"))
	}
	if !clipboardHas(d, id) {
		return outputError(errors.NewNotFound(id))
	}
	if pinned {
		d.Clipboard.PinItem(id)
	} else {
		d.Clipboard.UnpinItem(id)
	}
	return outputJSON(map[string]any{"id": id, "pinned": pinned})
}

// tagCmd creates the tag command group.
func tagCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "tag",
		Usage: "File tags",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tags",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{"tags": d.Tags.Tags()})
				},
			},
			{
				Name:      "create",
				Usage:     "Create a tag",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "color", Aliases: []string{"c"}, Value: "gray", Usage: "Tag color"},
				},
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return outputError(errors.NewInvalidRequest("name is required"))
					}
					tag := d.Tags.CreateTag(name, tags.Color(c.String("color")))
					if tag == nil {
						return outputError(errors.NewInvalidRequest("name is required"))
					}
					return outputJSON(tag)
				},
			},
			{
				Name:      "update",
				Usage:     "Rename or recolor a tag",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New name"},
					&cli.StringFlag{Name: "color", Aliases: []string{"c"}, Usage: "New color"},
				},
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !tagExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					upd := tags.TagUpdate{}
					if c.IsSet("name") {
						name := c.String("name")
						upd.Name = &name
					}
					if c.IsSet("color") {
						color := tags.Color(c.String("color"))
						upd.Color = &color
					}
					d.Tags.UpdateTag(id, upd)
					return outputJSON(map[string]any{"tags": d.Tags.Tags()})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a tag and detach it from every file",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !tagExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Tags.DeleteTag(id)
					return outputJSON(map[string]any{"deleted": id})
				},
			},
			{
				Name:      "attach",
				Usage:     "Attach a tag to a file",
				ArgsUsage: "<path> <tag-id>",
				Action: func(c *cli.Context) error {
					path, id := c.Args().Get(0), c.Args().Get(1)
					if path == "" || id == "" {
						return outputError(errors.NewInvalidRequest("path and tag id are required"))
					}
					if !tagExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Tags.AddTagToFile(path, id)
					return outputJSON(map[string]any{"path": path, "tags": d.Tags.FileTags(path)})
				},
			},
			{
				Name:      "detach",
				Usage:     "Detach a tag from a file",
				ArgsUsage: "<path> <tag-id>",
				Action: func(c *cli.Context) error {
					path, id := c.Args().Get(0), c.Args().Get(1)
					if path == "" || id == "" {
						return outputError(errors.NewInvalidRequest("path and tag id are required"))
					}
					d.Tags.RemoveTagFromFile(path, id)
					return outputJSON(map[string]any{"path": path, "tags": d.Tags.FileTags(path)})
				},
			},
			{
				Name:      "files",
				Usage:     "List files carrying a tag",
				ArgsUsage: "<tag-id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("tag id is required"))
					}
					return outputJSON(map[string]any{"files": d.Tags.FilesByTag(id)})
				},
			},
			{
				Name:      "set",
				Usage:     "Replace a file's tags wholesale (no ids clears the file)",
				ArgsUsage: "<path> [tag-id...]",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return outputError(errors.NewInvalidRequest("path is required"))
					}
					ids := c.Args().Tail()
					for _, id := range ids {
						if !tagExists(d, id) {
							return outputError(errors.NewNotFound(id))
						}
					}
					d.Tags.SetFileTags(path, ids)
					return outputJSON(map[string]any{"path": path, "tags": d.Tags.FileTags(path)})
				},
			},
			{
				Name:      "of",
				Usage:     "List the tags on a file",
				ArgsUsage: "<path>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return outputError(errors.NewInvalidRequest("path is required"))
					}
					return outputJSON(map[string]any{"path": path, "tags": d.Tags.FileTags(path)})
				},
			},
		},
	}
}

func tagExists(d *desk.Desk, id string) bool {
	for _, t := range d.Tags.Tags() {
		if t.ID == id {
			return true
		}
	}
	return false
}

// folderCmd creates the smart folder command group.
func folderCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "folder",
		Usage: "Smart folders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List smart folders",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{"folders": d.Tags.SmartFolders()})
				},
			},
			{
				Name:      "create",
				Usage:     "Create a smart folder (filters as JSON)",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filters", Aliases: []string{"f"}, Usage: `Filter list, e.g. '[{"type":"tag","value":"tag-red","operator":"is"}]'`},
				},
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return outputError(errors.NewInvalidRequest("name is required"))
					}
					var filters []tags.Filter
					if raw := c.String("filters"); raw != "" {
						if err := json.Unmarshal([]byte(raw), &filters); err != nil {
							return outputError(errors.NewInvalidRequest("filters must be a JSON array"))
						}
					}
					folder := d.Tags.CreateSmartFolder(name, filters)
					if folder == nil {
						return outputError(errors.NewInvalidRequest("name is required"))
					}
					return outputJSON(folder)
				},
			},
			{
				Name:      "update",
				Usage:     "Rename a smart folder or replace its filters",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New name"},
					&cli.StringFlag{Name: "filters", Aliases: []string{"f"}, Usage: "Replacement filter list as JSON"},
				},
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					upd := tags.FolderUpdate{}
					if c.IsSet("name") {
						name := c.String("name")
						upd.Name = &name
					}
					if c.IsSet("filters") {
						var filters []tags.Filter
						if err := json.Unmarshal([]byte(c.String("filters")), &filters); err != nil {
							return outputError(errors.NewInvalidRequest("filters must be a JSON array"))
						}
						upd.Filters = &filters
					}
					d.Tags.UpdateSmartFolder(id, upd)
					return outputJSON(map[string]any{"folders": d.Tags.SmartFolders()})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a smart folder",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					d.Tags.DeleteSmartFolder(id)
					return outputJSON(map[string]any{"deleted": id})
				},
			},
		},
	}
}

// notifyCmd creates the notification command group.
func notifyCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "notify",
		Usage: "Notification center",
		Subcommands: []*cli.Command{
			{
				Name:      "post",
				Aliases:   []string{"add"},
				Usage:     "Post a notification (dropped while do-not-disturb is active)",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "Body text"},
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Origin type: app|system|calendar|github"},
					&cli.StringFlag{Name: "app", Aliases: []string{"a"}, Usage: "Posting application name"},
					&cli.StringFlag{Name: "icon", Usage: "Posting application icon"},
				},
				Action: func(c *cli.Context) error {
					title := c.Args().First()
					if title == "" {
						return outputError(errors.NewInvalidRequest("title is required"))
					}
					id := store.NewID()
					d.Bus.Post(bus.PostSignal{
						ID:      id,
						Title:   title,
						Body:    c.String("body"),
						Type:    c.String("type"),
						Icon:    c.String("icon"),
						AppName: c.String("app"),
					})
					suppressed := !notificationExists(d, id)
					return outputJSON(map[string]any{"id": id, "suppressed": suppressed})
				},
			},
			{
				Name:  "list",
				Usage: "List notifications, newest first",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{
						"items":          d.Notifications.Notifications(),
						"unread":         d.Notifications.UnreadCount(),
						"do_not_disturb": d.Notifications.DoNotDisturb(),
					})
				},
			},
			{
				Name:      "dismiss",
				Usage:     "Dismiss one notification",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !notificationExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Bus.Dismiss(id)
					return outputJSON(map[string]any{"dismissed": id})
				},
			},
			{
				Name:  "dismiss-all",
				Usage: "Dismiss every notification",
				Action: func(c *cli.Context) error {
					count := len(d.Notifications.Notifications())
					d.Bus.DismissAll()
					return outputJSON(map[string]any{"dismissed": count})
				},
			},
			{
				Name:      "read",
				Usage:     "Mark a notification as read",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !notificationExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Notifications.MarkAsRead(id)
					return outputJSON(map[string]any{"read": id, "unread": d.Notifications.UnreadCount()})
				},
			},
			{
				Name:  "read-all",
				Usage: "Mark every notification as read",
				Action: func(c *cli.Context) error {
					d.Notifications.MarkAllAsRead()
					return outputJSON(map[string]any{"unread": d.Notifications.UnreadCount()})
				},
			},
			{
				Name:  "feeds",
				Usage: "Show the calendar, weather, and stocks feeds",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{
						"calendar": d.Notifications.CalendarEvents(),
						"weather":  d.Notifications.Weather(),
						"stocks":   d.Notifications.Stocks(),
					})
				},
			},
			{
				Name:      "dnd",
				Usage:     "Set or toggle do-not-disturb",
				ArgsUsage: "[on|off]",
				Action: func(c *cli.Context) error {
					switch c.Args().First() {
					case "on":
						d.Notifications.SetDoNotDisturb(true)
					case "off":
						d.Notifications.SetDoNotDisturb(false)
					case "":
						d.Notifications.ToggleDoNotDisturb()
					default:
						return outputError(errors.NewInvalidRequest("argument must be on or off"))
					}
					return outputJSON(map[string]any{"do_not_disturb": d.Notifications.DoNotDisturb()})
				},
			},
		},
	}
}

func notificationExists(d *desk.Desk, id string) bool {
	for _, n := range d.Notifications.Notifications() {
		if n.ID == id {
			return true
		}
	}
	return false
}

// recentsCmd creates the recents command group.
func recentsCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "recents",
		Usage: "Recently opened files and apps",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Record a recently opened item",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name"},
					&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Filesystem path"},
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Value: "file", Usage: "Item type: file|folder|app"},
					&cli.StringFlag{Name: "app", Aliases: []string{"a"}, Usage: "Opening application id"},
				},
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					typ := recents.ItemType(c.String("type"))
					switch typ {
					case recents.TypeFile, recents.TypeFolder, recents.TypeApp:
					default:
						return outputError(errors.NewInvalidRequest("type must be file, folder, or app"))
					}
					d.Recents.AddRecent(recents.Item{
						ID:    id,
						Name:  c.String("name"),
						Path:  c.String("path"),
						Type:  typ,
						AppID: c.String("app"),
					})
					if appID := c.String("app"); appID != "" {
						d.Recents.AddRecentApp(appID)
					}
					return outputJSON(d.Recents.Items()[0])
				},
			},
			{
				Name:  "list",
				Usage: "List recent items and apps",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "app", Aliases: []string{"a"}, Usage: "Only items opened by this application"},
				},
				Action: func(c *cli.Context) error {
					if appID := c.String("app"); appID != "" {
						return outputJSON(map[string]any{"items": d.Recents.ItemsForApp(appID)})
					}
					return outputJSON(map[string]any{
						"items": d.Recents.Items(),
						"apps":  d.Recents.Apps(),
					})
				},
			},
			{
				Name:  "clear",
				Usage: "Clear recent items (all, or one application's)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "app", Aliases: []string{"a"}, Usage: "Only clear this application's items"},
				},
				Action: func(c *cli.Context) error {
					if appID := c.String("app"); appID != "" {
						d.Recents.ClearForApp(appID)
					} else {
						d.Recents.Clear()
					}
					return outputJSON(map[string]any{"items": d.Recents.Items()})
				},
			},
		},
	}
}

// spaceCmd creates the spaces command group.
func spaceCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "space",
		Usage: "Virtual desktops",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List spaces in order",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{
						"spaces": d.Spaces.Spaces(),
						"active": d.Spaces.ActiveSpace().ID,
					})
				},
			},
			{
				Name:  "add",
				Usage: "Add a new space",
				Action: func(c *cli.Context) error {
					return outputJSON(d.Spaces.AddSpace())
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a space (the last space cannot be removed)",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !spaceExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					if len(d.Spaces.Spaces()) == 1 {
						return outputError(errors.NewInvalidRequest("cannot remove the last space"))
					}
					d.Spaces.RemoveSpace(id)
					return outputJSON(map[string]any{"spaces": d.Spaces.Spaces()})
				},
			},
			{
				Name:      "activate",
				Usage:     "Activate a space",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !spaceExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Spaces.SetActiveSpace(id)
					return outputJSON(map[string]any{"active": id})
				},
			},
			{
				Name:      "rename",
				Usage:     "Rename a space",
				ArgsUsage: "<id> <name>",
				Action: func(c *cli.Context) error {
					id, name := c.Args().Get(0), c.Args().Get(1)
					if id == "" || name == "" {
						return outputError(errors.NewInvalidRequest("id and name are required"))
					}
					if !spaceExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Spaces.RenameSpace(id, name)
					return outputJSON(map[string]any{"spaces": d.Spaces.Spaces()})
				},
			},
			{
				Name:  "next",
				Usage: "Activate the next space (wraps around)",
				Action: func(c *cli.Context) error {
					d.Spaces.GoToNextSpace()
					return outputJSON(map[string]any{"active": d.Spaces.ActiveSpace().ID})
				},
			},
			{
				Name:  "prev",
				Usage: "Activate the previous space (wraps around)",
				Action: func(c *cli.Context) error {
					d.Spaces.GoToPrevSpace()
					return outputJSON(map[string]any{"active": d.Spaces.ActiveSpace().ID})
				},
			},
			{
				Name:      "move-window",
				Usage:     "Move a window to a space",
				ArgsUsage: "<window-id> <space-id>",
				Action: func(c *cli.Context) error {
					windowID, spaceID := c.Args().Get(0), c.Args().Get(1)
					if windowID == "" || spaceID == "" {
						return outputError(errors.NewInvalidRequest("window id and space id are required"))
					}
					if !spaceExists(d, spaceID) {
						return outputError(errors.NewNotFound(spaceID))
					}
					d.Spaces.MoveWindowToSpace(windowID, spaceID)
					return outputJSON(map[string]any{
						"space":   spaceID,
						"windows": d.Spaces.WindowsInSpace(spaceID),
					})
				},
			},
		},
	}
}

func spaceExists(d *desk.Desk, id string) bool {
	for _, sp := range d.Spaces.Spaces() {
		if sp.ID == id {
			return true
		}
	}
	return false
}

// widgetCmd creates the widget command group.
func widgetCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "widget",
		Usage: "Desktop widgets",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List placed widgets",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{"items": d.Widgets.Widgets()})
				},
			},
			{
				Name:      "add",
				Usage:     "Place a new widget at the first free grid cell",
				ArgsUsage: "<type>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "size", Aliases: []string{"s"}, Value: "small", Usage: "Size tier: small|medium|large"},
				},
				Action: func(c *cli.Context) error {
					typ := c.Args().First()
					if typ == "" {
						return outputError(errors.NewInvalidRequest("type is required"))
					}
					size := widgets.Size(c.String("size"))
					switch size {
					case widgets.SizeSmall, widgets.SizeMedium, widgets.SizeLarge:
					default:
						return outputError(errors.NewInvalidRequest("size must be small, medium, or large"))
					}
					return outputJSON(d.Widgets.AddWidget(widgets.Type(typ), size))
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a widget",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !widgetExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					d.Widgets.RemoveWidget(id)
					return outputJSON(map[string]any{"removed": id})
				},
			},
			{
				Name:      "move",
				Usage:     "Reposition a widget",
				ArgsUsage: "<id> <x> <y>",
				Action: func(c *cli.Context) error {
					id := c.Args().Get(0)
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if !widgetExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					x, errX := strconv.Atoi(c.Args().Get(1))
					y, errY := strconv.Atoi(c.Args().Get(2))
					if errX != nil || errY != nil {
						return outputError(errors.NewInvalidRequest("x and y must be integers"))
					}
					d.Widgets.MoveWidget(id, widgets.Position{X: x, Y: y})
					return outputJSON(map[string]any{"items": d.Widgets.Widgets()})
				},
			},
			{
				Name:      "resize",
				Usage:     "Change a widget's size tier",
				ArgsUsage: "<id> <size>",
				Action: func(c *cli.Context) error {
					id, sizeArg := c.Args().Get(0), c.Args().Get(1)
					if id == "" || sizeArg == "" {
						return outputError(errors.NewInvalidRequest("id and size are required"))
					}
					if !widgetExists(d, id) {
						return outputError(errors.NewNotFound(id))
					}
					size := widgets.Size(sizeArg)
					switch size {
					case widgets.SizeSmall, widgets.SizeMedium, widgets.SizeLarge:
					default:
						return outputError(errors.NewInvalidRequest("size must be small, medium, or large"))
					}
					d.Widgets.ResizeWidget(id, size)
					return outputJSON(map[string]any{"items": d.Widgets.Widgets()})
				},
			},
		},
	}
}

func widgetExists(d *desk.Desk, id string) bool {
	for _, w := range d.Widgets.Widgets() {
		if w.ID == id {
			return true
		}
	}
	return false
}

// exportCmd creates the export command.
func exportCmd(d *desk.Desk, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export every persisted snapshot to a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.zdesk/backups/session-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			output, err := store.Export(d.Backend, baseDir, c.String("path"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(d *desk.Desk) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Restore snapshots from an export file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			output, err := store.Import(d.Backend, c.String("path"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// uiCmd creates the web UI command.
func uiCmd(d *desk.Desk, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Serve the web dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 7236, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(d, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if deskErr, ok := err.(*errors.DeskError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", deskErr.Code, deskErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
