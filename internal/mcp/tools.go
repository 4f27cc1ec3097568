package mcp

import "github.com/mark3labs/mcp-go/mcp"

var notifyPostToolDef = mcp.NewTool("notify_post",
	mcp.WithDescription("Post a notification to the desktop notification center. While do-not-disturb is active the notification is dropped."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Notification title")),
	mcp.WithString("body", mcp.Description("Notification body text")),
	mcp.WithString("type", mcp.Description("Origin type: app, system, calendar, or github (default app)")),
	mcp.WithString("app_name", mcp.Description("Display name of the posting application")),
	mcp.WithString("app_icon", mcp.Description("Icon identifier of the posting application")),
)

var notifyDismissToolDef = mcp.NewTool("notify_dismiss",
	mcp.WithDescription("Dismiss one notification by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Notification id")),
)

var notifyDismissAllToolDef = mcp.NewTool("notify_dismiss_all",
	mcp.WithDescription("Dismiss every notification in the center."),
)

var notifyListToolDef = mcp.NewTool("notify_list",
	mcp.WithDescription("List notifications newest first, with the unread count and the do-not-disturb flag."),
)

var clipboardAddToolDef = mcp.NewTool("clipboard_add",
	mcp.WithDescription("Record content in the clipboard history. Duplicate content replaces the earlier entry; the history is bounded and pinned entries are never evicted."),
	mcp.WithString("content", mcp.Required(), mcp.Description("The copied content")),
	mcp.WithString("type", mcp.Description("Content type: text, image, url, or file (inferred when omitted)")),
)

var clipboardListToolDef = mcp.NewTool("clipboard_list",
	mcp.WithDescription("List clipboard history entries, most recent first."),
)

var recentsAddToolDef = mcp.NewTool("recents_add",
	mcp.WithDescription("Record a recently opened file, folder, or app. Re-adding an existing id moves it to the front."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Stable item id")),
	mcp.WithString("name", mcp.Description("Display name")),
	mcp.WithString("path", mcp.Description("Filesystem path")),
	mcp.WithString("type", mcp.Description("Item type: file, folder, or app (default file)")),
	mcp.WithString("app_id", mcp.Description("Id of the application that opened the item")),
	mcp.WithString("icon", mcp.Description("Icon identifier")),
)

var spaceListToolDef = mcp.NewTool("space_list",
	mcp.WithDescription("List virtual desktops in order, including the active one and the windows each owns."),
)

var spaceActivateToolDef = mcp.NewTool("space_activate",
	mcp.WithDescription("Activate a virtual desktop by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Space id")),
)

var widgetListToolDef = mcp.NewTool("widget_list",
	mcp.WithDescription("List placed desktop widgets with their positions and size tiers."),
)

var tagListToolDef = mcp.NewTool("tag_list",
	mcp.WithDescription("List file tags and smart folders."),
)

var tagFileSetToolDef = mcp.NewTool("tag_file_set",
	mcp.WithDescription("Replace the full tag set of a file. An empty tag list removes the file's entry."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path of the file")),
	mcp.WithArray("tag_ids", mcp.Description("Tag ids to assign"), mcp.Items(map[string]any{"type": "string"})),
)
