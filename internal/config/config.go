package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// ClipboardMaxItems caps retained unpinned clipboard history entries.
	// Pinned entries are exempt.
	ClipboardMaxItems int `json:"clipboard_max_items"`

	// ClipboardPreviewChars is the truncation length for text previews.
	ClipboardPreviewChars int `json:"clipboard_preview_chars"`

	// RecentsMaxItems caps the recent files/folders list.
	RecentsMaxItems int `json:"recents_max_items"`

	// RecentAppsMaxItems caps the recently used application list.
	RecentAppsMaxItems int `json:"recent_apps_max_items"`

	// Screen geometry used for widget placement. Widgets are placed in the
	// area below the menu bar and above the dock.
	ScreenWidth   int `json:"screen_width"`
	ScreenHeight  int `json:"screen_height"`
	MenuBarHeight int `json:"menu_bar_height"`
	DockHeight    int `json:"dock_height"`
	WidgetMargin  int `json:"widget_margin"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// Debug enables logging of swallowed persistence failures.
	Debug bool `json:"debug,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ClipboardMaxItems:     50,
		ClipboardPreviewChars: 200,
		RecentsMaxItems:       20,
		RecentAppsMaxItems:    10,
		ScreenWidth:           1920,
		ScreenHeight:          1080,
		MenuBarHeight:         25,
		DockHeight:            80,
		WidgetMargin:          10,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.zdesk.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.zdesk) and repo (.zdesk) directories.
// Repo config is found by walking upward from startDir to find the nearest .zdesk/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	// Walk upward from startDir to find repo config
	repoConfigPath := FindRepoConfig(startDir)
	repo, err := loadFileRaw(repoConfigPath)
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .zdesk/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".zdesk", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, not found
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// File doesn't exist, return zero config
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.ClipboardMaxItems = pickInt(base.ClipboardMaxItems, overlay.ClipboardMaxItems)
	result.ClipboardPreviewChars = pickInt(base.ClipboardPreviewChars, overlay.ClipboardPreviewChars)
	result.RecentsMaxItems = pickInt(base.RecentsMaxItems, overlay.RecentsMaxItems)
	result.RecentAppsMaxItems = pickInt(base.RecentAppsMaxItems, overlay.RecentAppsMaxItems)
	result.ScreenWidth = pickInt(base.ScreenWidth, overlay.ScreenWidth)
	result.ScreenHeight = pickInt(base.ScreenHeight, overlay.ScreenHeight)
	result.MenuBarHeight = pickInt(base.MenuBarHeight, overlay.MenuBarHeight)
	result.DockHeight = pickInt(base.DockHeight, overlay.DockHeight)
	result.WidgetMargin = pickInt(base.WidgetMargin, overlay.WidgetMargin)
	result.DBMaxOpenConns = pickInt(base.DBMaxOpenConns, overlay.DBMaxOpenConns)
	result.DBMaxIdleConns = pickInt(base.DBMaxIdleConns, overlay.DBMaxIdleConns)

	// Booleans: overlay wins if true, else base
	result.Debug = base.Debug || overlay.Debug

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// pickInt returns overlay if non-zero, else base.
func pickInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
