// Package key defines the configuration identifiers shared by the config registry, the CLI and the feed.
package key

// Backend connection.
const (
	BackendURL     = "backend.url"
	BackendTimeout = "backend.timeout"
)

// Feed paging and enrichment.
const (
	FeedPageSize         = "feed.page_size"
	FeedPrefetchDistance = "feed.prefetch_distance"
	FeedGuardPagination  = "feed.guard_pagination"
	FeedEnrichNextPages  = "feed.enrich_next_pages"
)

// Media playback.
const (
	Player             = "player.default"
	PlayerAdaptive     = "player.adaptive"
	PlayerMaxBandwidth = "player.max_bandwidth"
	PlayerMuted        = "player.muted"
	PlayerLoop         = "player.loop"
)

// History tracking.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Terminal user interface.
const (
	TUIScrollStep   = "tui.scroll_step"
	TUIShowURLs     = "tui.show_urls"
	TUIRenderWindow = "tui.render_window"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Creator uploads.
const (
	UploadCloudName = "upload.cloud_name"
	UploadPreset    = "upload.preset"
	UploadMaxSizeMB = "upload.max_size_mb"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
