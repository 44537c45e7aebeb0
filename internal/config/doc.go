// Package config provides the settings of the pixstorm editor.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← PIXSTORM_*, highest priority
//	├─────────────────────────────┤
//	│  2. Settings File           │  ← pixstorm.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The settings file is TOML and is decoded strictly: unknown keys are an
// error rather than silently ignored.
//
//	[history]
//	max_entries = 200
//
//	[selection]
//	drag_threshold = 4
//	background = "#ffffff"
//	mask = false
//	alpha = false
//
//	[logging]
//	level = "info"
//
// A Watcher reloads the file when it changes and delivers the new settings
// on a channel.
package config
