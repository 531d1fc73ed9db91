// Package config handles configuration management for picsort.
// Configuration is loaded in layers: embedded defaults, then the user's
// XDG config file, then a per-source .picsort.toml, with later layers
// overriding earlier ones.
package config
