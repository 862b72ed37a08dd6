// Package file persists settings as TOML at ~/.resumechat/config.toml (or
// config.toml in a directory given with --config-dir). Every Set rewrites
// the file with 0600 permissions since it holds API keys.
package file
