// Package config manages persistent user settings stored at
// ~/.skilldock/config.yaml, backed by Viper with SKILLDOCK_* environment
// variable overrides. The only key the installer consults at runtime is
// default_tool, used when `install` is run without --tool.
package config
