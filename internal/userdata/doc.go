// Package userdata resolves filesystem roots for user-wide installs.
// It centralizes home-directory lookup so tests can redirect every
// global-scope path through a single environment variable.
package userdata
