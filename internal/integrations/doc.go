// Package integrations projects a canonical skill bundle into the native
// configuration layout of each supported AI coding assistant. Every host
// is an Adapter: a named, stateless strategy that resolves install roots
// per scope and performs idempotent, reversible, dry-runnable install and
// uninstall operations. Adapters share a toolkit of filesystem helpers
// and are looked up by name through a Registry built once per process.
package integrations
