// Package rules is the built-in rule catalog. Each rule lives in its own
// file and registers through DefaultRegistry; nothing here is wired at
// package init time, so tests can build partial registries freely.
package rules
