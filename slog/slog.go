// Package slog provides logging decorators for texmeta services.
package slog
