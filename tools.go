// ABOUTME: Build constraint file to pin the Charm TUI dependencies in go.mod.
// ABOUTME: Keeps the dashboard stack resolvable even if direct imports move.

//go:build tools

package tools

import (
	_ "github.com/charmbracelet/bubbles/table"
	_ "github.com/charmbracelet/bubbletea"
	_ "github.com/charmbracelet/huh"
	_ "github.com/charmbracelet/lipgloss"
)
