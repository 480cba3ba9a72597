// Package ui holds the human-mode terminal styling for the dispatcher.
// It is never consulted by the porcelain output paths (the default for
// both status and show) — only by status --human; show --human renders
// with tablewriter instead.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	sectionStyle = lipgloss.NewStyle().Bold(true)

	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	untrackedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cleanStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func Section(title string) string { return sectionStyle.Render(title) }

func Added(path string) string     { return addedStyle.Render("added:      " + path) }
func Modified(path string) string  { return modifiedStyle.Render("modified:   " + path) }
func Deleted(path string) string   { return deletedStyle.Render("deleted:    " + path) }
func Untracked(path string) string { return untrackedStyle.Render("untracked:  " + path) }
func Clean() string                { return cleanStyle.Render("nothing to commit, working tree clean") }
