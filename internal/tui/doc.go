// Package tui implements the bintree terminal viewer.
//
// Built with Charmbracelet's BubbleTea and Lipgloss.
//
// Component architecture:
//
//	model.go      root model, message routing, Init/Update/View
//	theme.go      centralized color + style definitions
//	header.go     top bar and footer with key hints
//	diagram.go    the fixed-depth tree diagram
//	detail.go     shape metrics pane
//	orderview.go  insertion, in-order and pre-order listings
//	history.go    saved sequence selector
//	helpers.go    truncation and clamping
package tui
