// Package common provides shared types and utilities for UI features.
package common

// Site holds the page chrome shared by every section.
type Site struct {
	Title   string
	Caption string
	Footer  string
}

// NavItem is one entry of the sidebar navigation.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// SidebarData holds data for rendering the sidebar.
type SidebarData struct {
	Title string
	Items []NavItem
}

// Flash is a one-shot message shown after a redirect.
type Flash struct {
	Kind string // "success" or "error"
	Text string
}
