package common

import (
	"github.com/leapstack-labs/assetops/internal/section"
)

// SectionPath returns the URL of a section page.
func SectionPath(key section.Key) string {
	return "/" + string(key)
}

// BuildSidebar lists every section, marking current as active.
func BuildSidebar(current section.Key) SidebarData {
	all := section.All()
	items := make([]NavItem, len(all))
	for i, s := range all {
		items[i] = NavItem{
			Label:  s.Label,
			Href:   SectionPath(s.Key),
			Active: s.Key == current,
		}
	}
	return SidebarData{Title: "Navigation", Items: items}
}
