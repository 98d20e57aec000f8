package types

import (
	"strings"

	"github.com/a-h/templ"
)

type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
	Icon     templ.Component
}

// IsActive reports whether path is the item's page or one below it.
func (n NavigationItem) IsActive(path string) bool {
	if n.Href == "" {
		return false
	}
	if path == n.Href || strings.HasPrefix(path, strings.TrimSuffix(n.Href, "/")+"/") {
		return true
	}
	for _, child := range n.Children {
		if child.IsActive(path) {
			return true
		}
	}
	return false
}

// Flatten returns every item with an Href, children included.
func Flatten(items []NavigationItem) []NavigationItem {
	var out []NavigationItem
	for _, item := range items {
		if item.Href != "" {
			out = append(out, item)
		}
		out = append(out, Flatten(item.Children)...)
	}
	return out
}
