package routing

import (
	"sort"
	"strings"
)

// Classifier maps request paths to route classes by longest matching prefix.
type Classifier struct {
	rules []AllowlistRule
}

func NewClassifier(rules []AllowlistRule) *Classifier {
	copied := make([]AllowlistRule, 0, len(rules))
	for _, rule := range rules {
		rule.Prefix = strings.TrimSpace(rule.Prefix)
		if rule.Prefix == "" {
			continue
		}
		copied = append(copied, rule)
	}

	sort.SliceStable(copied, func(i, j int) bool {
		return len(copied[i].Prefix) > len(copied[j].Prefix)
	})

	return &Classifier{rules: copied}
}

func (c *Classifier) Match(path string) (RouteClass, bool) {
	for _, rule := range c.rules {
		if HasPathPrefixOnBoundary(path, rule.Prefix) {
			return rule.Class, true
		}
	}
	return "", false
}

// ClassifyPath falls back to UI for paths no rule covers.
func (c *Classifier) ClassifyPath(path string) RouteClass {
	if class, ok := c.Match(path); ok {
		return class
	}
	return RouteClassUI
}

// Prefixes returns the prefixes of every rule of class.
func (c *Classifier) Prefixes(class RouteClass) []string {
	var out []string
	for _, rule := range c.rules {
		if rule.Class == class {
			out = append(out, rule.Prefix)
		}
	}
	return out
}

func HasPathPrefixOnBoundary(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	return path[len(prefix)] == '/'
}
