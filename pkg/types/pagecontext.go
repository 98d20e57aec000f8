package types

import (
	"net/url"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// PageContext carries what every rendered page needs: locale, translations, the
// current URL and the navigation tree.
type PageContext struct {
	Locale    language.Tag
	URL       *url.URL
	Localizer *i18n.Localizer
	NavItems  []NavigationItem
	prefix    string
}

func (p *PageContext) messageID(k string) string {
	if p.prefix != "" {
		return p.prefix + "." + k
	}
	return k
}

// T translates k and falls back to the message ID when it is missing.
func (p *PageContext) T(k string, args ...map[string]interface{}) string {
	if v := p.TSafe(k, args...); v != "" {
		return v
	}
	return p.messageID(k)
}

func (p *PageContext) TSafe(k string, args ...map[string]interface{}) string {
	if len(args) > 1 {
		panic("T(): too many arguments")
	}
	if p.Localizer == nil {
		return ""
	}
	cfg := &i18n.LocalizeConfig{MessageID: p.messageID(k)}
	if len(args) == 1 {
		cfg.TemplateData = args[0]
	}
	result, err := p.Localizer.Localize(cfg)
	if err != nil {
		return ""
	}
	return result
}

// Namespace returns a copy whose lookups are prefixed with prefix.
func (p *PageContext) Namespace(prefix string) *PageContext {
	cp := *p
	cp.prefix = p.messageID(prefix)
	return &cp
}

// ToJSLocale converts the page locale to a locale string for Intl APIs.
func (p *PageContext) ToJSLocale() string {
	switch p.Locale.String() {
	case "zh", "zh-CN", "zh-Hans":
		return "zh-CN"
	case "zh-TW", "zh-Hant":
		return "zh-TW"
	default:
		return "en-US"
	}
}

// ActiveNav returns the top-level item whose subtree contains the current path.
func (p *PageContext) ActiveNav() (NavigationItem, bool) {
	if p.URL == nil {
		return NavigationItem{}, false
	}
	for _, item := range p.NavItems {
		if item.IsActive(p.URL.Path) {
			return item, true
		}
	}
	return NavigationItem{}, false
}
