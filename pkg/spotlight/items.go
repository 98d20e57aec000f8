package spotlight

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/a-h/templ"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/iota-uz/iam-console/pkg/intl"
)

func NewQuickLink(icon templ.Component, trKey, link string) *QuickLink {
	return &QuickLink{trKey: trKey, icon: icon, link: link}
}

type QuickLink struct {
	trKey string
	icon  templ.Component
	link  string
}

func (i *QuickLink) Label(ctx context.Context) string {
	return intl.T(ctx, i.trKey)
}

func (i *QuickLink) Link() string {
	return i.link
}

// Render writes the link as a spotlight list entry.
func (i *QuickLink) Render(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, `<a class="spotlight-item" href="`+templ.EscapeString(i.link)+`">`); err != nil {
		return err
	}
	if i.icon != nil {
		if err := i.icon.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `<span>`+templ.EscapeString(i.Label(ctx))+`</span></a>`)
	return err
}

type QuickLinks struct {
	mu    sync.RWMutex
	items []*QuickLink
}

// Find ranks links whose translated label fuzzily matches q, best match first.
// An empty query returns every link in registration order.
func (ql *QuickLinks) Find(ctx context.Context, q string) []*QuickLink {
	ql.mu.RLock()
	links := append([]*QuickLink(nil), ql.items...)
	ql.mu.RUnlock()
	if q == "" || len(links) == 0 {
		return links
	}
	words := make([]string, len(links))
	for i, it := range links {
		words[i] = it.Label(ctx)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, words)
	sort.Stable(ranks)

	result := make([]*QuickLink, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, links[rank.OriginalIndex])
	}
	return result
}

func (ql *QuickLinks) Add(links ...*QuickLink) {
	ql.mu.Lock()
	defer ql.mu.Unlock()
	ql.items = append(ql.items, links...)
}

func (ql *QuickLinks) Len() int {
	ql.mu.RLock()
	defer ql.mu.RUnlock()
	return len(ql.items)
}
