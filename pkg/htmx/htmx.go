// Package htmx reads htmx request headers and writes htmx response headers.
package htmx

import (
	"encoding/json"
	"net/http"
)

const (
	HeaderRequest    = "HX-Request"
	HeaderTarget     = "HX-Target"
	HeaderTrigger    = "HX-Trigger"
	HeaderReplaceURL = "HX-Replace-Url"
	HeaderRedirect   = "HX-Redirect"
	HeaderRetarget   = "HX-Retarget"
	HeaderReswap     = "HX-Reswap"
)

func IsHxRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

func Target(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

// SetReplaceURL replaces the browser URL without pushing a history entry.
func SetReplaceURL(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderReplaceURL, url)
}

func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderRedirect, url)
}

func Retarget(w http.ResponseWriter, selector, swap string) {
	w.Header().Set(HeaderRetarget, selector)
	if swap != "" {
		w.Header().Set(HeaderReswap, swap)
	}
}

// SetTrigger fires a client-side event carrying payload. Existing triggers set on the
// same response are kept.
func SetTrigger(w http.ResponseWriter, event string, payload any) error {
	events := map[string]any{}
	if prev := w.Header().Get(HeaderTrigger); prev != "" {
		if err := json.Unmarshal([]byte(prev), &events); err != nil {
			events = map[string]any{prev: nil}
		}
	}
	events[event] = payload
	b, err := json.Marshal(events)
	if err != nil {
		return err
	}
	w.Header().Set(HeaderTrigger, string(b))
	return nil
}
