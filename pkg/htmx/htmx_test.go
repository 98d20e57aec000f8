package htmx

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetTrigger_Merges(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, SetTrigger(rec, "notify", map[string]string{"variant": "success"}))
	require.NoError(t, SetTrigger(rec, "listing:refresh", true))

	var events map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get(HeaderTrigger)), &events))
	require.Contains(t, events, "notify")
	require.Equal(t, true, events["listing:refresh"])
}

func TestIsHxRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/iam/roles", nil)
	require.False(t, IsHxRequest(r))
	r.Header.Set(HeaderRequest, "true")
	require.True(t, IsHxRequest(r))
}
