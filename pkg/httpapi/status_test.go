package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iam-console/pkg/serrors"
)

func TestWriteServiceError(t *testing.T) {
	codes := StatusCodes{"NOT_FOUND": http.StatusNotFound}

	t.Run("Should map coded errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("lookup: %w", serrors.NewError("NOT_FOUND", "role not found", ""))
		require.NoError(t, WriteServiceError(rec, codes, err, map[string]string{"request_id": "r1"}))

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body ErrorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "NOT_FOUND", body.Code)
		require.Equal(t, "lookup: role not found", body.Message)
		require.Equal(t, "r1", body.Meta["request_id"])
	})

	t.Run("Should hide uncoded errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, WriteServiceError(rec, codes, errors.New("pq: connection refused"), nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "INTERNAL_SERVER_ERROR")
		require.NotContains(t, rec.Body.String(), "connection refused")
	})
}
