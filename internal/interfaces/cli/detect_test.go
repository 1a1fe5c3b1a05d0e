package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CineMood/pkg/client"
)

func TestDetect_RemoteServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/detect_emotion", r.URL.Path)
		var body struct {
			Expressions map[string]float64 `json:"expressions"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]float64{"sad": 0.6, "happy": 0.1}, body.Expressions)
		_, _ = w.Write([]byte(`{"detected_emotion":"sad","recommendations":["Heat"]}`))
	}))
	defer srv.Close()

	out, _, err := execute(t, "detect", "--server", srv.URL, "sad=0.6", "happy=0.1")
	require.NoError(t, err)
	assert.Equal(t, "Detected emotion: sad\n  - Heat\n", out)
}

func TestDetect_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"EMO_001","message":"No expressions detected"}`))
	}))
	defer srv.Close()

	_, _, err := execute(t, "detect", "-s", srv.URL, "happy=0")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNoExpression())
}

func TestDetect_InvalidServer(t *testing.T) {
	_, _, err := execute(t, "detect", "--server", "ftp://nowhere", "happy=1")
	assert.ErrorIs(t, err, client.ErrInvalidConfig)
}

//Personal.AI order the ending
