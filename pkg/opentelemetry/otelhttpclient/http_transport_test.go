package otelhttpclient_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/oaflow/pkg/opentelemetry/otelhttpclient"
)

func TestNew(t *testing.T) {
	t.Run("should create a client when none is given", func(t *testing.T) {
		c := otelhttpclient.New("directory", nil)

		require.NotNil(t, c)
		assert.IsType(t, &otelhttpclient.HTTPTransport{}, c.Transport)
	})

	t.Run("should keep the client settings and wrap only once", func(t *testing.T) {
		c := otelhttpclient.New("lark", &http.Client{Timeout: 3 * time.Second})
		wrapped := c.Transport

		c = otelhttpclient.New("lark", c)

		assert.Equal(t, 3*time.Second, c.Timeout)
		assert.Same(t, wrapped, c.Transport)
	})
}

func TestHTTPTransport_RoundTrip(t *testing.T) {
	t.Run("should pass the response through", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{"code":0}`))
		}))
		defer ts.Close()
		tr := otelhttpclient.NewHTTPTransport(http.DefaultTransport, "lark")

		req, err := http.NewRequest(http.MethodPost, ts.URL, nil)
		require.NoError(t, err)
		resp, err := tr.RoundTrip(req)

		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		assert.NoError(t, err)
		assert.Equal(t, `{"code":0}`, string(body))
	})

	t.Run("should return the transport error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()
		tr := otelhttpclient.NewHTTPTransport(nil, "directory")

		req, err := http.NewRequest(http.MethodGet, url, nil)
		require.NoError(t, err)
		resp, err := tr.RoundTrip(req)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
