package client

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONSendsHeadersAndQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := New(srv.Client(), 0)
	body, err := c.GetJSON(context.Background(), srv.URL+"/vacancies?fixed=1",
		http.Header{"X-Api-App-Id": {"key"}},
		url.Values{"text": {"C++"}, "page": {"2"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	assert.Equal(t, "C++", gotQuery.Get("text"))
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "1", gotQuery.Get("fixed"))
	assert.Equal(t, "key", gotHeader.Get("X-Api-App-Id"))
	assert.Equal(t, "application/json", gotHeader.Get("Accept"))
}

func TestGetJSONNonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"errors":[{"value":"forbidden"}]}`)
	}))
	defer srv.Close()

	c := New(srv.Client(), 0)
	_, err := c.GetJSON(context.Background(), srv.URL, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "forbidden")
}

func TestGetJSONTruncatesErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, strings.Repeat("x", 4096))
	}))
	defer srv.Close()

	_, err := New(srv.Client(), 0).GetJSON(context.Background(), srv.URL, nil, nil)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Len(t, statusErr.Body, maxErrorBody)
}

func TestGetJSONHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.Client(), time.Hour).GetJSON(ctx, srv.URL, nil, nil)
	require.Error(t, err)
}

func TestReadResponseBodyGzip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"found":1}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	resp := &http.Response{
		Header: http.Header{"Content-Encoding": {"gzip"}},
		Body:   io.NopCloser(&buf),
	}
	body, err := ReadResponseBody(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"found":1}`, string(body))
}

func TestCreateProxyHTTPClient(t *testing.T) {
	t.Parallel()

	c, err := CreateProxyHTTPClient("http://localhost:8080", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.Timeout)

	_, err = CreateProxyHTTPClient("://bad", time.Second)
	require.Error(t, err)

	c, err = CreateProxyHTTPClient("", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.Timeout)
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())

	l = NewLimiter(time.Hour)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
