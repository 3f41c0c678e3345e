package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"zip-api/internal/api"
	"zip-api/internal/client"
	"zip-api/internal/form"
	"zip-api/internal/ziptable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newService 以内置表启动查询服务，挂载在 /api 下
func newService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", api.BuildRoutes(ziptable.Default(), nil, nil)))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newRequester(srv *httptest.Server) *client.Requester {
	return client.New(srv.URL+"/api/", srv.Client())
}

func TestFill_Boulder(t *testing.T) {
	srv := newService(t)
	fs := form.NewMemory(nil)

	p, ok := newRequester(srv).Fill(context.Background(), "80301", fs)
	require.True(t, ok)
	assert.Equal(t, client.Place{City: "Boulder", State: "Colorado"}, p)
	assert.Equal(t, "Boulder", fs.Get(client.FieldCity))
	assert.Equal(t, "Colorado", fs.Get(client.FieldState))
}

func TestFill_UnknownZipWritesFallbackParts(t *testing.T) {
	srv := newService(t)
	fs := form.NewMemory(nil)

	p, ok := newRequester(srv).Fill(context.Background(), "99999", fs)
	require.True(t, ok)
	assert.Equal(t, client.Place{City: " ", State: ""}, p)
	assert.Equal(t, " ", fs.Get(client.FieldCity))
	assert.Equal(t, "", fs.Get(client.FieldState))
}

func TestFill_KeepsPrefilledCity(t *testing.T) {
	srv := newService(t)
	fs := form.NewMemory(map[string]string{client.FieldCity: "Denver"})

	_, ok := newRequester(srv).Fill(context.Background(), "81611", fs)
	require.True(t, ok)
	assert.Equal(t, "Denver", fs.Get(client.FieldCity))
	assert.Equal(t, "Colorado", fs.Get(client.FieldState))
}

func TestFill_SecondResponseDoesNotOverwrite(t *testing.T) {
	srv := newService(t)
	fs := form.NewMemory(nil)
	r := newRequester(srv)

	r.Fill(context.Background(), "81611", fs)
	r.Fill(context.Background(), "80301", fs)
	assert.Equal(t, "Aspen", fs.Get(client.FieldCity))
	assert.Equal(t, "Colorado", fs.Get(client.FieldState))
}

func TestFill_Non200Ignored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "Boulder, Colorado")
	}))
	defer srv.Close()
	fs := form.NewMemory(nil)

	_, ok := client.New(srv.URL, srv.Client()).Fill(context.Background(), "80301", fs)
	assert.False(t, ok)
	assert.Empty(t, fs.Snapshot())
}

func TestFetch_TransportFailureStopsBeforeDone(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	hc := srv.Client()
	srv.Close()

	res := <-client.New(base, hc).Fetch(context.Background(), "80301")
	assert.Error(t, res.Err)
	assert.Equal(t, client.Opened, res.State)
	assert.Zero(t, res.Status)

	fs := form.NewMemory(nil)
	_, ok := client.New(base, hc).Fill(context.Background(), "80301", fs)
	assert.False(t, ok)
	assert.Empty(t, fs.Snapshot())
}

func TestFetch_StateTransitions(t *testing.T) {
	srv := newService(t)
	r := newRequester(srv)
	var mu sync.Mutex
	var seen []client.ReadyState
	r.OnStateChange = func(zip string, s client.ReadyState) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	}

	res := <-r.Fetch(context.Background(), "80201")
	require.NoError(t, res.Err)
	assert.Equal(t, client.Done, res.State)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Denver, Colorado", res.Body)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []client.ReadyState{client.Opened, client.HeadersReceived, client.Loading, client.Done}, seen)
}

func TestFetch_EncodesZip(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.URL.Query().Get("zip")
		_, _ = io.WriteString(w, " , ")
	}))
	defer srv.Close()

	res := <-client.New(srv.URL, srv.Client()).Fetch(context.Background(), "80 301&x=1")
	require.NoError(t, res.Err)
	assert.Equal(t, "80 301&x=1", <-got)
}

func TestFillFromField(t *testing.T) {
	srv := newService(t)
	r := newRequester(srv)

	fs := form.NewMemory(map[string]string{client.FieldZip: "81657"})
	_, ok := r.FillFromField(context.Background(), fs)
	require.True(t, ok)
	assert.Equal(t, "Vail", fs.Get(client.FieldCity))

	empty := form.NewMemory(nil)
	_, ok = r.FillFromField(context.Background(), empty)
	assert.False(t, ok)
	assert.Empty(t, empty.Snapshot())
}

func TestURL(t *testing.T) {
	r := client.New("http://localhost:8080/api/", nil)
	assert.Equal(t, "http://localhost:8080/api/zip?zip=80301", r.URL("80301"))
}
