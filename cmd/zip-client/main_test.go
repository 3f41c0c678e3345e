package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"zip-api/internal/api"
	"zip-api/internal/ziptable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	city, state, probe = "", "", false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCLI_FillsFields(t *testing.T) {
	srv := httptest.NewServer(api.BuildRoutes(ziptable.Default(), nil, nil))
	defer srv.Close()

	out := runCLI(t, "--base", srv.URL, "--probe", "80301")
	assert.Equal(t, "city:  \"Boulder\"\nstate: \"Colorado\"\n", out)
}

func TestCLI_KeepsPrefilledCity(t *testing.T) {
	srv := httptest.NewServer(api.BuildRoutes(ziptable.Default(), nil, nil))
	defer srv.Close()

	out := runCLI(t, "--base", srv.URL, "--city", "Denver", "81611")
	assert.Equal(t, "city:  \"Denver\"\nstate: \"Colorado\"\n", out)
}

func TestCLI_Health(t *testing.T) {
	srv := httptest.NewServer(api.BuildRoutes(ziptable.Default(), nil, nil))
	defer srv.Close()
	assert.Equal(t, "ok\n", runCLI(t, "health", "--base", srv.URL))

	down := httptest.NewServer(http.NotFoundHandler())
	defer down.Close()
	rootCmd.SetArgs([]string{"health", "--base", down.URL})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}
