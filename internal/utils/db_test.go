package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPostgresDSNFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DB", "PG_SSLMODE"} {
		t.Setenv(k, "")
	}
	assert.Equal(t, "postgres://postgres@localhost:5432/zipapi?sslmode=disable", BuildPostgresDSNFromEnv())
}

func TestBuildPostgresDSNFromEnv_Overrides(t *testing.T) {
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("PG_USER", "zip")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DB", "zips")
	t.Setenv("PG_SSLMODE", "require")
	assert.Equal(t, "postgres://zip:secret@db:6543/zips?sslmode=require", BuildPostgresDSNFromEnv())
}

func TestOpenRedisFromEnv_Disabled(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "")
	assert.Nil(t, OpenRedisFromEnv())
	assert.Nil(t, OpenRedis("", ""))
}
