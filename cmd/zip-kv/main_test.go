package main

import (
	"bytes"
	"context"
	"testing"

	"zip-api/internal/ziptable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	e, err := parseSet("80901 Colorado Springs, Colorado")
	require.NoError(t, err)
	assert.Equal(t, ziptable.Entry{Zip: "80901", City: "Colorado Springs", State: "Colorado"}, e)

	for _, bad := range []string{"", "80901", "80901 Boulder", "80901 , Colorado", "80901 Boulder, "} {
		_, err := parseSet(bad)
		assert.Error(t, err, bad)
	}
}

// 以下命令不触达数据库
func TestExec_LocalCommands(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	assert.True(t, exec(ctx, nil, "help", &out))
	assert.Contains(t, out.String(), "set <zip> <City, State>")

	out.Reset()
	assert.True(t, exec(ctx, nil, "set 80301", &out))
	assert.Contains(t, out.String(), "usage")

	out.Reset()
	assert.True(t, exec(ctx, nil, "frobnicate", &out))
	assert.Equal(t, "unknown command\n", out.String())

	assert.False(t, exec(ctx, nil, "exit", &out))
}
