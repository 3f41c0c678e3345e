package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlace(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Place
	}{
		{"display string", "Boulder, Colorado", Place{"Boulder", "Colorado"}},
		{"fallback", " , ", Place{" ", ""}},
		{"no separator", "Boulder", Place{"Boulder", ""}},
		{"empty body", "", Place{"", ""}},
		{"comma without space", "Boulder,Colorado", Place{"Boulder,Colorado", ""}},
		{"extra parts ignored", "Boulder, Colorado, USA", Place{"Boulder", "Colorado"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePlace(tt.body))
		})
	}
}

func TestReadyStateString(t *testing.T) {
	assert.Equal(t, "unsent", Unsent.String())
	assert.Equal(t, "headers_received", HeadersReceived.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "unknown", ReadyState(42).String())
}
