package handler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAgent(t *testing.T) {
	tcs := []struct {
		name     string
		ua       string
		expected agent
	}{
		{"Empty", "", agent{Browser: "Unknown Browser", Device: "Unknown Device"}},
		{
			"Windows-Edge",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0",
			agent{Browser: "Edge", Device: "Windows"},
		},
		{
			"Android-Chrome",
			"Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			agent{Browser: "Chrome", Device: "Android", Mobile: true},
		},
		{
			"Linux-Firefox",
			"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			agent{Browser: "Firefox", Device: "Linux"},
		},
		{
			"iPad-Safari",
			"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/604.1",
			agent{Browser: "Safari", Device: "iPad", Mobile: true},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, parseAgent(tc.ua))
		})
	}
}
