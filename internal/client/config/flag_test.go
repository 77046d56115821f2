package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	orig := os.Args
	os.Args = []string{orig[0], "-a", "https://flag.example.com/api/v1", "-t", "5", "-d", "/data"}
	t.Cleanup(func() { os.Args = orig })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "https://flag.example.com/api/v1", c.BaseURL)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, "/data", c.DataDir)
}

func TestParseFlags_DefaultsSurviveWithoutFlags(t *testing.T) {
	orig := os.Args
	os.Args = []string{orig[0]}
	t.Cleanup(func() { os.Args = orig })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "http://127.0.0.1:8080/api/v1", c.BaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
}
