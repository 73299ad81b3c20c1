package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	assert.Equal(t, "10.0.0.1", RealClientIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", RealClientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.2, 203.0.113.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.2", RealClientIP(r))
}

func TestRealClientIP_NoPort(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.9"
	assert.Equal(t, "192.0.2.9", RealClientIP(r))
}
