package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"lotto_service/internal/lotto_service/config"
	"lotto_service/pkg/healthcheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func freePort(t *testing.T) int {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestAPIServer_StartStop(t *testing.T) {
	cfg := &config.AppConfig{Server: config.ServerConfig{Host: "127.0.0.1", Port: freePort(t)}}
	router, _ := setupRouter(&MockRecommender{})
	health := healthcheck.New(healthcheck.Config{Logger: zap.NewNop()})
	server := NewAPIServer(cfg, router, health, zap.NewNop())

	require.NoError(t, server.Start(context.Background()))
	assert.True(t, health.IsReady())

	url := fmt.Sprintf("http://%s/liveness", server.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, server.Stop(context.Background()))
	assert.False(t, health.IsReady())
}

func TestAPIServer_StartFailsOnBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	cfg := &config.AppConfig{Server: config.ServerConfig{Host: "127.0.0.1", Port: port}}
	router, _ := setupRouter(&MockRecommender{})
	server := NewAPIServer(cfg, router, healthcheck.New(healthcheck.Config{}), zap.NewNop())

	assert.Error(t, server.Start(context.Background()))
}
