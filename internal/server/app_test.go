package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/landlease/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StoreDriver = "memory"
	c.GRPCAddress = "127.0.0.1:0"
	c.HTTPAddress = "127.0.0.1:0"
	c.LogFormat = "text"
	return c
}

func TestNewApp_RejectsBadSettings(t *testing.T) {
	c := testConfig()
	c.LogLevel = "loud"
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	assert.Error(t, err)

	c = testConfig()
	c.StoreDriver = "cassandra"
	_, err = NewApp(context.Background(), c, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewApp_SnapshotOnlyWithBucket(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Nil(t, app.exporter)

	c := testConfig()
	c.S3Bucket = "snapshots"
	c.S3User = "user"
	c.S3Password = "password"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	app, err = NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotNil(t, app.exporter)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(), &buf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, buf.String(), "Starting gRPC server")
	assert.Contains(t, buf.String(), "Starting HTTP server")
}

func TestApp_RunFailsOnBadAddress(t *testing.T) {
	c := testConfig()
	c.GRPCAddress = "127.0.0.1:99999"
	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after gRPC listen failure")
	}
}
