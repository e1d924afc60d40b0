package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/pkg/logger"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
}

func TestRootRunsServeByDefault(t *testing.T) {
	root := newRootCmd()
	assert.True(t, root.Runnable())

	cmd, _, err := root.Find([]string{})
	require.NoError(t, err)
	assert.Same(t, root, cmd)
	require.NotNil(t, root.RunE)
}

func TestOpenStorage(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    "file:cmd_open_storage?mode=memory&cache=shared&_pragma=foreign_keys(1)",
	}}

	store, err := openStorage(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer store.Close()

	tr, err := store.GetTranscript(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestOpenStorageRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}

	_, err := openStorage(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}
