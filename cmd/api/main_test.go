// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tutorials/internal/platform/logger"
)

/*
TestRun_ConfigFailure checks that run returns configuration errors instead of exiting.
*/
func TestRun_ConfigFailure(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load configuration")
}

/*
TestStartupFailure checks the wrapped error and the structured log line.
*/
func TestStartupFailure(t *testing.T) {
	var output bytes.Buffer
	log, _ := logger.New(logger.Options{Output: &output})

	cause := errors.New("dirty database")
	err := startupFailure(log, cause, "run migrations")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "run migrations: dirty database", err.Error())
	assert.Contains(t, output.String(), `"msg":"startup_failure"`)
	assert.Contains(t, output.String(), `"step":"run migrations"`)
}
