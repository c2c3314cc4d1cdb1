package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory so no config.yaml or .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}

func TestRun_ScriptedSession(t *testing.T) {
	// given
	isolate(t)
	input := strings.Join([]string{
		"1", "1", "Widget", "10", "2.50",
		"2", "2", "TV", "3", "500", "1 year",
		"3",
		"6",
	}, "\n") + "\n"
	var out, logs bytes.Buffer

	// when
	err := run(context.Background(), strings.NewReader(input), &out, &logs)

	// then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ID: 1, Name: Widget, Quantity: 10, Price: $2.50\n--------------------\n"+
		"ID: 2, Name: TV, Quantity: 3, Price: $500.00\nWarranty: 1 year\n--------------------\n")
	assert.True(t, strings.HasSuffix(out.String(), "Exiting Stock Management System. Goodbye!\n\n"))
	assert.Empty(t, logs.String(), "default log level is warn")
}

func TestRun_BasicVariantFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("STOCK_CONSOLE_VARIANT", "basic")
	var out bytes.Buffer

	err := run(context.Background(), strings.NewReader("4\n"), &out, io.Discard)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "4. Exit\n")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_EndOfInput(t *testing.T) {
	isolate(t)
	var out bytes.Buffer

	err := run(context.Background(), strings.NewReader(""), &out, io.Discard)

	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Goodbye!")
}

func TestRun_InvalidConfiguration(t *testing.T) {
	isolate(t)
	t.Setenv("STOCK_CONSOLE_VARIANT", "fancy")

	err := run(context.Background(), strings.NewReader("6\n"), io.Discard, io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestRun_CancelledContext(t *testing.T) {
	// given
	isolate(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	ctx, cancel := context.WithCancel(context.Background())

	// when
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, pr, io.Discard, io.Discard) }()
	cancel()

	// then
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}

func TestRun_WithDiagnosticsServer(t *testing.T) {
	isolate(t)
	t.Setenv("STOCK_DIAGNOSTICS_ENABLED", "true")
	t.Setenv("STOCK_DIAGNOSTICS_ADDR", "127.0.0.1:0")

	err := run(context.Background(), strings.NewReader("6\n"), io.Discard, io.Discard)

	assert.NoError(t, err)
}

func TestRun_DiagnosticsServerFailureStopsConsole(t *testing.T) {
	// given
	isolate(t)
	t.Setenv("STOCK_DIAGNOSTICS_ENABLED", "true")
	t.Setenv("STOCK_DIAGNOSTICS_ADDR", "127.0.0.1:-1")
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	// when
	errCh := make(chan error, 1)
	go func() { errCh <- run(context.Background(), pr, io.Discard, io.Discard) }()

	// then
	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "diagnostics server failed")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the server failed")
	}
}
