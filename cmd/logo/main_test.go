package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFileModeSuccess(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.logo")
	require.NoError(t, os.WriteFile(src, []byte("forward 100"), 0o644))
	svg := filepath.Join(dir, "out.svg")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", src, "-g", svg}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())

	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<line")
}

func TestRunFileModeFatalError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.logo")
	require.NoError(t, os.WriteFile(src, []byte("nope 1 2"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", src, "-g", filepath.Join(dir, "out.svg")}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr.String())
}

func TestRunBadFlagIsExitCodeTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--nonexistent-flag"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRunInteractiveModeExitsOnLiteralExit(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "out.svg")

	var stdout, stderr bytes.Buffer
	in := strings.NewReader("forward 10\nEXIT\n")
	code := run([]string{"-g", svg}, in, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), ">> ")

	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<line")
}

func TestRunInteractiveModeReportsErrorAndContinues(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "out.svg")

	var stdout, stderr bytes.Buffer
	in := strings.NewReader("nope 1 2\nforward 5\nexit\n")
	code := run([]string{"-g", svg}, in, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "undefined procedure")
}
