package main

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/echo/address"
)

func writeKeypair(t *testing.T, dir string) (string, address.Address) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	parts := make([]string, len(priv))
	for i, b := range priv {
		parts[i] = fmt.Sprint(b)
	}
	path := filepath.Join(dir, "id.json")
	require.NoError(t, os.WriteFile(path, []byte("["+strings.Join(parts, ",")+"]"), 0o600))
	key, err := address.FromBytes(pub)
	require.NoError(t, err)
	return path, key
}

func runSim(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_AuthorizedEcho(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "ledger.state")
	keypair, _ := writeKeypair(t, dir)

	out, err := runSim(t, "--state", state, "-k", keypair, "--seed", "9", "authorized-echo", "hello world")
	require.NoError(t, err)
	assert.Contains(t, out, "Authorized Echo Buffer Text: hello world\x00")

	out, err = runSim(t, "--state", state, "-k", keypair, "--seed", "9", "authorized-echo", "bye")
	require.NoError(t, err)
	assert.Contains(t, out, "Authorized Echo Buffer Text: bye\x00")
	assert.NotContains(t, out, "world")

	out, err = runSim(t, "--state", state, "-k", keypair, "--seed", "9", "get-authorized-echo")
	require.NoError(t, err)
	assert.Contains(t, out, "Authorized Echo Buffer Text: bye")

	_, err = runSim(t, "--state", state, "-k", keypair, "--seed", "10", "get-authorized-echo")
	assert.Error(t, err)
}

func TestRun_Echo(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "ledger.state")
	keypair, bufferKey := writeKeypair(t, dir)

	out, err := runSim(t, "--state", state, "-k", keypair, "echo", "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "Echo Buffer Text: ping")

	_, err = runSim(t, "--state", state, "-k", keypair, "echo", "pong")
	assert.Error(t, err)

	out, err = runSim(t, "--state", state, "inspect", bufferKey.String())
	require.NoError(t, err)
	assert.Contains(t, out, "data:       70696e67")
	assert.Contains(t, out, "valid: true")
}

func TestRun_VendingEcho(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "ledger.state")

	out, err := runSim(t, "--state", state, "--size", "16", "--price", "5", "vending-echo", "a message longer than the buffer")
	require.NoError(t, err)
	assert.Contains(t, out, "Vending Machine Echo Buffer Text: a messa\n")
	assert.NotContains(t, out, "longer")

	_, err = runSim(t, "--state", state, "vending-echo", "no price")
	assert.Error(t, err)
}

func TestRun_Errors(t *testing.T) {
	state := filepath.Join(t.TempDir(), "ledger.state")
	for name, args := range map[string][]string{
		"no command":      {"--state", state},
		"unknown command": {"--state", state, "frobnicate"},
		"bad log level":   {"--state", state, "--log-level", "loud", "inspect", "x"},
		"bad address":     {"--state", state, "inspect", "0OIl"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := runSim(t, args...)
			assert.Error(t, err)
		})
	}
}
