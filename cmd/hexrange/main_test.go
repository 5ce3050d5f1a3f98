package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hupe1980/hexrange"
	"github.com/hupe1980/hexrange/rangeset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = []string{"-lat", "52.5163", "-lon", "13.3777", "-radius", "500"}

func runCLI(t *testing.T, extra ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append(append([]string{}, berlin...), extra...), &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_Formats(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "resolution: 9")
	assert.Contains(t, out, "ranges:")

	out, err = runCLI(t, "-format", "sql", "-field", "h3_compact")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "(h3_compact BETWEEN ? AND ?)"), out)

	out, err = runCLI(t, "-format", "dynamo", "-field", "loc")
	require.NoError(t, err)
	assert.Contains(t, out, "#f BETWEEN :l0 AND :u0")
	assert.Contains(t, out, "-- #f = loc")
}

func TestRun_JSONAndBinaryAgree(t *testing.T) {
	out, err := runCLI(t, "-format", "json")
	require.NoError(t, err)

	var plan hexrange.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.NotEmpty(t, plan.Ranges)
	assert.Equal(t, plan.Center, plan.Cells[0])

	for _, c := range []string{"none", "lz4", "zstd"} {
		out, err = runCLI(t, "-format", "binary", "-compression", c)
		require.NoError(t, err)

		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(out))
		require.NoError(t, err)

		s, err := rangeset.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, plan.Ranges, s, c)
	}
}

func TestRun_Errors(t *testing.T) {
	_, err := runCLI(t, "-format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = runCLI(t, "-format", "binary", "-compression", "snappy")
	assert.Error(t, err)

	_, err = runCLI(t, "-nope")
	assert.Error(t, err)

	_, err = runCLI(t, "positional")
	assert.Error(t, err)

	var stdout, stderr bytes.Buffer
	err = run(context.Background(), []string{"-lat", "95", "-lon", "0", "-radius", "10"}, &stdout, &stderr)
	assert.ErrorIs(t, err, hexrange.ErrLookup)
}
