package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/mdg"
	"main/internal/position"
)

func writeInput(t *testing.T, dir, name string, fn func(f *os.File) error) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, fn(f))
	require.NoError(t, f.Close())
}

func TestRunEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	snapshot := filepath.Join(outDir, "positions.json")

	writeInput(t, dataDir, "prices.txt", func(f *os.File) error { return mdg.WritePrices(f, 20) })
	writeInput(t, dataDir, "marketdata.txt", func(f *os.File) error { return mdg.WriteMarketData(f, 4) })
	writeInput(t, dataDir, "trades.txt", func(f *os.File) error { return mdg.WriteTrades(f, 4, nil) })
	writeInput(t, dataDir, "inquiries.txt", func(f *os.File) error { return mdg.WriteInquiries(f, 4) })

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"desk", "-data-dir", dataDir, "-out-dir", outDir, "-snapshot", snapshot}

	require.NoError(t, run())

	for _, name := range []string{
		"positions.txt", "risk.txt", "executions.txt",
		"streaming.txt", "allinquiries.txt", "gui.txt",
	} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	snap, err := position.ReadSnapshot(snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Positions)
}
