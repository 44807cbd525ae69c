package main

import (
	"bytes"
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/optstruct/config"
	"github.com/bcdannyboy/optstruct/models"
	"github.com/bcdannyboy/optstruct/report"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(config.Defaults())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPriceCommandJSON(t *testing.T) {
	out, err := run(t, "price", "-u", "100", "-t", "1", "-r", "0.05", "-v", "0.2", "-K", "100", "-o", "json")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, stdjson.Unmarshal([]byte(out), &r))
	assert.Equal(t, "call K=100", r.Title)
	assert.InDelta(t, 10.450584, r.Total.Price, 1e-5)
	assert.InDelta(t, 0.636831, r.Total.Delta, 1e-5)
}

func TestStructureCommandTable(t *testing.T) {
	out, err := run(t, "structure", "-u", "100", "-t", "1", "-r", "0.05", "-v", "0.2", "--strikes", "90,100,110")
	require.NoError(t, err)
	assert.Contains(t, out, "Butterfly Long (black-scholes)")
	assert.Contains(t, out, "1.8384")
}

func TestStructureCommandRejectsAsymmetricStrikes(t *testing.T) {
	_, err := run(t, "structure", "-u", "100", "-t", "1", "-v", "0.2", "--strikes", "90,100,115")
	assert.ErrorIs(t, err, models.ErrInvalidStrikes)
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "-m", "b76", "-u", "100", "-t", "1", "-r", "0.05", "-v", "0.2",
		"-s", "straddle", "--strikes", "100", "-n", "20000", "-o", "json")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, stdjson.Unmarshal([]byte(out), &r))
	require.NotNil(t, r.Simulation)
	assert.Equal(t, 20000, r.Simulation.Paths)
	assert.InDelta(t, r.Total.Price, r.Simulation.DiscountedValue, 0.5)
}

func TestUnknownModel(t *testing.T) {
	_, err := run(t, "price", "-m", "heston", "-u", "100", "-t", "1", "-v", "0.2", "-K", "100")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPriceWithHistoricalVol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	csv := "date,open,high,low,close\n"
	for i := 0; i < 10; i++ {
		csv += "2024-01-02,100,101,99,100\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := run(t, "price", "-u", "100", "-t", "1", "-K", "100", "-o", "json",
		"--vol-from", path, "--vol-method", "parkinson", "--vol-window", "5")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, stdjson.Unmarshal([]byte(out), &r))
	assert.Greater(t, r.Total.Price, 0.0)
	assert.Greater(t, r.Total.Vega, 0.0)
}

func TestUnderlyingIsRequired(t *testing.T) {
	_, err := run(t, "price", "-t", "1", "-v", "0.2", "-K", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"underlying"`)
}
