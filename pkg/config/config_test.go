package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/morlock-shogi/structa/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.txt", "# comment\nOUTPUT_LEVEL=2\nTT_MEMORY_MB=512\nINPUT_FILE=problem.txt\nOUTPUT_FILE=out.txt\n")

	cfg, err := config.LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.OutputLevel)
	assert.Equal(t, 1, cfg.STPosOutputMode)
	assert.Equal(t, 512, cfg.TTMemoryMB)
	assert.Equal(t, "problem.txt", cfg.InputFile)
	assert.Equal(t, "out.txt", cfg.OutputFile)
}

func TestLoadConfigRejectsInvalidOutputLevel(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.txt", "OUTPUT_LEVEL=9\n")

	_, err := config.LoadConfig(p)
	assert.Error(t, err)
}

func TestLoadProblemClampsLimitAndMargin(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "problem.txt",
		"TARGET_SFEN=lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1\nMAX_DEPTH=1\nLIMIT=99\nMARGIN=9\nFIXED_PIECES=55,77\n")

	prob, err := config.LoadProblem(p)
	require.NoError(t, err)
	assert.Equal(t, 10, prob.Limit)
	assert.Equal(t, 5, prob.Margin)
	assert.Len(t, prob.FixedPieces, 2)
}

func TestLoadProblemRejectsNegativeMargin(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "problem.txt",
		"TARGET_SFEN=lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1\nMAX_DEPTH=1\nMARGIN=-3\n")

	_, err := config.LoadProblem(p)
	assert.Error(t, err)
}

func TestLoadProblemMissingTargetIsError(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "problem.txt", "MAX_DEPTH=3\n")

	_, err := config.LoadProblem(p)
	assert.Error(t, err)
}

func TestLoadProblemDefaultsStartToInitialPosition(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "problem.txt",
		"TARGET_SFEN=lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1\nMAX_DEPTH=1\n")

	prob, err := config.LoadProblem(p)
	require.NoError(t, err)
	assert.Contains(t, prob.StartSFEN, "lnsgkgsnl")
	assert.Empty(t, prob.FixedPieces)
}
