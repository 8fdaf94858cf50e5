package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/config"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/crowd"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/library"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/presenter"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/steam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		err    error
		prefix string
	}{
		{fmt.Errorf("%w: missing \"key\"", config.ErrMalformedConfig), "Malformed config file."},
		{fmt.Errorf("%w at /x: gone", library.ErrLibraryFolders), "Problem with libraryfolders file."},
		{fmt.Errorf("%w: status 403", steam.ErrInvalidResponse), "Steam API response invalid."},
		{fmt.Errorf("failed to add app 1: %w", crowd.ErrWriteRejected), "Error while updating size database."},
		{fmt.Errorf("%w: not json", crowd.ErrInvalidResponse), "Size database response invalid."},
		{context.Canceled, "Interrupted."},
		{errors.New("boom"), "Run failed. boom"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(describe(tt.err), tt.prefix), describe(tt.err))
		})
	}
}

func TestSetupWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.AppDirName, config.FileName)
	buf := &bytes.Buffer{}
	p := presenter.New(buf, strings.NewReader("ABC123\n76561197960287930\n\n"), true)

	cfg, err := setup(p, path)
	require.NoError(t, err)

	assert.Equal(t, "ABC123", cfg.Key)
	assert.Equal(t, "76561197960287930", cfg.SteamID)
	assert.NotEmpty(t, cfg.InstallDir)
	assert.True(t, cfg.Crowd.Contribute)
	assert.Equal(t, 100, cfg.Crowd.BatchSize)

	_, err = os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No config file found.")
	assert.Contains(t, buf.String(), "Saved new config file.")
	assert.Contains(t, buf.String(), "Press Enter to continue . . .")
}
