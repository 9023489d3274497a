package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkit/journalkit/internal/core/domain"
)

func resetSessionFlags() {
	sessionDate = ""
	sessionOverwrite = false
}

func TestSessionSaveCmd_FromStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	vault := sessionVault.(*mockVault)
	indexer := indexerService.(*mockIndexer)

	in := bytes.NewBufferString("Today I repotted the basil.\n")
	buf := new(bytes.Buffer)
	rootCmd.SetIn(in)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "save", "--date", "2026-04-01"})
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Saved and indexed")

	saved, ok := vault.sessions["2026-04-01"]
	require.True(t, ok)
	assert.Contains(t, saved.Content, "repotted the basil")

	// The saved session was indexed under its vault path
	require.Len(t, indexer.paths, 1)
	assert.Equal(t, saved.Path, indexer.paths[0])
}

func TestSessionSaveCmd_ExistingWithoutOverwrite(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	vault := sessionVault.(*mockVault)
	day, _ := time.Parse(domain.DateLayout, "2026-04-01")
	_, err := vault.SaveSession(context.Background(), day, "existing", domain.SessionFrontMatter{}, false)
	require.NoError(t, err)

	in := bytes.NewBufferString("replacement")
	buf := new(bytes.Buffer)
	rootCmd.SetIn(in)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"session", "save", "--date", "2026-04-01"})
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrSessionExists)
	assert.Contains(t, err.Error(), "--overwrite")
}

func TestSessionSaveCmd_Overwrite(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	vault := sessionVault.(*mockVault)
	day, _ := time.Parse(domain.DateLayout, "2026-04-01")
	_, err := vault.SaveSession(context.Background(), day, "existing", domain.SessionFrontMatter{}, false)
	require.NoError(t, err)

	in := bytes.NewBufferString("replacement")
	buf := new(bytes.Buffer)
	rootCmd.SetIn(in)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "save", "--date", "2026-04-01", "--overwrite"})
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "replacement", vault.sessions["2026-04-01"].Content)
}

func TestSessionSaveCmd_InvalidDate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"session", "save", "--date", "April 1st"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestSessionShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	vault := sessionVault.(*mockVault)
	day, _ := time.Parse(domain.DateLayout, "2026-04-01")
	_, err := vault.SaveSession(context.Background(), day, "A quiet day.", domain.SessionFrontMatter{
		Tags: []string{"calm"},
	}, false)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "show", "--date", "2026-04-01"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "# 2026-04-01")
	assert.Contains(t, buf.String(), "A quiet day.")
	assert.Contains(t, buf.String(), "calm")
}

func TestSessionShowCmd_Missing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "show", "--date", "2026-04-02"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No session for 2026-04-02")
}

func TestSessionListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	vault := sessionVault.(*mockVault)
	_, err := vault.SaveSession(context.Background(), time.Now(), "Hello vault.", domain.SessionFrontMatter{}, false)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), time.Now().Format(domain.DateLayout))
	assert.Contains(t, buf.String(), "2 words")
}

func TestSessionListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSessionFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"session", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No sessions")
}
