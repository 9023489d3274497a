package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

var (
	sessionDate      string
	sessionOverwrite bool
	sessionListDays  int
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage journal session files",
	Long: `Save, show and list the dated session files that make up the
journal vault. One session file holds one day's writing.`,
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Save a session for a day",
	Long: `Writes a session file for the given day (today by default) and
indexes it. Content comes from the file argument, or from stdin when
no file is given.

An existing session for the day is only replaced with --overwrite.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionSave,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's session",
	RunE:  runSessionShow,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE:  runSessionList,
}

func init() {
	sessionSaveCmd.Flags().StringVar(&sessionDate, "date", "", "session date as YYYY-MM-DD (default today)")
	sessionSaveCmd.Flags().BoolVar(&sessionOverwrite, "overwrite", false, "replace an existing session")
	sessionShowCmd.Flags().StringVar(&sessionDate, "date", "", "session date as YYYY-MM-DD (default today)")
	sessionListCmd.Flags().IntVar(&sessionListDays, "days", 30, "how many days back to list")

	sessionCmd.AddCommand(sessionSaveCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionListCmd)
	rootCmd.AddCommand(sessionCmd)
}

// sessionDay resolves the --date flag, defaulting to today.
func sessionDay() (time.Time, error) {
	if sessionDate == "" {
		return time.Now(), nil
	}
	day, err := time.Parse(domain.DateLayout, sessionDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", sessionDate)
	}
	return day, nil
}

func runSessionSave(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	day, err := sessionDay()
	if err != nil {
		return err
	}

	var content []byte
	if len(args) == 1 {
		content, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	session, err := sessionVault.SaveSession(cmd.Context(), day, string(content),
		domain.SessionFrontMatter{}, sessionOverwrite)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExists) {
			return fmt.Errorf("%w; use --overwrite to replace it", err)
		}
		return fmt.Errorf("saving session: %w", err)
	}

	meta := driving.DocumentMeta{Title: session.Meta.Date, Date: session.Meta.Date}
	if err := indexerService.IndexDocument(cmd.Context(), session.Path, session.Content, meta); err != nil {
		return fmt.Errorf("indexing session: %w", err)
	}

	cmd.Printf("Saved and indexed %s\n", session.Path)
	return nil
}

func runSessionShow(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	day, err := sessionDay()
	if err != nil {
		return err
	}

	session, err := sessionVault.LoadSession(cmd.Context(), day)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No session for %s.\n", day.Format(domain.DateLayout))
			return nil
		}
		return fmt.Errorf("loading session: %w", err)
	}

	cmd.Printf("# %s\n\n", session.Meta.Date)
	if len(session.Meta.Tags) > 0 {
		cmd.Printf("Tags: %v\n", session.Meta.Tags)
	}
	if session.Meta.DurationSeconds > 0 {
		cmd.Printf("Duration: %ds over %d entries\n",
			session.Meta.DurationSeconds, len(session.Meta.EntriesMetadata))
	}
	cmd.Println()
	cmd.Println(session.Content)
	return nil
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	sessions, err := sessionVault.RecentSessions(cmd.Context(), sessionListDays)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		cmd.Printf("No sessions in the last %d days.\n", sessionListDays)
		return nil
	}

	for i := range sessions {
		words := domain.WordCount(sessions[i].Content)
		cmd.Printf("  %s  %5d words  %s\n", sessions[i].Meta.Date, words, sessions[i].Path)
	}
	return nil
}
