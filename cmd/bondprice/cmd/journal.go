package cmd

import (
	"fmt"

	"github.com/rustyeddy/bondprice/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the SQLite audit journal",
	Long: `Query edit and commit records from the SQLite audit journal.

Subcommands:
  list   - List edits, optionally for one session
  edit   - Show a single edit by ID
  replay - Print the records held in a WAL journal directory

Examples:
  bondprice journal list --session 01HX...
  bondprice journal edit 01HX...`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled edits",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalEditCmd = &cobra.Command{
	Use:   "edit <edit-id>",
	Short: "Show a single edit",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalEdit,
}

var journalReplayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a WAL journal",
	Args:  cobra.NoArgs,
	RunE:  runJournalReplay,
}

var (
	journalDBPath  string
	journalSession string
	journalWALDir  string
	journalFrom    uint64
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalEditCmd)
	journalCmd.AddCommand(journalReplayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./bondprice.sqlite", "path to SQLite journal DB")
	journalListCmd.Flags().StringVarP(&journalSession, "session", "s", "", "only list edits of this session")
	journalReplayCmd.Flags().StringVar(&journalWALDir, "wal", journal.DefaultWALDir, "WAL journal directory")
	journalReplayCmd.Flags().Uint64Var(&journalFrom, "from", 0, "replay records after this index")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListEdits(journalSession)
	if err != nil {
		return fmt.Errorf("query edits: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, journal.FormatEditsOrg(recs))

	if journalSession != "" {
		commits, err := j.ListCommits(journalSession)
		if err != nil {
			return fmt.Errorf("query commits: %w", err)
		}
		for _, c := range commits {
			fmt.Fprintf(out, "committed %s at %s\n", c.CommitID, c.Time.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

func runJournalEdit(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetEdit(args[0])
	if err != nil {
		return fmt.Errorf("get edit: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatEditOrg(rec))
	return nil
}

func runJournalReplay(cmd *cobra.Command, args []string) error {
	w, err := journal.NewWAL(journalWALDir)
	if err != nil {
		return fmt.Errorf("open wal: %w", err)
	}
	defer w.Close()

	edits, commits, err := w.Replay(journalFrom)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(edits) > 0 {
		fmt.Fprintln(out, journal.FormatEditsOrg(edits))
	}
	fmt.Fprintf(out, "%d edit(s), %d commit(s) up to index %d\n", len(edits), len(commits), w.CurrentIndex())
	return nil
}
