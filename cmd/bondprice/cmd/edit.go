package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/bondprice/editor"
	"github.com/rustyeddy/bondprice/session"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Start an interactive editing session",
	Long: `Edit the clean price, Z-spread or ASM of the configured bond.

Commands (one per line):
  price <value>      set the clean price; value is "clean" or "clean,workout,settlement"
  zspread <value>    set the Z-spread as a decimal (0.0125); "none" clears it
  asm <value>        set the asset-swap margin directly; "none" clears it
  show               print the current state
  commit             commit the price (only when all fields validate)
  quit               leave without committing

Example:
  bondprice edit -c bond.yaml`,
	RunE: runEdit,
}

var editReadOnly bool

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editReadOnly, "read-only", false, "reject edits, allow commit")
}

func runEdit(cmd *cobra.Command, args []string) error {
	var opts []session.Option
	if editReadOnly {
		opts = append(opts, session.ReadOnly())
	}

	s, cleanup, err := loadSession(true, opts...)
	if err != nil {
		return err
	}
	defer cleanup()

	return runREPL(s, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runREPL drives s from line commands until quit, a successful commit or
// end of input.
func runREPL(s *session.Session, in io.Reader, out io.Writer) error {
	committed := false
	unsub := s.OnCommit(func() { committed = true })
	defer unsub()

	fmt.Fprintf(out, "session %s (bond %s)\n", s.ID(), s.Controller().Bond().ID)
	renderView(out, s.View())

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		verb, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch strings.ToLower(verb) {
		case "":
			continue
		case "price", "p":
			err = s.Apply(editor.FieldCleanPrice, arg)
		case "zspread", "z":
			err = s.Apply(editor.FieldZSpread, arg)
		case "asm", "a":
			err = s.Apply(editor.FieldASM, arg)
		case "show", "s":
		case "commit", "c":
			err = s.Commit()
		case "quit", "q", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q\n", verb)
			continue
		}

		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			if errors.Is(err, editor.ErrInstrumentBuild) {
				continue
			}
		}
		renderView(out, s.View())

		if committed {
			fmt.Fprintf(out, "committed %s\n", s.Controller().Price())
			return nil
		}
	}
}
