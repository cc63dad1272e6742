package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justyntemme/sneaky-t/internal/ui/styles"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

var outputFormat string

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the book library",
	Long: `Manage the books the reader can open.

A book is a UTF-8 plain-text file. Its title is the file name without the
extension. The most recently opened book is the one the reader shows.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, most recently read first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		books := e.store.Books()
		if outputFormat == "json" {
			return writeJSON(cmd.OutOrStdout(), books)
		}
		if len(books) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Library is empty.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), bookTable(books))
		return nil
	},
}

var libraryImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Add plain-text books to the library",
	Long: `Add plain-text books to the library. The last imported book becomes the
current one.

Examples:
  sneaky-t library import novel.txt
  sneaky-t library import books/*.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			book, err := e.store.Import(path)
			if err != nil {
				e.logger.Warn("import failed", "path", path, "error", err)
				fmt.Fprintf(out, "  %s: FAILED: %v\n", path, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "  %s: imported %q (%s characters)\n",
				path, book.Title, humanize.Comma(int64(book.TotalCharacterCount)))
		}

		fmt.Fprintf(out, "\nImported %d/%d files.\n", len(args)-failed, len(args))
		if failed > 0 {
			return fmt.Errorf("%d imports failed", failed)
		}
		return nil
	},
}

var libraryOpenCmd = &cobra.Command{
	Use:   "open <title>",
	Short: "Make a book the current one",
	Long: `Make a book the current one. A running reader switches to it and
resumes at its saved progress.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.MarkOpened(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Opened %q\n", args[0])
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:     "remove <title>",
	Aliases: []string{"rm"},
	Short:   "Delete a book and its progress",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0])
		return nil
	},
}

func init() {
	libraryListCmd.Flags().StringVarP(
		&outputFormat, "output", "o", "table", "output format: table or json",
	)

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(libraryOpenCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
}

// bookTable renders books as a table
func bookTable(books []models.Book) string {
	rows := make([][]string, len(books))
	for i, b := range books {
		lastRead := "never"
		if b.LastReadTime > 0 {
			lastRead = humanize.Time(b.LastRead())
		}
		rows[i] = []string{
			b.Title,
			strconv.Itoa(b.Percent()) + "%",
			humanize.Comma(int64(b.TotalCharacterCount)),
			lastRead,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Border)).
		Headers("TITLE", "READ", "CHARACTERS", "LAST READ").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Inherit(styles.DialogTitle)
			case col == 0:
				return s.Inherit(styles.BookTitle)
			case col == 1:
				return s.Inherit(styles.BookProgress)
			default:
				return s.Inherit(styles.MutedText)
			}
		}).
		String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
