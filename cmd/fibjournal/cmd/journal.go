package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rustyeddy/fibjournal/fib"
	"github.com/rustyeddy/fibjournal/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage saved Fibonacci analyses",
	Long: `Save, inspect, edit and delete journal entries. Each entry keeps the
levels computed when it was saved. Only the most recent entries are kept.

Subcommands:
  add      - Analyze a range and save it
  list     - List saved entries, most recent first
  show     - Show one entry with its levels
  edit     - Change an entry and recompute its levels
  delete   - Remove an entry
  export   - Write entries as CSV or Org tables
  backup   - Write all entries to a compressed backup
  restore  - Replace the journal with a backup
  keys     - List the journals held by the configured store

Examples:
  fibjournal journal add --symbol BTC/USDT --high 70000 --low 65000
  fibjournal journal list --symbol btc/usdt
  fibjournal journal show 01HS --price 67000
  fibjournal journal export --format csv -o journal.csv`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Analyze a range and save it as a journal entry",
	Args:  cobra.NoArgs,
	RunE:  runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved entries, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show one entry with its levels",
	Long: `Show one entry. The id may be any unique prefix of the full id.

With --price the level nearest that price is called out, and --org
prints the entry as an Org section instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runJournalShow,
}

var journalEditCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Change an entry and recompute its levels",
	Long: `Change the fields given on the command line. Levels are recomputed
from the new values; the entry keeps its id, creation time and position.`,
	Args: cobra.ExactArgs(1),
	RunE: runJournalEdit,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Remove an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write entries as CSV or Org tables",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var journalBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write all entries to an xz compressed JSON file",
	Args:  cobra.NoArgs,
	RunE:  runJournalBackup,
}

var journalRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the journal with the entries from a backup",
	Args:  cobra.NoArgs,
	RunE:  runJournalRestore,
}

var journalKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the journals held by the configured store",
	Long: `List every journal key the configured store holds. The active key,
set by journal.key or FIBJOURNAL_KEY, is marked with "*".`,
	Args: cobra.NoArgs,
	RunE: runJournalKeys,
}

var (
	entrySymbol string
	entryHigh   float64
	entryLow    float64
	entryTrend  string
	entryDate   string
	entryNotes  string

	listSymbol string
	listFrom   string
	listTo     string

	showPrice float64
	showOrg   bool

	deleteYes bool

	exportFormat string
	exportOutput string
	exportSymbol string

	backupOutput string
	restoreInput string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalEditCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalBackupCmd)
	journalCmd.AddCommand(journalRestoreCmd)
	journalCmd.AddCommand(journalKeysCmd)

	for _, c := range []*cobra.Command{journalAddCmd, journalEditCmd} {
		c.Flags().StringVarP(&entrySymbol, "symbol", "s", "", "symbol, e.g. BTC/USDT")
		c.Flags().Float64Var(&entryHigh, "high", 0, "swing high price")
		c.Flags().Float64Var(&entryLow, "low", 0, "swing low price")
		c.Flags().StringVar(&entryTrend, "trend", "", "up or down (default from config)")
		c.Flags().StringVar(&entryDate, "date", "", "journal date YYYY-MM-DD (default today)")
		c.Flags().StringVarP(&entryNotes, "notes", "n", "", "free-form notes")
	}
	journalAddCmd.MarkFlagRequired("symbol")
	journalAddCmd.MarkFlagRequired("high")
	journalAddCmd.MarkFlagRequired("low")

	journalListCmd.Flags().StringVarP(&listSymbol, "symbol", "s", "", "only entries for this symbol")
	journalListCmd.Flags().StringVar(&listFrom, "from", "", "first journal date YYYY-MM-DD")
	journalListCmd.Flags().StringVar(&listTo, "to", "", "last journal date YYYY-MM-DD")

	journalShowCmd.Flags().Float64Var(&showPrice, "price", 0, "call out the level nearest this price")
	journalShowCmd.Flags().BoolVar(&showOrg, "org", false, "print as an Org section")

	journalDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")

	journalExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv or org")
	journalExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	journalExportCmd.Flags().StringVarP(&exportSymbol, "symbol", "s", "", "only entries for this symbol")

	journalBackupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "backup file, e.g. journal.json.xz (required)")
	journalBackupCmd.MarkFlagRequired("output")
	journalRestoreCmd.Flags().StringVarP(&restoreInput, "input", "i", "", "backup file to restore (required)")
	journalRestoreCmd.MarkFlagRequired("input")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	trend, err := trendFlag(entryTrend, rt)
	if err != nil {
		return err
	}

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := j.Add(journal.Draft{
		Symbol: entrySymbol,
		Date:   entryDate,
		High:   entryHigh,
		Low:    entryLow,
		Trend:  trend,
		Notes:  entryNotes,
	})
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s %s (%s)\n\n", e.Symbol, e.Date, e.ID)
	return rt.printer(cmd).Entry(e, nil)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	f, err := dateFilter(listSymbol, listFrom, listTo)
	if err != nil {
		return err
	}

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := j.ListFiltered(f)
	if err != nil {
		return err
	}
	return rt.printer(cmd).Entries(entries)
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := resolveEntry(j, args[0])
	if err != nil {
		return err
	}

	if showOrg {
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatEntryOrg(e))
		return nil
	}

	var near *float64
	if cmd.Flags().Changed("price") {
		near = &showPrice
	}
	return rt.printer(cmd).Entry(e, near)
}

func runJournalEdit(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := resolveEntry(j, args[0])
	if err != nil {
		return err
	}

	d := e.Draft()
	flags := cmd.Flags()
	if flags.Changed("symbol") {
		d.Symbol = entrySymbol
	}
	if flags.Changed("high") {
		d.High = entryHigh
	}
	if flags.Changed("low") {
		d.Low = entryLow
	}
	if flags.Changed("trend") {
		if d.Trend, err = fib.ParseTrend(entryTrend); err != nil {
			return err
		}
	}
	if flags.Changed("date") {
		d.Date = entryDate
	}
	if flags.Changed("notes") {
		d.Notes = entryNotes
	}

	updated, err := j.Update(e.ID, d)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated %s %s (%s)\n\n", updated.Symbol, updated.Date, updated.ID)
	return rt.printer(cmd).Entry(updated, nil)
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := resolveEntry(j, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !deleteYes {
		q := fmt.Sprintf("Delete %s %s (%s)?", e.Symbol, e.Date, e.ID)
		if !confirm(cmd.InOrStdin(), out, q) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := j.Delete(e.ID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	fmt.Fprintf(out, "✓ Deleted %s\n", e.ID)
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := j.ListFiltered(journal.Filter{Symbol: exportSymbol})
	if err != nil {
		return err
	}

	var write func(w io.Writer) error
	switch strings.ToLower(exportFormat) {
	case "csv":
		write = func(w io.Writer) error { return journal.WriteCSV(w, entries) }
	case "org":
		write = func(w io.Writer) error {
			_, err := io.WriteString(w, journal.FormatEntriesOrg(entries))
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q (want csv or org)", exportFormat)
	}
	return withOutput(cmd, exportOutput, write)
}

func runJournalBackup(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := j.List()
	if err != nil {
		return err
	}

	f, err := os.Create(backupOutput)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if err := journal.WriteBackup(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Backed up %d entries to %s\n", len(entries), backupOutput)
	return nil
}

func runJournalRestore(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	f, err := os.Open(restoreInput)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	entries, err := journal.ReadBackup(f)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	j, store, err := rt.openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := j.Restore(entries)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored %d entries from %s\n", n, restoreInput)
	return nil
}

func runJournalKeys(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	store, err := rt.openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	lister, ok := store.(journal.KeyLister)
	if !ok {
		return fmt.Errorf("%s store cannot list keys", rt.cfg.Journal.Store)
	}
	keys, err := lister.Keys()
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(keys) == 0 {
		fmt.Fprintln(out, "No journals saved yet.")
		return nil
	}
	for _, k := range keys {
		mark := " "
		if k == rt.cfg.Journal.Key {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s\n", mark, k)
	}
	return nil
}

func resolveEntry(j *journal.Journal, prefix string) (journal.Entry, error) {
	entryID, err := j.Resolve(prefix)
	if err != nil {
		return journal.Entry{}, err
	}
	return j.Get(entryID)
}

// dateFilter builds a Filter from inclusive YYYY-MM-DD bounds.
func dateFilter(symbol, from, to string) (journal.Filter, error) {
	f := journal.Filter{Symbol: symbol}
	if from != "" {
		start, _, err := journal.DayBounds(from)
		if err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
		f.From = start
	}
	if to != "" {
		_, end, err := journal.DayBounds(to)
		if err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
		f.To = end
	}
	return f, nil
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// withOutput runs fn against path, or the command's output when path is
// empty.
func withOutput(cmd *cobra.Command, path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
