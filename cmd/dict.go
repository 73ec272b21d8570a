/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/palabra/internal/lexicon"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the local dictionary",
	Long: `Add, list, look up, import and delete local dictionary entries.

Entries are stored per source language (--source) in the database (--db).
A meaning may hold several senses separated by "∥"; each sense is shown on
its own line in the analysis prompt.`,
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dictionary entries of the source language",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.ListEntries(cmd.Context(), cfg.Language.Source)
		if err != nil {
			return fmt.Errorf("failed to list dictionary: %w", err)
		}

		if len(entries) == 0 {
			fmt.Printf("Dictionary for %s is empty.\n", cfg.Language.Source)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWORD\tMEANING")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Word, strings.ReplaceAll(lexicon.RenderMeaning(e.Meaning, ""), "\n", "; "))
		}
		return w.Flush()
	},
}

var dictAddCmd = &cobra.Command{
	Use:   "add <word> <meaning>",
	Short: "Add or update a dictionary entry",
	Long: `Add a word with its meaning, or replace the meaning of an existing word.

Example:
  palabra dict add come "eat∥devour" --source es`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.AddEntry(cmd.Context(), cfg.Language.Source, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to add dictionary entry: %w", err)
		}
		fmt.Printf("Added: [%s] %q → %q (%s)\n", cfg.Language.Source, args[0], args[1], id)
		return nil
	},
}

var dictDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a dictionary entry by ID",
	Long: `Delete a dictionary entry by its ID (shown in "palabra dict list").`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		deleted, err := db.DeleteEntry(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete dictionary entry: %w", err)
		}
		if !deleted {
			return fmt.Errorf("no dictionary entry with ID %s", args[0])
		}
		fmt.Printf("Deleted dictionary entry: %s\n", args[0])
		return nil
	},
}

var dictImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from a JSON or YAML file",
	Long: `Import a dictionary file into the database. The file holds a list of
{word, meaning} objects. Existing words get the imported meaning.

Example:
  palabra dict import spanish.yaml --source es`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := lexicon.LoadFile(args[0])
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ImportEntries(cmd.Context(), cfg.Language.Source, dict)
		if err != nil {
			return fmt.Errorf("failed to import dictionary: %w", err)
		}
		total, err := db.Count(cmd.Context(), cfg.Language.Source)
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		fmt.Printf("Imported %d entries into the %s dictionary (%d total)\n", n, cfg.Language.Source, total)
		return nil
	},
}

var (
	dictLookupThreshold float64
	dictLookupLimit     int
)

var dictLookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Look up a word, with suggestions for near misses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		entry, found, err := db.Lookup(ctx, cfg.Language.Source, args[0])
		if err != nil {
			return fmt.Errorf("failed to look up %q: %w", args[0], err)
		}
		if found {
			fmt.Printf("%s:\n  %s\n", entry.Word, lexicon.RenderMeaning(entry.Meaning, "  "))
			return nil
		}

		suggestions, err := db.Suggest(ctx, cfg.Language.Source, args[0], dictLookupThreshold, dictLookupLimit)
		if err != nil {
			return fmt.Errorf("failed to find suggestions: %w", err)
		}
		if len(suggestions) == 0 {
			fmt.Printf("%q is not in the %s dictionary.\n", args[0], cfg.Language.Source)
			return nil
		}

		words := make([]string, len(suggestions))
		for i, s := range suggestions {
			words[i] = fmt.Sprintf("%s (%.0f%%)", s.Entry.Word, s.Score*100)
		}
		fmt.Printf("%q is not in the %s dictionary. Did you mean: %s\n",
			args[0], cfg.Language.Source, strings.Join(words, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)

	dictLookupCmd.Flags().Float64Var(&dictLookupThreshold, "threshold", 0.7, "Minimum similarity (0-1) for suggestions")
	dictLookupCmd.Flags().IntVar(&dictLookupLimit, "limit", 5, "Maximum number of suggestions")

	dictCmd.AddCommand(dictListCmd)
	dictCmd.AddCommand(dictAddCmd)
	dictCmd.AddCommand(dictDeleteCmd)
	dictCmd.AddCommand(dictImportCmd)
	dictCmd.AddCommand(dictLookupCmd)
}
