package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
	"github.com/purrie/adventure-book-sub000/internal/library"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [book_dir]",
	Short: "Check adventure books for format errors",
	Long: `Parses every adventure and page document in the given book directory,
or in all configured book directories, and reports anything that fails
to load. Useful after hand-editing documents.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dirs := bookDirs()
		if len(args) == 1 {
			dirs = []string{args[0]}
		}

		var books []string
		for _, dir := range dirs {
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() {
					books = append(books, filepath.Join(dir, entry.Name()))
				}
			}
		}
		if len(books) == 0 {
			fmt.Println("No book folders found to validate.")
			os.Exit(1)
		}

		bar := progressbar.Default(int64(len(books)), "Validating books")
		problems := 0
		for _, book := range books {
			problems += validateBook(book)
			bar.Add(1)
		}

		fmt.Println()
		if problems > 0 {
			fmt.Printf("Found %d problem(s).\n", problems)
			os.Exit(1)
		}
		fmt.Println("All books are valid.")
	},
}

// validateBook parses the book's metadata and every page file, printing
// each failure, and returns how many it found.
func validateBook(book string) int {
	problems := 0

	data, err := os.ReadFile(filepath.Join(book, library.AdventureFile))
	if err != nil {
		fmt.Printf("\n%s: no %s: %v\n", book, library.AdventureFile, err)
		return 1
	}
	adv, err := adventure.ParseAdventure(string(data), book)
	if err != nil {
		fmt.Printf("\n%s: %v\n", book, err)
		return 1
	}
	if !adv.IsPlayable() {
		fmt.Printf("\n%s: adventure %q has no start page\n", book, adv.Title)
		problems++
	}

	entries, err := os.ReadDir(book)
	if err != nil {
		fmt.Printf("\n%s: %v\n", book, err)
		return problems + 1
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == library.AdventureFile || !strings.HasSuffix(name, library.PageExtension) {
			continue
		}
		pageName := strings.TrimSuffix(name, library.PageExtension)
		if _, err := library.ReadPage(book, pageName); err != nil {
			var incomplete *adventure.IncompletePageError
			if errors.As(err, &incomplete) {
				fmt.Printf("\n%s: page %q is not playable\n", book, pageName)
			} else {
				fmt.Printf("\n%s: page %q: %v\n", book, pageName, err)
			}
			problems++
		}
	}

	if adv.Start != "" {
		if _, err := library.ReadPage(book, adv.Start); err != nil {
			fmt.Printf("\n%s: start page %q doesn't load: %v\n", book, adv.Start, err)
			problems++
		}
	}
	return problems
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
