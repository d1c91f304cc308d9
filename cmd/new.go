package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
	"github.com/purrie/adventure-book-sub000/internal/library"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [folder_name]",
	Short: "Scaffold a new adventure book",
	Long: `Creates a book folder with a starter adventure document and a first
page, ready to edit. The folder is created under the first configured
book directory unless --books_dir points elsewhere.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = args[0]
		}

		bookDir := filepath.Join(bookDirs()[0], args[0])
		if _, err := os.Stat(bookDir); err == nil {
			fmt.Printf("Error: %s already exists\n", bookDir)
			os.Exit(1)
		}
		if err := os.MkdirAll(bookDir, 0755); err != nil {
			fmt.Printf("Error creating book folder: %v\n", err)
			os.Exit(1)
		}

		adv := adventure.NewAdventure()
		adv.Title = title
		adv.Description = "Describe your adventure here."
		adv.Start = "start"
		adv.Path = bookDir
		adv.Records["courage"] = &adventure.Record{Name: "courage", Category: "attributes", Value: 10}
		adv.Names["hero"] = &adventure.Name{Keyword: "hero", Value: "Alex"}

		page := adventure.NewPage()
		page.Title = "The Beginning"
		page.Story = "[hero] stands at the crossroads, courage at [courage]."
		page.Choices = append(page.Choices,
			&adventure.Choice{Text: "Take the bold road", Test: "bold"},
			&adventure.Choice{Text: "Go home", Result: adventure.GameOverKeyword},
		)
		page.Tests["bold"] = &adventure.Test{
			Name:          "bold",
			ExpressionL:   "1d20",
			Comparison:    adventure.LessEqual,
			ExpressionR:   "[courage]",
			SuccessResult: "onward",
			FailureResult: "onward",
		}
		page.Results["onward"] = &adventure.StoryResult{
			Name:        "onward",
			NextPage:    "start",
			SideEffects: map[string]string{"courage": "[courage]+1"},
		}

		files := map[string]string{
			library.AdventureFile:           adv.Serialize(),
			"start" + library.PageExtension: page.Serialize(),
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(bookDir, name), []byte(content), 0644); err != nil {
				fmt.Printf("Error writing %s: %v\n", name, err)
				os.Exit(1)
			}
		}

		fmt.Printf("Created %q at %s\n", title, bookDir)
		fmt.Println("Edit adventure.txt and the page files, then run: adventure-book validate")
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("title", "", "Title of the new adventure (defaults to the folder name)")
}
