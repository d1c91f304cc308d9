package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
	"github.com/purrie/adventure-book-sub000/internal/library"
	"github.com/purrie/adventure-book-sub000/internal/savegame"
	"github.com/purrie/adventure-book-sub000/internal/story"
	"github.com/purrie/adventure-book-sub000/internal/transcript"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var playCmd = &cobra.Command{
	Use:   "play [book_title]",
	Short: "Play an adventure book",
	Long: `Scans the book directories for adventures and starts the one matching
the given title or folder name. With no argument, lists what's available.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := library.New(bookDirs()...)
		adventures := lib.Capture()
		if len(adventures) == 0 {
			fmt.Println("No adventure books found. Set books_dir in the config or drop a book into ./books.")
			os.Exit(1)
		}

		if len(args) == 0 {
			fmt.Println("Available adventures:")
			for _, adv := range adventures {
				fmt.Printf("  %s: %s\n", adv.Title, adv.Description)
			}
			return
		}

		adv := findAdventure(adventures, args[0])
		if adv == nil {
			fmt.Printf("No adventure matches %q\n", args[0])
			os.Exit(1)
		}
		if !adv.IsPlayable() {
			fmt.Printf("Adventure %q has no start page and can't be played\n", adv.Title)
			os.Exit(1)
		}

		seed, _ := cmd.Flags().GetInt64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		session, err := story.NewSession(adv, library.Pages{Path: adv.Path}, seed)
		if err != nil {
			fmt.Printf("Failed to start %q: %v\n", adv.Title, err)
			os.Exit(1)
		}

		loadName, _ := cmd.Flags().GetString("load")
		saves := savegame.NewStore(saveDir())
		if loadName != "" {
			snap, err := saves.Load(loadName)
			if err != nil {
				fmt.Printf("Failed to load save: %v\n", err)
				os.Exit(1)
			}
			if err := restoreSession(session, snap); err != nil {
				fmt.Printf("Failed to restore save: %v\n", err)
				os.Exit(1)
			}
		}

		logPath := filepath.Join(saveDir(), filepath.Base(adv.Path)+".transcript.jsonl")
		if err := os.MkdirAll(saveDir(), 0755); err != nil {
			fmt.Printf("Failed to prepare save directory: %v\n", err)
			os.Exit(1)
		}
		log, err := transcript.NewStore(logPath)
		if err != nil {
			fmt.Printf("Failed to open transcript: %v\n", err)
			os.Exit(1)
		}
		defer log.Close()

		if err := RunTUI(session, saves, log, seed); err != nil {
			fmt.Printf("Fatal TUI error: %v\n", err)
			os.Exit(1)
		}
	},
}

// findAdventure matches by exact title first, then by book folder name.
func findAdventure(adventures []*adventure.Adventure, key string) *adventure.Adventure {
	for _, adv := range adventures {
		if adv.Title == key {
			return adv
		}
	}
	for _, adv := range adventures {
		if filepath.Base(adv.Path) == key {
			return adv
		}
	}
	return nil
}

// restoreSession moves an established session to a snapshot's page and
// state. Records or names the snapshot knows but the book no longer has
// are dropped rather than erroring, so old saves survive book edits.
func restoreSession(s *story.Session, snap *savegame.Snapshot) error {
	for name, value := range snap.Records {
		if rec, ok := s.Records[name]; ok {
			rec.Value = value
		}
	}
	for keyword, value := range snap.Names {
		if n, ok := s.Names[keyword]; ok {
			n.Value = value
		}
	}
	return s.Goto(snap.Page)
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Int64("seed", 0, "Seed for the dice engine (random when unset)")
	playCmd.Flags().String("load", "", "Name of a saved session to resume")
	playCmd.Flags().String("saves_dir", "", "Directory for saves and transcripts")
	if err := viper.BindPFlag("saves_dir", playCmd.Flags().Lookup("saves_dir")); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
