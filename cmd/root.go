package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "adventure-book",
	Short: "Play and manage text adventure books",
	Long: `Adventure Book is an interactive fiction engine. Adventures are plain
text documents describing pages, choices, dice tests and story state;
the engine parses them, tracks your records and moves you from page to
page as you play.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.adventure-book.yaml)")
	rootCmd.PersistentFlags().String("books_dir", "", "directory holding adventure book folders")
	if err := viper.BindPFlag("books_dir", rootCmd.PersistentFlags().Lookup("books_dir")); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".adventure-book")
	}

	viper.AutomaticEnv()

	// Missing config is fine, every setting has a fallback.
	_ = viper.ReadInConfig()
}

// bookDirs resolves the search path for adventure books: the configured
// directory when set, otherwise the conventional locations plus ./books
// for development checkouts.
func bookDirs() []string {
	if dir := viper.GetString("books_dir"); dir != "" {
		return []string{dir}
	}
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "adventure-book"))
	}
	return append(dirs, "/usr/share/adventure-book", "./books")
}

// saveDir resolves where session snapshots and transcripts live.
func saveDir() string {
	if dir := viper.GetString("saves_dir"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".saves"
	}
	return filepath.Join(home, ".local", "share", "adventure-book", "saves")
}
