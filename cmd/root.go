package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tubeget/tubeget/internal/config"
	"github.com/tubeget/tubeget/internal/tui"
	"github.com/tubeget/tubeget/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "tubeget",
	Short:   "A terminal front-end for yt-dlp",
	Long:    `tubeget is a terminal (TUI) front-end for yt-dlp: paste a URL, watch progress and log output live, and find the file in your downloads folder.`,
	Version: Version,
	Args:    cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings := loadSettings()
		utils.ConfigureDebug(config.GetLogsDir())
		utils.CleanupLogs(settings.General.LogRetentionCount)
	},
	Run: func(cmd *cobra.Command, args []string) {
		settings := loadSettings()
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			settings.Download.DefaultDir = dir
		}

		p := tea.NewProgram(tui.NewModel(settings), tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}
	},
}

func loadSettings() *config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		utils.Debug("load settings: %v", err)
		return config.DefaultSettings()
	}
	return settings
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("output", "o", "", "Default output directory")
	rootCmd.SetVersionTemplate("tubeget version {{.Version}}\n")
}
