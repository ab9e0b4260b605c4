package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tubeget/tubeget/internal/ytdlp"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that yt-dlp and ffmpeg are available",
	Long:  `doctor reports where yt-dlp and ffmpeg were found, if anywhere, and with --install downloads the missing ones into the app directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		install, _ := cmd.Flags().GetBool("install")
		ctx := context.Background()

		healthy := true
		healthy = reportTool("yt-dlp", ytdlp.CheckYTDLP(), install, func() (ytdlp.Status, error) {
			return ytdlp.InstallYTDLP(ctx)
		}) && healthy
		healthy = reportTool("ffmpeg", ytdlp.CheckFFmpeg(), install, func() (ytdlp.Status, error) {
			return ytdlp.InstallFFmpeg(ctx)
		}) && healthy

		if !healthy {
			os.Exit(1)
		}
	},
}

func reportTool(name string, st ytdlp.Status, install bool, installer func() (ytdlp.Status, error)) bool {
	if st.Installed {
		fmt.Printf("✓ %-8s %s (%s)\n", name, st.Path, st.Source)
		return true
	}
	if !install {
		fmt.Printf("✗ %-8s not found (rerun with --install)\n", name)
		return false
	}

	fmt.Printf("… %-8s installing\n", name)
	st, err := installer()
	if err != nil {
		fmt.Printf("✗ %-8s %v\n", name, err)
		return false
	}
	fmt.Printf("✓ %-8s %s (%s)\n", name, st.Path, st.Source)
	return true
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().Bool("install", false, "download missing tools into the app directory")
}
