package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tubeget/tubeget/internal/events"
	"github.com/tubeget/tubeget/internal/progress"
	"github.com/tubeget/tubeget/internal/session"
	"github.com/tubeget/tubeget/internal/ytdlp"
)

var getCmd = &cobra.Command{
	Use:   "get [url]",
	Short: "get downloads one video or audio track without the TUI",
	Long:  `get runs a single download headlessly, printing progress to stderr. It consumes the same notifications the TUI does.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputDir, _ := cmd.Flags().GetString("path")
		audio, _ := cmd.Flags().GetBool("audio")
		browser, _ := cmd.Flags().GetString("browser")
		quality, _ := cmd.Flags().GetString("quality")
		verbose, _ := cmd.Flags().GetBool("verbose")

		mode := ytdlp.ModeVideo
		if audio {
			mode = ytdlp.ModeAudio
		}

		orch := session.NewOrchestrator()
		sess, err := orch.Begin(ytdlp.Request{
			URL:       args[0],
			Mode:      mode,
			Browser:   browser,
			OutputDir: outputDir,
			Quality:   quality,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		orch.Dispatch()

		// One consumer goroutine keeps all orchestrator writes on a single
		// dispatch path, same as the TUI's event pump.
		eventCh := make(chan events.Envelope, 100)
		runner := ytdlp.NewRunner(func(env events.Envelope) {
			select {
			case eventCh <- env:
			default:
			}
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			for env := range eventCh {
				if !orch.Route(env) {
					continue
				}
				switch env.Name {
				case events.LogEventName:
					if verbose {
						if ev, ok := events.DecodeLog(env.Payload); ok {
							fmt.Fprintln(os.Stderr, ev.Line)
						}
					}
				case events.ProgressEventName:
					if snap, ok := orch.Snapshot(); ok && !verbose {
						fmt.Fprintf(os.Stderr, "\r%-70s", renderProgress(snap))
					}
				}
			}
		}()

		res, runErr := runner.DownloadMedia(context.Background(), sess.Request)
		close(eventCh)
		<-done
		orch.Settle(sess.ID, res, runErr)

		if !verbose {
			fmt.Fprintln(os.Stderr)
		}
		if msg := orch.ErrorMessage(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
			os.Exit(1)
		}
		fmt.Println(orch.ResultMessage())
	},
}

// renderProgress formats one status line from the coalesced snapshot.
func renderProgress(snap progress.Snapshot) string {
	parts := []string{snap.PercentText}
	if snap.Total != "" {
		parts = append(parts, "of "+snap.Total)
	}
	if snap.Speed != "" {
		parts = append(parts, "at "+snap.Speed)
	}
	if snap.ETA != "" {
		parts = append(parts, "ETA "+snap.ETA)
	}
	if snap.Status != "" {
		parts = append(parts, snap.Status)
	}
	return strings.Join(parts, " ")
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("path", "p", "", "download folder (default: platform Downloads dir)")
	getCmd.Flags().BoolP("audio", "a", false, "extract audio as mp3 instead of video")
	getCmd.Flags().String("browser", "", "browser to read cookies from (YouTube only)")
	getCmd.Flags().StringP("quality", "q", "", "vertical resolution cap, e.g. 1080")
	getCmd.Flags().BoolP("verbose", "v", false, "print every yt-dlp output line")
}
