package cmd

import (
	"testing"

	"github.com/tubeget/tubeget/internal/progress"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"get", "doctor"} {
		if !names[want] {
			t.Errorf("subcommand %q not registered", want)
		}
	}
}

func TestGetCommand_Flags(t *testing.T) {
	for _, flag := range []string{"path", "audio", "browser", "quality", "verbose"} {
		if getCmd.Flags().Lookup(flag) == nil {
			t.Errorf("get is missing the --%s flag", flag)
		}
	}
}

func TestDoctorCommand_Flags(t *testing.T) {
	if doctorCmd.Flags().Lookup("install") == nil {
		t.Error("doctor is missing the --install flag")
	}
}

func TestRenderProgress(t *testing.T) {
	snap := progress.Snapshot{
		PercentText: "42.5%",
		Total:       "10.00MiB",
		Speed:       "1.23MiB/s",
		ETA:         "00:30",
		Status:      "downloading",
	}

	got := renderProgress(snap)
	want := "42.5% of 10.00MiB at 1.23MiB/s ETA 00:30 downloading"
	if got != want {
		t.Errorf("renderProgress = %q, want %q", got, want)
	}
}

func TestRenderProgress_SparseSnapshot(t *testing.T) {
	got := renderProgress(progress.Snapshot{PercentText: "0%", Status: "pending"})
	if got != "0% pending" {
		t.Errorf("renderProgress = %q, want \"0%% pending\"", got)
	}
}
