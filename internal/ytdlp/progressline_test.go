package ytdlp

import "testing"

func TestParseProgressLine_Downloading(t *testing.T) {
	pl, ok := ParseProgressLine("[download]  42.5% of 10.00MiB at 1.23MiB/s ETA 00:30")
	if !ok {
		t.Fatal("line not recognized")
	}

	if pl.Percent != 42.5 {
		t.Errorf("percent = %v, want 42.5", pl.Percent)
	}
	if pl.PercentText != "42.5%" {
		t.Errorf("percent text = %q", pl.PercentText)
	}
	if pl.Total != "10.00MiB" {
		t.Errorf("total = %q, want 10.00MiB", pl.Total)
	}
	if pl.Speed != "1.23MiB/s" {
		t.Errorf("speed = %q, want 1.23MiB/s", pl.Speed)
	}
	if pl.ETA != "00:30" {
		t.Errorf("eta = %q, want 00:30", pl.ETA)
	}
	if pl.Status != "downloading" {
		t.Errorf("status = %q, want downloading", pl.Status)
	}
}

func TestParseProgressLine_Finished(t *testing.T) {
	pl, ok := ParseProgressLine("[download] 100% of 10.00MiB in 00:00:08 at 1.25MiB/s")
	if !ok {
		t.Fatal("line not recognized")
	}

	if pl.Percent != 100 {
		t.Errorf("percent = %v, want 100", pl.Percent)
	}
	if pl.Status != "finished" {
		t.Errorf("status = %q, want finished", pl.Status)
	}
	if pl.Total != "10.00MiB" {
		t.Errorf("total = %q, want 10.00MiB", pl.Total)
	}
	// Elapsed label only; the trailing "at <speed>" belongs to Speed.
	if pl.ETA != "00:00:08" {
		t.Errorf("eta = %q, want 00:00:08", pl.ETA)
	}
	if pl.Speed != "1.25MiB/s" {
		t.Errorf("speed = %q, want 1.25MiB/s", pl.Speed)
	}
}

func TestParseProgressLine_UnknownSize(t *testing.T) {
	pl, ok := ParseProgressLine("[download]   3.1% of ~150.00MiB at  512.00KiB/s ETA 04:51")
	if !ok {
		t.Fatal("line not recognized")
	}
	if pl.Percent != 3.1 {
		t.Errorf("percent = %v, want 3.1", pl.Percent)
	}
	if pl.Total != "~150.00MiB" {
		t.Errorf("total = %q, want ~150.00MiB", pl.Total)
	}
}

func TestParseProgressLine_Rejects(t *testing.T) {
	lines := []string{
		"[youtube] abc: Downloading webpage",
		"[download] Destination: video.mp4",
		"[Merger] Merging formats",
		"plain text with 42% in it",
		"[download] Got error: connection reset",
	}
	for _, line := range lines {
		if _, ok := ParseProgressLine(line); ok {
			t.Errorf("line %q should not parse as progress", line)
		}
	}
}
