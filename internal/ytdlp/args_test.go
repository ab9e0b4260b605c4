package ytdlp

import (
	"slices"
	"strings"
	"testing"
)

func hasFlag(args []string, flag, value string) bool {
	for i, a := range args {
		if a == flag && i+1 < len(args) && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestBuildArgs_Common(t *testing.T) {
	args := BuildArgs(Request{URL: "https://example.com/v/1", Mode: ModeVideo}, "/downloads")

	for _, flag := range []string{"--newline", "--no-playlist", "--continue", "--no-mtime"} {
		if !slices.Contains(args, flag) {
			t.Errorf("args missing %s: %v", flag, args)
		}
	}
	if !hasFlag(args, "-P", "/downloads") {
		t.Errorf("args missing output dir: %v", args)
	}
	if !hasFlag(args, "-o", "%(title)s.%(ext)s") {
		t.Errorf("args missing output template: %v", args)
	}
	if args[len(args)-1] != "https://example.com/v/1" {
		t.Errorf("URL must be the final argument: %v", args)
	}
}

func TestBuildArgs_VideoMode(t *testing.T) {
	args := BuildArgs(Request{URL: "https://example.com/v/1", Mode: ModeVideo}, "/d")

	if !hasFlag(args, "-f", "bv*+ba/b") {
		t.Errorf("video format selector missing: %v", args)
	}
	if !hasFlag(args, "--merge-output-format", "mp4") {
		t.Errorf("mp4 merge missing: %v", args)
	}
}

func TestBuildArgs_AudioMode(t *testing.T) {
	args := BuildArgs(Request{URL: "https://example.com/v/1", Mode: ModeAudio}, "/d")

	if !hasFlag(args, "-f", "bestaudio/best") || !slices.Contains(args, "-x") {
		t.Errorf("audio extraction flags missing: %v", args)
	}
	if !hasFlag(args, "--audio-format", "mp3") {
		t.Errorf("mp3 format missing: %v", args)
	}
	if !slices.Contains(args, "--embed-thumbnail") || !hasFlag(args, "--convert-thumbnails", "jpg") {
		t.Errorf("thumbnail flags missing: %v", args)
	}
}

func TestBuildArgs_CookiesOnlyForYouTube(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		browser string
		want    bool
	}{
		{"YouTubeWithBrowser", "https://www.youtube.com/watch?v=abc", "firefox", true},
		{"ShortlinkWithBrowser", "https://youtu.be/abc", "chrome", true},
		{"OtherSiteWithBrowser", "https://vimeo.com/123", "firefox", false},
		{"YouTubeNoBrowser", "https://www.youtube.com/watch?v=abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := BuildArgs(Request{URL: tt.url, Mode: ModeVideo, Browser: tt.browser}, "/d")
			got := slices.Contains(args, "--cookies-from-browser")
			if got != tt.want {
				t.Errorf("cookies flag present = %v, want %v (args %v)", got, tt.want, args)
			}
		})
	}
}

func TestBuildArgs_QualityCap(t *testing.T) {
	args := BuildArgs(Request{URL: "https://example.com/v/1", Mode: ModeVideo, Quality: "1080"}, "/d")
	if !hasFlag(args, "-S", "res:1080") {
		t.Errorf("quality sort missing: %v", args)
	}

	args = BuildArgs(Request{URL: "https://example.com/v/1", Mode: ModeVideo}, "/d")
	if slices.Contains(args, "-S") {
		t.Errorf("no quality cap requested but -S present: %v", args)
	}
}

func TestBuildArgs_NoEmptyArguments(t *testing.T) {
	args := BuildArgs(Request{URL: "https://example.com/v/1", Mode: ModeAudio, Browser: "  "}, "/d")
	for _, a := range args {
		if strings.TrimSpace(a) == "" {
			t.Errorf("empty argument in %v", args)
		}
	}
}
