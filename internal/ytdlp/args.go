package ytdlp

import (
	"strings"
)

// BuildArgs assembles the yt-dlp argument vector for a download request.
// --newline keeps progress output line-buffered so it can be streamed.
func BuildArgs(req Request, outputDir string) []string {
	args := []string{
		"--newline",
		"--no-playlist",
		"--continue",
		"--no-mtime",
		"-o", "%(title)s.%(ext)s",
		"-P", outputDir,
	}

	if isYouTube(req.URL) {
		if browser := strings.TrimSpace(req.Browser); browser != "" {
			args = append(args, "--cookies-from-browser", browser)
		}
	}

	switch req.Mode {
	case ModeAudio:
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--embed-thumbnail",
			"--convert-thumbnails", "jpg",
		)
	default:
		args = append(args,
			"-f", "bv*+ba/b",
			"--merge-output-format", "mp4",
		)
	}

	if quality := strings.TrimSpace(req.Quality); quality != "" {
		args = append(args, "-S", "res:"+quality)
	}

	args = append(args, req.URL)
	return args
}

func isYouTube(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}
