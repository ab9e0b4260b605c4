package ytdlp

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/h2non/filetype"
	"github.com/vfaronov/httpheader"

	"github.com/tubeget/tubeget/internal/config"
	"github.com/tubeget/tubeget/internal/utils"
)

// Source says where a provisioned binary came from.
type Source string

const (
	SourceSystem  Source = "system"
	SourceBundled Source = "bundled"
)

// Status reports whether an external tool is available and where.
type Status struct {
	Installed bool   `json:"installed"`
	Path      string `json:"path"`
	Source    Source `json:"source"`
}

var installClient = &http.Client{Timeout: 5 * time.Minute}

// CheckYTDLP looks for yt-dlp on PATH, then in the bundled binary dir.
func CheckYTDLP() Status {
	return checkBinary("yt-dlp")
}

// CheckFFmpeg looks for ffmpeg on PATH, then in the bundled binary dir.
func CheckFFmpeg() Status {
	return checkBinary("ffmpeg")
}

func checkBinary(name string) Status {
	if path, err := exec.LookPath(name); err == nil {
		return Status{Installed: true, Path: path, Source: SourceSystem}
	}
	bundled := bundledPath(name)
	if _, err := os.Stat(bundled); err == nil {
		return Status{Installed: true, Path: bundled, Source: SourceBundled}
	}
	return Status{}
}

// InstallYTDLP downloads the latest yt-dlp release into the bundled binary
// directory. Safe to call when a system binary exists; the bundled copy then
// simply shadows nothing.
func InstallYTDLP(ctx context.Context) (Status, error) {
	path, err := installBinary(ctx, "yt-dlp", ytdlpReleaseURL())
	if err != nil {
		return Status{}, err
	}
	return Status{Installed: true, Path: path, Source: SourceBundled}, nil
}

// InstallFFmpeg downloads an ffmpeg build where one is published as a plain
// binary or zip archive. Linux builds ship as tar.xz only, so there the user
// is pointed at the package manager instead.
func InstallFFmpeg(ctx context.Context) (Status, error) {
	url, err := ffmpegReleaseURL()
	if err != nil {
		return Status{}, err
	}
	path, err := installBinary(ctx, "ffmpeg", url)
	if err != nil {
		return Status{}, err
	}
	return Status{Installed: true, Path: path, Source: SourceBundled}, nil
}

func ytdlpReleaseURL() string {
	switch runtime.GOOS {
	case "windows":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp.exe"
	case "darwin":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_macos"
	default:
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp"
	}
}

func ffmpegReleaseURL() (string, error) {
	switch runtime.GOOS {
	case "windows":
		return "https://github.com/GyanD/codexffmpeg/releases/latest/download/ffmpeg-release-essentials.zip", nil
	case "darwin":
		return "https://evermeet.cx/ffmpeg/getrelease/zip", nil
	default:
		return "", errors.New("automatic ffmpeg install is not supported on this platform; install it with your package manager")
	}
}

// installBinary fetches url and places the named executable in the bundled
// binary dir. A file lock keeps concurrent tubeget processes from clobbering
// each other's install.
func installBinary(ctx context.Context, name, url string) (string, error) {
	binDir := config.GetBinDir()
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return "", fmt.Errorf("create binary directory: %w", err)
	}

	lock := flock.New(filepath.Join(binDir, ".install.lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock binary directory: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := installClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", name, resp.Status)
	}

	_, filename, _ := httpheader.ContentDisposition(resp.Header)
	if filename != "" {
		utils.Debug("install %s: release asset %s", name, filename)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s download: %w", name, err)
	}

	target := bundledPath(name)
	switch format := assetFormat(data, filename); format {
	case "zip":
		if err := extractFromZip(data, binaryFileName(name), target); err != nil {
			return "", err
		}
	case "xz", "gz", "tar", "bz2", "7z":
		asset := filename
		if asset == "" {
			asset = name
		}
		return "", fmt.Errorf("release asset %s: archive format %q is not supported; install %s manually", asset, format, name)
	default:
		if err := os.WriteFile(target, data, 0755); err != nil {
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := os.Chmod(target, 0755); err != nil {
		return "", fmt.Errorf("mark %s executable: %w", name, err)
	}
	utils.Debug("install %s: placed at %s (%d bytes)", name, target, len(data))
	return target, nil
}

// assetFormat resolves the downloaded payload's format. Magic bytes win;
// when the sniff is inconclusive the release asset's Content-Disposition
// filename decides, so a mislabeled archive never gets chmodded into place
// as a binary.
func assetFormat(data []byte, filename string) string {
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return kind.Extension
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// extractFromZip copies the first archive member whose base name matches
// wanted into target.
func extractFromZip(data []byte, wanted, target string) error {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open release archive: %w", err)
	}

	for _, file := range archive.File {
		if file.FileInfo().IsDir() || filepath.Base(file.Name) != wanted {
			continue
		}
		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("read archive member %s: %w", file.Name, err)
		}
		defer func() { _ = src.Close() }()

		dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
		if err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		defer func() { _ = dst.Close() }()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("extract %s: %w", wanted, err)
		}
		return nil
	}
	return fmt.Errorf("no %s executable found in release archive", wanted)
}

func bundledPath(name string) string {
	return filepath.Join(config.GetBinDir(), binaryFileName(name))
}

func binaryFileName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
