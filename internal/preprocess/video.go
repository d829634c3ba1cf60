package preprocess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"mediaup/internal/domain"
)

// VideoProcessor probes video metadata and extracts cover thumbnails by
// shelling out to ffprobe/ffmpeg. Both operations are read-only with
// respect to the original asset.
type VideoProcessor struct {
	FFmpegBin  string
	FFprobeBin string
}

// NewVideoProcessor creates a VideoProcessor with the given binary paths.
// Empty paths fall back to lookup on PATH.
func NewVideoProcessor(ffmpegBin, ffprobeBin string) *VideoProcessor {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &VideoProcessor{FFmpegBin: ffmpegBin, FFprobeBin: ffprobeBin}
}

// ThumbnailSeek returns the timestamp to rasterize a cover frame from:
// min(1s, 10% of duration), so very short clips still land inside the clip.
func ThumbnailSeek(duration float64) float64 {
	seek := duration * 0.1
	if seek > 1.0 {
		seek = 1.0
	}
	return seek
}

// Probe returns duration and dimensions without modifying the payload.
func (p *VideoProcessor) Probe(ctx context.Context, asset *domain.MediaAsset) (*domain.VideoInfo, error) {
	path, cleanup, err := writeTemp(asset)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := exec.CommandContext(ctx, p.FFprobeBin,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", asset.Filename, err)
	}
	return parseProbeOutput(out)
}

// Thumbnail seeks into the clip and rasterizes a single frame as a JPEG
// blob for use as a cover image. The returned asset is independent of the
// original.
func (p *VideoProcessor) Thumbnail(ctx context.Context, asset *domain.MediaAsset, duration float64) (*domain.MediaAsset, error) {
	path, cleanup, err := writeTemp(asset)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	seek := ThumbnailSeek(duration)
	cmd := exec.CommandContext(ctx, p.FFmpegBin,
		"-v", "error",
		"-ss", strconv.FormatFloat(seek, 'f', 2, 64),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg thumbnail %q: %w", asset.Filename, err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg thumbnail %q: no frame produced", asset.Filename)
	}

	return domain.NewMediaAsset(stdout.Bytes(), "image/jpeg", jpegName(asset.Filename)), nil
}

// probeOutput mirrors the subset of ffprobe's JSON output we consume.
type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseProbeOutput(data []byte) (*domain.VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	info := &domain.VideoInfo{}
	if out.Format.Duration != "" {
		d, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing ffprobe duration %q: %w", out.Format.Duration, err)
		}
		info.Duration = d
	}
	for _, s := range out.Streams {
		if s.CodecType == "video" {
			info.Width = s.Width
			info.Height = s.Height
			break
		}
	}
	if info.Width == 0 && info.Height == 0 {
		return nil, fmt.Errorf("ffprobe output has no video stream")
	}
	return info, nil
}

// writeTemp spills the asset to a temp file so the ffmpeg binaries can seek
// it. The caller must invoke cleanup.
func writeTemp(asset *domain.MediaAsset) (string, func(), error) {
	ext := filepath.Ext(asset.Filename)
	f, err := os.CreateTemp("", "mediaup-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp video file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(asset.Data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp video file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp video file: %w", err)
	}
	return path, cleanup, nil
}
