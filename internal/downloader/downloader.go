package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var channelURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^https?://(?:www\.)?youtube\.com/@[\w\-_.]+/?(?:videos)?/?$`),
	regexp.MustCompile(`(?i)^https?://(?:www\.)?youtube\.com/channel/[\w\-_/]+/?(?:videos)?/?$`),
	regexp.MustCompile(`(?i)^https?://(?:www\.)?youtube\.com/c/[\w\-_/]+/?(?:videos)?/?$`),
	regexp.MustCompile(`(?i)^https?://(?:www\.)?youtube\.com/user/[\w\-_/]+/?(?:videos)?/?$`),
}

// IsChannelURL reports whether url points at a whole channel rather than a
// single video.
func IsChannelURL(url string) bool {
	url = strings.TrimSpace(url)
	for _, pattern := range channelURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	// Clearly-non-video YouTube URLs are treated as channel-like targets.
	if strings.Contains(url, "youtube.com") &&
		!strings.Contains(url, "watch?v=") &&
		!strings.Contains(url, "shorts/") {
		return true
	}
	return false
}

// Download fetches one video's audio as mp3 and returns its location.
func (d *implDownloader) Download(ctx context.Context, url string) (*Audio, error) {
	d.logger.Info(ctx, "Downloading audio: %s", url)

	template := filepath.Join(d.outputDir, "%(id)s.%(ext)s")
	out, err := d.executor.Execute(ctx, "yt-dlp",
		"-x",
		"--audio-format", "mp3",
		"--no-playlist",
		"-o", template,
		"--print", "after_move:filepath",
		"--print", "id",
		"--print", "title",
		"--no-simulate",
		"-q",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp download: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 3 {
		return nil, fmt.Errorf("yt-dlp download: unexpected output %q", out)
	}

	audio := &Audio{
		Path:  strings.TrimSpace(lines[0]),
		ID:    strings.TrimSpace(lines[1]),
		Title: strings.TrimSpace(lines[2]),
	}

	d.logger.Info(ctx, "Downloaded %s -> %s", audio.ID, audio.Path)
	return audio, nil
}

// ListChannel fetches the flat listing of a channel without downloading
// any media.
func (d *implDownloader) ListChannel(ctx context.Context, url string) (*ChannelInfo, error) {
	d.logger.Info(ctx, "Listing channel: %s", url)

	out, err := d.executor.Execute(ctx, "yt-dlp",
		"--flat-playlist",
		"--playlist-reverse",
		"-J",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp list channel: %w", err)
	}

	info, err := ParseChannelJSON([]byte(out))
	if err != nil {
		return nil, err
	}
	if info.URL == "" {
		info.URL = url
	}

	d.logger.Info(ctx, "Channel %q: %d videos", info.Title, len(info.Videos))
	return info, nil
}

// ParseChannelJSON converts yt-dlp's flat-playlist JSON into a ChannelInfo.
// Exported for testing without a real yt-dlp binary.
func ParseChannelJSON(data []byte) (*ChannelInfo, error) {
	var raw struct {
		ID      string `json:"id"`
		Channel string `json:"channel"`
		Title   string `json:"title"`
		URL     string `json:"webpage_url"`
		Entries []struct {
			ID    string `json:"id"`
			URL   string `json:"url"`
			Title string `json:"title"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse channel JSON: %w", err)
	}

	title := raw.Channel
	if title == "" {
		title = raw.Title
	}

	info := &ChannelInfo{ID: raw.ID, Title: title, URL: raw.URL}
	for _, e := range raw.Entries {
		if e.ID == "" {
			continue
		}
		videoURL := e.URL
		if videoURL == "" {
			videoURL = "https://www.youtube.com/watch?v=" + e.ID
		}
		info.Videos = append(info.Videos, Video{ID: e.ID, URL: videoURL, Title: e.Title})
	}

	return info, nil
}
