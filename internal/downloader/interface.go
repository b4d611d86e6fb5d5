package downloader

import "context"

// Audio is the result of downloading one video's audio track.
type Audio struct {
	ID    string
	Path  string
	Title string
}

// Video is one entry of a channel listing.
type Video struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ChannelInfo is the flat listing of a channel's videos, oldest first as
// reported by the extractor.
type ChannelInfo struct {
	ID     string
	Title  string
	URL    string
	Videos []Video
}

// Downloader fetches remote media. The pipeline consumes only this
// interface and does not care how the fetch happens.
type Downloader interface {
	Download(ctx context.Context, url string) (*Audio, error)
	ListChannel(ctx context.Context, url string) (*ChannelInfo, error)
}
