package downloader

import "testing"

func TestIsChannelURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"handle", "https://www.youtube.com/@somecreator", true},
		{"handle videos tab", "https://youtube.com/@somecreator/videos", true},
		{"channel id", "https://www.youtube.com/channel/UCabc123", true},
		{"legacy user", "https://www.youtube.com/user/somebody", true},
		{"single video", "https://www.youtube.com/watch?v=abc123", false},
		{"short", "https://www.youtube.com/shorts/abc123", false},
		{"other site", "https://example.com/@somecreator", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChannelURL(tt.url); got != tt.want {
				t.Errorf("IsChannelURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseChannelJSON(t *testing.T) {
	data := []byte(`{
		"id": "UCabc123",
		"channel": "Some Creator",
		"webpage_url": "https://www.youtube.com/@somecreator",
		"entries": [
			{"id": "vid1", "url": "https://www.youtube.com/watch?v=vid1", "title": "First"},
			{"id": "vid2", "title": "Second"},
			{"id": "", "title": "broken entry"}
		]
	}`)

	info, err := ParseChannelJSON(data)
	if err != nil {
		t.Fatalf("ParseChannelJSON() error = %v", err)
	}
	if info.ID != "UCabc123" {
		t.Errorf("ID = %q, want UCabc123", info.ID)
	}
	if info.Title != "Some Creator" {
		t.Errorf("Title = %q, want Some Creator", info.Title)
	}
	if len(info.Videos) != 2 {
		t.Fatalf("Videos = %d, want 2 (broken entry skipped)", len(info.Videos))
	}
	if info.Videos[1].URL != "https://www.youtube.com/watch?v=vid2" {
		t.Errorf("missing URL not reconstructed: %q", info.Videos[1].URL)
	}
}

func TestParseChannelJSONInvalid(t *testing.T) {
	if _, err := ParseChannelJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
