package channel

import (
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/downloader"
)

// TranslationStatus tracks one language's translation stage for one video.
type TranslationStatus struct {
	Completed bool   `json:"completed"`
	File      string `json:"file,omitempty"`
	Error     string `json:"error,omitempty"`
}

// VideoStatus tracks per-stage progress for one video. Stage flags are only
// set after the stage's output file exists on disk, so a crash between
// stages loses at most the stage in flight.
type VideoStatus struct {
	Downloaded     bool                          `json:"downloaded"`
	AudioPath      string                        `json:"audio_path,omitempty"`
	Transcribed    bool                          `json:"transcribed"`
	TranscriptFile string                        `json:"transcript_file,omitempty"`
	// EntitiesFile stays empty when detection completed but found nothing.
	EntitiesDone bool   `json:"entities_done"`
	EntitiesFile string `json:"entities_file,omitempty"`
	Translations   map[string]*TranslationStatus `json:"translations,omitempty"`
	LastError      string                        `json:"last_error,omitempty"`
}

// State is the persisted progress record for one channel. It lives as
// state.json inside the channel's directory.
type State struct {
	ChannelID string                  `json:"channel_id"`
	Title     string                  `json:"title,omitempty"`
	URL       string                  `json:"url"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	Videos    []downloader.Video      `json:"videos"`
	Status    map[string]*VideoStatus `json:"status"`
	LastIndex int                     `json:"last_index"`
}

// StatusFor returns the status record for a video, creating it if absent.
func (s *State) StatusFor(videoID string) *VideoStatus {
	if s.Status == nil {
		s.Status = make(map[string]*VideoStatus)
	}
	vs, ok := s.Status[videoID]
	if !ok {
		vs = &VideoStatus{}
		s.Status[videoID] = vs
	}
	return vs
}

// MergeListing appends videos from a fresh channel listing that the state
// does not know yet, preserving the order of everything already recorded.
// Returns how many new videos were added.
func (s *State) MergeListing(videos []downloader.Video) int {
	known := make(map[string]bool, len(s.Videos))
	for _, v := range s.Videos {
		known[v.ID] = true
	}
	added := 0
	for _, v := range videos {
		if v.ID == "" || known[v.ID] {
			continue
		}
		s.Videos = append(s.Videos, v)
		known[v.ID] = true
		added++
	}
	return added
}
