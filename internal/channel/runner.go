package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/downloader"
)

// Process lists the channel, merges new videos into the persisted state,
// heals stale stage flags, then processes each video in order. A video
// finishes every configured language before the runner advances to the
// next one. Per-video failures are recorded and skipped; cancellation
// stops immediately, leaving the last saved state intact.
func (r *implRunner) Process(ctx context.Context, url string) error {
	info, err := r.dl.ListChannel(ctx, url)
	if err != nil {
		return fmt.Errorf("list channel: %w", err)
	}

	key := SafeKey(info.ID)
	st, err := r.store.Load(ctx, key)
	if err != nil {
		return err
	}
	if st == nil {
		st = &State{
			ChannelID: info.ID,
			Title:     info.Title,
			URL:       url,
			CreatedAt: time.Now(),
			Status:    make(map[string]*VideoStatus),
		}
	}

	added := st.MergeListing(info.Videos)
	healed := r.store.Heal(ctx, st)
	if err := r.store.Save(ctx, key, st); err != nil {
		return err
	}

	r.logger.Info(ctx, "========================================")
	r.logger.Info(ctx, "Channel: %s (%d videos, %d new, %d stages reset)", info.Title, len(st.Videos), added, healed)
	r.logger.Info(ctx, "========================================")

	save := func() error { return r.store.Save(ctx, key, st) }
	dir := r.store.Dir(key)

	var failed int
	for i, video := range st.Videos {
		if err := ctx.Err(); err != nil {
			return err
		}

		vs := st.StatusFor(video.ID)
		if r.complete(vs) {
			continue
		}

		r.logger.Info(ctx, "[%d/%d] %s", i+1, len(st.Videos), video.Title)
		if err := r.processVideo(ctx, dir, video, vs, save); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Error(ctx, "Video %s failed: %v", video.ID, err)
			vs.LastError = err.Error()
			if serr := save(); serr != nil {
				return serr
			}
			failed++
			continue
		}

		st.LastIndex = i
		vs.LastError = ""
		if err := save(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("channel %s: %d videos failed, rerun to retry", info.Title, failed)
	}
	r.logger.Info(ctx, "Channel complete: %s", info.Title)
	return nil
}

// processVideo runs the remaining stages for one video. Each completed
// stage is saved before the next begins.
func (r *implRunner) processVideo(ctx context.Context, dir string, video downloader.Video, vs *VideoStatus, save func() error) error {
	if !vs.Downloaded {
		audio, err := r.dl.Download(ctx, video.URL)
		if err != nil {
			return fmt.Errorf("download: %w", err)
		}
		vs.Downloaded = true
		vs.AudioPath = audio.Path
		if err := save(); err != nil {
			return err
		}
	}

	if !vs.Transcribed {
		transcript, err := r.pipe.Transcribe(ctx, vs.AudioPath, "")
		if err != nil {
			return fmt.Errorf("transcribe: %w", err)
		}

		path, err := r.writer.WriteTranscript(ctx, dir, video.ID, video.Title, transcript, nil)
		if err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}
		vs.Transcribed = true
		vs.TranscriptFile = path
		if err := save(); err != nil {
			return err
		}
	}

	// Transcript text is loaded once, when the first remaining stage
	// needs it.
	var transcriptText string
	loadText := func() error {
		if transcriptText != "" {
			return nil
		}
		t, err := r.writer.ReadTranscript(vs.TranscriptFile)
		if err != nil {
			return err
		}
		transcriptText = t.Text
		return nil
	}

	if !vs.EntitiesDone {
		if err := loadText(); err != nil {
			return err
		}
		if err := r.detectEntities(ctx, dir, video, vs, transcriptText); err != nil {
			return err
		}
		if err := save(); err != nil {
			return err
		}
	}

	for _, lang := range r.cfg.Languages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ts := vs.Translations[lang]; ts != nil && ts.Completed {
			continue
		}

		if err := loadText(); err != nil {
			return err
		}
		if err := r.translateOne(ctx, dir, video, vs, lang, transcriptText); err != nil {
			return err
		}
		if err := save(); err != nil {
			return err
		}
	}

	return nil
}

// detectEntities runs the entity stage. Detection stays best effort: a
// failure leaves the stage pending for the next run instead of failing
// the video.
func (r *implRunner) detectEntities(ctx context.Context, dir string, video downloader.Video, vs *VideoStatus, text string) error {
	entities, err := r.pipe.DetectEntities(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.logger.Warn(ctx, "Entity detection failed for %s, will retry next run: %v", video.ID, err)
		return nil
	}

	if len(entities) > 0 {
		path, err := r.writer.WriteEntities(ctx, dir, video.ID, entities)
		if err != nil {
			return fmt.Errorf("save entities: %w", err)
		}
		vs.EntitiesFile = path
	}
	vs.EntitiesDone = true
	return nil
}

func (r *implRunner) translateOne(ctx context.Context, dir string, video downloader.Video, vs *VideoStatus, lang, text string) error {
	if vs.Translations == nil {
		vs.Translations = make(map[string]*TranslationStatus)
	}

	translation, err := r.pipe.Translate(ctx, text, lang)
	if err != nil {
		vs.Translations[lang] = &TranslationStatus{Error: err.Error()}
		return fmt.Errorf("translate %s: %w", lang, err)
	}

	path, err := r.writer.WriteTranslation(ctx, dir, video.ID, video.Title, translation)
	if err != nil {
		return fmt.Errorf("save translation %s: %w", lang, err)
	}
	vs.Translations[lang] = &TranslationStatus{Completed: true, File: path}
	return nil
}

func (r *implRunner) complete(vs *VideoStatus) bool {
	if !vs.Downloaded || !vs.Transcribed || !vs.EntitiesDone {
		return false
	}
	for _, lang := range r.cfg.Languages {
		ts := vs.Translations[lang]
		if ts == nil || !ts.Completed {
			return false
		}
	}
	return true
}
