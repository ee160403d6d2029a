package processor

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"codeberg.org/snonux/indelible/internal/batch"
	"codeberg.org/snonux/indelible/internal/content"
	"codeberg.org/snonux/indelible/internal/retry"
	"codeberg.org/snonux/indelible/internal/stages"
)

// processStories writes one story and narration per batch of records. The
// batches alias records, so story fields set on a batch land in records.
func (p *Processor) processStories(ctx context.Context, log *zap.Logger, records []content.WordRecord) ([]content.StoryBatch, []BatchFailure) {
	var (
		done   []content.StoryBatch
		failed []BatchFailure
	)

	for i, group := range batch.Partition(records, p.opts.BatchSize) {
		index := i + 1
		words := make([]string, len(group))
		for j := range group {
			words[j] = group[j].Word
		}
		blog := log.With(zap.Int("batch", index), zap.Strings("words", words))

		story, err := p.processStory(ctx, blog, index, words)
		if err != nil {
			stage := stageWrite
			var stageErr *stages.Error
			if errors.As(err, &stageErr) {
				stage = stageErr.Stage
			}
			blog.Error("Story batch failed", zap.String("stage", stage), zap.Error(err))
			failed = append(failed, BatchFailure{BatchIndex: index, Words: words, Stage: stage, Reason: err.Error()})
			continue
		}

		for j := range group {
			group[j].StoryText = story.StoryText
			group[j].StoryAudioPath = story.AudioPath
		}
		blog.Info("Story batch complete", zap.String("audio", story.AudioPath))
		done = append(done, story)
	}

	return done, failed
}

func (p *Processor) processStory(ctx context.Context, log *zap.Logger, index int, words []string) (content.StoryBatch, error) {
	text, err := retry.Do(ctx, p.opts.Retry, log, func(ctx context.Context) (string, error) {
		return p.stages.Story(ctx, words)
	})
	if err != nil {
		return content.StoryBatch{}, err
	}
	log.Debug("Generated story", zap.Int("length", len(text)))

	audio, err := retry.Do(ctx, p.opts.Retry, log, func(ctx context.Context) (content.Media, error) {
		return p.stages.Narration(ctx, text, index)
	})
	if err != nil {
		return content.StoryBatch{}, err
	}
	if err := p.layout.WriteMedia(audio); err != nil {
		return content.StoryBatch{}, err
	}

	return content.StoryBatch{
		BatchIndex: index,
		Words:      words,
		StoryText:  text,
		AudioPath:  audio.Path,
	}, nil
}
