package processor

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"codeberg.org/snonux/indelible/internal/content"
	"codeberg.org/snonux/indelible/internal/creator"
	"codeberg.org/snonux/indelible/internal/retry"
	"codeberg.org/snonux/indelible/internal/stages"
)

// Pseudo stages for failures outside the generation stages
const (
	stageValidate = "validate"
	stageWrite    = "write"
)

// processWord runs the fixed stage sequence for one word. A nil record comes
// with the failure that dropped the word.
func (p *Processor) processWord(ctx context.Context, log *zap.Logger, index int, word string, library *creator.Library) (*content.WordRecord, *WordFailure) {
	log = log.With(zap.Int("index", index), zap.String("word", word))
	log.Info("Processing word")

	fail := func(stage string, err error) (*content.WordRecord, *WordFailure) {
		var stageErr *stages.Error
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
		}
		log.Error("Dropping word", zap.String("stage", stage), zap.Error(err))
		return nil, &WordFailure{Index: index, Word: word, Stage: stage, Reason: err.Error()}
	}

	if err := content.ValidateWord(word); err != nil {
		return fail(stageValidate, err)
	}

	def, err := retry.Do(ctx, p.opts.Retry, log, func(ctx context.Context) (stages.Definition, error) {
		return p.stages.Definition(ctx, word)
	})
	if err != nil {
		return fail(stages.StageDefinition, err)
	}

	audio, err := retry.Do(ctx, p.opts.Retry, log, func(ctx context.Context) (content.Media, error) {
		return p.stages.Pronunciation(ctx, word)
	})
	if err != nil {
		return fail(stages.StagePronunciation, err)
	}
	if err := p.layout.WriteMedia(audio); err != nil {
		return fail(stageWrite, err)
	}

	record := &content.WordRecord{
		Word:                   word,
		Definition:             def.Definition,
		Example:                def.Example,
		PronunciationAudioPath: audio.Path,
		Options:                []content.MnemonicOption{},
	}

	if opt, ok := library.Lookup(word); ok {
		log.Info("Using creator assets", zap.String("image", opt.ImagePath))
		record.Options = append(record.Options, opt)
	}

	mnemonic, err := retry.Do(ctx, p.opts.Retry, log, func(ctx context.Context) (stages.Mnemonic, error) {
		return p.stages.Mnemonic(ctx, word, def.Definition)
	})
	if err != nil {
		return fail(stages.StageMnemonic, err)
	}
	log.Debug("Generated mnemonic", zap.String("mnemonic", mnemonic.Text))

	prompt, err := retry.Do(ctx, p.opts.Retry, log, func(ctx context.Context) (string, error) {
		return p.stages.VisualPrompt(ctx, mnemonic.Text)
	})
	if err != nil {
		return fail(stages.StageVisualPrompt, err)
	}
	log.Debug("Generated visual prompt", zap.String("prompt", prompt))

	image, err := retry.Do(ctx, p.opts.Retry, log, func(ctx context.Context) (content.Media, error) {
		return p.stages.Image(ctx, prompt, word)
	})
	if err != nil {
		return fail(stages.StageImage, err)
	}
	if err := p.layout.WriteMedia(image); err != nil {
		return fail(stageWrite, err)
	}

	record.Options = append(record.Options, content.MnemonicOption{
		Type:         content.OptionAI,
		MnemonicText: mnemonic.Text,
		ImagePath:    image.Path,
	})

	log.Info("Word complete", zap.Int("options", len(record.Options)))
	return record, nil
}
