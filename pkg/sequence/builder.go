package sequence

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/rs/zerolog"

	"github.com/michaelmcallister/gifing/pkg/stitchers"
)

// DefaultOutput is written when Make is given an empty path.
const DefaultOutput = "./output.gif"

// ErrNotBuilt is returned when frames are requested before a successful build.
var ErrNotBuilt = errors.New("frames have not been built")

// StitcherFactory returns the stitcher for an output format.
type StitcherFactory func(stitchers.Format) (stitchers.ImageStitcher, error)

// Builder keeps a Config together with the result of its latest build.
type Builder struct {
	cfg         Config
	logger      zerolog.Logger
	newStitcher StitcherFactory

	mu     sync.Mutex
	result *Result
}

// BuilderOption configures optional behavior of a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for warnings and progress.
// If not provided, nothing is logged.
func WithLogger(l zerolog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = l
	}
}

// WithStitchers replaces stitchers.ForFormat.
func WithStitchers(f StitcherFactory) BuilderOption {
	return func(b *Builder) {
		if f != nil {
			b.newStitcher = f
		}
	}
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg Config, opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:         cfg,
		logger:      zerolog.Nop(),
		newStitcher: stitchers.ForFormat,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config { return b.cfg }

// Build recomputes every frame from the sources and replaces the stored
// result. A failed build clears the stored result.
func (b *Builder) Build() (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.result = nil
	res, err := Build(b.cfg)
	if err != nil {
		return nil, err
	}
	b.result = res
	b.logger.Debug().
		Int("sources", len(b.cfg.sources)).
		Int("frames", len(res.Frames)).
		Stringer("canvas", b.cfg.Canvas()).
		Msg("frames built")
	return res, nil
}

// Result returns the latest successful build. The frames are shared with
// the Builder and with each other (repeated frames are the same buffer), so
// callers must not modify them.
func (b *Builder) Result() (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.result == nil {
		return nil, ErrNotBuilt
	}
	return b.result, nil
}

// Frames returns the frames of the latest successful build. The slice is a
// copy but the frames are not: callers must not modify their pixels.
func (b *Builder) Frames() ([]*image.NRGBA, error) {
	res, err := b.Result()
	if err != nil {
		return nil, err
	}
	return append([]*image.NRGBA(nil), res.Frames...), nil
}

// Make builds the frames and writes them to output, returning the path that
// was written. An output without a supported extension gets ".gif" appended
// and a warning is logged.
func (b *Builder) Make(output string) (string, error) {
	if output == "" {
		output = DefaultOutput
	}
	path, format, appended := stitchers.ResolveOutput(output)
	if appended {
		b.logger.Warn().
			Str("output", output).
			Str("path", path).
			Msgf("output path has no supported extension, appending %s", format)
	}
	s, err := b.newStitcher(format)
	if err != nil {
		return "", err
	}

	res, err := b.Build()
	if err != nil {
		return "", err
	}
	if err := s.Stitch(res.Animation(), path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	b.logger.Info().
		Str("path", path).
		Int("frames", len(res.Frames)).
		Dur("frame_duration", b.cfg.duration).
		Msg("animation created")
	return path, nil
}
