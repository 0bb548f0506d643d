package dataset

import "context"

// Stage transforms loaded frames, e.g. cleaning or joining tables after
// ReadData. Stages receive what the previous stage returned.
type Stage func(ctx context.Context, frames Frames) (Frames, error)

// Preprocess runs stages in order over frames and stops at the first error.
func Preprocess(ctx context.Context, frames Frames, stages ...Stage) (Frames, error) {
	var err error
	for _, stage := range stages {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		frames, err = stage(ctx, frames)
		if err != nil {
			return nil, err
		}
	}
	return frames, nil
}

// Isolate is a Stage returning deep copies, so later stages may modify
// frames without touching the cache.
func Isolate(_ context.Context, frames Frames) (Frames, error) {
	return frames.Clone(), nil
}
