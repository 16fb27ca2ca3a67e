// render/images.go
package render

import (
	"context"
	"image"
	"sync"
)

// ImageLoader fetches and decodes the image at src.
type ImageLoader interface {
	LoadImage(ctx context.Context, src string) (image.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, src string) (image.Image, error)

func (f ImageLoaderFunc) LoadImage(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// ImageResult is the outcome of an image load.
type ImageResult struct {
	Source string
	Image  image.Image
	Err    error
}

// ImageTask is a load running off the UI goroutine. The result is delivered
// on Done exactly once, unless the task is cancelled first.
type ImageTask struct {
	Source string

	done   chan ImageResult
	cancel context.CancelFunc
	once   sync.Once
}

// StartImageTask begins loading src in the background.
func StartImageTask(ctx context.Context, l ImageLoader, src string) *ImageTask {
	ctx, cancel := context.WithCancel(ctx)
	t := &ImageTask{
		Source: src,
		done:   make(chan ImageResult, 1),
		cancel: cancel,
	}
	go func() {
		defer cancel()
		img, err := l.LoadImage(ctx, src)
		if ctx.Err() != nil {
			// Cancelled: the element is gone, drop the result.
			return
		}
		t.done <- ImageResult{Source: src, Image: img, Err: err}
	}()
	return t
}

// Done delivers the result. The channel is buffered, so an abandoned task
// never blocks its goroutine.
func (t *ImageTask) Done() <-chan ImageResult { return t.done }

// Cancel stops the load. No result is delivered after Cancel returns unless
// it was already sent.
func (t *ImageTask) Cancel() {
	t.once.Do(t.cancel)
}
