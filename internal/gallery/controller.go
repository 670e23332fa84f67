// Package gallery implements the image carousel state machine: current index,
// zoom, per-image load state, swipe detection and slide direction.
package gallery

import (
	"github.com/mark3labs/listr/internal/listing"
)

// SwipeThreshold is the minimum horizontal travel that counts as a swipe.
const SwipeThreshold = 50

// Direction selects the slide animation vector.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Swipe is the outcome of a finished touch gesture.
type Swipe int

const (
	SwipeNone Swipe = iota
	SwipeNext
	SwipePrevious
)

// Controller holds the view state of one gallery. It never fails: out of
// range indices are clamped and an empty image list makes navigation a no-op.
type Controller struct {
	images []listing.Image

	open      bool
	index     int
	zoomed    bool
	direction Direction

	// Dense per-image flags, parallel to images.
	loading []bool
	failed  []bool

	touchStartX, touchEndX float64
	hasStart, hasEnd       bool

	lock  *ScrollLock
	lease *Lease
}

// New creates a closed gallery over images. lock may be nil when nothing
// scrolls behind the gallery.
func New(images []listing.Image, lock *ScrollLock) *Controller {
	c := &Controller{
		images:    images,
		direction: Forward,
		lock:      lock,
	}
	c.resetFlags()
	return c
}

func (c *Controller) resetFlags() {
	c.loading = make([]bool, len(c.images))
	c.failed = make([]bool, len(c.images))
	for i := range c.loading {
		c.loading[i] = true
	}
}

// Images returns the gallery's images.
func (c *Controller) Images() []listing.Image { return c.images }

// Len returns the number of images.
func (c *Controller) Len() int { return len(c.images) }

// Empty reports whether there is nothing to show.
func (c *Controller) Empty() bool { return len(c.images) == 0 }

// CanNavigate reports whether arrows and dot indicators apply.
func (c *Controller) CanNavigate() bool { return len(c.images) > 1 }

// IsOpen reports whether the gallery is visible.
func (c *Controller) IsOpen() bool { return c.open }

// Listening reports whether keyboard navigation is bound.
func (c *Controller) Listening() bool { return c.open }

// Index returns the current image index.
func (c *Controller) Index() int { return c.index }

// Zoomed reports the zoom toggle.
func (c *Controller) Zoomed() bool { return c.zoomed }

// SlideDirection returns the direction of the last index change.
func (c *Controller) SlideDirection() Direction { return c.direction }

// Current returns the current image.
func (c *Controller) Current() (listing.Image, bool) {
	if c.Empty() {
		return listing.Image{}, false
	}
	return c.images[c.index], true
}

// Loading reports whether image i is still loading.
func (c *Controller) Loading(i int) bool {
	return i >= 0 && i < len(c.loading) && c.loading[i]
}

// Failed reports whether image i failed to load.
func (c *Controller) Failed(i int) bool {
	return i >= 0 && i < len(c.failed) && c.failed[i]
}

// Open shows the gallery at the given index and takes the scroll lock.
// Opening an already open gallery only moves to the index.
func (c *Controller) Open(at int) {
	if c.open {
		c.SelectIndex(at)
		return
	}
	c.open = true
	c.index = c.clamp(at)
	c.zoomed = false
	c.direction = Forward
	c.clearTouch()
	c.resetFlags()
	if c.lock != nil {
		c.lease = c.lock.Acquire()
	}
}

// Close hides the gallery and releases the scroll lock.
func (c *Controller) Close() {
	c.open = false
	c.zoomed = false
	c.clearTouch()
	c.release()
}

// Teardown releases held resources when the gallery goes away without a
// regular Close. It is safe to call any number of times.
func (c *Controller) Teardown() {
	c.open = false
	c.release()
}

func (c *Controller) release() {
	c.lease.Release()
	c.lease = nil
}

// Next moves forward, wrapping to the first image.
func (c *Controller) Next() {
	if c.Empty() {
		return
	}
	c.index = (c.index + 1) % len(c.images)
	c.zoomed = false
	c.direction = Forward
}

// Previous moves back, wrapping to the last image.
func (c *Controller) Previous() {
	if c.Empty() {
		return
	}
	n := len(c.images)
	c.index = (c.index - 1 + n) % n
	c.zoomed = false
	c.direction = Backward
}

// SelectIndex jumps to i (clamped). The slide direction follows the index
// comparison; reselecting the current image keeps the previous direction.
func (c *Controller) SelectIndex(i int) {
	if c.Empty() {
		return
	}
	i = c.clamp(i)
	switch {
	case i > c.index:
		c.direction = Forward
	case i < c.index:
		c.direction = Backward
	}
	c.index = i
	c.zoomed = false
}

// ToggleZoom flips the zoom state.
func (c *Controller) ToggleZoom() {
	if c.Empty() {
		return
	}
	c.zoomed = !c.zoomed
}

// ImageLoaded marks image i as loaded.
func (c *Controller) ImageLoaded(i int) {
	if i < 0 || i >= len(c.loading) {
		return
	}
	c.loading[i] = false
}

// ImageFailed marks image i as failed. Failure also clears loading so the
// error state replaces the spinner.
func (c *Controller) ImageFailed(i int) {
	if i < 0 || i >= len(c.loading) {
		return
	}
	c.loading[i] = false
	c.failed[i] = true
}

// TouchStart begins a new gesture at x, discarding any previous one.
func (c *Controller) TouchStart(x float64) {
	c.touchStartX = x
	c.hasStart = true
	c.touchEndX = 0
	c.hasEnd = false
}

// TouchMove records the latest x of the current gesture.
func (c *Controller) TouchMove(x float64) {
	if !c.hasStart {
		return
	}
	c.touchEndX = x
	c.hasEnd = true
}

// TouchEnd finishes the gesture and navigates when it travelled past
// SwipeThreshold. A gesture without movement is a tap. Galleries with fewer
// than two images never report a swipe.
func (c *Controller) TouchEnd() Swipe {
	defer c.clearTouch()
	if !c.hasStart || !c.hasEnd || !c.CanNavigate() {
		return SwipeNone
	}
	distance := c.touchStartX - c.touchEndX
	switch {
	case distance > SwipeThreshold:
		c.Next()
		return SwipeNext
	case distance < -SwipeThreshold:
		c.Previous()
		return SwipePrevious
	}
	return SwipeNone
}

func (c *Controller) clearTouch() {
	c.touchStartX, c.touchEndX = 0, 0
	c.hasStart, c.hasEnd = false, false
}

// HandleKey applies a key while the gallery is open and reports whether it
// was consumed. Keys use bubbletea's names: "right", "left", "esc".
func (c *Controller) HandleKey(key string) bool {
	if !c.open {
		return false
	}
	switch key {
	case "right":
		c.Next()
	case "left":
		c.Previous()
	case "esc":
		c.Close()
	default:
		return false
	}
	return true
}

func (c *Controller) clamp(i int) int {
	if len(c.images) == 0 || i < 0 {
		return 0
	}
	if i >= len(c.images) {
		return len(c.images) - 1
	}
	return i
}
