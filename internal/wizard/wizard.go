package wizard

import (
	"context"
	"errors"

	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/media"
)

var (
	// ErrSaveInFlight is returned when a save or submit is already running.
	ErrSaveInFlight = errors.New("a save is already in progress")
	// ErrIncomplete is returned when submitting without the required images.
	ErrIncomplete = errors.New("listing is incomplete")
)

// ListingService persists listing records.
type ListingService interface {
	GetListing(ctx context.Context, id string) (*listing.Listing, error)
	SaveListing(ctx context.Context, l *listing.Listing, publish bool) (string, error)
	DeleteListing(ctx context.Context, id string) error
}

// ImageService uploads and deletes listing images.
type ImageService interface {
	UploadImage(ctx context.Context, file, listingID string, isPrimary bool) (listing.Image, error)
	DeleteImage(ctx context.Context, listingID, imageID string) error
}

// Options configures a Wizard.
type Options struct {
	Listings ListingService
	Images   ImageService
	Previews *media.PreviewRegistry
	OwnerID  string
}

// Wizard is the listing editor state machine. All methods must be called
// from one goroutine; remote work is split out so it can run elsewhere
// (see BeginSave and PrepareSubmit).
type Wizard struct {
	form    FormState
	steps   []Step
	current int

	images    *ImageSet
	listingID string
	ownerID   string
	status    listing.Status
	saving    bool

	listings ListingService
	uploads  ImageService
}

// New creates a wizard for a new listing.
func New(opts Options) *Wizard {
	w := &Wizard{
		form:     NewForm(),
		images:   NewImageSet(nil, opts.Previews),
		ownerID:  opts.OwnerID,
		listings: opts.Listings,
		uploads:  opts.Images,
	}
	w.steps = DeriveSteps(w.form.Category)
	return w
}

// Edit creates a wizard initialized from an existing listing.
func Edit(l *listing.Listing, opts Options) *Wizard {
	w := New(opts)
	w.form = FormFromListing(l)
	w.images = NewImageSet(l.Images, opts.Previews)
	w.listingID = l.ID
	w.status = l.Status
	if l.OwnerID != "" {
		w.ownerID = l.OwnerID
	}
	w.steps = DeriveSteps(w.form.Category)
	return w
}

// Form returns a copy of the form state.
func (w *Wizard) Form() FormState { return w.form }

// Steps returns the current step list.
func (w *Wizard) Steps() []Step { return w.steps }

// Current returns the index of the current step.
func (w *Wizard) Current() int { return w.current }

// CurrentStep returns the tag of the current step.
func (w *Wizard) CurrentStep() Step { return w.steps[w.current] }

// IsLast reports whether the current step is the final one.
func (w *Wizard) IsLast() bool { return w.current == len(w.steps)-1 }

// Images returns the image set.
func (w *Wizard) Images() *ImageSet { return w.images }

// ListingID returns the persisted listing ID, empty until the first save.
func (w *Wizard) ListingID() string { return w.listingID }

// Status returns the last known status of the persisted listing.
func (w *Wizard) Status() listing.Status { return w.status }

// Saving reports whether a save or submit is in flight.
func (w *Wizard) Saving() bool { return w.saving }

// UpdateField merges one field into the form. A category change re-derives
// the steps and clamps the cursor, and clears a subcategory that does not
// belong to the new category. On error the form is unchanged.
func (w *Wizard) UpdateField(field Field, value any) error {
	previous := w.form.Category
	if err := w.form.apply(field, value); err != nil {
		return err
	}
	if field == FieldCategory && w.form.Category != previous {
		if !contains(listing.Subcategories(w.form.Category), w.form.Subcategory) {
			w.form.Subcategory = ""
		}
		w.rederive()
	}
	return nil
}

func (w *Wizard) rederive() {
	w.steps = DeriveSteps(w.form.Category)
	w.current = w.clamp(w.current)
}

// IsStepComplete evaluates the completion predicate of step i. Out of range
// indices are never complete.
func (w *Wizard) IsStepComplete(i int) bool {
	if i < 0 || i >= len(w.steps) {
		return false
	}
	if w.steps[i] == StepImages {
		return w.images.Len() > 0
	}
	return w.form.formStepComplete(w.steps[i])
}

// FieldErrors returns advisory messages for a step.
func (w *Wizard) FieldErrors(step Step) map[Field]string {
	if step == StepImages {
		if w.images.Len() == 0 {
			return map[Field]string{"images": "Add at least one image"}
		}
		return map[Field]string{}
	}
	return w.form.fieldErrors(step)
}

// NextStep advances when the current step is complete and nothing is
// saving. It reports whether the cursor moved.
func (w *Wizard) NextStep() bool {
	if w.saving || !w.IsStepComplete(w.current) || w.IsLast() {
		return false
	}
	w.current++
	return true
}

// PrevStep goes back one step. Going back is never gated.
func (w *Wizard) PrevStep() bool {
	if w.current == 0 {
		return false
	}
	w.current--
	return true
}

// GoToStep jumps to step i, clamped to the valid range.
func (w *Wizard) GoToStep(i int) {
	w.current = w.clamp(i)
}

// CanGoTo reports whether the progress indicator may jump to step i: any
// earlier step, or a later one when every step before it is complete.
func (w *Wizard) CanGoTo(i int) bool {
	if i < 0 || i >= len(w.steps) {
		return false
	}
	for j := 0; j < i; j++ {
		if !w.IsStepComplete(j) {
			return false
		}
	}
	return true
}

func (w *Wizard) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(w.steps) {
		return len(w.steps) - 1
	}
	return i
}

// Listing builds the record the wizard would persist.
func (w *Wizard) Listing() *listing.Listing {
	l := w.form.toListing(w.listingID, w.ownerID, append([]listing.Image(nil), w.images.Uploaded()...))
	l.Status = w.status
	return l
}

// Close releases preview URLs. Call it when the wizard goes away.
func (w *Wizard) Close() {
	w.images.Close()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// logSaveFailure is shared by the save and submit paths.
func logSaveFailure(err error) {
	logger.Warn("Listing save failed: %v", err)
}
