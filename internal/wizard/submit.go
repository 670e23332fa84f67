package wizard

import (
	"context"
	"fmt"

	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/logger"
)

// SaveRequest is a snapshot of what to persist. Run it off the UI goroutine
// and hand the result to FinishSave.
type SaveRequest struct {
	listing  *listing.Listing
	publish  bool
	listings ListingService
}

// SaveResult is the outcome of a SaveRequest.
type SaveResult struct {
	ListingID string
	Publish   bool
	Err       error
}

// BeginSave marks a save in flight and snapshots the form.
func (w *Wizard) BeginSave(publish bool) (*SaveRequest, error) {
	if w.saving {
		return nil, ErrSaveInFlight
	}
	w.saving = true
	return &SaveRequest{listing: w.Listing(), publish: publish, listings: w.listings}, nil
}

// Run performs the remote save.
func (r *SaveRequest) Run(ctx context.Context) SaveResult {
	id, err := r.listings.SaveListing(ctx, r.listing, r.publish)
	if err != nil {
		return SaveResult{Publish: r.publish, Err: fmt.Errorf("failed to save listing: %w", err)}
	}
	return SaveResult{ListingID: id, Publish: r.publish}
}

// FinishSave records the outcome. The listing ID is remembered so the next
// save updates instead of creating a duplicate.
func (w *Wizard) FinishSave(res SaveResult) error {
	w.saving = false
	if res.Err != nil {
		logSaveFailure(res.Err)
		return res.Err
	}
	w.listingID = res.ListingID
	if res.Publish {
		w.status = listing.StatusPending
	} else if w.status == "" {
		w.status = listing.StatusDraft
	}
	return nil
}

// Save creates or updates the listing synchronously and returns its ID.
func (w *Wizard) Save(ctx context.Context, publish bool) (string, error) {
	req, err := w.BeginSave(publish)
	if err != nil {
		return "", err
	}
	if err := w.FinishSave(req.Run(ctx)); err != nil {
		return "", err
	}
	return w.listingID, nil
}

// SubmitPlan is a snapshot of a final submission: the listing to publish
// and the pending files to upload, in selection order.
type SubmitPlan struct {
	listing  *listing.Listing
	pending  []PendingImage
	listings ListingService
	uploads  ImageService
}

// UploadOutcome is the result of uploading one pending file.
type UploadOutcome struct {
	PendingID string
	Path      string
	Image     listing.Image
	Err       error
}

// SubmitResult reports a submission. A save failure aborts before any
// upload; upload failures are counted and leave their files pending.
type SubmitResult struct {
	ListingID string
	SaveErr   error
	Uploads   []UploadOutcome
	Succeeded int
	Failed    int
}

// Err summarizes the result as an error, nil on full success.
func (r SubmitResult) Err() error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	if r.Failed > 0 {
		return fmt.Errorf("%d of %d images failed to upload", r.Failed, r.Failed+r.Succeeded)
	}
	return nil
}

// PrepareSubmit validates the image requirement, promotes a primary image
// and marks the submission in flight.
func (w *Wizard) PrepareSubmit() (*SubmitPlan, error) {
	if w.saving {
		return nil, ErrSaveInFlight
	}
	w.images.EnsurePrimary()
	if w.images.Len() == 0 {
		return nil, fmt.Errorf("%w: add at least one image", ErrIncomplete)
	}
	w.saving = true
	return &SubmitPlan{
		listing:  w.Listing(),
		pending:  append([]PendingImage(nil), w.images.Pending()...),
		listings: w.listings,
		uploads:  w.uploads,
	}, nil
}

// ExecuteSubmit publishes the listing, then uploads each pending file in
// order. It only talks to the services and never touches wizard state.
func ExecuteSubmit(ctx context.Context, plan *SubmitPlan) SubmitResult {
	id, err := plan.listings.SaveListing(ctx, plan.listing, true)
	if err != nil {
		return SubmitResult{SaveErr: fmt.Errorf("failed to save listing: %w", err)}
	}

	res := SubmitResult{ListingID: id}
	for _, p := range plan.pending {
		img, err := plan.uploads.UploadImage(ctx, p.Path, id, p.IsPrimary)
		out := UploadOutcome{PendingID: p.ID, Path: p.Path, Image: img}
		if err != nil {
			out.Err = fmt.Errorf("failed to upload %s: %w", p.Path, err)
			logger.Warn("%v", out.Err)
			res.Failed++
		} else {
			res.Succeeded++
		}
		res.Uploads = append(res.Uploads, out)
	}
	return res
}

// ApplySubmit merges a submission result into the wizard. Uploaded files
// leave the pending set and their previews are revoked; failed ones stay
// pending so the submission can be retried.
func (w *Wizard) ApplySubmit(res SubmitResult) {
	w.saving = false
	if res.SaveErr != nil {
		logSaveFailure(res.SaveErr)
		return
	}
	w.listingID = res.ListingID
	w.status = listing.StatusPending
	for _, out := range res.Uploads {
		if out.Err != nil {
			continue
		}
		w.images.markUploaded(out.PendingID, out.Image)
	}
	w.images.EnsurePrimary()
}

// Submit runs the whole submission synchronously.
func (w *Wizard) Submit(ctx context.Context) (SubmitResult, error) {
	plan, err := w.PrepareSubmit()
	if err != nil {
		return SubmitResult{}, err
	}
	res := ExecuteSubmit(ctx, plan)
	w.ApplySubmit(res)
	return res, res.Err()
}

// DeleteRequest removes one uploaded image remotely. Run it off the UI
// goroutine and hand the error to FinishDelete.
type DeleteRequest struct {
	ImageID   string
	listingID string
	uploads   ImageService
}

// BeginDelete checks that no save is in flight and that imageID is
// uploaded, then snapshots the request.
func (w *Wizard) BeginDelete(imageID string) (*DeleteRequest, error) {
	if w.saving {
		return nil, ErrSaveInFlight
	}
	if !w.images.IsUploaded(imageID) {
		return nil, fmt.Errorf("image %s is not uploaded", imageID)
	}
	return &DeleteRequest{ImageID: imageID, listingID: w.listingID, uploads: w.uploads}, nil
}

// Run performs the remote delete.
func (r *DeleteRequest) Run(ctx context.Context) error {
	if err := r.uploads.DeleteImage(ctx, r.listingID, r.ImageID); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// FinishDelete drops the image locally once the remote delete succeeded.
func (w *Wizard) FinishDelete(imageID string, err error) error {
	if err != nil {
		logger.Warn("Image delete failed: %v", err)
		return err
	}
	w.images.RemoveUploaded(imageID)
	return nil
}

// DeleteUploaded removes an uploaded image remotely, then locally.
func (w *Wizard) DeleteUploaded(ctx context.Context, imageID string) error {
	req, err := w.BeginDelete(imageID)
	if err != nil {
		return err
	}
	return w.FinishDelete(imageID, req.Run(ctx))
}
