package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName = "listr_events"

	// ListingsBucket holds one JSON record per listing, keyed by listing ID.
	ListingsBucket = "listings"
	// ImagesBucket holds uploaded image bytes, named <listing>/<image>.<ext>.
	ImagesBucket = "listing-images"

	// listingHistory is how many revisions of a listing the KV bucket keeps.
	listingHistory = 16

	// Event types
	EventTypeLifecycle = "lifecycle"
	EventTypeInquiry   = "inquiry"
)

// SubjectForListing returns the wildcard subject pattern for all events of a listing.
// Example: "listr.abc123.>"
func SubjectForListing(listingID string) string {
	return fmt.Sprintf("listr.%s.>", listingID)
}

// SubjectForEvent returns the specific subject for an event type of a listing.
// Example: "listr.abc123.inquiry"
func SubjectForEvent(listingID, eventType string) string {
	return fmt.Sprintf("listr.%s.%s", listingID, eventType)
}

// SetupStream creates or updates the JetStream stream for listing events.
// Subject pattern: listr.> matches all listings and event types.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"listr.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   365 * 24 * time.Hour,
	})
}

// SetupListingsBucket creates or updates the KV bucket for listing records.
// History is kept so earlier revisions can be diffed.
func SetupListingsBucket(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      ListingsBucket,
		Description: "listing records",
		History:     listingHistory,
		Storage:     jetstream.FileStorage,
	})
}

// SetupImageStore creates or updates the object store for listing images.
func SetupImageStore(ctx context.Context, js jetstream.JetStream) (jetstream.ObjectStore, error) {
	return js.CreateOrUpdateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      ImagesBucket,
		Description: "listing images",
		Storage:     jetstream.FileStorage,
	})
}
