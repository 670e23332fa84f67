package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

var (
	// ErrNotFound is returned when no listing exists for an ID.
	ErrNotFound = errors.New("listing not found")
	// ErrConflict is returned when a compare-and-swap update loses a race
	// more times than the store is willing to retry.
	ErrConflict = errors.New("listing was modified concurrently")
)

// casRetries bounds read-modify-write loops against the KV bucket.
const casRetries = 5

// Event is an entry in the listr_events stream. Inquiries and lifecycle
// transitions are appended here and reduced on read.
type Event struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Listing   string          `json:"listing"`
	Type      string          `json:"type"`   // inquiry, lifecycle
	Action    string          `json:"action"` // add, created, submitted, deleted, image_added, image_removed
	Meta      json.RawMessage `json:"meta,omitempty"`
	Data      string          `json:"data,omitempty"`
}

// Store persists listings in the JetStream KV bucket and appends events to
// the listr_events stream.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
	kv     jetstream.KeyValue

	now func() time.Time
}

// NewStore creates a Store over provisioned JetStream assets.
func NewStore(js jetstream.JetStream, stream jetstream.Stream, kv jetstream.KeyValue) *Store {
	return &Store{
		js:     js,
		stream: stream,
		kv:     kv,
		now:    time.Now,
	}
}

// NewStoreFromEmbedded is a convenience for callers holding an *nats.Embedded.
func NewStoreFromEmbedded(e *nats.Embedded) *Store {
	return NewStore(e.JS, e.Stream, e.KV)
}

// Get loads a listing by ID.
func (s *Store) Get(ctx context.Context, id string) (*Listing, error) {
	l, _, err := s.get(ctx, id)
	return l, err
}

func (s *Store) get(ctx context.Context, id string) (*Listing, uint64, error) {
	if id == "" {
		return nil, 0, ErrNotFound
	}
	entry, err := s.kv.Get(ctx, id)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to get listing %s: %w", id, err)
	}
	var l Listing
	if err := json.Unmarshal(entry.Value(), &l); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listing %s: %w", id, err)
	}
	return &l, entry.Revision(), nil
}

// Save creates the listing when it has no ID and updates it otherwise.
// Images are owned by AttachImage/DetachImage: an update keeps the stored
// image list, taking only the caller's primary choice when it names a
// stored image.
func (s *Store) Save(ctx context.Context, l *Listing) (*Listing, error) {
	if l == nil {
		return nil, errors.New("listing is required")
	}
	if l.ID == "" {
		created := *l
		created.Images = nil
		return s.create(ctx, &created)
	}
	return s.modify(ctx, l.ID, func(stored *Listing) error {
		images := stored.Images
		created := stored.CreatedAt
		owner := stored.OwnerID
		if primary, ok := l.PrimaryImage(); ok && primary.IsPrimary && hasImage(images, primary.ID) {
			for i := range images {
				images[i].IsPrimary = images[i].ID == primary.ID
			}
		}
		*stored = *l
		stored.Images = images
		stored.CreatedAt = created
		if owner != "" {
			stored.OwnerID = owner
		}
		if stored.Status == "" {
			stored.Status = StatusDraft
		}
		stored.Slug = slugFor(stored)
		return nil
	})
}

func (s *Store) create(ctx context.Context, l *Listing) (*Listing, error) {
	created := *l
	created.ID = uuid.NewString()
	now := s.now()
	created.CreatedAt = now
	created.UpdatedAt = now
	if created.Status == "" {
		created.Status = StatusDraft
	}
	created.Slug = slugFor(&created)

	data, err := json.Marshal(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to encode listing: %w", err)
	}
	if _, err := s.kv.Create(ctx, created.ID, data); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	logger.Debug("Created listing %s (%s)", created.ID, created.Slug)

	s.publishLifecycle(ctx, created.ID, "created", created.Status)
	return &created, nil
}

// modify runs a compare-and-swap read-modify-write against the KV bucket.
func (s *Store) modify(ctx context.Context, id string, fn func(*Listing) error) (*Listing, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		l, rev, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}
		previous := l.Status
		if err := fn(l); err != nil {
			return nil, err
		}
		l.ID = id
		l.UpdatedAt = s.now()

		data, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("failed to encode listing: %w", err)
		}
		if _, err := s.kv.Update(ctx, id, data, rev); err != nil {
			if isWrongSequence(err) {
				logger.Debug("CAS conflict on listing %s (attempt %d)", id, attempt+1)
				continue
			}
			return nil, fmt.Errorf("failed to update listing %s: %w", id, err)
		}
		if l.Status != previous {
			s.publishLifecycle(ctx, id, string(l.Status), l.Status)
		}
		return l, nil
	}
	return nil, ErrConflict
}

func isWrongSequence(err error) bool {
	var apiErr *jetstream.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence {
		return true
	}
	return errors.Is(err, jetstream.ErrKeyExists)
}

// Delete removes a listing. Deleting an unknown ID returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	s.publishLifecycle(ctx, id, "deleted", "")
	return nil
}

// List returns every stored listing, newest first.
func (s *Store) List(ctx context.Context) ([]*Listing, error) {
	lister, err := s.kv.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer func() { _ = lister.Stop() }()

	var out []*Listing
	for key := range lister.Keys() {
		l, err := s.Get(ctx, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// AttachImage appends an image record. A primary image clears the flag on
// every other image; the first image of a listing is always primary.
func (s *Store) AttachImage(ctx context.Context, id string, img Image) (*Listing, error) {
	l, err := s.modify(ctx, id, func(l *Listing) error {
		if img.IsPrimary || len(l.Images) == 0 {
			for i := range l.Images {
				l.Images[i].IsPrimary = false
			}
			img.IsPrimary = true
		}
		l.Images = append(l.Images, img)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, Event{Listing: id, Type: nats.EventTypeLifecycle, Action: "image_added", Data: img.ID})
	return l, nil
}

// DetachImage removes an image record and returns it. When the primary is
// removed the first remaining image is promoted.
func (s *Store) DetachImage(ctx context.Context, id, imageID string) (*Listing, Image, error) {
	var removed Image
	l, err := s.modify(ctx, id, func(l *Listing) error {
		idx := -1
		for i, img := range l.Images {
			if img.ID == imageID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("image %s not found on listing %s", imageID, id)
		}
		removed = l.Images[idx]
		l.Images = append(l.Images[:idx], l.Images[idx+1:]...)
		if removed.IsPrimary && len(l.Images) > 0 {
			l.Images[0].IsPrimary = true
		}
		return nil
	})
	if err != nil {
		return nil, Image{}, err
	}
	s.publish(ctx, Event{Listing: id, Type: nats.EventTypeLifecycle, Action: "image_removed", Data: imageID})
	return l, removed, nil
}

// Revision is one historical version of a listing.
type Revision struct {
	Revision uint64
	Created  time.Time
	Deleted  bool
	Listing  *Listing
}

// History returns the stored revisions of a listing, oldest first.
func (s *Store) History(ctx context.Context, id string) ([]Revision, error) {
	entries, err := s.kv.History(ctx, id)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load history for %s: %w", id, err)
	}
	revs := make([]Revision, 0, len(entries))
	for _, e := range entries {
		rev := Revision{Revision: e.Revision(), Created: e.Created()}
		if e.Operation() != jetstream.KeyValuePut {
			rev.Deleted = true
			revs = append(revs, rev)
			continue
		}
		var l Listing
		if err := json.Unmarshal(e.Value(), &l); err != nil {
			logger.Warn("Skipping undecodable revision %d of %s: %v", e.Revision(), id, err)
			continue
		}
		rev.Listing = &l
		revs = append(revs, rev)
	}
	return revs, nil
}

// PublishEvent appends an event to the listr_events stream.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Listing, event.Type)
	logger.Debug("Publishing event: listing=%s type=%s action=%s", event.Listing, event.Type, event.Action)

	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}
	return ack, nil
}

// publish is PublishEvent for events whose failure must not fail the caller.
func (s *Store) publish(ctx context.Context, event Event) {
	if _, err := s.PublishEvent(ctx, event); err != nil {
		logger.Warn("Dropping %s/%s event for %s: %v", event.Type, event.Action, event.Listing, err)
	}
}

func (s *Store) publishLifecycle(ctx context.Context, id, action string, status Status) {
	s.publish(ctx, Event{
		Listing: id,
		Type:    nats.EventTypeLifecycle,
		Action:  action,
		Data:    string(status),
	})
}

// Events reads every event recorded for a listing, in stream order.
func (s *Store) Events(ctx context.Context, id string) ([]Event, error) {
	consumer, err := s.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{nats.SubjectForListing(id)},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	const batchSize = 500
	var events []Event
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}
		count := 0
		for msg := range msgs.Messages() {
			count++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				logger.Warn("Skipping malformed event on %s: %v", msg.Subject(), err)
				continue
			}
			events = append(events, event)
		}
		if count < batchSize {
			break
		}
	}
	return events, nil
}

func slugFor(l *Listing) string {
	base := slug.Make(l.BusinessName)
	if base == "" {
		base = "listing"
	}
	return base + "-" + strings.SplitN(l.ID, "-", 2)[0]
}

func hasImage(images []Image, id string) bool {
	for _, img := range images {
		if img.ID == id {
			return true
		}
	}
	return false
}
