package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/listr/internal/nats"
)

var inquiryEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Inquiry is a message sent to a listing owner through the contact form.
type Inquiry struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryParams are the contact form fields.
type InquiryParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// Validate returns a field -> message map; empty means valid.
func (p InquiryParams) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(p.Email) == "" {
		errs["email"] = "Email is required"
	} else if !inquiryEmailPattern.MatchString(strings.TrimSpace(p.Email)) {
		errs["email"] = "Enter a valid email address"
	}
	if len(strings.TrimSpace(p.Message)) < 10 {
		errs["message"] = "Message must be at least 10 characters"
	}
	return errs
}

// AddInquiry records an inquiry against an existing listing.
func (s *Store) AddInquiry(ctx context.Context, listingID string, params InquiryParams) (*Inquiry, error) {
	if errs := params.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid inquiry: %s", firstError(errs))
	}
	if _, err := s.Get(ctx, listingID); err != nil {
		return nil, err
	}

	meta, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inquiry: %w", err)
	}
	inq := &Inquiry{
		ID:        uuid.NewString(),
		ListingID: listingID,
		Name:      strings.TrimSpace(params.Name),
		Email:     strings.TrimSpace(params.Email),
		Phone:     strings.TrimSpace(params.Phone),
		Message:   strings.TrimSpace(params.Message),
		CreatedAt: s.now(),
	}
	_, err = s.PublishEvent(ctx, Event{
		ID:        inq.ID,
		Timestamp: inq.CreatedAt,
		Listing:   listingID,
		Type:      nats.EventTypeInquiry,
		Action:    "add",
		Meta:      meta,
		Data:      inq.Message,
	})
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// Inquiries returns the inquiries of a listing, oldest first.
func (s *Store) Inquiries(ctx context.Context, listingID string) ([]*Inquiry, error) {
	events, err := s.Events(ctx, listingID)
	if err != nil {
		return nil, err
	}
	var out []*Inquiry
	for _, e := range events {
		if e.Type != nats.EventTypeInquiry || e.Action != "add" {
			continue
		}
		var p InquiryParams
		_ = json.Unmarshal(e.Meta, &p)
		out = append(out, &Inquiry{
			ID:        e.ID,
			ListingID: e.Listing,
			Name:      p.Name,
			Email:     p.Email,
			Phone:     p.Phone,
			Message:   e.Data,
			CreatedAt: e.Timestamp,
		})
	}
	return out, nil
}

// firstError picks a deterministic message out of a validation map.
func firstError(errs map[string]string) string {
	for _, key := range []string{"name", "email", "message"} {
		if msg, ok := errs[key]; ok {
			return msg
		}
	}
	return "invalid input"
}
