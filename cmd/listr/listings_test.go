package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/listr/internal/auth"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/stretchr/testify/require"
)

func sampleListings() []*listing.Listing {
	return []*listing.Listing{
		{ID: "listing-1", OwnerID: "user-1", BusinessName: "Corner Grocer", Category: listing.CategoryStore, Subcategory: "Grocery", Status: listing.StatusApproved, Images: []listing.Image{{ID: "img-1"}, {ID: "img-2"}}},
		{ID: "listing-2", OwnerID: "user-2", BusinessName: "Ace Plumbing", Category: listing.CategoryServices, Subcategory: "Plumbing", Status: listing.StatusPending},
		{ID: "listing-3", OwnerID: "user-1", BusinessName: "Maple House", Category: listing.CategoryProperty, Subcategory: "House", Status: listing.StatusDraft},
	}
}

func ids(ls []*listing.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterListings(t *testing.T) {
	all := sampleListings()
	owner := auth.User{ID: "user-1"}

	tests := []struct {
		name     string
		user     auth.User
		mine     bool
		status   listing.Status
		category listing.Category
		want     []string
	}{
		{"no filters", owner, false, "", listing.CategoryNone, []string{"listing-1", "listing-2", "listing-3"}},
		{"mine", owner, true, "", listing.CategoryNone, []string{"listing-1", "listing-3"}},
		{"mine as anonymous", auth.User{}, true, "", listing.CategoryNone, []string{}},
		{"status", owner, false, listing.StatusPending, listing.CategoryNone, []string{"listing-2"}},
		{"category", owner, false, "", listing.CategoryProperty, []string{"listing-3"}},
		{"combined", owner, true, listing.StatusApproved, listing.CategoryStore, []string{"listing-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterListings(all, tt.user, tt.mine, tt.status, tt.category)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestListingTable(t *testing.T) {
	out := ansi.Strip(listingTable(sampleListings()[:2]))
	lines := strings.Split(out, "\n")

	require.Contains(t, out, "STATUS")
	require.Contains(t, out, "Corner Grocer")
	require.Contains(t, out, "Store › Grocery")
	require.Contains(t, out, "Ace Plumbing")
	require.Contains(t, out, "pending")

	grocer := strings.Index(out, "Corner Grocer")
	plumbing := strings.Index(out, "Ace Plumbing")
	require.Less(t, grocer, plumbing, "rows keep the listing order")

	width := ansi.StringWidth(lines[0])
	for _, line := range lines {
		require.Equal(t, width, ansi.StringWidth(line), "columns are aligned")
	}
}
