package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mark3labs/listr/internal/auth"
	"github.com/mark3labs/listr/internal/gallery"
	"github.com/mark3labs/listr/internal/hooks"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/state"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	tuiwizard "github.com/mark3labs/listr/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var wizardFlags struct {
	dir string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a listing in the wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.requireUser(); err != nil {
				return err
			}
			return runWizard(cmd.Context(), a, nil)
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit one of your listings in the wizard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			l, err := a.ownedListing(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return runWizard(cmd.Context(), a, l)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, editCmd, showCmd} {
		c.Flags().StringVar(&wizardFlags.dir, "dir", "", "Directory the image picker starts in (default: current directory)")
	}
}

// ownedListing loads id and checks the current user may change it.
func (a *app) ownedListing(ctx context.Context, id string) (*listing.Listing, error) {
	l, err := a.listings.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	if !a.user.CanEdit(l.OwnerID) {
		return nil, fmt.Errorf("listing %s belongs to another user", id)
	}
	return l, nil
}

// runWizard runs the listing wizard, in edit mode when l is set, and fires
// the on_submit hooks after a successful submission.
func runWizard(ctx context.Context, a *app, l *listing.Listing) error {
	res, err := tuiwizard.Run(ctx, tuiwizard.Options{
		Listings: a.listings,
		Images:   a.media,
		Previews: a.previews,
		Loader:   a.loader,
		OwnerID:  a.user.ID,
		Listing:  l,
		StartDir: wizardFlags.dir,
	})
	if err != nil {
		if res != nil && res.ListingID != "" {
			fmt.Printf("Draft kept as %s (%s)\n", res.ListingID, res.Status)
		}
		return err
	}
	if !res.Submitted {
		if res.ListingID != "" {
			fmt.Printf("Draft kept as %s (%s)\n", res.ListingID, res.Status)
		}
		return nil
	}

	fmt.Printf("Listing %s submitted for review (%d image(s) uploaded)\n", res.ListingID, res.Uploaded)

	name := ""
	if saved, err := a.listings.GetListing(ctx, res.ListingID); err == nil {
		name = saved.BusinessName
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	output, err := hooks.RunOnSubmit(ctx, wd, hooks.Variables{
		Listing: res.ListingID,
		Status:  string(res.Status),
		Name:    name,
	})
	if err != nil {
		logger.Warn("on_submit hooks failed: %v", err)
		return nil
	}
	if output != "" {
		fmt.Print(output)
	}
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Open a listing's detail page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withApp(ctx, func(a *app) error {
			l, err := a.listings.GetListing(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load listing %s: %w", args[0], err)
			}

			ui := state.Load(a.cfg.DataDir)
			m := tui.NewDetailModel(tui.DetailOptions{
				Listing:   l,
				User:      a.user,
				Resolve:   a.media.Resolve,
				Loader:    a.loader,
				Inquiries: a.store,
				Listings:  a.listings,
				ShowInfo:  ui.Gallery.ShowInfo,
				OnInfoToggle: func(visible bool) {
					if err := state.SaveGalleryInfo(a.cfg.DataDir, visible); err != nil {
						logger.Warn("Failed to save UI state: %v", err)
					}
				},
			})

			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return fmt.Errorf("detail page failed: %w", err)
			}
			detail, ok := final.(*tui.DetailModel)
			if !ok {
				return fmt.Errorf("unexpected model type")
			}

			switch detail.Action() {
			case tui.DetailEdit:
				return runWizard(ctx, a, l)
			case tui.DetailDeleted:
				fmt.Printf("Deleted listing %s\n", l.ID)
			}
			return nil
		})
	},
}

var galleryFlags struct {
	at int
}

var galleryCmd = &cobra.Command{
	Use:   "gallery <id>",
	Short: "Browse a listing's images full screen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withApp(ctx, func(a *app) error {
			l, err := a.listings.GetListing(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load listing %s: %w", args[0], err)
			}

			ui := state.Load(a.cfg.DataDir)
			m := tui.NewGalleryModel(gallery.FromListing(l, a.media.Resolve), tui.GalleryOptions{
				Title:      l.BusinessName,
				Loader:     a.loader,
				Lock:       &gallery.ScrollLock{},
				ShowInfo:   ui.Gallery.ShowInfo,
				Standalone: true,
				StartAt:    max(0, galleryFlags.at-1),
			})
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("gallery failed: %w", err)
			}
			m.Teardown()

			if m.InfoVisible() != ui.Gallery.ShowInfo {
				if err := state.SaveGalleryInfo(a.cfg.DataDir, m.InfoVisible()); err != nil {
					logger.Warn("Failed to save UI state: %v", err)
				}
			}
			return nil
		})
	},
}

func init() {
	galleryCmd.Flags().IntVar(&galleryFlags.at, "at", 1, "Image to open at (1-based)")
}

var listFlags struct {
	mine     bool
	status   string
	category string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List listings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withApp(ctx, func(a *app) error {
			all, err := a.store.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list listings: %w", err)
			}

			category := listing.Category(strings.ToUpper(listFlags.category))
			if listFlags.category != "" && !category.Valid() {
				return fmt.Errorf("unknown category %q", listFlags.category)
			}

			shown := filterListings(all, a.user, listFlags.mine, listing.Status(listFlags.status), category)
			if len(shown) == 0 {
				fmt.Println("No listings found.")
				return nil
			}
			_, err = lipgloss.Println(listingTable(shown))
			return err
		})
	},
}

// filterListings keeps the listings matching every set filter.
func filterListings(all []*listing.Listing, user auth.User, mine bool, status listing.Status, category listing.Category) []*listing.Listing {
	var out []*listing.Listing
	for _, l := range all {
		if mine && !user.CanEdit(l.OwnerID) {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		if category != listing.CategoryNone && l.Category != category {
			continue
		}
		out = append(out, l)
	}
	return out
}

// listingTable renders listings as a bordered table in the current theme.
func listingTable(ls []*listing.Listing) string {
	rows := make([][]string, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, []string{
			l.ID,
			l.BusinessName,
			l.Category.Label() + " › " + l.Subcategory,
			string(l.Status),
			strconv.Itoa(len(l.Images)),
		})
	}

	s := theme.Current().S()
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Muted).
		Headers("ID", "NAME", "CATEGORY", "STATUS", "IMAGES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.Label.Padding(0, 1)
			case col == 0:
				return s.Muted.Padding(0, 1)
			}
			return s.Text.Padding(0, 1)
		}).
		String()
}

func init() {
	listCmd.Flags().BoolVar(&listFlags.mine, "mine", false, "Only show your listings")
	listCmd.Flags().StringVar(&listFlags.status, "status", "", "Filter by status (draft, pending, approved, rejected)")
	listCmd.Flags().StringVar(&listFlags.category, "category", "", "Filter by category (property, services, store, auto_dealership)")
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your listings and its images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withApp(ctx, func(a *app) error {
			l, err := a.ownedListing(ctx, args[0])
			if err != nil {
				return err
			}
			for _, img := range l.Images {
				if err := a.media.DeleteImage(ctx, l.ID, img.ID); err != nil {
					logger.Warn("Failed to delete image %s: %v", img.ID, err)
				}
			}
			if err := a.listings.DeleteListing(ctx, l.ID); err != nil {
				return fmt.Errorf("failed to delete listing: %w", err)
			}
			fmt.Printf("Deleted listing %s\n", l.ID)
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the revision history of a listing as diffs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withApp(ctx, func(a *app) error {
			revs, err := a.store.History(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if len(revs) == 0 {
				return fmt.Errorf("listing %s: %w", args[0], listing.ErrNotFound)
			}

			var prev *listing.Revision
			for i := range revs {
				rev := revs[i]
				header := fmt.Sprintf("revision %d  %s", rev.Revision, rev.Created.Format("2006-01-02 15:04:05"))
				if rev.Deleted {
					header += "  (deleted)"
				}
				fmt.Println(header)

				older := listing.Revision{}
				if prev != nil {
					older = *prev
				}
				if diff := listing.DiffRevisions(older, rev); diff != "" {
					fmt.Println(diff)
				}
				prev = &revs[i]
			}
			return nil
		})
	},
}

var inquireFlags listing.InquiryParams

var inquireCmd = &cobra.Command{
	Use:   "inquire <id>",
	Short: "Send a message to a listing's owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withApp(ctx, func(a *app) error {
			inq, err := a.store.AddInquiry(ctx, args[0], inquireFlags)
			if err != nil {
				return fmt.Errorf("failed to send inquiry: %w", err)
			}
			fmt.Printf("Inquiry %s sent\n", inq.ID)
			return nil
		})
	},
}

func init() {
	inquireCmd.Flags().StringVar(&inquireFlags.Name, "name", "", "Your name")
	inquireCmd.Flags().StringVar(&inquireFlags.Email, "email", "", "Your email address")
	inquireCmd.Flags().StringVar(&inquireFlags.Phone, "phone", "", "Your phone number (optional)")
	inquireCmd.Flags().StringVarP(&inquireFlags.Message, "message", "m", "", "Message (at least 10 characters)")
}

var inquiriesCmd = &cobra.Command{
	Use:   "inquiries <id>",
	Short: "List messages sent to one of your listings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withApp(ctx, func(a *app) error {
			l, err := a.ownedListing(ctx, args[0])
			if err != nil {
				return err
			}
			inqs, err := a.store.Inquiries(ctx, l.ID)
			if err != nil {
				if errors.Is(err, listing.ErrNotFound) {
					inqs = nil
				} else {
					return fmt.Errorf("failed to load inquiries: %w", err)
				}
			}
			if len(inqs) == 0 {
				fmt.Println("No inquiries yet.")
				return nil
			}
			for _, inq := range inqs {
				contact := inq.Email
				if inq.Phone != "" {
					contact += ", " + inq.Phone
				}
				fmt.Printf("%s  %s <%s>\n  %s\n\n", inq.CreatedAt.Format("2006-01-02 15:04"), inq.Name, contact, inq.Message)
			}
			return nil
		})
	},
}
