package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/listr/internal/auth"
	"github.com/mark3labs/listr/internal/gallery"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// ListingDeleter removes listings.
type ListingDeleter interface {
	DeleteListing(ctx context.Context, id string) error
}

// DetailAction is what the user asked for when the page closed.
type DetailAction int

const (
	DetailNone DetailAction = iota
	DetailEdit
	DetailDeleted
)

type listingDeletedMsg struct {
	err error
}

// DetailOptions configures a DetailModel.
type DetailOptions struct {
	Listing   *listing.Listing
	User      auth.User
	Resolve   gallery.ResolveFunc
	Loader    ImageLoader
	Inquiries InquirySender
	Listings  ListingDeleter
	Now       func() time.Time
	ShowInfo  bool
	// OnInfoToggle persists the gallery info panel preference.
	OnInfoToggle func(visible bool)
}

// DetailModel is the listing page: header, description, hours, contact,
// category details and owner controls, with the gallery and contact form as
// overlays.
type DetailModel struct {
	opts    DetailOptions
	listing *listing.Listing
	images  []listing.Image

	viewport viewport.Model
	lock     *gallery.ScrollLock
	gallery  *GalleryModel
	inquiry  *InquiryModal
	dialog   *ConfirmDialog
	toast    *Toast

	action        DetailAction
	width, height int
}

// NewDetailModel creates the page for opts.Listing.
func NewDetailModel(opts DetailOptions) *DetailModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Resolve == nil {
		opts.Resolve = func(ref string) string { return ref }
	}
	lock := &gallery.ScrollLock{}
	images := gallery.FromListing(opts.Listing, opts.Resolve)

	m := &DetailModel{
		opts:    opts,
		listing: opts.Listing,
		images:  images,
		viewport: viewport.New(
			viewport.WithWidth(80),
			viewport.WithHeight(20),
		),
		lock: lock,
		gallery: NewGalleryModel(images, GalleryOptions{
			Title:    opts.Listing.BusinessName,
			Loader:   opts.Loader,
			Lock:     lock,
			ShowInfo: opts.ShowInfo,
		}),
		inquiry: NewInquiryModal(opts.Listing.ID, opts.Inquiries),
		dialog:  NewConfirmDialog(),
		toast:   NewToast(),
		width:   80,
		height:  24,
	}
	m.refreshContent()
	return m
}

// Action returns what the user chose before quitting.
func (m *DetailModel) Action() DetailAction { return m.action }

// Gallery exposes the gallery overlay.
func (m *DetailModel) Gallery() *GalleryModel { return m.gallery }

// ScrollLocked reports whether an overlay is suppressing page scrolling.
func (m *DetailModel) ScrollLocked() bool { return m.lock.Locked() }

func (m *DetailModel) isOwner() bool {
	return m.opts.User.CanEdit(m.listing.OwnerID)
}

// Init implements tea.Model.
func (m *DetailModel) Init() tea.Cmd { return nil }

// Update handles messages for the page and its overlays.
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.gallery.SetSize(msg.Width, msg.Height)
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(max(1, msg.Height-3))
		m.refreshContent()
		return m, nil

	case ShowToastMsg, ToastDismissMsg:
		return m, m.toast.Update(msg)

	case GalleryClosedMsg:
		return m, nil

	case GalleryInfoToggledMsg:
		if m.opts.OnInfoToggle != nil {
			m.opts.OnInfoToggle(msg.Visible)
		}
		return m, nil

	case InquirySentMsg:
		m.inquiry.Update(msg)
		if msg.Err != nil {
			return m, m.toast.ShowError(msg.Err.Error())
		}
		return m, m.toast.Show("Message sent to " + m.listing.BusinessName)

	case listingDeletedMsg:
		if msg.err != nil {
			return m, m.toast.ShowError(msg.err.Error())
		}
		m.action = DetailDeleted
		return m, tea.Quit
	}

	if m.gallery.IsOpen() {
		_, cmd := m.gallery.Update(msg)
		return m, cmd
	}
	switch msg.(type) {
	case imageLoadedMsg, imageFailedMsg, slideTickMsg:
		_, cmd := m.gallery.Update(msg)
		return m, cmd
	}

	if m.dialog.IsVisible() {
		if click, ok := msg.(tea.MouseClickMsg); ok {
			mouse := click.Mouse()
			return m, m.dialog.HandleClick(mouse.X, mouse.Y)
		}
		return m, m.dialog.Update(msg)
	}
	if m.inquiry.IsVisible() {
		return m, m.inquiry.Update(msg)
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.gallery.Teardown()
			return m, tea.Quit
		case "g", "enter":
			return m, m.openGallery()
		case "c":
			return m, m.inquiry.Open()
		case "e":
			if !m.isOwner() {
				return m, m.toast.ShowError("Only the owner can edit this listing")
			}
			m.action = DetailEdit
			m.gallery.Teardown()
			return m, tea.Quit
		case "d":
			if !m.isOwner() {
				return m, m.toast.ShowError("Only the owner can delete this listing")
			}
			m.dialog.Show("Delete listing", fmt.Sprintf("Delete %q permanently?", m.listing.BusinessName), m.deleteCmd)
			return m, nil
		}
	}

	if m.lock.Locked() {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// openGallery opens the carousel on the primary image.
func (m *DetailModel) openGallery() tea.Cmd {
	if len(m.images) == 0 {
		return m.toast.Show("This listing has no images")
	}
	start := 0
	for i, img := range m.images {
		if img.IsPrimary {
			start = i
			break
		}
	}
	return m.gallery.Open(start)
}

func (m *DetailModel) deleteCmd() tea.Cmd {
	deleter, id := m.opts.Listings, m.listing.ID
	if deleter == nil {
		return nil
	}
	return func() tea.Msg {
		if err := deleter.DeleteListing(context.Background(), id); err != nil {
			return listingDeletedMsg{err: fmt.Errorf("failed to delete listing: %w", err)}
		}
		return listingDeletedMsg{}
	}
}

func (m *DetailModel) refreshContent() {
	m.viewport.SetContent(m.renderBody(max(20, m.width-2)))
}

// renderBody builds the scrollable page text.
func (m *DetailModel) renderBody(width int) string {
	t := theme.Current()
	s := t.S()
	l := m.listing

	var b strings.Builder
	line := func(format string, args ...any) {
		b.WriteString(fmt.Sprintf(format, args...))
		b.WriteString("\n")
	}
	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(s.PanelTitleFocused.Render(title))
		b.WriteString("\n")
	}

	category := l.Category.Label()
	if l.Subcategory != "" {
		category += " › " + l.Subcategory
	}
	line("%s  %s", s.HeaderTitle.Render(l.BusinessName), t.StatusBadge(string(l.Status)))
	line("%s", s.Muted.Render(category))
	if l.Location != "" {
		line("%s %s", s.Label.Render("Location"), s.Text.Render(l.Location))
	}
	if l.Category != listing.CategoryProperty {
		status := listing.OpenStatus(l.BusinessHours, m.opts.Now())
		style := s.Muted
		if status.Known {
			style = s.Error
			if status.Open {
				style = s.Success
			}
		}
		line("%s", style.Render(status.Label))
	}
	if n := len(m.images); n > 0 {
		line("%s", s.Muted.Render(fmt.Sprintf("%d photo(s) · press g to view", n)))
	}

	if strings.TrimSpace(l.Description) != "" {
		section("About")
		line("%s", renderMarkdown(l.Description, width))
	}

	switch l.Category {
	case listing.CategoryServices:
		if len(l.Services) > 0 {
			section("Services")
			for _, svc := range l.Services {
				entry := "• " + s.Text.Bold(true).Render(svc.Name)
				if svc.Price != "" {
					entry += "  " + s.Success.Render(svc.Price)
				}
				line("%s", entry)
				if svc.Description != "" {
					line("  %s", s.Muted.Render(svc.Description))
				}
			}
		}
	case listing.CategoryProperty:
		if pd := l.PropertyDetails; pd != nil {
			section("Property")
			line("%s for %s", pd.PropertyType, pd.ListingType)
			if pd.Price > 0 {
				line("%s %s", s.Label.Render("Price"), formatMoney(pd.Price))
			}
			line("%d bed · %d bath · %d sq ft", pd.Bedrooms, pd.Bathrooms, pd.AreaSqFt)
			if len(pd.Amenities) > 0 {
				line("%s %s", s.Label.Render("Amenities"), strings.Join(pd.Amenities, ", "))
			}
			if pd.ListingType == "sale" && pd.Price > 0 {
				in := listing.DefaultMortgageInput(pd.Price)
				if q, err := in.Quote(); err == nil {
					section("Estimated mortgage")
					line("%s / month", s.Success.Render(formatMoney(q.MonthlyPayment)))
					line("%s", s.Muted.Render(fmt.Sprintf("%s down, %.1f%% over %d years · total interest %s",
						formatMoney(in.DownPayment), in.AnnualRatePct, in.Years, formatMoney(q.TotalInterest))))
				}
			}
		}
	case listing.CategoryAutoDealership:
		if ad := l.AutoDealershipDetails; ad != nil {
			section("Dealership")
			line("%s %s", s.Label.Render("Vehicles"), strings.Join(ad.VehicleTypes, ", "))
			if len(ad.Brands) > 0 {
				line("%s %s", s.Label.Render("Brands"), strings.Join(ad.Brands, ", "))
			}
			line("Financing: %s · Service center: %s", yesNo(ad.OffersFinancing), yesNo(ad.HasServiceCenter))
		}
	}

	if l.Category != listing.CategoryProperty && len(l.BusinessHours) > 0 {
		section("Hours")
		for _, h := range l.BusinessHours {
			line("%-10s %s", h.Day, h.Summary())
		}
	}

	if l.Phone != "" || l.Email != "" || l.Website != "" {
		section("Contact")
		if l.Phone != "" {
			line("%s %s", s.Label.Render("Phone  "), l.Phone)
		}
		if l.Email != "" {
			line("%s %s", s.Label.Render("Email  "), l.Email)
		}
		if l.Website != "" {
			line("%s %s", s.Label.Render("Website"), l.Website)
		}
	}

	if m.isOwner() {
		section("Owner")
		line("%s", s.Muted.Render("You own this listing. Press e to edit or d to delete."))
	}
	return b.String()
}

// View renders the page.
func (m *DetailModel) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// Draw renders the page and any open overlay into area.
func (m *DetailModel) Draw(scr uv.Screen, area uv.Rectangle) {
	if m.gallery.IsOpen() {
		m.gallery.Draw(scr, area)
		m.toast.Draw(scr, area)
		return
	}

	body := DrawPanel(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), area.Dy()-1), "Listing", true)
	uv.NewStyledString(m.viewport.View()).Draw(scr, body)
	uv.NewStyledString(HintDetail(m.isOwner())).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))

	m.inquiry.Draw(scr, area)
	m.dialog.Draw(scr, area)
	m.toast.Draw(scr, area)
}

func formatMoney(v float64) string {
	whole := int64(v + 0.5)
	digits := fmt.Sprintf("%d", whole)
	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return "$" + string(out)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
