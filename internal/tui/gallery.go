package tui

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/listr/internal/gallery"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/media"
	"github.com/mark3labs/listr/internal/tui/theme"
)

const (
	// cellPixels converts mouse columns to the pixel scale of the swipe
	// threshold.
	cellPixels = 8

	thumbWidth   = 7
	thumbHeight  = 3
	infoWidth    = 30
	slideFrames  = 4
	slideFrameMs = 30
	loadTimeout  = 30 * time.Second
)

// ImageLoader fetches image bytes by URL.
type ImageLoader interface {
	Load(ctx context.Context, url string) ([]byte, error)
}

// GalleryClosedMsg is sent when an embedded gallery closes.
type GalleryClosedMsg struct{}

// GalleryInfoToggledMsg reports a change of the info panel preference.
type GalleryInfoToggledMsg struct {
	Visible bool
}

type imageLoadedMsg struct {
	index int
	url   string
	img   image.Image
	info  media.Info
}

type imageFailedMsg struct {
	index int
	url   string
	err   error
}

type slideTickMsg struct {
	seq int
}

type decodedImage struct {
	img  image.Image
	info media.Info
}

// GalleryOptions configures a GalleryModel.
type GalleryOptions struct {
	Title    string
	Loader   ImageLoader
	Lock     *gallery.ScrollLock
	ShowInfo bool
	// Standalone galleries quit the program when closed.
	Standalone bool
	StartAt    int
}

// GalleryModel renders a gallery.Controller full screen: the current image,
// a thumbnail strip, an optional info panel and the hint bar.
type GalleryModel struct {
	ctrl    *gallery.Controller
	opts    GalleryOptions
	spinner spinner.Model

	cache     map[string]decodedImage
	requested map[int]bool
	showInfo  bool

	slideOffset int
	slideSeq    int

	width, height int
	thumbAreas    []uv.Rectangle
}

// NewGalleryModel creates a closed gallery over images.
func NewGalleryModel(images []listing.Image, opts GalleryOptions) *GalleryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &GalleryModel{
		ctrl:      gallery.New(images, opts.Lock),
		opts:      opts,
		spinner:   s,
		cache:     make(map[string]decodedImage),
		requested: make(map[int]bool),
		showInfo:  opts.ShowInfo,
		width:     80,
		height:    24,
	}
}

// Controller exposes the underlying state machine.
func (m *GalleryModel) Controller() *gallery.Controller { return m.ctrl }

// IsOpen reports whether the gallery is showing.
func (m *GalleryModel) IsOpen() bool { return m.ctrl.IsOpen() }

// InfoVisible reports whether the info panel is shown.
func (m *GalleryModel) InfoVisible() bool { return m.showInfo }

// SetSize updates the drawing area.
func (m *GalleryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init opens a standalone gallery.
func (m *GalleryModel) Init() tea.Cmd {
	if m.opts.Standalone {
		return m.Open(m.opts.StartAt)
	}
	return nil
}

// Open shows the gallery at index at and starts loading around it.
func (m *GalleryModel) Open(at int) tea.Cmd {
	m.ctrl.Open(at)
	m.requested = make(map[int]bool)
	m.slideOffset = 0
	return tea.Batch(m.spinner.Tick, m.loadAround())
}

// Close hides the gallery.
func (m *GalleryModel) Close() tea.Cmd {
	m.ctrl.Close()
	return m.closedCmd()
}

// Teardown releases the scroll lock when the gallery goes away.
func (m *GalleryModel) Teardown() {
	m.ctrl.Teardown()
}

func (m *GalleryModel) closedCmd() tea.Cmd {
	if m.opts.Standalone {
		return tea.Quit
	}
	return func() tea.Msg { return GalleryClosedMsg{} }
}

// loadAround requests the current image and its neighbours.
func (m *GalleryModel) loadAround() tea.Cmd {
	n := m.ctrl.Len()
	if n == 0 {
		return nil
	}
	i := m.ctrl.Index()
	return tea.Batch(
		m.loadCmd(i),
		m.loadCmd((i+1)%n),
		m.loadCmd((i-1+n)%n),
	)
}

func (m *GalleryModel) loadCmd(i int) tea.Cmd {
	images := m.ctrl.Images()
	if i < 0 || i >= len(images) || m.requested[i] {
		return nil
	}
	url := images[i].URL
	if _, ok := m.cache[url]; ok {
		m.ctrl.ImageLoaded(i)
		return nil
	}
	if m.opts.Loader == nil || url == "" {
		m.ctrl.ImageFailed(i)
		return nil
	}
	m.requested[i] = true

	loader := m.opts.Loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		data, err := loader.Load(ctx, url)
		if err != nil {
			return imageFailedMsg{index: i, url: url, err: err}
		}
		info, err := media.Describe(data)
		if err != nil {
			return imageFailedMsg{index: i, url: url, err: err}
		}
		img, err := media.Decode(data)
		if err != nil {
			return imageFailedMsg{index: i, url: url, err: err}
		}
		return imageLoadedMsg{index: i, url: url, img: img, info: info}
	}
}

// stale reports whether a load result no longer matches the image at index.
func (m *GalleryModel) stale(index int, url string) bool {
	images := m.ctrl.Images()
	return index < 0 || index >= len(images) || images[index].URL != url
}

// Update handles messages for the gallery.
func (m *GalleryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case imageLoadedMsg:
		m.cache[msg.url] = decodedImage{img: msg.img, info: msg.info}
		if !m.stale(msg.index, msg.url) {
			m.ctrl.ImageLoaded(msg.index)
		}
		return m, nil

	case imageFailedMsg:
		logger.Warn("Failed to load image %s: %v", msg.url, msg.err)
		if !m.stale(msg.index, msg.url) {
			m.ctrl.ImageFailed(msg.index)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.IsOpen() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case slideTickMsg:
		if msg.seq != m.slideSeq || m.slideOffset == 0 {
			return m, nil
		}
		step := m.width / (2 * slideFrames)
		if step < 1 {
			step = 1
		}
		switch {
		case m.slideOffset > 0:
			m.slideOffset = max(0, m.slideOffset-step)
		case m.slideOffset < 0:
			m.slideOffset = min(0, m.slideOffset+step)
		}
		if m.slideOffset == 0 {
			return m, nil
		}
		return m, m.slideTick()
	}

	if !m.ctrl.IsOpen() {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String())

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		for i, area := range m.thumbAreas {
			if inside(area, mouse.X, mouse.Y) {
				return m, m.navigated(func() { m.ctrl.SelectIndex(i) })
			}
		}
		m.ctrl.TouchStart(float64(mouse.X * cellPixels))
		return m, nil

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			m.ctrl.TouchMove(float64(mouse.X * cellPixels))
		}
		return m, nil

	case tea.MouseReleaseMsg:
		return m, m.navigated(func() { m.ctrl.TouchEnd() })
	}

	return m, nil
}

func (m *GalleryModel) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return m.Close()
	case "esc":
		m.ctrl.HandleKey(key)
		return m.closedCmd()
	case "right", "left":
		return m.navigated(func() { m.ctrl.HandleKey(key) })
	case "z":
		m.ctrl.ToggleZoom()
		return nil
	case "i":
		m.showInfo = !m.showInfo
		visible := m.showInfo
		return func() tea.Msg { return GalleryInfoToggledMsg{Visible: visible} }
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
		return m.navigated(func() { m.ctrl.SelectIndex(n - 1) })
	}
	return nil
}

// navigated runs a navigation and, when the image changed, starts the slide
// and loads the new neighbourhood.
func (m *GalleryModel) navigated(fn func()) tea.Cmd {
	before := m.ctrl.Index()
	fn()
	if m.ctrl.Index() == before {
		return nil
	}
	m.slideOffset = int(m.ctrl.SlideDirection()) * m.width / 2
	m.slideSeq++
	return tea.Batch(m.slideTick(), m.loadAround())
}

func (m *GalleryModel) slideTick() tea.Cmd {
	seq := m.slideSeq
	return tea.Tick(slideFrameMs*time.Millisecond, func(time.Time) tea.Msg {
		return slideTickMsg{seq: seq}
	})
}

// View renders a standalone gallery.
func (m *GalleryModel) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// Draw renders the gallery into area.
func (m *GalleryModel) Draw(scr uv.Screen, area uv.Rectangle) {
	if !m.ctrl.IsOpen() || area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}
	s := theme.Current().S()

	// Clear whatever sits behind the overlay.
	blank := lipgloss.NewStyle().Width(area.Dx()).Height(area.Dy()).Render("")
	uv.NewStyledString(blank).Draw(scr, area)

	uv.NewStyledString(m.header(area.Dx())).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))

	hints := HintGallery(m.ctrl.CanNavigate())
	uv.NewStyledString(hints).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))

	stripHeight := 0
	if m.ctrl.CanNavigate() {
		stripHeight = thumbHeight
	}
	bodyTop := area.Min.Y + 2
	bodyBottom := area.Max.Y - 1 - stripHeight - 1
	if bodyBottom <= bodyTop {
		return
	}
	body := uv.Rect(area.Min.X, bodyTop, area.Dx(), bodyBottom-bodyTop)

	if m.showInfo && body.Dx() > infoWidth*2 {
		panel := uv.Rect(body.Max.X-infoWidth, body.Min.Y, infoWidth, body.Dy())
		body = uv.Rect(body.Min.X, body.Min.Y, body.Dx()-infoWidth-1, body.Dy())
		inner := DrawPanel(scr, panel, "Info", false)
		uv.NewStyledString(m.infoPanel(inner.Dx())).Draw(scr, inner)
	}

	m.drawImage(scr, body, s)

	m.thumbAreas = m.thumbAreas[:0]
	if stripHeight > 0 {
		m.drawStrip(scr, uv.Rect(area.Min.X, bodyBottom+1, area.Dx(), stripHeight))
	}
}

func (m *GalleryModel) header(width int) string {
	s := theme.Current().S()
	title := m.opts.Title
	if title == "" {
		title = "Gallery"
	}
	left := s.HeaderTitle.Render(title)
	if m.ctrl.Empty() {
		return left
	}
	right := fmt.Sprintf("%d / %d", m.ctrl.Index()+1, m.ctrl.Len())
	if m.ctrl.Zoomed() {
		right = "zoom · " + right
	}
	right = s.HeaderSubtitle.Render(right)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *GalleryModel) drawImage(scr uv.Screen, body uv.Rectangle, s *theme.Styles) {
	if m.ctrl.Empty() {
		DrawCentered(scr, body, s.Muted.Render("No images"))
		return
	}
	i := m.ctrl.Index()
	current, _ := m.ctrl.Current()

	switch {
	case m.ctrl.Failed(i):
		DrawCentered(scr, body, s.Error.Render("Image unavailable"))
		return
	case m.ctrl.Loading(i):
		DrawCentered(scr, body, m.spinner.View()+" "+s.Muted.Render("Loading image..."))
		return
	}

	decoded, ok := m.cache[current.URL]
	if !ok {
		DrawCentered(scr, body, s.Muted.Render(current.Alt))
		return
	}

	rows := body.Dy()
	if current.Alt != "" {
		rows--
	}
	art := renderHalfBlocks(decoded.img, body.Dx(), rows, m.ctrl.Zoomed())
	x := body.Min.X + m.slideOffset
	uv.NewStyledString(art).Draw(scr, uv.Rect(x, body.Min.Y, body.Dx(), rows).Intersect(body))
	if current.Alt != "" {
		caption := lipgloss.NewStyle().Width(body.Dx()).Align(lipgloss.Center).Render(s.Muted.Render(current.Alt))
		uv.NewStyledString(caption).Draw(scr, uv.Rect(body.Min.X, body.Max.Y-1, body.Dx(), 1))
	}
}

func (m *GalleryModel) infoPanel(width int) string {
	s := theme.Current().S()
	current, ok := m.ctrl.Current()
	if !ok {
		return ""
	}
	lines := []string{}
	add := func(label, value string) {
		lines = append(lines, s.Label.Render(label), s.Text.Render(truncate(value, width)), "")
	}
	if current.Alt != "" {
		add("Name", current.Alt)
	}
	if decoded, ok := m.cache[current.URL]; ok {
		add("Format", decoded.info.Format)
		add("Size", fmt.Sprintf("%d × %d px", decoded.info.Width, decoded.info.Height))
		add("Bytes", humanBytes(decoded.info.Bytes))
	}
	if current.IsPrimary {
		lines = append(lines, s.ThumbPrimary.Render("★ Primary image"), "")
	}
	add("URL", current.URL)
	return strings.Join(lines, "\n")
}

func (m *GalleryModel) drawStrip(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()
	images := m.ctrl.Images()
	n := len(images)

	// Keep the selected thumbnail visible.
	fit := max(1, area.Dx()/(thumbWidth+1))
	first := 0
	if m.ctrl.Index() >= fit {
		first = m.ctrl.Index() - fit + 1
	}
	colors := theme.Gradient(theme.Current().Primary, theme.Current().Secondary, n)

	x := area.Min.X + max(0, (area.Dx()-min(fit, n)*(thumbWidth+1))/2)
	for i := first; i < n && i < first+fit; i++ {
		label := strconv.Itoa(i + 1)
		if images[i].IsPrimary {
			label = "★" + label
		}
		style := s.ThumbNormal
		if i == m.ctrl.Index() {
			style = s.ThumbSelected.BorderForeground(lipgloss.Color(colors[i]))
		}
		box := style.Width(thumbWidth - 2).Align(lipgloss.Center).Render(label)
		rect := uv.Rect(x, area.Min.Y, thumbWidth, thumbHeight)
		uv.NewStyledString(box).Draw(scr, rect)
		for len(m.thumbAreas) < i {
			m.thumbAreas = append(m.thumbAreas, uv.Rectangle{})
		}
		m.thumbAreas = append(m.thumbAreas, rect)
		x += thumbWidth + 1
	}
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
