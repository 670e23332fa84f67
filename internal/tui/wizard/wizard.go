// Package wizard is the terminal front end of the listing editor. It renders
// one step of the listing wizard at a time inside a modal, with a progress
// header, a button bar, an image preview gallery and toasts for save
// outcomes.
package wizard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/listr/internal/gallery"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/media"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

// Modal layout constants
const (
	modalMinWidth = 64
	modalMaxWidth = 100
)

// stepView is one page of the wizard.
type stepView interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Focus() tea.Cmd
	FocusLast() tea.Cmd
	Blur()
}

// Options configures the wizard UI.
type Options struct {
	Listings core.ListingService
	Images   core.ImageService
	Previews *media.PreviewRegistry
	// Loader fetches preview bytes; it must understand preview URLs.
	Loader  tui.ImageLoader
	OwnerID string
	// Listing switches the wizard to edit mode.
	Listing *listing.Listing
	// StartDir roots the image file picker.
	StartDir string
}

// WizardResult holds the outcome of a wizard run.
type WizardResult struct {
	ListingID string
	Status    listing.Status
	Submitted bool
	Uploaded  int
	Failed    int
}

// WizardModel is the BubbleTea model for the listing wizard.
type WizardModel struct {
	wiz       *core.Wizard
	opts      Options
	ctx       context.Context
	views     map[core.Step]stepView
	cancelled bool
	result    WizardResult
	width     int
	height    int

	buttonBar     *ButtonBar
	buttonFocused bool

	preview *tui.GalleryModel
	toast   *tui.Toast
}

// NewWizardModel creates the model, in edit mode when opts.Listing is set.
func NewWizardModel(opts Options) *WizardModel {
	coreOpts := core.Options{
		Listings: opts.Listings,
		Images:   opts.Images,
		Previews: opts.Previews,
		OwnerID:  opts.OwnerID,
	}
	var wiz *core.Wizard
	if opts.Listing != nil {
		wiz = core.Edit(opts.Listing, coreOpts)
	} else {
		wiz = core.New(coreOpts)
	}

	m := &WizardModel{
		wiz:       wiz,
		opts:      opts,
		ctx:       context.Background(),
		views:     map[core.Step]stepView{},
		buttonBar: NewButtonBar(nil),
		toast:     tui.NewToast(),
		width:     100,
		height:    40,
	}
	m.refreshButtons()
	return m
}

// Run creates a standalone BubbleTea program for the wizard and returns
// its result. A cancelled wizard returns an error.
func Run(ctx context.Context, opts Options) (*WizardResult, error) {
	m := NewWizardModel(opts)
	m.ctx = ctx
	defer m.wiz.Close()

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if wizModel.cancelled {
		return &wizModel.result, fmt.Errorf("wizard cancelled by user")
	}
	return &wizModel.result, nil
}

// Wizard exposes the underlying state machine.
func (m *WizardModel) Wizard() *core.Wizard { return m.wiz }

// Result returns the outcome so far.
func (m *WizardModel) Result() WizardResult { return m.result }

// Cancelled reports whether the user left without submitting.
func (m *WizardModel) Cancelled() bool { return m.cancelled }

// ButtonFocused reports whether the button bar has focus.
func (m *WizardModel) ButtonFocused() bool { return m.buttonFocused }

// Buttons returns the button bar.
func (m *WizardModel) Buttons() *ButtonBar { return m.buttonBar }

// Previewing reports whether the image preview gallery is open.
func (m *WizardModel) Previewing() bool { return m.preview != nil && m.preview.IsOpen() }

// Toast returns the toast notification.
func (m *WizardModel) Toast() *tui.Toast { return m.toast }

// Init focuses the first step.
func (m *WizardModel) Init() tea.Cmd {
	return m.current().Focus()
}

// current returns the view of the current step, creating it on first use.
func (m *WizardModel) current() stepView {
	step := m.wiz.CurrentStep()
	v, ok := m.views[step]
	if !ok {
		v = m.newView(step)
		m.views[step] = v
		w, h := m.contentSize()
		v.SetSize(w, h)
	}
	return v
}

func (m *WizardModel) newView(step core.Step) stepView {
	switch step {
	case core.StepCategory:
		return NewCategoryStep(m.wiz)
	case core.StepBasicInfo:
		return NewBasicInfoStep(m.wiz)
	case core.StepContact:
		return NewContactStep(m.wiz)
	case core.StepHours:
		return NewHoursStep(m.wiz)
	case core.StepServices:
		return NewServicesStep(m.wiz)
	case core.StepPropertyDetails:
		return NewPropertyStep(m.wiz)
	case core.StepAutoDealershipDetails:
		return NewDealershipStep(m.wiz)
	default:
		return NewImagesStep(m.wiz, m.opts.StartDir)
	}
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.refreshButtons()

	if _, ok := msg.(tui.GalleryClosedMsg); ok && m.preview != nil {
		m.preview.Teardown()
		m.preview = nil
		return m, nil
	}
	if m.Previewing() {
		if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		if _, ok := msg.(tea.WindowSizeMsg); !ok {
			_, cmd := m.preview.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.preview != nil {
			m.preview.SetSize(msg.Width, msg.Height)
		}
		w, h := m.contentSize()
		for _, v := range m.views {
			v.SetSize(w, h)
		}
		m.buttonBar.SetWidth(w)
		return m, nil

	case tui.ShowToastMsg, tui.ToastDismissMsg:
		return m, m.toast.Update(msg)

	case tea.KeyPressMsg:
		if m.buttonFocused {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					return m, m.current().Focus()
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					return m, m.current().FocusLast()
				}
				return m, nil
			case "enter", "space", " ":
				if btn, ok := m.buttonBar.FocusedButton(); ok {
					return m, m.activate(btn.ID)
				}
				return m, nil
			case "esc":
				m.buttonFocused = false
				m.buttonBar.Blur()
				return m, m.current().Focus()
			}
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if m.wiz.Current() == 0 {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, m.activate(ButtonBack)
		case "ctrl+s":
			return m, m.activate(ButtonSave)
		case "ctrl+n":
			if m.wiz.IsLast() {
				return m, m.activate(ButtonSubmit)
			}
			return m, m.activate(ButtonNext)
		case "ctrl+p":
			return m, m.activate(ButtonBack)
		}
		if idx, ok := stepShortcut(msg.String()); ok {
			return m, m.jump(idx)
		}
		if m.buttonFocused {
			return m, nil
		}

	case TabExitForwardMsg:
		m.focusButtons(true)
		return m, nil

	case TabExitBackwardMsg:
		m.focusButtons(false)
		return m, nil

	case PreviewImagesMsg:
		return m, m.openPreview(msg.Start)

	case DeleteImageMsg:
		return m, m.deleteImage(msg.ID)

	case imageDeletedMsg:
		cmd := m.current().Update(msg)
		if err := m.wiz.FinishDelete(msg.id, msg.err); err != nil {
			return m, tea.Batch(cmd, m.toast.ShowError(err.Error()))
		}
		return m, tea.Batch(cmd, m.toast.Show("Image deleted"))

	case draftSavedMsg:
		if err := m.wiz.FinishSave(msg.res); err != nil {
			return m, m.toast.ShowError(err.Error())
		}
		m.result.ListingID = m.wiz.ListingID()
		m.result.Status = m.wiz.Status()
		return m, m.toast.Show("Draft saved")

	case submitDoneMsg:
		return m, m.finishSubmit(msg.res)
	}

	return m, m.current().Update(msg)
}

// stepShortcut maps alt+1..alt+9 to a step index.
func stepShortcut(key string) (int, bool) {
	if len(key) == 5 && strings.HasPrefix(key, "alt+") && key[4] >= '1' && key[4] <= '9' {
		return int(key[4] - '1'), true
	}
	return 0, false
}

func (m *WizardModel) focusButtons(first bool) {
	m.current().Blur()
	m.refreshButtons()
	m.buttonFocused = true
	if first {
		m.buttonBar.FocusFirst()
	} else {
		m.buttonBar.FocusLast()
	}
}

// refreshButtons rebuilds the buttons from the wizard state.
func (m *WizardModel) refreshButtons() {
	buttons := NavigationButtons(
		m.wiz.Current() > 0,
		m.wiz.IsStepComplete(m.wiz.Current()),
		m.wiz.IsLast(),
		m.wiz.Saving(),
	)
	m.buttonBar.SetButtons(buttons)
	if m.buttonFocused {
		if _, ok := m.buttonBar.FocusedButton(); !ok {
			m.buttonBar.FocusFirst()
		}
	}
}

// activate runs what a button does.
func (m *WizardModel) activate(id ButtonID) tea.Cmd {
	switch id {
	case ButtonCancel:
		m.cancelled = true
		return tea.Quit
	case ButtonBack:
		if !m.wiz.PrevStep() {
			return nil
		}
		return m.stepChanged()
	case ButtonNext:
		if m.wiz.NextStep() {
			return m.stepChanged()
		}
		if m.wiz.Saving() {
			return m.toast.ShowError("Please wait for the save to finish")
		}
		return m.toast.ShowError(firstError(m.wiz.FieldErrors(m.wiz.CurrentStep()), "Complete this step first"))
	case ButtonSave:
		return m.saveDraft()
	case ButtonSubmit:
		return m.submit()
	}
	return nil
}

// jump moves to step i from the progress shortcuts.
func (m *WizardModel) jump(i int) tea.Cmd {
	if i == m.wiz.Current() || !m.wiz.CanGoTo(i) {
		return nil
	}
	m.wiz.GoToStep(i)
	return m.stepChanged()
}

func (m *WizardModel) stepChanged() tea.Cmd {
	for _, v := range m.views {
		v.Blur()
	}
	m.buttonFocused = false
	m.buttonBar.Blur()
	return m.current().Focus()
}

func firstError(errs map[core.Field]string, fallback string) string {
	for _, f := range []core.Field{
		core.FieldCategory, core.FieldSubcategory, core.FieldBusinessName, core.FieldDescription,
		core.FieldLocation, core.FieldPhone, core.FieldEmail, core.FieldWebsite,
		core.FieldServices, core.FieldPropertyDetails, core.FieldAutoDealershipDetails, "images",
	} {
		if msg, ok := errs[f]; ok {
			return msg
		}
	}
	return fallback
}

// saveDraft persists the form without publishing.
func (m *WizardModel) saveDraft() tea.Cmd {
	req, err := m.wiz.BeginSave(false)
	if err != nil {
		return m.toast.ShowError(err.Error())
	}
	ctx := m.ctx
	return func() tea.Msg {
		return draftSavedMsg{res: req.Run(ctx)}
	}
}

// submit publishes the listing and uploads pending images.
func (m *WizardModel) submit() tea.Cmd {
	plan, err := m.wiz.PrepareSubmit()
	if err != nil {
		return m.toast.ShowError(err.Error())
	}
	ctx := m.ctx
	return func() tea.Msg {
		return submitDoneMsg{res: core.ExecuteSubmit(ctx, plan)}
	}
}

func (m *WizardModel) finishSubmit(res core.SubmitResult) tea.Cmd {
	m.wiz.ApplySubmit(res)
	if res.SaveErr != nil {
		return m.toast.ShowError(res.SaveErr.Error())
	}

	m.result.ListingID = m.wiz.ListingID()
	m.result.Status = m.wiz.Status()
	m.result.Uploaded += res.Succeeded
	m.result.Failed = res.Failed
	if res.Failed > 0 {
		logger.Warn("Listing %s submitted with %d failed uploads", res.ListingID, res.Failed)
		return m.toast.ShowError(fmt.Sprintf("Submitted. %d uploaded, %d failed. Submit again to retry.", res.Succeeded, res.Failed))
	}
	m.result.Submitted = true
	logger.Info("Listing %s submitted for review", res.ListingID)
	return tea.Quit
}

// deleteImage removes an uploaded image remotely in a command.
func (m *WizardModel) deleteImage(id string) tea.Cmd {
	req, err := m.wiz.BeginDelete(id)
	if err != nil {
		return func() tea.Msg { return imageDeletedMsg{id: id, err: err} }
	}
	ctx := m.ctx
	return func() tea.Msg {
		return imageDeletedMsg{id: id, err: req.Run(ctx)}
	}
}

// openPreview shows every image, pending files included, in the gallery.
func (m *WizardModel) openPreview(start int) tea.Cmd {
	m.preview = tui.NewGalleryModel(m.wiz.Images().Gallery(), tui.GalleryOptions{
		Title:  "Preview",
		Loader: m.opts.Loader,
		Lock:   &gallery.ScrollLock{},
	})
	m.preview.SetSize(m.width, m.height)
	return m.preview.Open(start)
}

// contentSize returns the space available to a step inside the modal.
func (m *WizardModel) contentSize() (int, int) {
	return m.modalWidth() - 6, max(10, m.height-14)
}

func (m *WizardModel) modalWidth() int {
	return min(modalMaxWidth, max(modalMinWidth, m.width-10))
}

// View renders the wizard UI.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// Draw renders the wizard into area.
func (m *WizardModel) Draw(scr uv.Screen, area uv.Rectangle) {
	if m.Previewing() {
		m.preview.Draw(scr, area)
		return
	}
	tui.DrawCentered(scr, area, m.renderModal())
	m.toast.Draw(scr, area)
}

// renderModal wraps the step content in a modal container with title,
// progress header and buttons.
func (m *WizardModel) renderModal() string {
	s := theme.Current().S()
	step := m.wiz.CurrentStep()

	verb := "New listing"
	if m.opts.Listing != nil {
		verb = "Edit listing"
	}
	title := fmt.Sprintf("%s - Step %d of %d: %s", verb, m.wiz.Current()+1, len(m.wiz.Steps()), step.Title())
	if status := m.wiz.Status(); status != "" {
		title += "  " + theme.Current().StatusBadge(string(status))
	}

	width := m.modalWidth()
	sections := []string{
		s.ModalTitle.Width(width - 6).Render(title),
		m.renderProgress(),
		"",
		m.current().View(),
		"",
		m.buttonBar.Render(),
	}
	if m.wiz.Saving() {
		sections = append(sections, s.Muted.Render("Saving..."))
	}
	sections = append(sections, tui.RenderHintBar(
		"ctrl+n", "next",
		"ctrl+p", "back",
		"ctrl+s", "save draft",
		"alt+1-9", "jump",
		"ctrl+c", "quit",
	))

	return s.ModalContainer.Width(width).Render(strings.Join(sections, "\n"))
}

// renderProgress renders the step list with completion marks.
func (m *WizardModel) renderProgress() string {
	s := theme.Current().S()
	var parts []string
	for i, step := range m.wiz.Steps() {
		label := fmt.Sprintf("%d %s", i+1, step.Title())
		switch {
		case i == m.wiz.Current():
			parts = append(parts, s.StepCurrent.Render(label))
		case m.wiz.IsStepComplete(i):
			parts = append(parts, s.StepDone.Render("✓ "+label))
		case m.wiz.CanGoTo(i):
			parts = append(parts, s.Text.Render(label))
		default:
			parts = append(parts, s.StepTodo.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(m.modalWidth() - 6).Render(strings.Join(parts, s.Muted.Render(" › ")))
}
