package wizard

import core "github.com/mark3labs/listr/internal/wizard"

// TabExitForwardMsg is sent when Tab is pressed on a step's last control.
// The wizard moves focus to the buttons.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on a step's first
// control. The wizard moves focus to the buttons from the end.
type TabExitBackwardMsg struct{}

// DescriptionEditedMsg carries the description back from $EDITOR.
type DescriptionEditedMsg struct {
	Content string
}

// PreviewImagesMsg asks the wizard to open the image preview gallery.
type PreviewImagesMsg struct {
	Start int
}

// DeleteImageMsg asks the wizard to delete an uploaded image.
type DeleteImageMsg struct {
	ID string
}

type draftSavedMsg struct {
	res core.SaveResult
}

type submitDoneMsg struct {
	res core.SubmitResult
}

type imageDeletedMsg struct {
	id  string
	err error
}
