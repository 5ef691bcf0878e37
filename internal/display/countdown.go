package display

import "github.com/jamesboyd/powertimer/internal/i18n"

// CountdownView draws countdown frames and the cancellation notice.
type CountdownView struct {
	*Renderer
}

// Tick redraws the whole screen for one frame.
func (v CountdownView) Tick(remaining int) {
	v.Clear()
	v.DrawClock(remaining)
	v.PrintCentered(v.msg.T(i18n.PressToCancel), v.cfg.WarningColor)
}

// Cancelled shows the cancellation notice.
func (v CountdownView) Cancelled() {
	v.Notice(v.msg.T(i18n.NoticeTitle), v.msg.T(i18n.Cancelled), "success_color")
}
