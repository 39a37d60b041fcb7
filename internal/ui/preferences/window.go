package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/lrfbranco/eye-strain-alarm/internal/notify"
)

const (
	modeLabelVoice = "Voice"
	modeLabelBeep  = "Beep"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	interval   *widget.Entry
	idle       *widget.Entry
	phrase     *widget.Entry
	mode       *widget.RadioGroup
	muted      *widget.Check
	fullscreen *widget.Check
	autostart  *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Eye Strain Alarm Settings")

	interval := widget.NewEntry()
	idle := widget.NewEntry()
	phrase := widget.NewEntry()

	interval.SetText(fmt.Sprintf("%d", int(settings.Interval.Minutes())))
	idle.SetText(fmt.Sprintf("%d", int(settings.IdleThreshold.Minutes())))
	phrase.SetText(settings.Phrase)

	mode := widget.NewRadioGroup([]string{modeLabelVoice, modeLabelBeep}, nil)
	mode.Horizontal = true
	mode.SetSelected(modeLabel(settings.Mode))

	muted := widget.NewCheck("Mute reminders", nil)
	muted.SetChecked(settings.Muted)

	fullscreen := widget.NewCheck("Suppress during fullscreen", nil)
	fullscreen.SetChecked(settings.SuppressFullscreen)

	autostart := widget.NewCheck("Start at login", nil)
	autostart.SetChecked(settings.Autostart)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Reminders", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Remind every"), interval, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Idle after"), idle, widget.NewLabel("min")),
		widget.NewLabel("Reminder phrase"),
		phrase,
		widget.NewLabel("Alert sound"),
		mode,
		muted,
		fullscreen,
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 400))

	prefs := &Window{
		window:     window,
		settings:   settings,
		onSave:     onSave,
		interval:   interval,
		idle:       idle,
		phrase:     phrase,
		mode:       mode,
		muted:      muted,
		fullscreen: fullscreen,
		autostart:  autostart,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = window.Hide
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.interval.SetText(fmt.Sprintf("%d", int(settings.Interval.Minutes())))
	prefs.idle.SetText(fmt.Sprintf("%d", int(settings.IdleThreshold.Minutes())))
	prefs.phrase.SetText(settings.Phrase)
	prefs.mode.SetSelected(modeLabel(settings.Mode))
	prefs.muted.SetChecked(settings.Muted)
	prefs.fullscreen.SetChecked(settings.SuppressFullscreen)
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.interval.Text); ok {
		settings.Interval = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.idle.Text); ok {
		settings.IdleThreshold = time.Duration(minutes) * time.Minute
	}
	if phrase := strings.TrimSpace(prefs.phrase.Text); phrase != "" {
		settings.Phrase = phrase
	}

	settings.Mode = modeFromLabel(prefs.mode.Selected)
	settings.Muted = prefs.muted.Checked
	settings.SuppressFullscreen = prefs.fullscreen.Checked
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func modeLabel(mode notify.Mode) string {
	if mode == notify.ModeBeep {
		return modeLabelBeep
	}
	return modeLabelVoice
}

func modeFromLabel(label string) notify.Mode {
	if label == modeLabelBeep {
		return notify.ModeBeep
	}
	return notify.ModeVoice
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
