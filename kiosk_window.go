package main

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/colette/pkg/assetcache"
	"github.com/borgmon/colette/pkg/clockface"
	"github.com/borgmon/colette/pkg/kiosk"
	"github.com/borgmon/colette/pkg/photos"
)

const (
	confirmLabel  = "C'est fait !"
	confirmedText = "✅ Parfait !"
)

// KioskWindow is the fullscreen display. It implements kiosk.Renderer
// for the controller and photos.Display for the rotator; every UI
// mutation goes through fyne.Do because both drive it from timer
// goroutines.
type KioskWindow struct {
	window fyne.Window
	cache  *assetcache.Cache

	onConfirm func()
	onTap     func()
	onRefresh func()

	// Photo background: two stacked images alternating active/inactive
	// so the next photo is decoded before it becomes visible.
	slides [2]*canvas.Image

	// Normal view widgets
	dayName    *canvas.Text
	dateNumber *canvas.Text
	monthYear  *canvas.Text
	timeText   *canvas.Text
	takenLabel *canvas.Text
	normalView fyne.CanvasObject

	// Alert view widgets
	alertDay      *canvas.Text
	alertTime     *canvas.Text
	confirmButton *widget.Button
	alertView     fyne.CanvasObject

	root *fyne.Container
}

// Callbacks routes user input back to the application. Indirection keeps
// the window valid across a manual refresh, which rebuilds the core.
type Callbacks struct {
	OnConfirm func()
	OnTap     func()
	OnRefresh func()
}

func NewKioskWindow(app fyne.App, cache *assetcache.Cache, cb Callbacks) *KioskWindow {
	w := &KioskWindow{
		cache:     cache,
		onConfirm: cb.OnConfirm,
		onTap:     cb.OnTap,
		onRefresh: cb.OnRefresh,
	}

	w.window = app.NewWindow("Colette")
	w.window.SetFullScreen(true)
	w.window.SetPadded(false)
	w.buildUI()

	return w
}

func (w *KioskWindow) buildUI() {
	for i := range w.slides {
		w.slides[i] = &canvas.Image{FillMode: canvas.ImageFillStretch}
		w.slides[i].Hide()
	}

	w.dayName = bigText("", 42)
	w.dateNumber = bigText("", 96)
	w.monthYear = bigText("", 42)
	w.timeText = bigText("", 120)
	w.takenLabel = bigText("✓ Médicaments pris aujourd'hui", 24)
	w.takenLabel.Color = color.NRGBA{G: 200, B: 120, A: 255}
	w.takenLabel.Hide()

	datePanel := container.NewVBox(
		container.NewCenter(w.dayName),
		container.NewCenter(w.dateNumber),
		container.NewCenter(w.monthYear),
		container.NewCenter(w.timeText),
		container.NewCenter(w.takenLabel),
	)

	refreshButton := widget.NewButton("⟳", func() {
		if w.onRefresh != nil {
			w.onRefresh()
		}
	})
	refreshButton.Importance = widget.LowImportance

	normal := container.NewBorder(
		nil,
		container.NewHBox(widget.NewLabel(""), refreshButton),
		nil, nil,
		container.NewCenter(datePanel),
	)
	w.normalView = newTapCatcher(normal, func() {
		if w.onTap != nil {
			w.onTap()
		}
	})

	alertTitle := bigText("💊 Médicaments", 72)
	w.alertDay = bigText("", 36)
	w.alertTime = bigText("", 64)
	w.confirmButton = widget.NewButton(confirmLabel, func() {
		if w.onConfirm != nil {
			w.onConfirm()
		}
	})
	w.confirmButton.Importance = widget.HighImportance

	w.alertView = container.NewCenter(container.NewVBox(
		container.NewCenter(alertTitle),
		container.NewCenter(w.alertDay),
		container.NewCenter(w.alertTime),
		widget.NewSeparator(),
		container.NewCenter(w.confirmButton),
	))
	w.alertView.Hide()

	w.root = container.NewStack(
		w.slides[0],
		w.slides[1],
		w.normalView,
		w.alertView,
	)
	w.window.SetContent(w.root)
}

func bigText(text string, size float32) *canvas.Text {
	t := canvas.NewText(text, color.White)
	t.TextSize = size
	t.Alignment = fyne.TextAlignCenter
	t.TextStyle = fyne.TextStyle{Bold: true}
	return t
}

// ShowAndRun shows the window and enters the Fyne main loop.
func (w *KioskWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// ShowClock implements kiosk.Renderer.
func (w *KioskWindow) ShowClock(snap clockface.Snapshot) {
	fyne.Do(func() {
		w.dayName.Text = snap.DayName
		w.dateNumber.Text = fmt.Sprintf("%d", snap.DayNumber)
		w.monthYear.Text = snap.MonthYear()
		w.timeText.Text = snap.Time
		w.dayName.Refresh()
		w.dateNumber.Refresh()
		w.monthYear.Refresh()
		w.timeText.Refresh()

		w.alertDay.Text = snap.DayName
		w.alertTime.Text = snap.Time
		w.alertDay.Refresh()
		w.alertTime.Refresh()
	})
}

// ShowView implements kiosk.Renderer.
func (w *KioskWindow) ShowView(view kiosk.ViewState) {
	fyne.Do(func() {
		if view == kiosk.ViewAlert {
			w.normalView.Hide()
			w.alertView.Show()
		} else {
			w.alertView.Hide()
			w.normalView.Show()
		}
	})
}

// ShowTakenToday implements kiosk.Renderer.
func (w *KioskWindow) ShowTakenToday(taken bool) {
	fyne.Do(func() {
		if taken {
			w.takenLabel.Show()
		} else {
			w.takenLabel.Hide()
		}
	})
}

// ShowConfirmFeedback implements kiosk.Renderer.
func (w *KioskWindow) ShowConfirmFeedback(active bool) {
	fyne.Do(func() {
		if active {
			w.confirmButton.SetText(confirmedText)
		} else {
			w.confirmButton.SetText(confirmLabel)
		}
	})
}

// Preload implements photos.Display: fetch and decode on the inactive
// slot while it is hidden. A failed load leaves the previous photo up.
func (w *KioskWindow) Preload(slot photos.Slot, url string) {
	data, err := w.cache.Fetch(context.Background(), url, assetcache.KindImage)
	if err != nil {
		log.Printf("Photo load failed for %s: %v", url, err)
		return
	}

	fyne.Do(func() {
		w.slides[slot].Resource = fyne.NewStaticResource(url, data)
		w.slides[slot].Refresh()
	})
}

// Activate implements photos.Display: swap which slide is visible.
func (w *KioskWindow) Activate(slot photos.Slot) {
	fyne.Do(func() {
		w.slides[slot].Show()
		w.slides[1-int(slot)].Hide()
	})
}

// tapCatcher makes a whole container tappable so the double-tap gesture
// works anywhere on the normal view.
type tapCatcher struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onTap   func()
}

func newTapCatcher(content fyne.CanvasObject, onTap func()) *tapCatcher {
	t := &tapCatcher{content: content, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tapCatcher) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}

func (t *tapCatcher) Tapped(*fyne.PointEvent) {
	t.onTap()
}
