// Package wake keeps the kiosk screen from blanking. Everything here is
// best-effort: a display that occasionally sleeps is annoying, a crashed
// reminder app is dangerous, so no failure propagates.
package wake

import (
	"log"
	"os/exec"
	"runtime"
	"time"

	"fyne.io/fyne/v2"

	"github.com/borgmon/colette/pkg/timing"
)

// nudgeInterval paces the screensaver-reset fallback used when the
// blanking settings could not be disabled outright.
const nudgeInterval = time.Minute

// Keeper issues the stay-awake requests.
type Keeper struct {
	clock timing.Clock
	nudge timing.Handle
	run   func(name string, args ...string) error
}

func NewKeeper(clock timing.Clock) *Keeper {
	return &Keeper{
		clock: clock,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Request asks the platform to keep the display on. If the direct
// request fails, a periodic screensaver nudge is started instead, the
// desktop equivalent of the old invisible-looping-video trick.
func (k *Keeper) Request() {
	if runtime.GOOS != "linux" {
		log.Println("Display keep-awake not supported on this platform")
		return
	}

	if err := k.run("xset", "s", "off", "-dpms"); err != nil {
		log.Printf("Could not disable display blanking: %v", err)
		k.startNudge()
		return
	}
	log.Println("Display blanking disabled")
}

func (k *Keeper) startNudge() {
	if k.nudge != nil {
		return
	}
	k.nudge = timing.Repeat(k.clock, nudgeInterval, func() {
		if err := k.run("xset", "s", "reset"); err != nil {
			log.Printf("Screensaver nudge failed: %v", err)
		}
	})
}

// Stop cancels the nudge fallback.
func (k *Keeper) Stop() {
	if k.nudge != nil {
		k.nudge.Stop()
		k.nudge = nil
	}
}

// BindLifecycle re-requests the wake state whenever the app returns to
// the foreground.
func (k *Keeper) BindLifecycle(app fyne.App) {
	app.Lifecycle().SetOnEnteredForeground(func() {
		k.Request()
	})
}
