package main

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/borgmon/colette/pkg/alert"
	"github.com/borgmon/colette/pkg/assetcache"
	"github.com/borgmon/colette/pkg/kiosk"
	"github.com/borgmon/colette/pkg/medication"
	"github.com/borgmon/colette/pkg/models"
	"github.com/borgmon/colette/pkg/photos"
	"github.com/borgmon/colette/pkg/store"
	"github.com/borgmon/colette/pkg/timing"
	"github.com/borgmon/colette/pkg/wake"
)

// cacheVersion tags asset cache entries; bumping it invalidates
// everything cached by older releases on activation.
const cacheVersion = "colette-v1.0.0"

type Colette struct {
	app    fyne.App
	clock  timing.Clock
	config *models.Config

	db     *store.DB
	ledger *store.Ledger
	cache  *assetcache.Cache

	window     *KioskWindow
	controller *kiosk.Controller
	signaler   *alert.Signaler
	rotator    *photos.Rotator
	keeper     *wake.Keeper
}

func main() {
	c := &Colette{
		app:   app.NewWithID("com.borgmon.colette"),
		clock: timing.SystemClock{},
	}

	if err := c.initialize(); err != nil {
		log.Fatal(err)
	}

	c.run()
}

func (c *Colette) initialize() error {
	c.config = store.NewConfigStore(c.app).Load()
	if err := c.config.Validate(); err != nil {
		return err
	}

	// Sync autostart state with config on startup
	if err := setupAutostart(c.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	db, err := store.Open(store.Options{Path: store.DefaultPath()})
	if err != nil {
		// An in-memory ledger forgets confirmations across restarts,
		// which errs toward re-alerting rather than staying silent.
		log.Printf("Durable storage unavailable, using in-memory fallback: %v", err)
		db, err = store.Open(store.Options{InMemory: true})
		if err != nil {
			return err
		}
	}
	c.db = db
	c.ledger = store.NewLedger(db)

	c.cache = assetcache.New(db, cacheVersion, nil, c.clock)
	c.cache.Activate()
	go c.cache.Install(context.Background(), c.config.Photos)

	c.window = NewKioskWindow(c.app, c.cache, Callbacks{
		OnConfirm: func() { c.controller.Confirm() },
		OnTap:     func() { c.controller.Tap() },
		OnRefresh: func() { c.refresh() },
	})
	c.buildCore()

	c.keeper = wake.NewKeeper(c.clock)
	c.keeper.Request()
	c.keeper.BindLifecycle(c.app)

	return nil
}

// buildCore wires the scheduling core around the current config. It is
// rebuilt wholesale on manual refresh.
func (c *Colette) buildCore() {
	sched := medication.New(c.config.MedicationTime, c.ledger)
	c.controller = kiosk.New(c.clock, c.ledger, sched, c.window)

	c.signaler = alert.NewSignaler(c.clock, c.controller.IsAlerting,
		alert.NewNotificationStrategy(c.app, func() bool { return c.config.NotificationsEnabled }),
		alert.NewBeepStrategy(),
		alert.NewMelodyStrategy(c.clock, c.controller.IsAlerting),
	)
	c.controller.AttachSignaler(c.signaler)

	c.rotator = photos.NewRotator(c.config.Photos, c.config.RotationInterval(), c.clock, c.window)
}

func (c *Colette) run() {
	c.controller.Start()
	c.rotator.Start()
	c.window.ShowAndRun()

	// ShowAndRun returns when the window closes; flush storage on the
	// way out.
	c.cache.Close()
	if err := c.db.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}

// refresh tears the scheduling core down and rebuilds it from a freshly
// loaded config, the moral equivalent of the old page-reload button.
func (c *Colette) refresh() {
	log.Println("Manual refresh requested")

	c.controller.Stop()
	c.rotator.Stop()
	c.signaler.Stop()

	if cfg := store.NewConfigStore(c.app).Load(); cfg.Validate() == nil {
		c.config = cfg
	} else {
		log.Println("Refreshed config invalid, keeping previous one")
	}

	c.buildCore()
	c.controller.Start()
	c.rotator.Start()
	c.controller.SwitchTo(kiosk.ViewNormal)
}
