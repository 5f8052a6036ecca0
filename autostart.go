package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// setupAutostart syncs the login-item registration with the config. A
// kiosk that does not come back by itself after a power cut is a kiosk
// somebody has to remember to restart.
func setupAutostart(enable bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return err
	}

	app := &autostart.App{
		Name:        "colette",
		DisplayName: "Colette",
		Exec:        []string{execPath},
	}

	if enable {
		if !app.IsEnabled() {
			if err := app.Enable(); err != nil {
				log.Printf("Failed to enable autostart: %v", err)
				return err
			}
			log.Println("Autostart enabled")
		}
	} else {
		if app.IsEnabled() {
			if err := app.Disable(); err != nil {
				log.Printf("Failed to disable autostart: %v", err)
				return err
			}
			log.Println("Autostart disabled")
		}
	}

	return nil
}
