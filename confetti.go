package main

import (
	"image/color"
	"math/rand"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	confettiCount    = 50
	confettiLifetime = 4 * time.Second
	confettiStagger  = 20 * time.Millisecond
)

var confettiColors = []color.NRGBA{
	{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff},
	{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
	{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff},
	{R: 0x34, G: 0x98, B: 0xdb, A: 0xff},
	{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
	{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
}

// Confetti implements kiosk.Renderer: a celebratory burst over the
// whole window that cleans itself up after a fixed lifetime.
func (w *KioskWindow) Confetti() {
	fyne.Do(func() {
		layer := container.NewWithoutLayout()
		w.root.Add(layer)

		size := w.window.Canvas().Size()
		for i := 0; i < confettiCount; i++ {
			delay := time.Duration(i) * confettiStagger
			time.AfterFunc(delay, func() {
				fyne.Do(func() {
					dropParticle(layer, size)
				})
			})
		}

		time.AfterFunc(confettiLifetime, func() {
			fyne.Do(func() {
				w.root.Remove(layer)
				w.root.Refresh()
			})
		})
	})
}

func dropParticle(layer *fyne.Container, bounds fyne.Size) {
	c := confettiColors[rand.Intn(len(confettiColors))]

	var particle fyne.CanvasObject
	if rand.Float64() > 0.5 {
		particle = canvas.NewCircle(c)
	} else {
		particle = canvas.NewRectangle(c)
	}
	particle.Resize(fyne.NewSize(10, 10))

	x := rand.Float32() * bounds.Width
	start := fyne.NewPos(x, -12)
	end := fyne.NewPos(x, bounds.Height+12)
	particle.Move(start)
	layer.Add(particle)

	fall := float32(2 + 2*rand.Float64()) // seconds
	anim := canvas.NewPositionAnimation(start, end, time.Duration(fall*float32(time.Second)), particle.Move)
	anim.Start()
}
