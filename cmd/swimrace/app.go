package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/swimrace/audio"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/input"
	"github.com/lixenwraith/swimrace/render"
)

// noticeDuration is how long a popup stays on the bottom row
const noticeDuration = 1500 * time.Millisecond

// app couples the terminal to a running frame loop
// All methods run on the main goroutine
type app struct {
	screen   tcell.Screen
	loop     *engine.FrameLoop
	session  *engine.Session
	renderer *render.TerminalRenderer
	machine  *input.Machine
	sound    *audio.SoundManager

	overlay     render.Overlay
	noticeUntil time.Time
}

func newApp(screen tcell.Screen, loop *engine.FrameLoop, machine *input.Machine, sound *audio.SoundManager) *app {
	return &app{
		screen:   screen,
		loop:     loop,
		session:  loop.Session(),
		renderer: render.NewTerminalRenderer(screen),
		machine:  machine,
		sound:    sound,
		overlay:  render.Overlay{Muted: sound.IsMuted()},
	}
}

// handleEvent applies one terminal event, returning false when the user quits
func (a *app) handleEvent(ev tcell.Event) bool {
	intent := a.machine.Process(ev)
	if intent == nil {
		return true
	}

	switch intent.Type {
	case input.IntentQuit:
		return false
	case input.IntentResize:
		a.screen.Sync()
		a.renderer.UpdateDimensions(a.screen.Size())
	case input.IntentStart:
		a.session.RequestStart()
	case input.IntentPowerUp:
		a.session.RequestPowerUp(intent.PowerUp)
	case input.IntentToggleMute:
		a.sound.ToggleMute()
		a.overlay.Muted = a.sound.IsMuted()
	}
	return true
}

// frame samples held keys, shows at most one notice at a time and draws the latest snapshot
func (a *app) frame(now time.Time) {
	if a.session.State() == engine.StateRacing {
		a.session.SetInput(a.machine.Held(now))
	} else {
		a.machine.Release()
		a.session.SetInput(false, false)
	}

	if !now.Before(a.noticeUntil) {
		a.overlay.Notice = ""
		a.nextNotice(now)
	}

	a.renderer.RenderFrame(a.loop.Latest(), a.overlay)
}

// nextNotice pops queued notices until one has popup text; the rest stay queued
func (a *app) nextNotice(now time.Time) {
	for {
		ev, ok := a.session.NextNotice()
		if !ok {
			return
		}
		if text, show := render.NoticeText(ev); show {
			a.overlay.Notice = text
			a.noticeUntil = now.Add(noticeDuration)
			return
		}
	}
}
