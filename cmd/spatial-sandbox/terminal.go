package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// terminal owns the tcell screen as a service so it is restored on every shutdown path
type terminal struct {
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen
	started   bool
}

func newTerminal(newScreen func() (tcell.Screen, error)) *terminal {
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	return &terminal{newScreen: newScreen}
}

func (t *terminal) Name() string           { return "terminal" }
func (t *terminal) Dependencies() []string { return nil }

func (t *terminal) Init(...any) error {
	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	t.screen = screen
	return nil
}

func (t *terminal) Start() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.started = true
	return nil
}

func (t *terminal) Stop() error {
	if t.started {
		t.started = false
		t.screen.Fini()
	}
	return nil
}

// Screen returns the live screen, nil before Init
func (t *terminal) Screen() tcell.Screen {
	return t.screen
}
