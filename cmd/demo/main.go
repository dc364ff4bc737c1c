package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"render-demo/config"
	"render-demo/game"
	"render-demo/input"
	"render-demo/internal/opengl"
	"render-demo/internal/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	savePath := flag.String("save", "", "write the scene state to this YAML file on exit")
	flag.Parse()

	if err := run(*configPath, *savePath); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(configPath, savePath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	bindings, err := cfg.InputBindings()
	if err != nil {
		return err
	}

	win, err := window.NewWindow(window.Config{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	device, err := opengl.NewDevice(win)
	if err != nil {
		return err
	}
	defer device.Destroy()

	fbW, fbH := win.GetFramebufferSize()
	device.SetViewport(fbW, fbH)

	vs, err := device.LoadVertexShader(cfg.Shaders.Vertex)
	if err != nil {
		return err
	}
	defer vs.Release()
	ps, err := device.LoadPixelShader(cfg.Shaders.Pixel)
	if err != nil {
		return err
	}
	defer ps.Release()

	g := game.New(device, vs, ps, cfg)
	if err := g.Init(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer g.Destroy()
	g.OnResize(fbW, fbH)

	win.SetResizeCallback(func(width, height int) {
		device.SetViewport(width, height)
		g.OnResize(width, height)
	})
	win.SetMouseButtonCallback(func(button int, pressed bool, x, y float64) {
		if button != input.MouseLeft && button != input.MouseRight {
			return
		}
		if pressed {
			g.OnMouseDown(x, y)
		} else {
			g.OnMouseUp()
		}
	})
	win.SetCursorPosCallback(g.OnMouseMove)

	slog.Info("demo started",
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"entities", len(g.Scene().Entities()))

	title := newTitleStats(cfg.Window.Title)
	start := win.Time()
	previous := start

	for !win.ShouldClose() {
		win.PollEvents()

		now := win.Time()
		deltaTime := float32(now - previous)
		totalTime := float32(now - start)
		previous = now

		g.Update(deltaTime, totalTime, input.Poll(win, bindings))
		if closeWhenDone(win, g) {
			continue
		}
		if err := g.Draw(); err != nil {
			return err
		}

		if text, ok := title.Frame(now, g.Stats()); ok {
			win.SetTitle(text)
		}
	}

	if savePath != "" {
		if err := g.Snapshot().Save(savePath); err != nil {
			return err
		}
		slog.Info("scene saved", "path", savePath)
	}

	slog.Info("exiting")
	return nil
}

// closeWhenDone flags the window for closing once the game has seen a quit
// request, so the frame loop ends through ShouldClose.
func closeWhenDone(w interface{ Close() }, g *game.Game) bool {
	if !g.Done() {
		return false
	}
	w.Close()
	return true
}
