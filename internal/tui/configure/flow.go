// Package configure drives the interactive configuration pages shown
// between ingesting a folder and generating its bundle.
package configure

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-pwaforge/internal/models"
	"github.com/jakoblorz/go-pwaforge/internal/tui"
)

// Flow walks the user through the configuration pages using huh forms.
type Flow struct {
	initial models.Config
	theme   *huh.Theme
}

// NewFlow constructs a Flow pre-populated with the given configuration,
// typically the defaults seeded from the folder's metadata.
func NewFlow(initial models.Config) *Flow {
	return &Flow{
		initial: initial,
		theme:   tui.NewHuhTheme(),
	}
}

// Run executes the pages sequentially; returns nil config on user abort.
func (f *Flow) Run() (*models.Config, error) {
	cfg := f.initial

	if err := f.identityPage(&cfg); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if err := f.presentationPage(&cfg); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if err := f.routingPage(&cfg); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if err := f.behaviorPage(&cfg); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	return &cfg, nil
}

func (f *Flow) identityPage(cfg *models.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("App name").
				Placeholder("My App").
				Value(&cfg.Name),
			huh.NewInput().
				Title("Short name").
				Description("Shown under the home screen icon.").
				Value(&cfg.ShortName),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&cfg.Description),
		).
			Title("App Identity (1/4)").
			Description("How the installed app presents itself."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	return form.Run()
}

func (f *Flow) presentationPage(cfg *models.Config) error {
	displayOpts := make([]huh.Option[string], 0, len(models.DisplayModes()))
	for _, mode := range models.DisplayModes() {
		displayOpts = append(displayOpts, huh.NewOption(mode, mode))
	}

	orientationOpts := make([]huh.Option[string], 0, len(models.OrientationModes()))
	for _, mode := range models.OrientationModes() {
		orientationOpts = append(orientationOpts, huh.NewOption(mode, mode))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Theme color").
				Description("Hex color for the browser chrome, e.g. #317efb.").
				Value(&cfg.ThemeColor),
			huh.NewInput().
				Title("Background color").
				Description("Splash screen background.").
				Value(&cfg.BackgroundColor),
			huh.NewSelect[string]().
				Title("Display mode").
				Options(displayOpts...).
				Value(&cfg.Display),
			huh.NewSelect[string]().
				Title("Orientation").
				Options(orientationOpts...).
				Value(&cfg.Orientation),
		).
			Title("Presentation (2/4)").
			Description("Colors and window behavior of the installed app."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	return form.Run()
}

func (f *Flow) routingPage(cfg *models.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start URL").
				Description("Where the app opens when launched.").
				Value(&cfg.StartURL),
			huh.NewInput().
				Title("Scope").
				Description("URL prefix the service worker controls.").
				Value(&cfg.Scope),
			huh.NewInput().
				Title("App ID").
				Description("Stable identity across renames. Defaults to the start URL.").
				Value(&cfg.AppID),
		).
			Title("Routing (3/4)").
			Description("Derived from the folder name unless you change them."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	return form.Run()
}

func (f *Flow) behaviorPage(cfg *models.Config) error {
	strategy := cfg.CacheStrategy.String()

	opts := []huh.Option[string]{
		huh.NewOption("cache-first — Serve from cache, hit the network only on a miss", string(models.CacheFirst)),
		huh.NewOption("network-first — Always try the network, fall back to cache", string(models.NetworkFirst)),
		huh.NewOption("stale-while-revalidate — Serve cache instantly, refresh in the background", string(models.StaleWhileRevalidate)),
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Caching strategy").
				Options(opts...).
				Value(&strategy),
			huh.NewConfirm().
				Title("Offline fallback page?").
				Description("Serves a themed offline.html when navigation fails.").
				Affirmative("Yes").
				Negative("No").
				Value(&cfg.EnableOffline),
			huh.NewConfirm().
				Title("Push notification handlers?").
				Description("Adds push and notification-click handlers to the worker.").
				Affirmative("Yes").
				Negative("No").
				Value(&cfg.EnableNotifications),
		).
			Title("Behavior (4/4)").
			Description("How the service worker answers fetches."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return err
	}

	parsed, err := models.ParseCacheStrategy(strategy)
	if err != nil {
		return fmt.Errorf("failed to parse caching strategy: %w", err)
	}
	cfg.CacheStrategy = parsed

	return nil
}
