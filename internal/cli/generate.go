package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/models"
	"github.com/jakoblorz/go-pwaforge/internal/preset"
	"github.com/jakoblorz/go-pwaforge/internal/session"
	"github.com/jakoblorz/go-pwaforge/internal/site"
	"github.com/jakoblorz/go-pwaforge/internal/tui/configure"
	"github.com/spf13/cobra"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	fs filesystem.FileSystem
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &GenerateCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "generate [folder]",
		Short: "Generate a PWA bundle from a static site folder",
		Long: `Generate a PWA bundle from a static site folder.

Reads the folder, asks for the app configuration (or takes it from flags
and presets with --no-input) and writes <name>-pwa.zip next to the folder.`,
		Example: `  # Interactive run against ./mysite
  pwaforge generate ./mysite

  # Non-interactive, flags fill the configuration
  pwaforge generate ./mysite --no-input --name "My App" --strategy network-first

  # Reuse a saved preset, store the result elsewhere
  pwaforge generate ./mysite --no-input --preset kiosk --output ./build`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("name", "", "App name shown on the install prompt")
	cobraCmd.Flags().String("short-name", "", "Name shown under the home screen icon")
	cobraCmd.Flags().String("app-id", "", "Stable app identity (defaults to the start URL)")
	cobraCmd.Flags().String("description", "", "App description")
	cobraCmd.Flags().String("theme-color", "", "Theme color (hex)")
	cobraCmd.Flags().String("background-color", "", "Splash screen background color (hex)")
	cobraCmd.Flags().String("display", "", "Display mode: standalone, fullscreen, minimal-ui or browser")
	cobraCmd.Flags().String("orientation", "", "Orientation: any, portrait or landscape")
	cobraCmd.Flags().String("start-url", "", "URL the app opens at")
	cobraCmd.Flags().String("scope", "", "URL prefix the service worker controls")
	cobraCmd.Flags().String("strategy", "", "Caching strategy: cache-first, network-first or stale-while-revalidate")
	cobraCmd.Flags().Bool("offline", true, "Include a themed offline fallback page")
	cobraCmd.Flags().Bool("notifications", false, "Include push notification handlers")
	cobraCmd.Flags().String("icon", "", "Source image resampled into the icon set")
	cobraCmd.Flags().String("output", "", "Directory the archive is written to (default: next to the folder)")
	cobraCmd.Flags().String("preset", "", "Load configuration from a saved preset")
	cobraCmd.Flags().String("save-preset", "", "Save the run's configuration under this preset name")
	cobraCmd.Flags().Bool("no-input", false, "Skip the interactive forms")

	return cobraCmd
}

// Run executes the generate command
func (c *GenerateCommand) Run(cmd *cobra.Command, args []string) error {
	folder := "."
	if len(args) > 0 {
		folder = args[0]
	}

	folderPath, err := resolveFolder(c.fs, folder)
	if err != nil {
		return err
	}

	sess := session.New(c.fs, session.WithIngester(
		site.NewIngester(c.fs, site.WithOutput(cmd.OutOrStdout()))))

	if err := sess.Ingest(folderPath); err != nil {
		return fmt.Errorf("failed to ingest folder: %w", err)
	}

	cfg := sess.Config
	store := preset.NewStore(c.fs, presetDirFor(folderPath))

	if presetName, _ := cmd.Flags().GetString("preset"); presetName != "" {
		loaded, err := store.Load(presetName)
		if err != nil {
			return fmt.Errorf("failed to load preset: %w", err)
		}
		cfg = loaded.Config
	}

	if err := applyConfigFlags(cmd, &cfg); err != nil {
		return err
	}

	noInput, _ := cmd.Flags().GetBool("no-input")
	if !noInput {
		result, err := configure.NewFlow(cfg).Run()
		if err != nil {
			return fmt.Errorf("failed to run configuration form: %w", err)
		}
		if result == nil {
			return nil
		}
		cfg = *result
	}

	if iconPath, _ := cmd.Flags().GetString("icon"); iconPath != "" {
		data, err := c.fs.ReadFile(iconPath)
		if err != nil {
			return fmt.Errorf("failed to read icon %s: %w", iconPath, err)
		}
		sess.SetIconSource(data)
	}

	sess.Configure(cfg)

	if err := sess.Generate(); err != nil {
		return fmt.Errorf("failed to generate bundle: %w", err)
	}

	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" {
		outDir = filepath.Dir(folderPath)
	}

	archivePath, err := sess.Package(outDir)
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	if saveName, _ := cmd.Flags().GetString("save-preset"); saveName != "" {
		if err := store.Save(&preset.Preset{Name: saveName, Config: cfg}); err != nil {
			return fmt.Errorf("failed to save preset: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved preset %s\n", saveName)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), configure.RenderSummary(sess.Site, cfg, sess.Artifacts, archivePath))

	return nil
}

// applyConfigFlags overlays explicitly set flags onto the configuration.
// Unset flags leave the seeded or preset value alone.
func applyConfigFlags(cmd *cobra.Command, cfg *models.Config) error {
	flags := cmd.Flags()

	if flags.Changed("name") {
		cfg.Name, _ = flags.GetString("name")
	}
	if flags.Changed("short-name") {
		cfg.ShortName, _ = flags.GetString("short-name")
	}
	if flags.Changed("app-id") {
		cfg.AppID, _ = flags.GetString("app-id")
	}
	if flags.Changed("description") {
		cfg.Description, _ = flags.GetString("description")
	}
	if flags.Changed("theme-color") {
		cfg.ThemeColor, _ = flags.GetString("theme-color")
	}
	if flags.Changed("background-color") {
		cfg.BackgroundColor, _ = flags.GetString("background-color")
	}
	if flags.Changed("display") {
		cfg.Display, _ = flags.GetString("display")
	}
	if flags.Changed("orientation") {
		cfg.Orientation, _ = flags.GetString("orientation")
	}
	if flags.Changed("start-url") {
		cfg.StartURL, _ = flags.GetString("start-url")
	}
	if flags.Changed("scope") {
		cfg.Scope, _ = flags.GetString("scope")
	}

	if flags.Changed("strategy") {
		raw, _ := flags.GetString("strategy")
		parsed, err := models.ParseCacheStrategy(raw)
		if err != nil {
			return err
		}
		cfg.CacheStrategy = parsed
	}
	if flags.Changed("offline") {
		cfg.EnableOffline, _ = flags.GetBool("offline")
	}
	if flags.Changed("notifications") {
		cfg.EnableNotifications, _ = flags.GetBool("notifications")
	}

	return nil
}
