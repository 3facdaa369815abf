package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/preset"
	"github.com/spf13/cobra"
)

// PresetsCommand handles the presets command
type PresetsCommand struct {
	fs filesystem.FileSystem
}

// NewPresetsCommand creates a new presets command
func NewPresetsCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &PresetsCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "presets [folder]",
		Short: "List configuration presets saved next to a folder",
		Long: `Lists the presets stored in the .pwaforge directory next to the given
folder. Presets are created with 'generate --save-preset' and loaded
with 'generate --preset'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name> [folder]",
		Short: "Delete a saved preset",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  cmd.RunDelete,
	}
	cobraCmd.AddCommand(deleteCmd)

	return cobraCmd
}

// Run lists the presets of a folder
func (c *PresetsCommand) Run(cmd *cobra.Command, args []string) error {
	folder := "."
	if len(args) > 0 {
		folder = args[0]
	}

	store, err := c.storeFor(folder)
	if err != nil {
		return err
	}

	presets, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(presets) == 0 {
		_, _ = fmt.Fprintf(out, "No presets found in %s\n", store.Dir())
		return nil
	}

	_, _ = fmt.Fprintf(out, "📋 %d preset(s) in %s\n\n", len(presets), store.Dir())
	for _, p := range presets {
		_, _ = fmt.Fprintf(out, "- %s: %s\n", p.Name, describePreset(p))
	}

	return nil
}

// RunDelete deletes a single preset
func (c *PresetsCommand) RunDelete(cmd *cobra.Command, args []string) error {
	folder := "."
	if len(args) > 1 {
		folder = args[1]
	}

	store, err := c.storeFor(folder)
	if err != nil {
		return err
	}

	if err := store.Delete(args[0]); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted preset %s\n", args[0])
	return nil
}

func (c *PresetsCommand) storeFor(folder string) (*preset.Store, error) {
	folderPath, err := resolveFolder(c.fs, folder)
	if err != nil {
		return nil, err
	}
	return preset.NewStore(c.fs, presetDirFor(folderPath)), nil
}

// describePreset summarizes a preset in one line.
func describePreset(p *preset.Preset) string {
	parts := []string{p.Config.CacheStrategy.String()}

	if p.Config.EnableOffline {
		parts = append(parts, "offline page")
	}
	if p.Config.EnableNotifications {
		parts = append(parts, "notifications")
	}
	if p.Config.StartURL != "" {
		parts = append(parts, "start URL "+p.Config.StartURL)
	}

	return strings.Join(parts, ", ")
}
