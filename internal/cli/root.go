package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/preset"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pwaforge",
		Short: "Turn a static site folder into an installable PWA bundle",
		Long: `A CLI tool that converts a static web-app folder into a Progressive
Web App bundle: manifest, service worker, icons, injected HTML and a ZIP
archive ready to deploy.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `pwaforge generate` when no subcommand is provided.
			return (&GenerateCommand{fs: fs}).Run(cmd, args)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCommand(fs))
	rootCmd.AddCommand(NewInspectCommand(fs))
	rootCmd.AddCommand(NewPresetsCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// resolveFolder turns a folder argument into an absolute path.
func resolveFolder(fs filesystem.FileSystem, folder string) (string, error) {
	if filepath.IsAbs(folder) {
		return filepath.Clean(folder), nil
	}

	cwd, err := fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", folder, err)
	}

	return filepath.Join(cwd, folder), nil
}

// presetDirFor returns the preset directory kept next to a site folder.
func presetDirFor(folderPath string) string {
	return filepath.Join(filepath.Dir(folderPath), preset.DirName)
}
