package configure

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jakoblorz/go-pwaforge/internal/models"
	"github.com/jakoblorz/go-pwaforge/internal/tui"
)

// RenderSummary renders the closing summary after a bundle was written.
func RenderSummary(s *models.Site, cfg models.Config, a *models.Artifacts, archivePath string) string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render("✓ PWA Bundle Created"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Archive: %s\n", archivePath))
	b.WriteString(fmt.Sprintf("  %d original file(s), %s\n", s.FileCount(), humanize.IBytes(uint64(s.TotalSize))))
	b.WriteString(fmt.Sprintf("  %d generated file(s) including %d icons\n", a.FileCount(), len(a.Icons)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Caching strategy: %s\n", cfg.CacheStrategy))
	b.WriteString(fmt.Sprintf("Start URL: %s\n", cfg.StartURL))
	b.WriteString(tui.SubtleStyle.Render(fmt.Sprintf("Build %s", a.BuildID)))
	b.WriteString("\n")

	return b.String()
}
