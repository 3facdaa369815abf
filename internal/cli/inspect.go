package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/models"
	"github.com/jakoblorz/go-pwaforge/internal/site"
	"github.com/spf13/cobra"
)

// InspectCommand handles the inspect command
type InspectCommand struct {
	fs filesystem.FileSystem
}

// InspectFile is a single file in the inspect output
type InspectFile struct {
	Path     string `json:"path"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Role     string `json:"role,omitempty"`
}

// InspectOutput is the complete inspect output
type InspectOutput struct {
	Folder         string        `json:"folder"`
	Name           string        `json:"name"`
	SanitizedName  string        `json:"sanitizedName"`
	FileCount      int           `json:"fileCount"`
	TotalSize      int64         `json:"totalSize"`
	TotalSizeHuman string        `json:"totalSizeHuman"`
	OverWarnLimit  bool          `json:"overWarnLimit"`
	Files          []InspectFile `json:"files"`
}

// NewInspectCommand creates a new inspect command
func NewInspectCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &InspectCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "inspect [folder]",
		Short: "Show how a folder would be ingested",
		Long: `Shows the folder as the generator sees it: every file with its MIME
type and size, which files are classified as the root document, primary
stylesheet and primary script, and whether the folder clears the size
limits. Nothing is generated.`,
		Example: `  # Human-readable tree
  pwaforge inspect ./mysite

  # JSON for scripting
  pwaforge inspect ./mysite --format json > site.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the inspect command
func (c *InspectCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	folder := "."
	if len(args) > 0 {
		folder = args[0]
	}

	folderPath, err := resolveFolder(c.fs, folder)
	if err != nil {
		return err
	}

	// The large-folder warning would corrupt a JSON stream, so it only
	// passes through in text mode. The verdict itself lands in the output
	// either way.
	warnOut := cmd.OutOrStdout()
	if format == "json" {
		warnOut = io.Discard
	}

	ingester := site.NewIngester(c.fs, site.WithOutput(warnOut), site.WithWarnPause(0))
	ingested, err := ingester.Scan(folderPath)
	if err != nil {
		return fmt.Errorf("failed to ingest folder: %w", err)
	}

	if format == "json" {
		return c.outputJSON(cmd.OutOrStdout(), folderPath, ingested)
	}
	return c.outputText(cmd.OutOrStdout(), ingested)
}

// outputText renders the folder as a box-drawing tree with a summary.
func (c *InspectCommand) outputText(w io.Writer, s *models.Site) error {
	_, _ = fmt.Fprintf(w, "📦 %s (%s)\n\n", s.RootName, s.SanitizedName)

	root := buildFileTree(s.Files)
	var b strings.Builder
	writeFileTree(&b, root.children, "")
	_, _ = fmt.Fprint(w, b.String())

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Summary:")
	_, _ = fmt.Fprintf(w, "- %d file(s), %s total\n", s.FileCount(), humanize.IBytes(uint64(s.TotalSize)))
	if s.TotalSize > site.WarnTotalSize {
		_, _ = fmt.Fprintf(w, "- over the %s warning threshold, generation will pause to warn\n",
			humanize.IBytes(uint64(site.WarnTotalSize)))
	} else {
		_, _ = fmt.Fprintf(w, "- within the %s limit\n", humanize.IBytes(uint64(site.MaxTotalSize)))
	}

	return nil
}

// outputJSON renders the same information as JSON.
func (c *InspectCommand) outputJSON(w io.Writer, folderPath string, s *models.Site) error {
	output := InspectOutput{
		Folder:         folderPath,
		Name:           s.RootName,
		SanitizedName:  s.SanitizedName,
		FileCount:      s.FileCount(),
		TotalSize:      s.TotalSize,
		TotalSizeHuman: humanize.IBytes(uint64(s.TotalSize)),
		OverWarnLimit:  s.TotalSize > site.WarnTotalSize,
		Files:          make([]InspectFile, 0, len(s.Files)),
	}

	for _, f := range s.Files {
		output.Files = append(output.Files, InspectFile{
			Path:     f.Path,
			MimeType: f.MimeType,
			Size:     f.Size,
			Role:     fileRole(&f),
		})
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(w, string(jsonData))
	return nil
}

func fileRole(f *models.FileRecord) string {
	switch {
	case f.IsRootDocument:
		return "root-document"
	case f.IsPrimaryCSS:
		return "primary-css"
	case f.IsPrimaryJS:
		return "primary-js"
	}
	return ""
}

func fileLabel(f *models.FileRecord) string {
	switch {
	case f.IsRootDocument:
		return "root document"
	case f.IsPrimaryCSS:
		return "primary stylesheet"
	case f.IsPrimaryJS:
		return "primary script"
	}
	return ""
}

// fileTreeNode is one level of the rendered folder tree.
type fileTreeNode struct {
	name     string
	file     *models.FileRecord
	children []*fileTreeNode
}

func (n *fileTreeNode) child(name string) *fileTreeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}

	c := &fileTreeNode{name: name}
	n.children = append(n.children, c)
	return c
}

// buildFileTree nests the flat record paths into directories.
func buildFileTree(files []models.FileRecord) *fileTreeNode {
	root := &fileTreeNode{}

	for i := range files {
		segments := strings.Split(files[i].Path, "/")
		node := root
		for _, segment := range segments {
			node = node.child(segment)
		}
		node.file = &files[i]
	}

	sortFileTree(root)
	return root
}

// sortFileTree orders each level directories first, then lexicographically.
func sortFileTree(node *fileTreeNode) {
	sort.SliceStable(node.children, func(i, j int) bool {
		di := node.children[i].file == nil
		dj := node.children[j].file == nil
		if di != dj {
			return di
		}
		return node.children[i].name < node.children[j].name
	})

	for _, c := range node.children {
		sortFileTree(c)
	}
}

func writeFileTree(b *strings.Builder, nodes []*fileTreeNode, prefix string) {
	for i, node := range nodes {
		connector := "├─"
		childPrefix := prefix + "│  "
		if i == len(nodes)-1 {
			connector = "└─"
			childPrefix = prefix + "   "
		}

		if node.file == nil {
			fmt.Fprintf(b, "%s%s %s/\n", prefix, connector, node.name)
			writeFileTree(b, node.children, childPrefix)
			continue
		}

		line := fmt.Sprintf("%s%s %s (%s, %s)", prefix, connector, node.name,
			node.file.MimeType, humanize.IBytes(uint64(node.file.Size)))
		if label := fileLabel(node.file); label != "" {
			line += " - " + label
		}
		b.WriteString(line + "\n")
	}
}
