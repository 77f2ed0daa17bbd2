package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/kobo-export/internal/config"
	"github.com/mrlokans/kobo-export/internal/exporters"
	"github.com/mrlokans/kobo-export/internal/kobo"
)

// ExportCommand renders a book's annotations as a markdown document
type ExportCommand struct {
	DatabasePath string
	BookID       int
	Debug        bool
	Colors       string
	NoColors     bool
	OutputPath   string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the KoboReader.sqlite file")
	fs.IntVar(&cmd.BookID, "bookid", 0, "Export the book with this ID (see the list command)")
	fs.BoolVar(&cmd.Debug, "debug", cfg.Export.Debug, "Include debug metadata per annotation")
	fs.StringVar(&cmd.Colors, "colors", cfg.Export.Colors, "Comma-separated marker labels for color codes 0..N")
	fs.BoolVar(&cmd.NoColors, "no-colors", cfg.Export.NoColors, "Don't show color markers")
	fs.StringVar(&cmd.OutputPath, "output", cfg.Export.OutputPath, "Write the document to this file instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -bookid <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export a book's annotations and highlights as markdown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Export book 1 to stdout:\n")
		fmt.Fprintf(os.Stderr, "  %s export -bookid 1 -db KoboReader.sqlite\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Export with custom markers and debug metadata:\n")
		fmt.Fprintf(os.Stderr, "  %s export -bookid 1 -colors \"yellow,red,blue,green\" -debug\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.BookID == 0 {
		return fmt.Errorf("required flag -bookid not provided")
	}

	return nil
}

// colorLabels resolves the marker configuration from the parsed flags.
func (cmd *ExportCommand) colorLabels() []string {
	if cmd.NoColors || cmd.Colors == "" {
		return nil
	}
	labels := strings.Split(cmd.Colors, ",")
	for i := range labels {
		labels[i] = strings.TrimSpace(labels[i])
	}
	return labels
}

func (cmd *ExportCommand) Run() error {
	reader, err := kobo.NewReader(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	book, err := reader.GetBook(cmd.BookID)
	if err != nil {
		return err
	}

	annotations, err := reader.GetAnnotations(cmd.BookID)
	if err != nil {
		return err
	}

	renderer := exporters.NewMarkdownRenderer(exporters.Options{
		ColorLabels: cmd.colorLabels(),
		NoColors:    cmd.NoColors,
		Debug:       cmd.Debug,
	})
	document := renderer.RenderDocument(book, annotations)

	if cmd.OutputPath != "" {
		if err := os.WriteFile(cmd.OutputPath, []byte(document), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	fmt.Print(document)
	return nil
}
