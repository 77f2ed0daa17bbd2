package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/mrlokans/kobo-export/internal/config"
	"github.com/mrlokans/kobo-export/internal/kobo"
)

// ListBooksCommand prints a table of all books with annotations
type ListBooksCommand struct {
	DatabasePath string
}

func NewListBooksCommand() *ListBooksCommand {
	return &ListBooksCommand{}
}

func (cmd *ListBooksCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the KoboReader.sqlite file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List all books with annotations or highlights.\n\n")
		fmt.Fprintf(os.Stderr, "The Kobo database is typically found at:\n")
		fmt.Fprintf(os.Stderr, "  /Volumes/KOBOeReader/.kobo/KoboReader.sqlite\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ListBooksCommand) Run() error {
	reader, err := kobo.NewReader(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	books, err := reader.ListBooks()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "AUTHOR", "TITLE"})
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, book := range books {
		author := book.Author
		if author == "" {
			author = "Unknown"
		}
		table.Append([]string{strconv.Itoa(book.ID), author, book.Title})
	}

	table.Render()
	return nil
}
