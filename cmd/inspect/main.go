// Command inspect prints the text and detected tables of a PDF page, the same input the
// extraction service sees. Use it to check why a statement layout is not recognized.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Aashish23092/ledger-extraction/client"
	"github.com/Aashish23092/ledger-extraction/service"
	"github.com/Aashish23092/ledger-extraction/utils/ledger"
)

func main() {
	page := flag.Int("page", 1, "page to inspect (1-based, 0 for all pages)")
	password := flag.String("password", "", "user password of an encrypted PDF")
	confidence := flag.Float64("confidence", 0.5, "table detector minimum confidence")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: inspect [-page N] [-password P] file.pdf\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read %s: %v", flag.Arg(0), err)
	}

	processor := service.NewPDFProcessor(client.NewTableClient(*confidence))
	doc, err := processor.ExtractDocument(data, *password)
	if err != nil {
		log.Fatalf("Failed to extract %s: %v", flag.Arg(0), err)
	}

	classifier := ledger.NewClassifier(nil)
	found := false
	for _, p := range doc.Pages {
		if *page != 0 && p.Number != *page {
			continue
		}
		found = true

		fmt.Printf("--- Page %d Text ---\n%s\n", p.Number, p.Text)
		fmt.Printf("\n--- Page %d Tables ---\n", p.Number)
		if len(p.Tables) == 0 {
			fmt.Printf("No tables found on page %d.\n", p.Number)
		}
		for i, t := range p.Tables {
			fmt.Printf("\n--- Table %d (%d rows, %s) ---\n", i+1, len(t), classifier.ClassifyTable(t))
			for _, row := range t {
				fmt.Printf("[%s]\n", strings.Join(quote(row), ", "))
			}
		}
	}
	if !found {
		log.Fatalf("%s has %d pages, no page %d", flag.Arg(0), len(doc.Pages), *page)
	}
}

func quote(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = fmt.Sprintf("%q", c)
	}
	return out
}
