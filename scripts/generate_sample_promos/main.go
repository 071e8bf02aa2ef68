// Command generate_sample_promos writes three gzip promo books for local runs.
//
// Each line is CODE,kind[,value]. With PROMO_MIN_MATCH=2 the codes present in
// at least two books resolve; the rest are rejected as unknown.
package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
)

var books = map[string][]string{
	"promobook1.gz": {
		"# percent and flat codes",
		"SUMMER2024,percent,10",
		"TAKE50OFF,flat,50",
		"FREEBIE01,bogo",
		"ONLYONE111,percent,90",
		"NOTHING00,none",
	},
	"promobook2.gz": {
		"SUMMER2024,percent,10",
		"TAKE50OFF,flat,50",
		"WINTER2024,percent,15",
		"ONLYTWO222,flat,999",
		"NOTHING00,none",
	},
	"promobook3.gz": {
		"WINTER2024,percent,15",
		"FREEBIE01,bogo",
		"LOYALTY01,loyalty,5",
		"ONLYTHREE3,bogo",
	},
}

func main() {
	dataDir := flag.String("dir", "data/promos", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	names := make([]string, 0, len(books))
	for name := range books {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(*dataDir, name)
		if err := writeBook(path, books[name]); err != nil {
			log.Fatalf("Failed to create %s: %v", name, err)
		}
		fmt.Printf("Created %s with %d lines\n", path, len(books[name]))
	}

	fmt.Println("\nResolve with PROMO_MIN_MATCH=2:")
	fmt.Println("  - SUMMER2024 (books 1, 2)  10% off")
	fmt.Println("  - TAKE50OFF  (books 1, 2)  $50 off")
	fmt.Println("  - WINTER2024 (books 2, 3)  15% off")
	fmt.Println("  - FREEBIE01  (books 1, 3)  buy one get one free")
	fmt.Println("  - NOTHING00  (books 1, 2)  no discount")
	fmt.Println("\nRejected with PROMO_MIN_MATCH=2:")
	fmt.Println("  - ONLYONE111, ONLYTWO222, ONLYTHREE3, LOYALTY01")
}

func writeBook(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	for _, line := range lines {
		if _, err := fmt.Fprintln(gzipWriter, line); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return nil
}
