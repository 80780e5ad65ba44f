package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"sketch/diagram"
	"sketch/export"
	"sketch/session"
	"sketch/storage"
)

func main() {
	var (
		exportFormat = flag.String("export", "", "Export format: text, json, png (non-interactive)")
		outputFile   = flag.String("o", "", "Output file (default: stdout, or <name>.<ext> for png)")
		dbPath       = flag.String("db", "", "SQLite database for saved diagrams")
		listDocs     = flag.Bool("list", false, "List diagrams in the database and exit")
		docName      = flag.String("name", "", "Diagram name to load from the database")
		help         = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [diagram.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An interactive monospaced-grid diagram editor.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # Start the editor with a blank grid\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s drawing.json             # Open a saved diagram\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -export text drawing.json  # Print the drawing as plain text\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -export png -o out.png drawing.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db sketches.db -name plan # Open a diagram stored in SQLite\n", os.Args[0])
	}
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	cfg := loadConfig()

	var store session.Store
	if *dbPath != "" || cfg.Database != "" {
		path := *dbPath
		if path == "" {
			path = cfg.Database
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		store = db

		if *listDocs {
			names, err := db.List()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error listing diagrams: %v\n", err)
				os.Exit(1)
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return
		}
	} else if cfg.SaveDirectory != "" {
		fs, err := storage.NewFileStore(cfg.SaveDirectory)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening save directory: %v\n", err)
			os.Exit(1)
		}
		store = fs
	}

	filename := flag.Arg(0)

	data, err := loadDocumentData(filename, *docName, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *exportFormat != "" {
		if err := runExport(data, *exportFormat, *outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(cfg, store, data, saveName(filename, *docName)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDocumentData reads the serialized diagram from the file argument or
// the named store entry. Returns nil when starting from a blank document.
func loadDocumentData(filename, name string, store session.Store) ([]byte, error) {
	switch {
	case filename != "":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		return data, nil
	case name != "":
		if store == nil {
			return nil, fmt.Errorf("-name requires -db or a configured save directory")
		}
		data, err := store.Load(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %q: %w", name, err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

// saveName picks the store key used for explicit saves from the editor.
func saveName(filename, name string) string {
	if name != "" {
		return name
	}
	if filename != "" {
		base := filename
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}
		return strings.TrimSuffix(base, ".json")
	}
	return session.AutosaveName
}

func runExport(data []byte, format, outputFile string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(f)
	if err != nil {
		return err
	}

	doc := diagram.NewDocument()
	if data != nil {
		var errs []error
		doc, _, errs = diagram.Decode(data)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
		}
		if doc == nil {
			return fmt.Errorf("could not parse diagram")
		}
	}

	out, err := exporter.Export(doc)
	if err != nil {
		return err
	}

	if outputFile == "" {
		if f == export.FormatPNG {
			return fmt.Errorf("-export png requires -o")
		}
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(outputFile, out, 0644)
}
