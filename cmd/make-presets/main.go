package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"consumption-sim/internal/data"
)

// make-presets writes the built-in scenario presets to the presets JSON
// file the API serves, optionally keeping extra presets from an existing
// file.
func main() {
	var (
		outputPath = flag.String("output", "", "Output file path (default: ./data/presets.json)")
		seedFile   = flag.String("seed", "", "Path to existing presets file to keep custom entries from")
	)
	flag.Parse()

	if *outputPath == "" {
		*outputPath = data.GetDefaultPresetsPath()
	}

	presets := data.BuiltinPresets()
	known := map[string]bool{}
	for _, p := range presets {
		known[p.Name] = true
	}

	if *seedFile != "" {
		list, err := data.LoadPresets(*seedFile)
		if err != nil {
			log.Fatalf("Failed to load seed presets: %v", err)
		}
		kept := 0
		for _, p := range list.Presets {
			if !known[p.Name] {
				presets = append(presets, p)
				kept++
			}
		}
		fmt.Printf("Kept %d custom presets from %s\n", kept, *seedFile)
	}

	list := &data.PresetList{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Presets:   presets,
	}
	if err := data.SavePresets(list, *outputPath); err != nil {
		log.Fatalf("Failed to write presets: %v", err)
	}
	fmt.Printf("Wrote %d presets to %s\n", len(presets), *outputPath)
}
