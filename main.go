package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"iconforge/common"
	"iconforge/config"
	"iconforge/generator"
	"iconforge/watcher"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	mode := flag.String("mode", "", "convert | derive (prompts when empty)")
	watch := flag.Bool("watch", false, "keep running and regenerate when source images change")
	dir := flag.String("dir", "", "working directory (overrides config)")
	flag.Parse()

	fmt.Println("iconforge - favicon & preview asset generator")
	fmt.Println("=============================================")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *dir != "" {
		cfg.Source.Dir = *dir
	}

	selected := *mode
	if selected == "" {
		selected = promptMode(cfg)
	}

	gen := generator.New(cfg)

	switch selected {
	case "convert":
		runConvert(cfg, gen)
	case "derive":
		runDerive(cfg, gen)
	default:
		fmt.Println("Unrecognized selection. Exiting.")
		return
	}

	if *watch {
		runWatch(cfg, gen)
	}
}

// promptMode asks interactively which mode to run. Returns "" for any
// unrecognized input.
func promptMode(cfg *config.Config) string {
	fmt.Println("What would you like to do?")
	fmt.Printf("1) Convert all %s files to .ico (same base name).\n", cfg.Convert.Extension)
	fmt.Printf("2) Generate favicons and previews from '%s'.\n", cfg.Source.Logo)
	fmt.Print("Enter 1 or 2 and press [Enter]: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}

	switch strings.TrimSpace(line) {
	case "1", "convert":
		return "convert"
	case "2", "derive":
		return "derive"
	default:
		return ""
	}
}

func runConvert(cfg *config.Config, gen *generator.Generator) {
	results, err := gen.ConvertDirectory()
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
	if len(results) == 0 {
		fmt.Printf("No %s files found in the directory.\n", cfg.Convert.Extension)
		return
	}
	reportResults(results)
}

func runDerive(cfg *config.Config, gen *generator.Generator) {
	results, err := gen.DeriveFromLogo()
	if err != nil {
		// A missing or unreadable logo ends the run gracefully: no
		// assets can be produced without it.
		if errors.Is(err, common.ErrNotFound) {
			fmt.Printf("❌ No '%s' found in the directory.\n", cfg.Source.Logo)
		} else {
			fmt.Printf("❌ Failed to load '%s': %v\n", cfg.Source.Logo, err)
		}
		return
	}
	reportResults(results)
}

// reportResults prints one line per asset plus a final tally.
func reportResults(results []generator.Result) {
	var generated, skipped, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			log.Printf("❌ Error generating '%s': %v", r.Name, r.Err)
		case r.Skipped:
			skipped++
			log.Printf("(SKIP) '%s' already exists. Skipping.", r.Name)
		default:
			generated++
			log.Printf("✅ Generated: %s", r.Name)
		}
	}
	log.Printf("Done: %d generated, %d skipped, %d failed", generated, skipped, failed)
}

func runWatch(cfg *config.Config, gen *generator.Generator) {
	w, err := watcher.NewWatcher(cfg, gen)
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		log.Fatalf("Failed to start watcher: %v", err)
	}

	log.Println("Watch mode active. Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	w.Stop()
}
