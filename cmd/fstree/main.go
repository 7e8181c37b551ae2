package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/justyntemme/fstree/internal/app"
	"github.com/justyntemme/fstree/internal/config"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	configPath := flag.String("config", "", "Path to config.json (default ~/.config/fstree/config.json)")
	roots := flag.String("roots", "", "Comma-separated root directories to show instead of the host roots")
	workers := flag.Int("workers", 0, "Number of request workers (0 uses the config value)")
	noStore := flag.Bool("no-store", false, "Do not remember the last selection")
	generate := flag.Bool("generate-config", false, "Write a default config (backing up the existing one) and exit")
	flag.Parse()

	if *generate {
		backup, err := config.GenerateConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		if backup != "" {
			fmt.Printf("Backed up existing config to %s\n", backup)
		}
		fmt.Println("Wrote default config")
		return
	}

	var rootList []string
	for _, r := range strings.Split(*roots, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rootList = append(rootList, r)
		}
	}

	err := app.Main(app.Options{
		ConfigPath: *configPath,
		Roots:      rootList,
		Workers:    *workers,
		Debug:      *debug,
		NoStore:    *noStore,
	})
	if err != nil {
		log.Fatal(err)
	}
}
