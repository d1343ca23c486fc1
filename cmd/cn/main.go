package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/collectednotes/collectednotes-go/pkg/collectednotes"
	"github.com/collectednotes/collectednotes-go/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 3 || os.Args[1] != "sites" || os.Args[2] != "list" {
		fmt.Println("Usage: cn sites list")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("cn", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the configuration file (default: ~/.config/collectednotes/config.json)")
	_ = fs.Parse(os.Args[3:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var opts []collectednotes.Option
	if cfg.CollectedNotes.URL != "" {
		opts = append(opts, collectednotes.WithBaseURL(cfg.CollectedNotes.URL))
	}
	client, err := collectednotes.NewClient(cfg.CollectedNotes.Email, cfg.CollectedNotes.Token, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	sites, err := client.Sites.List(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list sites")
	}

	fmt.Printf("%-25s %-20s %s\n", "NAME", "PATH", "NOTES")
	fmt.Printf("%-25s %-20s %s\n", "----", "----", "-----")
	for _, site := range sites {
		fmt.Printf("%-25s %-20s %d\n", site.Name, site.SitePath, site.TotalNotes)
	}
}
