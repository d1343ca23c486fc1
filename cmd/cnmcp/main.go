package main

import (
	"context"
	"flag"
	"io"
	stdlog "log"
	"log/syslog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/collectednotes/collectednotes-go/pkg/cnmcp"
	"github.com/collectednotes/collectednotes-go/pkg/collectednotes"
	"github.com/collectednotes/collectednotes-go/pkg/config"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var configPath string
	var verbose bool
	flag.StringVar(&configPath, "config", "", "path to config file (default: ~/.config/collectednotes/config.json)")
	flag.BoolVar(&verbose, "v", false, "enable verbose logging of input/output")
	flag.Parse()

	setupLogger()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to load %s", configPath)
	}

	// Initialize Collected Notes client
	var opts []collectednotes.Option
	if cfg.CollectedNotes.URL != "" {
		opts = append(opts, collectednotes.WithBaseURL(cfg.CollectedNotes.URL))
	}
	client, err := collectednotes.NewClient(cfg.CollectedNotes.Email, cfg.CollectedNotes.Token, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	// Create MCP Server
	s := server.NewMCPServer(
		"Collected Notes MCP Server",
		"1.0.0",
	)

	// Tool registry map
	toolRegistry := map[string]func(*server.MCPServer, *collectednotes.Client){
		"read_note":    cnmcp.RegisterReadNote,
		"get_site":     cnmcp.RegisterGetSite,
		"list_sites":   cnmcp.RegisterListSites,
		"latest_notes": cnmcp.RegisterLatestNotes,
		"search_notes": cnmcp.RegisterSearchNotes,
		"create_note":  cnmcp.RegisterCreateNote,
		"update_note":  cnmcp.RegisterUpdateNote,
		"delete_note":  cnmcp.RegisterDeleteNote,
		"me":           cnmcp.RegisterMe,
	}

	// Register tools based on config
	for name, registerFunc := range toolRegistry {
		if enabled, ok := cfg.MCP.Tools[name]; ok && enabled {
			log.Info().Msgf("Registering tool %s", name)
			registerFunc(s, client)
		} else if !ok {
			log.Warn().Msgf("Tool %s not found in config, skipping", name)
		}
	}

	// Start the server using Stdio
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	if verbose {
		in = &loggingReader{os.Stdin}
		out = &loggingWriter{os.Stdout}
	}
	if err := ServeStdio(s, in, out); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

type loggingReader struct {
	r io.Reader
}

func (lr *loggingReader) Read(p []byte) (n int, err error) {
	n, err = lr.r.Read(p)
	if n > 0 {
		log.Info().Msgf("IN: %q", p[:n])
	}
	return n, err
}

type loggingWriter struct {
	w io.Writer
}

func (lw *loggingWriter) Write(p []byte) (n int, err error) {
	if len(p) < 50 {
		log.Info().Msgf("OUT: %q", p)
	} else {
		log.Info().Msgf("OUT: %q...", p[:50])
	}
	return lw.w.Write(p)
}

func ServeStdio(srv *server.MCPServer, in io.Reader, out io.Writer) error {
	s := server.NewStdioServer(srv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	return s.Listen(ctx, in, out)
}

func setupLogger() {
	syslogger, err := syslog.New(stdlog.LstdFlags, "cnmcp")
	if err != nil {
		panic(err)
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(
		zerolog.SyslogLevelWriter(syslogger),
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Stamp,
		}))
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
