package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"queryloop/internal/config"
	"queryloop/pkg/agent"
	"queryloop/pkg/llm"
	"queryloop/pkg/logging"
	"queryloop/pkg/mcp"
)

func main() {
	var printConfig bool
	var query string
	flag.BoolVar(&printConfig, "print-config", false, "print resolved configuration and exit")
	flag.StringVar(&query, "query", "", "query to run (reads from stdin when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if printConfig {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			log.Fatalf("print config: %v", err)
		}
		return
	}

	logFile, err := openLogFile(cfg.LogDir)
	if err != nil {
		log.Fatalf("log setup error: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	logger := logging.New(logFile, cfg.LogJSON)

	if query == "" {
		query = readQuery()
	}
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: please provide a non-empty query")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, query); err != nil {
		logger.Error("run failed", "error", err.Error())
		log.Fatalf("run error: %v", err)
	}
}

// run brackets a single agent run: establish a fresh capability
// session, drive the loop once, tear the session down.
func run(ctx context.Context, cfg config.Config, logger *logging.Logger, query string) error {
	serverCfg, err := config.LoadServerConfig(cfg.ServerConfigPath)
	if err != nil {
		return err
	}

	session, err := mcp.Dial(serverCfg.Command, serverCfg.Args, serverCfg.EnvList(), serverCfg.WorkDir)
	if err != nil {
		return fmt.Errorf("failed to connect to capability server: %w", err)
	}
	defer session.Close()

	if err := session.Start(ctx); err != nil {
		return err
	}
	logger.Info("session established",
		"command", serverCfg.Command,
		"server", session.ServerInfo().Name,
		"capabilities", session.Catalog().Count(),
	)

	provider, err := llm.NewProvider(ctx, cfg.ProviderConfig())
	if err != nil {
		return err
	}
	completion := llm.NewClient(provider, cfg.CompletionTimeout)

	loop := agent.NewLoop(completion, session)
	loop.MaxIterations = cfg.MaxIterations

	record, err := loop.Run(logger.WithContext(ctx), query)
	if err != nil {
		return err
	}

	out, err := record.JSON()
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	logger.Info("run result", "record", out)
	return nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("agent_%s.log", time.Now().Format("20060102_150405"))
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func readQuery() string {
	fmt.Print("Enter your query: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
