package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/riskibarqy/livescore-aggregator/external/fixtureapi"
	"github.com/riskibarqy/livescore-aggregator/internal/board"
	"github.com/riskibarqy/livescore-aggregator/internal/config"
	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

const prompt = "row number to refresh, r to reload, q to quit> "

func main() {
	cfg, err := config.LoadBoard()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	}).Named("board")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fixtureapi.NewClient(fixtureapi.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	b := board.New(board.Config{
		Source:  client,
		Leagues: cfg.Leagues,
		Render: func(items []fixture.Fixture) {
			if err := board.RenderTable(os.Stdout, items); err != nil {
				logger.Error("render board", "error", err)
			}
		},
		Logger: logger,
	})

	if err := b.Load(ctx); err != nil {
		logger.Error("initial load failed", "error", err)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print(prompt)
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := handleInput(ctx, b, strings.TrimSpace(line), logger); quit {
				return
			}
		}
	}
}

func handleInput(ctx context.Context, b *board.Board, input string, logger *logging.Logger) bool {
	switch strings.ToLower(input) {
	case "":
		return false
	case "q", "quit", "exit":
		return true
	case "r", "reload":
		if err := b.Load(ctx); err != nil {
			logger.Error("reload failed", "error", err)
		}
		return false
	}

	row, err := strconv.Atoi(input)
	if err != nil {
		fmt.Printf("unrecognised input %q\n", input)
		return false
	}

	outcome, err := b.Refresh(ctx, row-1)
	switch {
	case errors.Is(err, board.ErrInvalidIndex):
		fmt.Printf("no row %d, the board has %d rows\n", row, b.Len())
	case err != nil:
		logger.Error("refresh failed", "row", row, "error", err)
	case outcome == board.RefreshMissed:
		fmt.Printf("row %d is no longer in the feed, left unchanged\n", row)
	}
	return false
}
