// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ametkin/roomseal/internal/adapter"
	"github.com/ametkin/roomseal/internal/config"
	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/service"
	"github.com/ametkin/roomseal/internal/store"
	"github.com/ametkin/roomseal/internal/workers"
	"github.com/ametkin/roomseal/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("roomseal")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.Credentials, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting credential cache")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating credential cache")
	}

	signer, err := newKeyFileSigner(envOr("ROOMSEAL_HOLDER_KEY", "holder.key"))
	if err != nil {
		log.Fatal().Err(err).Msg("error loading holder key")
	}
	reader := newManifestRoomReader(envOr("ROOMSEAL_MANIFEST", "rooms.json"))

	services := service.NewServices(
		cfg,
		store.NewCredentialRepository(db, log),
		adapter.NewBlobMirrorAdapter(log),
		adapter.NewKeyServerAdapter(log),
		reader,
		signer,
		log,
	)

	if err = dispatch(ctx, cfg, services, flag.Args(), log); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func dispatch(ctx context.Context, cfg *config.StructuredConfig, services *service.Services, args []string, log *logger.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: roomseal [flags] publish|recover|watch ...")
	}

	switch cmd := args[0]; cmd {
	case "publish":
		return runPublish(ctx, services, args[1:])
	case "recover":
		return runRecover(ctx, services, args[1:])
	case "watch":
		return runWatch(ctx, cfg, services, args[1:], log)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// runPublish seals the contents of a file (or stdin for "-") and records
// the resulting ciphertext under the room.
func runPublish(ctx context.Context, services *service.Services, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: roomseal publish <room-id> <file|->")
	}
	roomID, path := args[0], args[1]

	plaintext, err := readInput(path)
	if err != nil {
		return err
	}

	result, err := services.Publisher.Publish(ctx, roomID, plaintext)
	if err != nil {
		return err
	}

	status := "already certified"
	if result.Status == models.StoreNewlyCreated {
		status = "newly created"
	}
	fmt.Printf("published %s (%s) via %s\n", result.ID, status, result.Mirror)
	return nil
}

// runRecover fetches and decrypts the room's ciphertexts, or only the ids
// given explicitly, and prints them in timeline order.
func runRecover(ctx context.Context, services *service.Services, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: roomseal recover <room-id> [ciphertext-id ...]")
	}
	roomID := args[0]

	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}

	result, err := services.Pipeline.Recover(ctx, roomID, ids)
	if err != nil {
		return err
	}
	defer services.Pipeline.ReleaseRoom(roomID)

	printResult(result)
	return nil
}

// runWatch recovers once interactively to establish the session
// credential, then keeps polling the room until interrupted.
func runWatch(ctx context.Context, cfg *config.StructuredConfig, services *service.Services, args []string, log *logger.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: roomseal watch <room-id>")
	}
	roomID := args[0]

	// the first pass prompts for a signature so the poller's cached
	// resolution has a credential to find
	result, err := services.Pipeline.Recover(ctx, roomID, nil)
	if err != nil {
		return err
	}
	printResult(result)

	pool := workers.New(workers.NewRoomPoller(services.Poller, roomID, cfg.Workers.PollInterval))
	pool.Run(ctx)
	log.Info().Str("room", roomID).Dur("interval", cfg.Workers.PollInterval).Msg("watching room")

	<-ctx.Done()
	pool.Stop()
	return nil
}

func printResult(result models.RecoverResult) {
	if result.Room != "" {
		fmt.Printf("room: %s\n", result.Room)
	}

	for _, item := range result.Items {
		when := "undated"
		if item.Timestamp != nil {
			when = item.Timestamp.Format("2006-01-02 15:04:05.000")
		}
		fmt.Printf("[%s] %s %s (%d bytes)\n", when, item.ID, item.Media, len(item.Data))
		if item.Media == models.MediaText || item.Media == models.MediaStructuredText {
			fmt.Printf("  %s\n", item.Data)
		}
	}

	for _, failure := range result.Failures {
		fmt.Printf("failed (%s): %s: %v\n", failure.Stage, failure.ID, failure.Err)
	}
}

func parseIDs(args []string) ([]models.CiphertextID, error) {
	if len(args) == 0 {
		return nil, nil
	}

	ids := make([]models.CiphertextID, 0, len(args))
	for _, arg := range args {
		id, err := models.ParseCiphertextID(arg)
		if err != nil {
			return nil, fmt.Errorf("ciphertext id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
