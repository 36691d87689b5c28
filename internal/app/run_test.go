package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunBookshop_MemoryGracefulShutdown(t *testing.T) {
	cfg := DefaultBookshopConfig()
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	err := RunBookshop(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunWorkshop_MemoryGracefulShutdown(t *testing.T) {
	cfg := DefaultWorkshopConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"
	// Соединение ленивое, недоступный каталог не мешает запуску.
	cfg.ValidatorAddr = "127.0.0.1:1"

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	err := RunWorkshop(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
