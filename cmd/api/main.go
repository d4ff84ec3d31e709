package main

import (
	"context"
	"log"

	"github.com/landlordlink/landlordlink-services/api/internal/config"
	"github.com/landlordlink/landlordlink-services/api/internal/server"
)

func main() {
	cfg := config.Load()

	store, err := server.OpenStore(context.Background(), cfg)
	if err != nil {
		cfg.ServerLog.Fatalf("ストアの初期化に失敗しました: %v", err)
	}

	app := server.New(cfg, store)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
