package server

import (
	"context"

	"github.com/landlordlink/landlordlink-services/api/internal/config"
	"github.com/landlordlink/landlordlink-services/api/internal/infrastructure/memory"
	mongodoc "github.com/landlordlink/landlordlink-services/api/internal/infrastructure/mongo"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/application"
)

// OpenStore は設定された STORE_DRIVER に応じてドキュメントストアを構築する。
func OpenStore(ctx context.Context, cfg config.Config) (application.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		cfg.ServerLog.Printf("in-memory store を使用します。再起動でデータは失われます。")
		return memory.NewStore(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	store, err := mongodoc.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	return store, nil
}
