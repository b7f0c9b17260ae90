package database

import (
	"context"

	"restoran-pos/internal/config"

	"github.com/rs/zerolog"
)

// Init opens the store selected by cfg.StoreDriver. An unusable data file
// does not stop the server: it runs on an in-memory document instead and
// nothing it does is persisted.
func Init(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Store, error) {
	if cfg.StoreDriver == config.StoreDriverPostgres {
		s, err := OpenPostgres(ctx, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("postgres store ready")
		return s, nil
	}

	s, err := OpenFile(cfg.DataFile, log)
	if err == nil {
		log.Info().Str("path", cfg.DataFile).Msg("file store ready")
		return s, nil
	}

	log.Error().Err(err).Str("path", cfg.DataFile).
		Msg("data file unusable, running on an in-memory document; changes will not be saved")
	return NewMemoryStore(nil)
}
