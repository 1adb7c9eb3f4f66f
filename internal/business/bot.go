// Package business wires the components together and runs them. Commands
// stay thin; everything that needs a config lives here.
package business

import (
	"context"
	"fmt"
	"net/http"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/cinegram/cinegram/internal/catalog/kinopoisk"
	"github.com/cinegram/cinegram/internal/config"
	"github.com/cinegram/cinegram/internal/engine"
	"github.com/cinegram/cinegram/internal/favorites"
	favoritessql "github.com/cinegram/cinegram/internal/favorites/sql"
	"github.com/cinegram/cinegram/internal/session"
	sessionvalkey "github.com/cinegram/cinegram/internal/session/valkey"
	"github.com/cinegram/cinegram/internal/transport/telegram"
)

// BotMain assembles the bot and long-polls until ctx is cancelled.
func BotMain(ctx context.Context, cfg *config.Config) error {
	db, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	coordinator := favorites.NewCoordinator(favoritessql.NewRepository(db))

	apiKey, err := cfg.Catalog.APIKey.Resolve()
	if err != nil {
		return fmt.Errorf("loading catalog api key: %w", err)
	}

	provider := kinopoisk.NewClient(cfg.Catalog.BaseURL, apiKey, &http.Client{
		Timeout: cfg.Catalog.Timeout,
	})

	sessions, closeSessions, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	token, err := cfg.Telegram.Token.Resolve()
	if err != nil {
		return fmt.Errorf("loading telegram token: %w", err)
	}

	adapter, err := telegram.New(token, cfg.Telegram.PollTimeout)
	if err != nil {
		return fmt.Errorf("creating telegram bot: %w", err)
	}

	var opts []engine.Option
	if cfg.Bot.Pacing != 0 {
		opts = append(opts, engine.WithPacing(cfg.Bot.Pacing))
	}
	eng := engine.New(sessions, provider, coordinator, adapter, opts...)

	slogctx.Info(ctx, "Starting long polling", "bot", adapter.Me(ctx))
	adapter.Start(ctx, eng)

	return nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	connStr, err := config.MakeConnStr(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("making dsn from config: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing pgxpool config: %w", err)
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("initialising pgxpool connection: %w", err)
	}

	return db, nil
}

func openSessionStore(cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case "memory":
		return session.NewMemoryStore(cfg.Session.IdleTTL), func() {}, nil
	case "valkey":
		host, err := cfg.Session.ValKey.Host.Resolve()
		if err != nil {
			return nil, nil, fmt.Errorf("loading valkey host: %w", err)
		}

		user, err := cfg.Session.ValKey.User.Resolve()
		if err != nil {
			return nil, nil, fmt.Errorf("loading valkey username: %w", err)
		}

		password, err := cfg.Session.ValKey.Password.Resolve()
		if err != nil {
			return nil, nil, fmt.Errorf("loading valkey password: %w", err)
		}

		valkeyClient, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{host},
			Username:    user,
			Password:    password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating a new valkey client: %w", err)
		}

		store := sessionvalkey.NewStore(valkeyClient, cfg.Session.ValKey.Prefix, cfg.Session.IdleTTL)

		return store, valkeyClient.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}
