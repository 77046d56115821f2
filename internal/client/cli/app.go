// Package cli implements the interactive ApexFit client shell.
package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/apexfit/apexfit-go/internal/client/api"
	"github.com/apexfit/apexfit-go/internal/client/config"
	"github.com/apexfit/apexfit-go/internal/client/credentials"
	"github.com/apexfit/apexfit-go/internal/client/services"
	"github.com/apexfit/apexfit-go/internal/logging"
)

type App struct {
	config  *config.Config
	session *services.SessionController
	store   *credentials.Store
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.Default()

	db, err := credentials.InitDatabase(ctx, filepath.Join(cfg.DataDir, "client.db"))
	if err != nil {
		return nil, err
	}

	store := credentials.NewStore(
		credentials.NewSQLiteBackend(db),
		credentials.NewFileBackend(filepath.Join(cfg.DataDir, "tokens.sealed"), []byte(cfg.StoreSecret)),
		log,
	)

	client := api.NewHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.RequestTimeout}, store, log)
	snap := services.NewFileSnapshotStore(filepath.Join(cfg.DataDir, "session.json"), log)
	session := services.NewSessionController(client, store, snap, log)

	return &App{
		config:  cfg,
		session: session,
		store:   store,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == services.StateAuthenticated
}
