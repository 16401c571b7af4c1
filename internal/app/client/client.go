package client

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"stockroom/internal/app/client/config"
	"stockroom/internal/domain/resource"
)

// App ties the HTTP client and the local view state together for the CLI.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	view       *ViewState
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP client: %w", err)
	}

	view := NewViewState(httpCl, cfg.RefetchAfterWrite, log)

	return &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		view:       view,
	}, nil
}

// CheckConnection verifies the server is reachable.
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.httpClient.HealthCheck(ctx)
}

// Resources returns the resource definitions the server exposes.
func (a *App) Resources(ctx context.Context) ([]resource.Definition, error) {
	return a.httpClient.ListResources(ctx)
}

// ListRecords loads one collection into the view state and returns it.
func (a *App) ListRecords(ctx context.Context, resourceName, query, sort string) ([]resource.Record, error) {
	return a.view.Load(ctx, resourceName, query, sort)
}

// GetRecord fetches a single record from the server. The mirrored copy is
// updated so the local view keeps reflecting the last acknowledged state.
func (a *App) GetRecord(ctx context.Context, resourceName string, id int64) (resource.Record, error) {
	rec, err := a.httpClient.GetRecord(ctx, resourceName, id)
	if err != nil {
		return resource.Record{}, err
	}

	a.view.merge(resourceName, rec)

	return rec, nil
}

// CreateRecord creates a record and returns the stored copy.
func (a *App) CreateRecord(ctx context.Context, resourceName string, fields resource.Fields) (resource.Record, error) {
	return a.view.Create(ctx, resourceName, fields)
}

// UpdateRecord applies a partial update and returns the merged record.
func (a *App) UpdateRecord(ctx context.Context, resourceName string, id int64, fields resource.Fields) (resource.Record, error) {
	return a.view.Update(ctx, resourceName, id, fields)
}

// DeleteRecord removes a record.
func (a *App) DeleteRecord(ctx context.Context, resourceName string, id int64) error {
	return a.view.Delete(ctx, resourceName, id)
}

// View exposes the local mirror.
func (a *App) View() *ViewState {
	return a.view
}
