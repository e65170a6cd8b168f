package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
)

func newServeCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web form (default)",
		RunE:  app.runServe,
	}
}

func (a *application) runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	useCase, closeClients, err := a.buildUseCase(ctx)
	if err != nil {
		return err
	}
	defer closeClients()

	router := a.newRouter(useCase)

	slog.Info("Starting server",
		"addr", a.cfg.Addr(),
		"geminiModel", a.cfg.GeminiModel,
		"replicateModel", a.cfg.ReplicateModel)

	if err := a.listen(ctx, a.cfg.Addr(), router); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
