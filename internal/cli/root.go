package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/config"
)

// NewRootCommand はルートコマンドを作成します。サブコマンドなしの場合は serve と同じ動作です。
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApplication())
}

func newRootCommand(app *application) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hari-image",
		Short: "Generate AI images with Hari in them",
		Long: `Rewrites a scene description so that Hari appears in it, sends the rewritten
prompt to a fine-tuned FLUX.1 model and shows the resulting images.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.preRunE,
		RunE:              app.runServe,
	}

	addAppFlags(rootCmd, app.cfg)

	rootCmd.AddCommand(
		newServeCommand(app),
		newGenerateCommand(app),
	)

	return rootCmd
}

// addAppFlags は環境変数から読み込んだ値を既定値とするグローバルフラグを定義します。
func addAppFlags(rootCmd *cobra.Command, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP port to listen on")
	rootCmd.PersistentFlags().StringVar(&cfg.SecretsFile, "secrets-file", cfg.SecretsFile, "dotenv file holding GEMINI_API_KEY and REPLICATE_API_TOKEN")
	rootCmd.PersistentFlags().StringVar(&cfg.GeminiModel, "gemini-model", cfg.GeminiModel, "Gemini model used to rewrite prompts")
	rootCmd.PersistentFlags().StringVar(&cfg.ReplicateModel, "replicate-model", cfg.ReplicateModel, "Replicate model version used to generate images")
}

// preRunE は、コマンド実行前に認証情報を解決します。見つからなければ起動しません。
func (a *application) preRunE(cmd *cobra.Command, args []string) error {
	creds, err := config.ResolveCredentials(a.cfg.SecretsFile)
	if err != nil {
		return err
	}
	a.creds = creds
	return nil
}

// Execute は main.go から呼び出されるエントリポイントです。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
