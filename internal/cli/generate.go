package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/usecases"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/config"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

// GenerateOptions は generate コマンドのフラグです。
type GenerateOptions struct {
	Prompt   string
	Steps    int
	Guidance float64
	Outputs  int
	Variant  string
}

func newGenerateCommand(app *application) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the pipeline once and print the image URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Prompt, "prompt", config.DefaultPrompt, "scene description to rewrite")
	cmd.Flags().IntVar(&opts.Steps, "steps", valueobjects.DefaultInferenceSteps, "number of inference steps (1-50)")
	cmd.Flags().Float64Var(&opts.Guidance, "guidance", valueobjects.DefaultGuidanceScale, "guidance scale (1.0-20.0)")
	cmd.Flags().IntVar(&opts.Outputs, "outputs", valueobjects.DefaultOutputs, "number of images (1-4)")
	cmd.Flags().StringVar(&opts.Variant, "variant", string(valueobjects.DefaultModelVariant), "model variant (dev or schnell)")

	return cmd
}

func (a *application) runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	useCase, closeClients, err := a.buildUseCase(ctx)
	if err != nil {
		return err
	}
	defer closeClients()

	slog.Info("generate", "steps", opts.Steps, "guidance", opts.Guidance, "outputs", opts.Outputs, "variant", opts.Variant)

	output, err := useCase.Execute(ctx, usecases.GenerationInput{
		Prompt:            opts.Prompt,
		NumInferenceSteps: opts.Steps,
		GuidanceScale:     opts.Guidance,
		ModelVariant:      opts.Variant,
		NumOutputs:        opts.Outputs,
	})
	if output != nil && output.FinalPrompt != "" {
		fmt.Fprintf(out, "Final prompt: %s\n", output.FinalPrompt)
	}
	if err != nil {
		return err
	}

	if len(output.Images) == 0 {
		fmt.Fprintln(out, "No images to display.")
		return nil
	}

	for _, img := range output.Images {
		if img.Error != "" {
			fmt.Fprintf(out, "[%d] %s error: %s\n", img.Index+1, img.URL, img.Error)
			continue
		}
		fmt.Fprintf(out, "[%d] %s (%dx%d %s)\n", img.Index+1, img.URL, img.Width, img.Height, strings.TrimPrefix(img.Type, "image/"))
	}

	return nil
}
