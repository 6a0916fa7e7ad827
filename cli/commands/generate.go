package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitkumar0/Imagegenenerator-sub002/client"
)

func (a *App) newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Submit a text-to-image generation",
		Long: `Submit a text-to-image generation request.

Examples:
  imagegen generate --prompt "a lighthouse at dawn"
  imagegen generate --prompt "a lighthouse at dawn" --model flux-schnell --wait`,
		RunE: a.runGenerate,
	}

	cmd.Flags().StringVar(&a.generatePrompt, "prompt", "", "Generation prompt (required)")
	cmd.Flags().StringVar(&a.generateNegative, "negative", "", "Negative prompt")
	cmd.Flags().StringVar(&a.generateModel, "model", "", "Model ID")
	cmd.Flags().BoolVar(&a.generateWait, "wait", false, "Poll until the generation finishes")

	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func (a *App) newImg2ImgCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "img2img",
		Short: "Submit an image-to-image generation",
		Long: `Upload a source image and submit an image-to-image generation.

Examples:
  imagegen img2img --prompt "make it watercolor" --image ./photo.png
  imagegen img2img --prompt "make it watercolor" --image ./photo.png --strength 0.6 --wait`,
		RunE: a.runImg2Img,
	}

	cmd.Flags().StringVar(&a.generatePrompt, "prompt", "", "Generation prompt (required)")
	cmd.Flags().StringVar(&a.generateNegative, "negative", "", "Negative prompt")
	cmd.Flags().StringVar(&a.generateModel, "model", "", "Model ID")
	cmd.Flags().StringVar(&a.imgSource, "image", "", "Source image file (required)")
	cmd.Flags().Float64Var(&a.imgStrength, "strength", 0, "Transformation strength (0 = server default)")
	cmd.Flags().BoolVar(&a.generateWait, "wait", false, "Poll until the generation finishes")

	_ = cmd.MarkFlagRequired("prompt")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func (a *App) runGenerate(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	created, err := c.TextToImage(cmd.Context(), client.TextToImageRequest{
		Prompt:         a.generatePrompt,
		NegativePrompt: a.generateNegative,
		Model:          a.generateModel,
	})
	if err != nil {
		return a.handleAPIError(err)
	}

	return a.reportCreated(cmd, c, created)
}

func (a *App) runImg2Img(cmd *cobra.Command, args []string) error {
	c, err := a.apiClient()
	if err != nil {
		return err
	}

	f, err := os.Open(a.imgSource)
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to open source image: %w", err))
	}
	defer f.Close()

	upload, err := c.UploadImage(cmd.Context(), filepath.Base(a.imgSource), f)
	if err != nil {
		return a.handleAPIError(err)
	}
	if a.verbose {
		fmt.Fprintf(a.stderr, "Uploaded %s (%d bytes)\n", upload.Filename, upload.SizeBytes)
	}

	created, err := c.ImageToImage(cmd.Context(), client.ImageToImageRequest{
		Prompt:         a.generatePrompt,
		NegativePrompt: a.generateNegative,
		Model:          a.generateModel,
		SourceImageID:  upload.ID,
		Strength:       a.imgStrength,
	})
	if err != nil {
		return a.handleAPIError(err)
	}

	return a.reportCreated(cmd, c, created)
}

// reportCreated prints the acknowledgement, then optionally polls the
// generation through to a terminal state.
func (a *App) reportCreated(cmd *cobra.Command, c *client.Client, created *client.GenerationCreated) error {
	if !a.generateWait {
		if a.jsonOutput {
			return a.outputJSON(created)
		}
		fmt.Fprintf(a.stdout, "Generation %s queued", created.ID)
		if created.QueuePosition != nil {
			fmt.Fprintf(a.stdout, " (position %d)", *created.QueuePosition)
		}
		fmt.Fprintln(a.stdout)
		fmt.Fprintf(a.stdout, "Check progress with: imagegen status %s\n", created.ID)
		return nil
	}

	pollCfg := client.PollConfig{
		OnProgress: func(g *client.Generation) {
			if a.jsonOutput {
				return
			}
			fmt.Fprintf(a.stderr, "  status: %s\n", g.Status)
		},
	}
	if a.cfg != nil && a.cfg.PollIntervalSeconds > 0 {
		pollCfg.Interval = time.Duration(a.cfg.PollIntervalSeconds) * time.Second
	}

	final, err := c.WaitForGeneration(cmd.Context(), created.ID, pollCfg)
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(final)
	}
	a.printGeneration(final)
	return nil
}

// printGeneration renders one generation in the text output format.
func (a *App) printGeneration(g *client.Generation) {
	fmt.Fprintf(a.stdout, "%s  %s", g.ID, g.Status)
	if g.Model != "" {
		fmt.Fprintf(a.stdout, "  %s", g.Model)
	}
	fmt.Fprintln(a.stdout)

	if g.Prompt != "" {
		fmt.Fprintf(a.stdout, "  prompt: %s\n", g.Prompt)
	}
	if url := g.CDNURL; url != "" {
		fmt.Fprintf(a.stdout, "  image:  %s\n", url)
	} else if g.ImageURL != "" {
		fmt.Fprintf(a.stdout, "  image:  %s\n", g.ImageURL)
	}
	if g.ErrorMessage != "" {
		fmt.Fprintf(a.stdout, "  error:  %s\n", g.ErrorMessage)
	}
	if g.QueuePosition != nil {
		fmt.Fprintf(a.stdout, "  queue:  %d\n", *g.QueuePosition)
	}
	if g.ProcessingTimeMS > 0 {
		fmt.Fprintf(a.stdout, "  took:   %dms\n", g.ProcessingTimeMS)
	}
}
