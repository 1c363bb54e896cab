package main

import (
	"github.com/spf13/cobra"

	"github.com/vedabase-tools/namamala/internal/config"
	"github.com/vedabase-tools/namamala/internal/pipeline"
)

var (
	runStartCanto   int
	runStartChapter int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sweep the whole corpus, extracting names chapter by chapter",
	Long: `Sweep the corpus starting at canto 1, chapter 1 (or the given start
position). Chapters ascend within a canto; a missing chapter advances to
the next canto; the sweep ends after the last canto.

Examples:
  namamala run                       # Full sweep from SB 1.1
  namamala run --canto 5 --chapter 2 # Resume mid-corpus`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		// Long sweeps benefit from config hot reload: model and sampling
		// changes apply from the next batch on.
		svc.cm.OnChange(func(cfg *config.Config) {
			if pcfg, ok := cfg.GetLLMProvider(cfg.Defaults.LLMProvider); ok {
				svc.extractor.SetModel(pcfg.Model)
				svc.extractor.SetTemperature(cfg.Pipeline.Temperature)
				svc.extractor.SetMaxTokens(cfg.Pipeline.MaxTokens)
				svc.logger.Info("config reloaded",
					"model", pcfg.Model,
					"temperature", cfg.Pipeline.Temperature,
					"max_tokens", cfg.Pipeline.MaxTokens)
			}
		})
		svc.cm.WatchConfig()

		driver := pipeline.NewDriver(pipeline.DriverConfig{
			Runner:       svc.pipeline,
			MaxCantos:    svc.cm.Get().Corpus.MaxCantos,
			StartCanto:   runStartCanto,
			StartChapter: runStartChapter,
			Logger:       svc.logger,
		})
		return driver.Run(cmd.Context())
	},
}

func init() {
	runCmd.Flags().IntVar(&runStartCanto, "canto", 1, "canto to start from")
	runCmd.Flags().IntVar(&runStartChapter, "chapter", 1, "chapter to start from")
}
