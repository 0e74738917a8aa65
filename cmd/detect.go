package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-encdetect/internal/disk"
	"github.com/deploymenttheory/go-encdetect/internal/logger"
	"github.com/deploymenttheory/go-encdetect/internal/services"
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

var (
	detectImagePath string
	detectOffset    int64
	detectWindow    int
	detectThreshold float64
	detectStats     bool
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Classify a single image region as encrypted or not",
	Long: `Detect samples a window of bytes at the given offset, matches it against
known encrypted-container signatures and, when none match, scores its
Shannon entropy against the configured threshold.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectImagePath, "image", "", "path to the raw image (first segment for split images)")
	detectCmd.Flags().Int64Var(&detectOffset, "offset", 0, "absolute byte offset of the region to classify")
	detectCmd.Flags().IntVar(&detectWindow, "window", 0, "sample window size in bytes (default from config)")
	detectCmd.Flags().Float64Var(&detectThreshold, "threshold", 0, "entropy threshold in bits per byte (default from config)")
	detectCmd.Flags().BoolVar(&detectStats, "stats", false, "include extended randomness statistics")
	detectCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	log := logger.Default()

	config, err := disk.LoadImageConfig()
	if err != nil {
		return err
	}
	if detectWindow > 0 {
		config.WindowSize = detectWindow
	}
	if detectThreshold > 0 {
		config.EntropyThreshold = detectThreshold
	}

	image, err := disk.OpenImage(detectImagePath, config)
	if err != nil {
		return err
	}
	defer image.Close()

	log.Debugw("opened image",
		"path", detectImagePath,
		"size", image.Size(),
		"segments", image.SegmentCount(),
	)

	service := services.NewDetectionService(services.DetectionConfig{
		WindowSize:       config.WindowSize,
		EntropyThreshold: config.EntropyThreshold,
	})
	result := service.DetectEncryption(image, detectOffset)

	var stats *types.SampleStatistics
	if detectStats {
		if report, err := service.AnalyzeSample(image, detectOffset); err == nil {
			stats = &report
		} else {
			log.Debugw("extended statistics unavailable", "error", err)
		}
	}

	return renderDetection(detectOffset, result, stats)
}

// renderDetection prints one verdict in the selected output format.
func renderDetection(offset int64, result types.DetectionResult, stats *types.SampleStatistics) error {
	if outputFormat == "json" {
		payload := struct {
			Offset      int64                   `json:"offset"`
			IsEncrypted bool                    `json:"isEncrypted"`
			Description string                  `json:"description"`
			Statistics  *types.SampleStatistics `json:"statistics,omitempty"`
		}{offset, result.IsEncrypted, result.Description, stats}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	if quiet {
		return nil
	}

	fmt.Printf("offset %d: %s %s\n", offset, verdictLabel(result.IsEncrypted), result.Description)
	if stats != nil {
		fmt.Printf("  sample length:      %d bytes\n", stats.Length)
		fmt.Printf("  entropy:            %.4f bits/byte\n", stats.Entropy)
		fmt.Printf("  chi-square:         %.1f\n", stats.ChiSquare)
		fmt.Printf("  serial correlation: %.4f\n", stats.SerialCorrelation)
	}
	return nil
}

func verdictLabel(encrypted bool) string {
	if encrypted {
		return color.New(color.FgRed, color.Bold).Sprint("ENCRYPTED")
	}
	return color.New(color.FgGreen).Sprint("not encrypted")
}
