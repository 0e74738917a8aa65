package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-encdetect/internal/logger"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "encdetect",
	Short: "Encryption detection for forensic disk images",
	Long: `encdetect classifies regions of raw disk or volume images as encrypted
or not, for use when filesystem auto-detection has failed to recognize a
known on-disk structure.

A region is tested against known encrypted-container signatures
(BitLocker, LUKS, FileVault, PGP WDE and others) and, when none match,
scored by the Shannon entropy of its byte distribution. High-entropy
regions are flagged as encryption-like.

Note: compressed data approaches maximal entropy too; an entropy verdict
is a best-effort classification, not a proof of encryption.

Commands:
  detect      Classify a single region at a given offset
  scan        Walk an image and classify regions at a fixed stride`,
	Version: "0.1.0-dev",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Initialize(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
}
