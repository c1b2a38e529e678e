package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	obb "github.com/opd-ai/obb"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show container metadata without decrypting",
	Long: `Read the public metadata of an .obb container. No keys are
needed and nothing is decrypted or verified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := obb.ReadMetadataFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", args[0])
		}

		if inspectJSON {
			out, err := json.MarshalIndent(meta, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to encode metadata")
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		}

		color.Cyan("%s", meta.Name)
		fmt.Printf("  format version:  %s\n", meta.Version)
		fmt.Printf("  vendor:          %s\n", meta.VendorID)
		fmt.Printf("  EFL:             %.2f mm\n", meta.EFLmm)
		fmt.Printf("  NA:              %.4f\n", meta.NA)
		fmt.Printf("  diameter:        %.2f mm\n", meta.DiameterMm)
		fmt.Printf("  spectral range:  %s\n", meta.SpectralRangeString())
		fmt.Printf("  surfaces:        %d\n", meta.NumSurfaces)
		if meta.CreatedAt != nil {
			fmt.Printf("  created:         %s\n", meta.CreatedAt.Format(time.RFC3339))
		}
		if meta.PartNumber != "" {
			fmt.Printf("  part number:     %s\n", meta.PartNumber)
		}
		if meta.Description != "" {
			fmt.Printf("  description:     %s\n", meta.Description)
		}
		if meta.HasSignature() {
			color.Green("  signed:          yes")
		} else {
			color.Yellow("  signed:          no")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false,
		"Output metadata as JSON.")
}
