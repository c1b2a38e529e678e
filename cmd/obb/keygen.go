package main

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/opd-ai/obb/crypto"
)

var keygenPrefix string

var keygenCmd = &cobra.Command{
	Use:   "keygen <directory>",
	Short: "Generate an ECDSA P-256 key pair",
	Long: `Generate a new ECDSA P-256 key pair and write it to the given
directory as PEM files. The private key file is created with 0600
permissions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := crypto.GenerateKeyPair()
		if err != nil {
			return errors.Wrap(err, "key generation failed")
		}

		privPath, pubPath, err := crypto.SaveKeyPair(kp, args[0], keygenPrefix)
		if err != nil {
			return errors.Wrap(err, "failed to save key pair")
		}

		color.Green("Key pair generated")
		color.Cyan("  private: %s", privPath)
		color.Cyan("  public:  %s", pubPath)
		color.Yellow("Keep the private key secret. Distribute only the public key.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVar(&keygenPrefix, "prefix", "vendor",
		"Filename prefix for the generated key files.")
}
