package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	obb "github.com/opd-ai/obb"
	"github.com/opd-ai/obb/crypto"
	"github.com/opd-ai/obb/model"
	"github.com/opd-ai/obb/optics"
	"github.com/opd-ai/obb/parser"
)

var createOpts struct {
	privateKey      string
	recipientKey    string
	vendorID        string
	name            string
	description     string
	partNumber      string
	selective       bool
	encryptSurfaces string
	redactSurfaces  string
	force           bool
}

var createCmd = &cobra.Command{
	Use:   "create <input-file> <output-file>",
	Short: "Create an encrypted .obb container from a lens design",
	Long: `Create an encrypted .obb container from an optical design file
(.zmx or .zar). The design is encrypted to the recipient public key and
signed with the vendor private key. When no recipient key is given, the
container is encrypted to the vendor's own key.`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	f := createCmd.Flags()
	f.StringVarP(&createOpts.privateKey, "private-key", "k", "",
		"Path to vendor private key (PEM).")
	f.StringVarP(&createOpts.recipientKey, "recipient-key", "r", "",
		"Recipient public key for encryption (defaults to the vendor key).")
	f.StringVarP(&createOpts.vendorID, "vendor-id", "v", "",
		"Vendor identifier (3-50 chars, lowercase alphanumeric).")
	f.StringVarP(&createOpts.name, "name", "n", "",
		"Component name.")
	f.StringVarP(&createOpts.description, "description", "d", "",
		"Component description.")
	f.StringVarP(&createOpts.partNumber, "part-number", "p", "",
		"Part number.")
	f.BoolVar(&createOpts.selective, "selective", false,
		"Use selective encryption (per-surface visibility).")
	f.StringVar(&createOpts.encryptSurfaces, "encrypt-surfaces", "",
		"Comma-separated surface numbers to encrypt (implies --selective).")
	f.StringVar(&createOpts.redactSurfaces, "redact-surfaces", "",
		"Comma-separated surface numbers to redact (implies --selective).")
	f.BoolVar(&createOpts.force, "force", false,
		"Overwrite an existing output file.")

	_ = createCmd.MarkFlagRequired("private-key")
	_ = createCmd.MarkFlagRequired("vendor-id")
	_ = createCmd.MarkFlagRequired("name")
}

func runCreate(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	if !strings.HasSuffix(strings.ToLower(outputPath), ".obb") {
		outputPath += ".obb"
	}
	if _, err := os.Stat(outputPath); err == nil && !createOpts.force {
		return errors.Errorf("output file exists: %s (use --force to overwrite)", outputPath)
	}

	vendorPriv, err := crypto.LoadPrivateKey(createOpts.privateKey)
	if err != nil {
		return errors.Wrap(err, "failed to load vendor key")
	}

	recipientPub := &vendorPriv.PublicKey
	if createOpts.recipientKey != "" {
		recipientPub, err = crypto.LoadPublicKey(createOpts.recipientKey)
		if err != nil {
			return errors.Wrap(err, "failed to load recipient key")
		}
	}

	color.Cyan("Parsing %s...", inputPath)
	group, err := parser.DefaultRegistry().Parse(inputPath)
	if err != nil {
		return errors.Wrap(err, "failed to parse design")
	}
	fmt.Printf("  found %d surfaces\n", group.NumSurfaces())

	if err := applyVisibility(group); err != nil {
		return err
	}

	color.Cyan("Computing optical properties...")
	meta := optics.ExtractMetadata(*group, createOpts.vendorID, createOpts.name,
		createOpts.description, createOpts.partNumber)
	fmt.Printf("  EFL: %.2f mm, NA: %.4f\n", meta.EFLmm, meta.NA)

	color.Cyan("Writing container...")
	write := obb.WriteFile
	if createOpts.selective {
		write = obb.WriteFileSelective
	}
	if err := write(outputPath, *group, meta, vendorPriv, recipientPub); err != nil {
		return errors.Wrap(err, "failed to write container")
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return errors.Wrap(err, "container written but unreadable")
	}
	color.Green("Created %s (%d bytes)", outputPath, info.Size())
	return nil
}

// applyVisibility marks surfaces listed in --encrypt-surfaces and
// --redact-surfaces, switching on selective mode when either is used.
func applyVisibility(group *model.SurfaceGroup) error {
	encrypt, err := parseSurfaceList(createOpts.encryptSurfaces)
	if err != nil {
		return errors.Wrap(err, "bad --encrypt-surfaces")
	}
	redact, err := parseSurfaceList(createOpts.redactSurfaces)
	if err != nil {
		return errors.Wrap(err, "bad --redact-surfaces")
	}
	if len(encrypt) == 0 && len(redact) == 0 {
		return nil
	}
	createOpts.selective = true

	for i := range group.Surfaces {
		n := group.Surfaces[i].Number
		switch {
		case redact[n]:
			group.Surfaces[i].Visibility = model.VisibilityRedacted
		case encrypt[n]:
			group.Surfaces[i].Visibility = model.VisibilityEncrypted
		}
	}
	return nil
}

func parseSurfaceList(s string) (map[int]bool, error) {
	out := make(map[int]bool)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, tok := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, errors.Errorf("invalid surface number %q", tok)
		}
		out[n] = true
	}
	return out, nil
}
