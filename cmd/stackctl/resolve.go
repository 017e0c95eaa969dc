package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"example.com/supplementstack/internal/api"
	"example.com/supplementstack/internal/app"
	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/resolver"
)

type resolveOptions struct {
	profilePath string
	explain     bool
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a profile file into a recommendation stack",
		Long: `Resolve reads a profile in YAML or JSON and prints the recommended stack as JSON.

Example:
  stackctl resolve --profile profile.yaml --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			profile, err := readProfile(opts.profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			components, err := app.Build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer components.Close()

			res, err := components.Resolver.ResolveDetailed(cmd.Context(), profile)
			if err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("profile rejected: %w", err)
				}
				return err
			}
			return printResult(cmd.OutOrStdout(), res, opts.explain)
		},
	}
	cmd.Flags().StringVarP(&opts.profilePath, "profile", "p", "-", "Profile file (.yaml, .yml or .json), - for stdin")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Include the state trace, match score and packing skips")
	return cmd
}

// readProfile decodes a profile. YAML is converted to JSON first so both
// formats share the wire field names and the dollar budget encoding.
func readProfile(path string, stdin io.Reader) (domain.UserProfile, error) {
	var (
		raw []byte
		err error
	)
	if path == "" || path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("read profile: %w", err)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return domain.UserProfile{}, fmt.Errorf("parse profile yaml: %w", err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return domain.UserProfile{}, fmt.Errorf("convert profile yaml: %w", err)
		}
	}

	var req api.ResolveRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return domain.UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return req.Profile(), nil
}

func printResult(w io.Writer, res resolver.Result, explain bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if !explain {
		return enc.Encode(res.Stack)
	}
	return enc.Encode(api.Explain(res))
}
