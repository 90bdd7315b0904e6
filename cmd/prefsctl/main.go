// Command prefsctl checks travel preference files locally and manages the
// stored preferences of an account through the API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"tripwise/internal/gateway"
	"tripwise/internal/preferences"
)

const (
	defaultServer = "http://localhost:8080"
	envServer     = "TRIPWISE_SERVER"
	envToken      = "TRIPWISE_TOKEN"
)

var (
	errInvalidDocument = errors.New("document is not valid")
	errNoDraft         = errors.New("no draft saved")
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	server  string
	token   string
	output  string
	timeout time.Duration
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "prefsctl",
		Short: "Validate and manage travel preferences",
		Long: `Validate and manage travel preferences.

Files may be JSON or YAML; the format is picked from the extension.

Examples:
  prefsctl validate prefs.yaml
  prefsctl put prefs.json --token $TOKEN
  prefsctl get -o yaml
`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr(envServer, defaultServer), "API base URL ($"+envServer+")")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv(envToken), "bearer token ($"+envToken+")")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	cmd.AddCommand(
		validateCmd(opts),
		getCmd(opts),
		putCmd(opts),
		draftCmd(opts),
		deleteCmd(opts),
	)
	return cmd
}

func validateCmd(opts *options) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a preferences file",
		Long:  "Check a preferences file locally, or with --remote ask the server to check it without storing it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			var problems []string
			if remote {
				err = withClient(cmd, opts, func(ctx context.Context, c *gateway.Client) error {
					result, err := c.Validate(ctx, doc)
					if err != nil {
						return err
					}
					for _, issue := range result.Errors {
						problems = append(problems, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
					}
					return nil
				})
				if err != nil {
					return err
				}
			} else {
				problems = collectProblems(doc)
			}

			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(out, "%s: valid (%d sections)\n", args[0], len(doc.PresentSections()))
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(out, "%s: %s\n", args[0], p)
			}
			return errInvalidDocument
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "validate on the server")
	return cmd
}

func getCmd(opts *options) *cobra.Command {
	var draft bool
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *gateway.Client) error {
				if draft {
					doc, ok, err := c.LoadDraft(ctx)
					if err != nil {
						return err
					}
					if !ok {
						return errNoDraft
					}
					return printDocument(cmd.OutOrStdout(), opts.output, doc)
				}
				doc, err := c.Load(ctx)
				if err != nil {
					return err
				}
				return printDocument(cmd.OutOrStdout(), opts.output, doc)
			})
		},
	}
	cmd.Flags().BoolVar(&draft, "draft", false, "print the unfinished draft instead")
	return cmd
}

func putCmd(opts *options) *cobra.Command {
	var skipCheck bool
	cmd := &cobra.Command{
		Use:   "put FILE",
		Short: "Validate a preferences file and replace the stored preferences with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			if !skipCheck {
				if err := preferences.Validate(doc); err != nil {
					return err
				}
			}
			return withClient(cmd, opts, func(ctx context.Context, c *gateway.Client) error {
				saved, err := c.Save(ctx, doc)
				if err != nil {
					return err
				}
				return printDocument(cmd.OutOrStdout(), opts.output, saved)
			})
		},
	}
	cmd.Flags().BoolVar(&skipCheck, "no-check", false, "let the server do all validation")
	return cmd
}

func draftCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "draft FILE",
		Short: "Store a preferences file as an unfinished draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			return withClient(cmd, opts, func(ctx context.Context, c *gateway.Client) error {
				if err := c.SaveDraft(ctx, doc); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "draft saved")
				return nil
			})
		},
	}
}

func deleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *gateway.Client) error {
				if err := c.Delete(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "preferences deleted")
				return nil
			})
		},
	}
}

func withClient(cmd *cobra.Command, opts *options, fn func(context.Context, *gateway.Client) error) error {
	if opts.token == "" {
		return fmt.Errorf("%w: pass --token or set %s", gateway.ErrUnauthenticated, envToken)
	}
	client, err := gateway.New(opts.server, opts.token)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	return fn(ctx, client)
}

func readDocument(path string) (preferences.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return preferences.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return preferences.DecodeDocumentYAML(raw)
	default:
		return preferences.DecodeDocument(raw)
	}
}

// collectProblems lists the first failure of every section, then every
// violated cross-field rule.
func collectProblems(doc preferences.Document) []string {
	var problems []string
	for _, sec := range preferences.Sections {
		if err := preferences.ValidateSection(sec, doc); err != nil {
			var verr *preferences.ValidationError
			if errors.As(err, &verr) {
				problems = append(problems, fmt.Sprintf("%s: %s", verr.Field, verr.Message))
				continue
			}
			problems = append(problems, err.Error())
		}
	}
	for _, c := range preferences.CrossFieldViolations(doc) {
		problems = append(problems, fmt.Sprintf("%s: %s", strings.Join(c.Fields, " + "), c.Message))
	}
	return problems
}

func printDocument(w io.Writer, format string, doc preferences.Document) error {
	switch format {
	case "yaml":
		// go through JSON so YAML keys match the wire names
		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
