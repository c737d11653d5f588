package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/api"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/bank"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/httpserver"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// errCasesFailed makes test exit non-zero after the report is printed.
var errCasesFailed = errors.New("one or more cases failed")

func (a *app) listCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := a.catalog.List()
			if kind != "" {
				k, err := unit.ParseKind(kind)
				if err != nil {
					return err
				}
				list = a.catalog.ListKind(k)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tDESCRIPTION")
			for _, u := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Name, u.Kind, u.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only units of this kind")
	return cmd
}

type paramFlags struct {
	file string
	sets []string
	mock string
	json bool
}

func (f *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "params", "p", "", "Input Context file (YAML or JSON), - for stdin")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "set an Input Context field, key=value (repeatable)")
	cmd.Flags().StringVar(&f.mock, "mock", "", "base Input Context: ok, error or none (default ok when no params are given)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the result as JSON")
}

func (f paramFlags) given() bool {
	return f.file != "" || len(f.sets) > 0
}

func (a *app) runCmd() *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "run <unit>",
		Short: "Run a catalog unit",
		Example: `  ivrkit run validation/credit-card --set valueToValidate=4532015112830366
  ivrkit run output/parse-user-profile -p response.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.catalog.Get(args[0])
			if err != nil {
				return err
			}
			hd := a.harness.Native(u.Name, u.Kind, u.Func)
			return a.execute(cmd, hd, pf)
		},
	}
	pf.register(cmd)
	return cmd
}

func (a *app) execCmd() *cobra.Command {
	var (
		pf   paramFlags
		kind string
		lang string
	)
	cmd := &cobra.Command{
		Use:   "exec <file>",
		Short: "Load a Go or CEL unit from a file and run it",
		Long: `Loads a unit in file form (package main with func Run(params ocp.Params) any),
body form (statements, the last expression is the result) or as a CEL
expression. Files ending in .cel default to --lang cel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if lang == "" && strings.EqualFold(filepath.Ext(args[0]), ".cel") {
				lang = string(harness.LangCEL)
			}
			l, err := harness.ParseLang(lang)
			if err != nil {
				return err
			}
			k, err := unit.ParseKind(kind)
			if err != nil {
				return err
			}

			hd, err := a.harness.Load(harness.Source{Name: filepath.Base(args[0]), Kind: k, Lang: l, Text: string(text)})
			if err != nil {
				return err
			}
			return a.execute(cmd, hd, pf)
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "", "declared result kind: validator, formatter or parser")
	cmd.Flags().StringVar(&lang, "lang", "", "source language: go or cel")
	return cmd
}

func (a *app) execute(cmd *cobra.Command, hd *harness.Handle, pf paramFlags) error {
	base, err := mockParams(pf.mock, pf.given(), hd.Kind, a.clock())
	if err != nil {
		return err
	}
	params, err := readParams(base, pf.file, cmd.InOrStdin(), pf.sets)
	if err != nil {
		return err
	}
	res, err := a.harness.Run(cmd.Context(), hd, params)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res, pf.json)
}

func printResult(w io.Writer, res unit.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if res.Kind != unit.KindParser {
		_, err := fmt.Fprintln(w, res.String())
		return err
	}
	for _, k := range res.Fields.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, res.Fields[k]); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) testCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "test <bank.yaml>...",
		Short: "Run unit bank cases",
		Long:  "Runs every case of the given banks and prints a report. Exits non-zero when a case fails.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := bank.ParseFormat(format)
			if err != nil {
				return err
			}

			banks := make([]*bank.Bank, 0, len(args))
			for _, path := range args {
				b, err := bank.LoadFile(path)
				if err != nil {
					return err
				}
				banks = append(banks, b)
			}

			runner := bank.NewRunner(a.harness, bank.WithCatalog(a.catalog), bank.WithLogger(a.log))
			rep, err := runner.Run(cmd.Context(), banks...)
			if err != nil {
				return err
			}
			if err := rep.Render(cmd.OutOrStdout(), f); err != nil {
				return err
			}
			if !rep.OK() {
				return fmt.Errorf("%w: %d of %d", errCasesFailed, rep.Failed, rep.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(bank.FormatMarkdown), "report format: markdown or json")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the unit API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.HTTP
			if addr != "" {
				cfg.Addr = addr
			}

			handler := api.New(a.harness,
				api.WithCatalog(a.catalog),
				api.WithLogger(a.log),
				api.WithEval(a.cfg.AllowEval),
				api.WithMaxBodyBytes(cfg.MaxBodyBytes),
			).Router()

			srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(a.log))
			return srv.Run(serveContext(cmd), handler)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func serveContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
