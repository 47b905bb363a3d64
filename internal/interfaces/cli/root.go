// Package cli comandos de pricingctl: cálculo de líneas y resúmenes de IVA sin servidor,
// consulta de numeración, importes en palabras y tokens de desarrollo.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/thecactoos/enterprise-sub001/internal/app"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
	"github.com/thecactoos/enterprise-sub001/pkg/logger"
)

// Options dependencias de los comandos. Config puede ser nil: solo next-number y token la usan.
type Options struct {
	Version     string
	Config      *config.Config
	Log         *logger.Logger
	OpenStorage func(ctx context.Context) (*app.Storage, error)
}

// NewRootCommand construye el árbol de comandos.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.OpenStorage == nil {
		opts.OpenStorage = func(ctx context.Context) (*app.Storage, error) {
			if opts.Config == nil {
				return nil, fmt.Errorf("configuración no disponible")
			}
			return app.OpenStorage(ctx, opts.Config, opts.Log)
		}
	}

	root := &cobra.Command{
		Use:   "pricingctl",
		Short: "Motor de precios, IVA y numeración desde la línea de comandos",
		Long: `pricingctl calcula líneas y resúmenes de IVA con las mismas reglas que la API,
consulta el próximo número de un tipo de documento y genera tokens para pruebas.`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("output", "o", "text", "formato de salida: text | json")

	root.AddCommand(
		newLineCommand(),
		newVATCommand(),
		newNextNumberCommand(opts),
		newParseNumberCommand(),
		newWordsCommand(),
		newTokenCommand(opts),
	)
	return root
}

// Execute ejecuta el comando raíz y termina el proceso con código 1 si falla.
func Execute(opts Options) {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	if err := NewRootCommand(opts).Execute(); err != nil {
		log.WithComponent("cmd").Error().Err(err).Msg("comando fallido")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func jsonOutput(cmd *cobra.Command) bool {
	f, _ := cmd.Flags().GetString("output")
	return strings.EqualFold(f, "json")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readJSON lee un JSON desde path ("-" es la entrada estándar).
func readJSON(cmd *cobra.Command, path string, out interface{}) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("JSON inválido: %w", err)
	}
	return nil
}

// parseDecimal acepta coma o punto decimal.
func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: valor %q no es un número", name, s)
	}
	return d, nil
}

func optionalDecimal(cmd *cobra.Command, name string) (decimal.NullDecimal, error) {
	if !cmd.Flags().Changed(name) {
		return decimal.NullDecimal{}, nil
	}
	s, _ := cmd.Flags().GetString(name)
	d, err := parseDecimal(name, s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func requiredDecimal(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(name, s)
}
