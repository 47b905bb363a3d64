package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
)

func newLineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Calcular una línea (tarifa efectiva, neto, IVA y bruto)",
		Example: `  pricingctl line --base 45.50 --qty 25.5 --tier standard --vat 23
  pricingctl line --base 80 --qty 3 --min 300 --vat 8 -o json
  pricingctl line -f linea.json`,
		Args: cobra.NoArgs,
		RunE: runLine,
	}
	f := cmd.Flags()
	f.StringP("file", "f", "", "JSON con la línea (- para stdin)")
	f.String("base", "", "precio base por unidad")
	f.String("standard", "", "precio explícito del nivel standard")
	f.String("premium", "", "precio explícito del nivel premium")
	f.String("regional", "", "multiplicador regional del servicio")
	f.String("min", "", "cargo mínimo")
	f.Bool("seasonal", false, "aplicar ajuste de temporada")
	f.String("seasonal-multiplier", "", "multiplicador de temporada")
	f.String("volume-threshold", "", "cantidad mínima para descuento por volumen")
	f.String("volume-percent", "", "porcentaje de descuento por volumen")
	f.String("qty", "1", "cantidad")
	f.String("unit", "", "unidad (m2, mb, szt)")
	f.String("tier", "", "basic | standard | premium")
	f.String("zone", "", "warsaw | krakow | gdansk | wroclaw | poznan | katowice | lublin | other")
	f.String("flat-discount", "", "descuento fijo de la línea")
	f.String("discount-percent", "", "descuento porcentual de la línea")
	f.Int("vat", 23, "tasa de IVA (0, 5, 8, 23)")
	return cmd
}

func lineFromFlags(cmd *cobra.Command) (dto.PricingLineRequest, error) {
	var in dto.PricingLineRequest
	var err error
	if in.BaseRate, err = requiredDecimal(cmd, "base"); err != nil {
		return in, err
	}
	if in.Quantity, err = requiredDecimal(cmd, "qty"); err != nil {
		return in, err
	}
	if in.MinimumCharge, err = requiredDecimal(cmd, "min"); err != nil {
		return in, err
	}
	if in.SeasonalMultiplier, err = requiredDecimal(cmd, "seasonal-multiplier"); err != nil {
		return in, err
	}
	if in.VolumeThreshold, err = requiredDecimal(cmd, "volume-threshold"); err != nil {
		return in, err
	}
	if in.VolumeDiscountPercent, err = requiredDecimal(cmd, "volume-percent"); err != nil {
		return in, err
	}
	if in.StandardRate, err = optionalDecimal(cmd, "standard"); err != nil {
		return in, err
	}
	if in.PremiumRate, err = optionalDecimal(cmd, "premium"); err != nil {
		return in, err
	}
	if in.RegionalMultiplier, err = optionalDecimal(cmd, "regional"); err != nil {
		return in, err
	}
	if in.FlatDiscountAmount, err = optionalDecimal(cmd, "flat-discount"); err != nil {
		return in, err
	}
	if in.DiscountPercent, err = optionalDecimal(cmd, "discount-percent"); err != nil {
		return in, err
	}
	in.SeasonalActive, _ = cmd.Flags().GetBool("seasonal")
	in.Unit, _ = cmd.Flags().GetString("unit")
	in.Tier, _ = cmd.Flags().GetString("tier")
	in.RegionalZone, _ = cmd.Flags().GetString("zone")
	in.VATRate, _ = cmd.Flags().GetInt("vat")
	return in, nil
}

func runLine(cmd *cobra.Command, _ []string) error {
	var in dto.PricingLineRequest
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		if err := readJSON(cmd, path, &in); err != nil {
			return err
		}
	} else {
		var err error
		if in, err = lineFromFlags(cmd); err != nil {
			return err
		}
	}

	out, err := billing.NewPricingUseCase(nil, nil).PriceLine(in)
	if err != nil {
		return err
	}
	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	printLine(cmd.OutOrStdout(), out)
	return nil
}

func printLine(w io.Writer, l *dto.PricedLineResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Nivel\t%s (%s)\n", l.Tier, l.TierRate)
	for _, s := range l.Stages {
		fmt.Fprintf(tw, "  %s\t× %s\t%s\n", s.Name, s.Multiplier, s.Rate)
	}
	fmt.Fprintf(tw, "Tarifa efectiva\t%s\n", l.EffectiveRate)
	fmt.Fprintf(tw, "Cantidad\t%s %s\n", l.Quantity, l.Unit)
	fmt.Fprintf(tw, "Neto antes de descuento\t%s\n", l.NetBeforeDiscount)
	if l.DiscountKind != "" {
		fmt.Fprintf(tw, "Descuento (%s)\t%s\n", l.DiscountKind, l.DiscountApplied)
	}
	if l.MinimumChargeApplied {
		fmt.Fprintln(tw, "Cargo mínimo aplicado\tsí")
	}
	fmt.Fprintf(tw, "Netto\t%s\n", l.Net)
	fmt.Fprintf(tw, "VAT %d%%\t%s\n", l.VATRate, l.VAT)
	fmt.Fprintf(tw, "Brutto\t%s\n", l.Gross)
	tw.Flush()
}

func newVATCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Totales y resumen de IVA de varias líneas",
		Long: `Lee un JSON con "lines" (mismo formato que POST /api/pricing/totals) y muestra
los totales del documento con el desglose de IVA por tasa.`,
		Example: `  pricingctl vat -f oferta.json
  cat oferta.json | pricingctl vat -f - -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			var in dto.PricingLinesRequest
			if err := readJSON(cmd, path, &in); err != nil {
				return err
			}
			out, err := billing.NewPricingUseCase(nil, nil).Quote(in)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printQuote(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "-", "JSON con las líneas (- para stdin)")
	return cmd
}

func printQuote(w io.Writer, q *dto.QuoteResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Stawka\tNetto\tVAT\tBrutto\tPozycje\t")
	for _, r := range q.VATSummary.VATBreakdown {
		fmt.Fprintf(tw, "%d%%\t%s\t%s\t%s\t%d\t\n", r.VATRate, r.NetAmount, r.VATAmount, r.GrossAmount, r.ItemCount)
	}
	tw.Flush()

	t := q.Totals
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal netto:  %s\n", t.SubtotalNet)
	if t.DocumentDiscountAmount != "0.00" {
		fmt.Fprintf(w, "Rabat:           %s\n", t.DocumentDiscountAmount)
	}
	if t.DeliveryCost != "0.00" {
		fmt.Fprintf(w, "Dostawa:         %s\n", t.DeliveryCost)
	}
	fmt.Fprintf(w, "Razem netto:     %s\n", t.TotalNet)
	fmt.Fprintf(w, "VAT:             %s\n", t.VATAmount)
	fmt.Fprintf(w, "Do zapłaty:      %s\n", formatted(t.TotalGross))
	fmt.Fprintf(w, "Słownie:         %s\n", q.InWords)
}

func formatted(amount string) string {
	d, err := money.ParseAmount(amount)
	if err != nil {
		return amount
	}
	return money.FormatPLN(d)
}
