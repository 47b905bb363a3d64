package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/pkg/jwt"
)

func newNextNumberCommand(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "next-number",
		Short:   "Próximo número de un tipo de documento (no lo reserva)",
		Example: `  pricingctl next-number --company 3f1c... --type FV --year 2025 --month 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			companyID, _ := cmd.Flags().GetString("company")
			docType, _ := cmd.Flags().GetString("type")
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			if companyID == "" {
				return fmt.Errorf("--company es obligatorio")
			}
			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			st, err := opts.OpenStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			numberingUC := billing.NewNumberingUseCase(st.Documents, st.Sequences, 1, nil, opts.Log)
			out, err := billing.NewPricingUseCase(numberingUC, nil).NextNumber(cmd.Context(), companyID, docType, year, month)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Number)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("company", "", "ID de la empresa")
	f.StringP("type", "t", "vat_invoice", "vat_invoice | proforma | corrective | quote (o FV, PF, FK, OF)")
	f.Int("year", 0, "año (por defecto el actual)")
	f.Int("month", 0, "mes (por defecto el actual)")
	return cmd
}

func newParseNumberCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "parse-number NUMBER",
		Short:   "Interpretar un número de documento",
		Example: `  pricingctl parse-number OF/2025/01/0007-v2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, ok := billing.ParseNumber(args[0])
			if !ok {
				return fmt.Errorf("%w: número %q con formato inválido", domain.ErrInvalidInput, args[0])
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "tipo: %s\nprefijo: %s\nperiodo: %04d-%02d\nsecuencia: %d\n", out.Type, out.Prefix, out.Year, out.Month, out.Sequence)
			if out.Revision > 0 {
				fmt.Fprintf(w, "revisión: %d\n", out.Revision)
			}
			return nil
		},
	}
}

func newWordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "words AMOUNT",
		Short:   "Importe en palabras (línea «Słownie» de la factura)",
		Example: `  pricingctl words "1 641,18"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.ParseAmount(args[0])
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"amount":    money.Fixed(amount),
					"formatted": money.FormatPLN(amount),
					"inWords":   money.InWords(amount),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), money.InWords(amount))
			return nil
		},
	}
}

func newTokenCommand(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generar un token Bearer para desarrollo (firma con JWT_SECRET)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Config == nil {
				return fmt.Errorf("configuración no disponible")
			}
			userID, _ := cmd.Flags().GetString("user")
			companyID, _ := cmd.Flags().GetString("company")
			role, _ := cmd.Flags().GetString("role")
			switch role {
			case jwt.RoleAdmin, jwt.RoleSales, jwt.RoleViewer:
			default:
				return fmt.Errorf("--role debe ser %s, %s o %s", jwt.RoleAdmin, jwt.RoleSales, jwt.RoleViewer)
			}
			if userID == "" || companyID == "" {
				return fmt.Errorf("--user y --company son obligatorios")
			}
			cfg := opts.Config.JWT
			tok, err := jwt.Generate(cfg.Secret, userID, companyID, role, cfg.Issuer, cfg.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("user", "", "ID del usuario")
	f.String("company", "", "ID de la empresa")
	f.String("role", jwt.RoleSales, "admin | sales | viewer")
	return cmd
}
