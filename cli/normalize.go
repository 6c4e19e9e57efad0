package cli

import (
	"fmt"
	"strings"

	"github.com/Luasgl/P2AULA2/core"

	"github.com/spf13/cobra"
)

func normalizeCmd() *cobra.Command {
	var domain string
	var foldAccents bool

	c := &cobra.Command{
		Use:   "normalize NAME...",
		Short: "Print the normalized name and derived e-mail (no DB)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.ValidateDomain(domain); err != nil { // same rule as email_domain in config
				return err
			}
			p := core.Pipeline{Domain: domain, FoldAccents: foldAccents}
			res, err := p.Run(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nome:  %s\n", res.Normalized)
			fmt.Fprintf(out, "email: %s\n", res.Email)
			return nil
		},
	}

	c.Flags().StringVarP(&domain, "domain", "d", core.DefaultEmailDomain, "E-mail domain to append")
	c.Flags().BoolVar(&foldAccents, "fold-accents", false, "Transliterate accented letters (João -> joao) instead of dropping them")
	return c
}
