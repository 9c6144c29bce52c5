package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app"
	"github.com/jsamuelsen/askkodiak-gateway/internal/cli/output"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

func newCompanyCmd(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "company",
		Aliases: []string{"companies"},
		Short:   "Browse carriers and other companies",
	}

	cmd.AddCommand(newCompanyGetCmd(rt), newCompanyListCmd(rt))

	return cmd
}

func newCompanyGetCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one company",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			c, err := svc.GetCompany(ctx, args[0])
			if err != nil {
				return err
			}

			resp := dto.NewCompanyResponse(*c)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Heading("%s", resp.Name)
				t.Field("ID", resp.ID)
				t.Field("NAIC", resp.NAIC)
				t.Field("Location", resp.Location)
				t.Field("Website", resp.Website)
				t.Verdict("Carrier", resp.IsCarrier)

				if resp.Joined != nil {
					t.Field("Joined", resp.Joined.Format("2006-01-02"))
				}

				t.List("Products", resp.Products)
			})
		}),
	}
}

func newCompanyListCmd(rt *session) *cobra.Command {
	var opts ports.CompanyListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, _ []string) error {
			if opts.PerPage > dto.MaxPerPage {
				return fmt.Errorf("--per-page must be at most %d", dto.MaxPerPage)
			}

			page, err := svc.ListCompanies(ctx, opts)
			if err != nil {
				return err
			}

			resp := dto.NewCompanyPageResponse(page)

			return rt.printer.Print(resp, func(t *output.Text) {
				for _, c := range resp.Items {
					t.Row(c.ID, c.Name)
				}

				t.Note("%d companies, page %d of %d", resp.Meta.Count, resp.Meta.Page+1, resp.Meta.Pages)
			})
		}),
	}

	cmd.Flags().StringVar(&opts.CompanyType, "type", "", "company type, e.g. carrier")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "zero-based page")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, fmt.Sprintf("companies per page (max %d)", dto.MaxPerPage))

	return cmd
}

func newRefCmd(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "entity-types",
		Short: "List business entity types",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, _ []string) error {
			types, err := svc.EntityTypes(ctx)
			if err != nil {
				return err
			}

			return rt.printer.Print(types, func(t *output.Text) {
				for _, k := range slices.Sorted(maps.Keys(types)) {
					t.Row(k, types[k])
				}
			})
		}),
	})

	return cmd
}
