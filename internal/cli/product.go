package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app"
	"github.com/jsamuelsen/askkodiak-gateway/internal/cli/output"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

func newProductCmd(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Inspect products and their NAICS eligibility",
	}

	cmd.AddCommand(
		newProductGetCmd(rt),
		newProductCheckCmd(rt),
		newProductReportCmd(rt),
		newProductLevelCmd(rt),
		newProductEligibleCmd(rt),
		newProductCompanyCmd(rt),
		newProductMineCmd(rt),
	)

	return cmd
}

func newProductGetCmd(rt *session) *cobra.Command {
	var opts ports.ProductOptions

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			p, err := svc.GetProduct(ctx, args[0], opts)
			if err != nil {
				return err
			}

			resp := dto.NewProductResponse(*p)

			return rt.printer.Print(resp, func(t *output.Text) {
				writeProduct(t, resp)
			})
		}),
	}

	cmd.Flags().BoolVar(&opts.IncludeEligibility, "eligibility", false, "include the eligibility rules")
	cmd.Flags().StringSliceVar(&opts.Geos, "geo", nil, "restrict to ISO 3166-2 regions, e.g. US-CA")

	return cmd
}

func writeProduct(t *output.Text, p dto.ProductResponse) {
	t.Heading("%s", p.Name)
	t.Field("ID", p.ID)
	t.Field("Owner", p.OwnerID)
	t.Field("Description", p.Description)
	t.List("Coverage", p.CoverageType)
	t.List("Geos", p.Geos)

	if p.Admitted != nil {
		t.Verdict("Admitted", *p.Admitted)
	}

	if p.Eligible != nil {
		t.Verdict("Eligible", *p.Eligible)
	}
}

func newProductCheckCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "check <product-id> <naics-code>",
		Short: "Check whether a product accepts a NAICS code",
		Args:  cobra.ExactArgs(2),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			e, err := svc.CheckEligibility(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			resp := dto.NewEligibilityResponse(*e)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Verdict(resp.Code, resp.Eligible)

				if resp.PercentOfCodesEligible > 0 {
					t.Field("Codes eligible", strconv.FormatFloat(resp.PercentOfCodesEligible, 'f', -1, 64)+"%")
				}
			})
		}),
	}
}

func newProductReportCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "report <product-id> <naics-code>...",
		Short: "Check a product against several NAICS codes",
		Args:  cobra.MinimumNArgs(2),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			report, err := svc.EligibilityReport(ctx, args[0], dto.SplitList(args[1:]))
			if err != nil {
				return err
			}

			resp := dto.NewEligibilityReportResponse(report)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Heading("Product %s", resp.ProductID)

				for _, r := range resp.Results {
					t.Verdict(r.Code, r.Eligible)
				}

				t.Note("%d of %d codes eligible", len(resp.Eligible), len(resp.Results))
			})
		}),
	}
}

func newProductLevelCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "level <product-id> <group-type>",
		Short: "Show which NAICS groups of one level, e.g. sector, a product accepts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := rt.client()
			if err != nil {
				return err
			}

			groups, err := client.EligibilityByNaicsType(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			resp := dto.NewGroupEligibilityResponse(args[0], args[1], groups)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Heading("Product %s by %s", resp.ProductID, resp.Type)

				for _, g := range resp.Groups {
					t.Row(g.Code, strconv.FormatFloat(g.PercentOfCodesEligible, 'f', -1, 64)+"%")
				}
			})
		},
	}
}

func newProductEligibleCmd(rt *session) *cobra.Command {
	var opts ports.EligibleOptions

	cmd := &cobra.Command{
		Use:   "eligible <naics-code>",
		Short: "List products that accept a NAICS code",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			if opts.PerPage > dto.MaxPerPage {
				return fmt.Errorf("--per-page must be at most %d", dto.MaxPerPage)
			}

			page, err := svc.ProductsEligibleForCode(ctx, args[0], opts)
			if err != nil {
				return err
			}

			resp := dto.NewEligibleProductsResponse(page)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Heading("%s %s", resp.Code, resp.Description)

				for _, p := range resp.Items {
					t.Row(p.ID, p.Name)
				}

				t.Note("%d products, page %d of %d", resp.Meta.Count, resp.Meta.Page+1, resp.Meta.Pages)
			})
		}),
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.Owners, "owner", nil, "restrict to product owners")
	f.StringSliceVar(&opts.Geos, "geo", nil, "restrict to ISO 3166-2 regions")
	f.StringSliceVar(&opts.EntityTypes, "entity-type", nil, "restrict to business entity types")
	f.BoolVar(&opts.SummaryOnly, "summary", false, "return product summaries only")
	f.IntVar(&opts.Page, "page", 0, "zero-based page")
	f.IntVar(&opts.PerPage, "per-page", 0, fmt.Sprintf("products per page (max %d)", dto.MaxPerPage))

	return cmd
}

// pageFlags binds the paging flags shared by the product searches.
func pageFlags(cmd *cobra.Command, f *acl.ProductFilters) {
	cmd.Flags().StringSliceVar(&f.Geos, "geo", nil, "restrict to ISO 3166-2 regions")
	cmd.Flags().IntVar(&f.Page, "page", 0, "zero-based page")
	cmd.Flags().IntVar(&f.ProductsPerPage, "per-page", 0, fmt.Sprintf("products per page (max %d)", dto.MaxPerPage))
}

func (rt *session) printProductPage(page *domain.ProductPage, title string) error {
	resp := dto.NewEligibleProductsResponse(page)

	return rt.printer.Print(resp, func(t *output.Text) {
		t.Heading("%s", title)

		for _, p := range resp.Items {
			t.Row(p.ID, p.Name)
		}

		t.Note("%d products, page %d of %d", resp.Meta.Count, resp.Meta.Page+1, resp.Meta.Pages)
	})
}

func newProductCompanyCmd(rt *session) *cobra.Command {
	var query acl.CompanyQuery

	cmd := &cobra.Command{
		Use:   "company <company-id>",
		Short: "List products offered by one company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query.ProductsPerPage > dto.MaxPerPage {
				return fmt.Errorf("--per-page must be at most %d", dto.MaxPerPage)
			}

			client, _, err := rt.client()
			if err != nil {
				return err
			}

			page, err := client.ProductsForCompany(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}

			return rt.printProductPage(page, "Products of "+args[0])
		},
	}

	cmd.Flags().StringSliceVar(&query.NaicsCodes, "naics-code", nil, "restrict to NAICS codes")
	cmd.Flags().StringSliceVar(&query.NaicsGroups, "naics-group", nil, "restrict to NAICS groups")
	pageFlags(cmd, &query.ProductFilters)

	return cmd
}

func newProductMineCmd(rt *session) *cobra.Command {
	var (
		query           acl.UserQuery
		classifications []string
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List products visible to the authenticated account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if query.ProductsPerPage > dto.MaxPerPage {
				return fmt.Errorf("--per-page must be at most %d", dto.MaxPerPage)
			}

			parsed, err := parseClassifications(classifications)
			if err != nil {
				return err
			}
			query.Classifications = parsed

			client, _, err := rt.client()
			if err != nil {
				return err
			}

			page, err := client.ProductsForUser(cmd.Context(), query)
			if err != nil {
				return err
			}

			return rt.printProductPage(page, "Products")
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&query.Owners, "owner", nil, "restrict to product owners")
	f.StringVar(&query.CompanyType, "company-type", "", "restrict to one company type")
	f.StringSliceVar(&query.NaicsCodes, "naics-code", nil, "restrict to NAICS codes")
	f.StringSliceVar(&query.NaicsGroups, "naics-group", nil, "restrict to NAICS groups")
	f.StringArrayVar(&classifications, "classification", nil, "custom taxonomy code as taxonomy:code, repeatable")
	pageFlags(cmd, &query.ProductFilters)

	return cmd
}

func parseClassifications(values []string) ([]acl.Classification, error) {
	out := make([]acl.Classification, 0, len(values))

	for _, v := range values {
		tid, cid, ok := strings.Cut(v, ":")
		if !ok || tid == "" || cid == "" {
			return nil, fmt.Errorf("invalid --classification %q: want taxonomy:code", v)
		}

		out = append(out, acl.Classification{TaxonomyID: tid, CodeID: cid})
	}

	return out, nil
}
