package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app"
	"github.com/jsamuelsen/askkodiak-gateway/internal/cli/output"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

func newNaicsCmd(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "naics",
		Short: "Look up and search NAICS codes and groups",
	}

	cmd.AddCommand(
		newNaicsCodeCmd(rt),
		newNaicsResolveCmd(rt),
		newNaicsGroupCmd(rt),
		newNaicsDescribeCmd(rt),
		newNaicsSuggestCmd(rt),
		newNaicsSearchCmd(rt),
	)

	return cmd
}

func newNaicsCodeCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "code <hash>",
		Short: "Show one NAICS code by hash",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			code, err := svc.GetNaicsCode(ctx, args[0])
			if err != nil {
				return err
			}

			resp := dto.NewNaicsCodeResponse(*code)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Heading("%s %s", resp.Code, resp.Description)
				t.Field("Hash", resp.Hash)
			})
		}),
	}
}

func newNaicsResolveCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <hash>...",
		Short: "Look up several NAICS codes by hash",
		Args:  cobra.MinimumNArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			res, err := svc.ResolveCodes(ctx, args)
			if err != nil {
				return err
			}

			resp := dto.NewResolutionResponse(res)

			return rt.printer.Print(resp, func(t *output.Text) {
				for _, c := range resp.Codes {
					t.Row(c.Code, c.Description)
				}

				t.List("Missing", resp.Missing)
			})
		}),
	}
}

func newNaicsGroupCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "group <code>",
		Short: "Show a node of the NAICS hierarchy, e.g. 31-33 or 3118",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			group, err := svc.GetNaicsGroup(ctx, args[0])
			if err != nil {
				return err
			}

			resp := dto.NewNaicsGroupResponse(group)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Heading("%s %s", resp.Code, resp.Title)
				t.Field("Type", resp.Type)
				t.Field("Parent", resp.Parent)
				t.List("Children", resp.Descendants)
				t.List("Codes", resp.Codes)
			})
		}),
	}
}

func newNaicsDescribeCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <group>",
		Short: "Show the long form description of a NAICS group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := rt.client()
			if err != nil {
				return err
			}

			desc, err := client.NaicsDescription(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			resp := dto.NewNaicsDescriptionResponse(*desc)

			return rt.printer.Print(resp, func(t *output.Text) {
				t.Heading("%s", resp.Group)
				t.Note("%s", resp.Description)
			})
		},
	}
}

func newNaicsSuggestCmd(rt *session) *cobra.Command {
	var opts ports.SuggestOptions

	cmd := &cobra.Command{
		Use:   "suggest <term>",
		Short: "Suggest NAICS codes and groups for a search term",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			s, err := svc.Suggest(ctx, args[0], opts)
			if err != nil {
				return err
			}

			resp := dto.NewSuggestionsResponse(s)

			return rt.printer.Print(resp, func(t *output.Text) {
				if resp.Codes != nil {
					t.Heading("Codes")

					for _, h := range resp.Codes.Hits {
						t.Row(h.Code, h.Description)
					}

					t.Note("%d hits, page %d of %d", resp.Codes.TotalHits, resp.Codes.Page+1, resp.Codes.Pages)
				}

				if resp.Groups != nil {
					t.Blank()
					t.Heading("Groups")

					for _, h := range resp.Groups.Hits {
						t.Row(h.Code, h.Title)
					}
				}
			})
		}),
	}

	cmd.Flags().StringVar(&opts.GroupType, "group-type", "", "restrict groups to one level, e.g. sector")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "zero-based page of hits")
	cmd.Flags().IntVar(&opts.HitsPerPage, "hits", 0, "hits per page (max 100)")

	return cmd
}

func newNaicsSearchCmd(rt *session) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Fuzzy search NAICS code descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(ctx context.Context, svc *app.ClassificationService, args []string) error {
			matches, err := svc.SearchCodes(ctx, args[0], limit)
			if err != nil {
				return err
			}

			resp := dto.NewCodeMatchResponses(matches)

			return rt.printer.Print(resp, func(t *output.Text) {
				if len(resp) == 0 {
					t.Note("no codes match %q", args[0])
					return
				}

				for _, m := range resp {
					t.Row(m.Code, fmt.Sprintf("%s (%d)", m.Description, m.Score))
				}
			})
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum matches")

	return cmd
}
