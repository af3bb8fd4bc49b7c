package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
	"github.com/preston-bernstein/hooponomics-service/internal/server"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

func (c *cli) services() server.Services {
	return server.NewServices(c.cfg, c.logger, nil)
}

func newPlayerCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "player NAME",
		Short: "Show a player's salary, market value and surplus value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := c.services().Players.Player(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(detail)
			}
			fmt.Fprintf(c.out, "%s earned a salary of %s. According to our model, his market value was %s.\n",
				detail.Name, detail.SalaryLabel, detail.MarketValueLabel)
			if detail.ProfileURL != "" {
				fmt.Fprintln(c.out, detail.ProfileURL)
			}
			return c.printRows([]valuation.Row{detail.Row})
		},
	}
}

func newSimilarCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "similar NAME",
		Short: "List players with the same position and market value class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := c.services().Players
			if limit <= 0 {
				limit = svc.Limits().Similar
			}
			rows, err := svc.Similar(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return c.printRows(rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of players (default SIMILAR_LIMIT)")
	return cmd
}

func newTeamCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "team NAME",
		Short: "Show the valuation of every player on a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.services().Teams.Roster(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printRows(rows)
		},
	}
}

func newTeamsCmd(c *cli) *cobra.Command {
	var surplus bool
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams, or their net surplus value with --surplus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs := c.services()
			if !surplus {
				names, err := svcs.Teams.Teams(cmd.Context())
				if err != nil {
					return err
				}
				if c.asJSON {
					return c.printJSON(names)
				}
				fmt.Fprintln(c.out, strings.Join(names, "\n"))
				return nil
			}
			rows, err := svcs.Teams.Surplus(cmd.Context())
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(rows)
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Team\tNet Surplus Value ($M)")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\n", r.Team, r.Display)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&surplus, "surplus", false, "show net surplus value by team")
	return cmd
}

func newRankedCmd(c *cli) *cobra.Command {
	var (
		limit     int
		positions string
	)
	cmd := &cobra.Command{
		Use:       "ranked undervalued|overvalued",
		Short:     "List the most undervalued or overvalued players",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(query.Undervalued), string(query.Overvalued)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := query.ParseDirection(args[0])
			if err != nil {
				return err
			}
			pos := append([]players.Position(nil), players.AllPositions...)
			if cmd.Flags().Changed("positions") {
				if pos, err = query.ParsePositions(positions); err != nil {
					return err
				}
			}
			svc := c.services().Players
			if !cmd.Flags().Changed("limit") {
				limit = svc.Limits().Ranked
			}
			rows, err := svc.Ranked(cmd.Context(), dir, pos, limit)
			if err != nil {
				return err
			}
			return c.printRows(rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of players (default RANKED_LIMIT)")
	cmd.Flags().StringVarP(&positions, "positions", "p", "all", "comma-separated positions (PG,SG,SF,PF,C) or all")
	return cmd
}

func (c *cli) printRows(rows []valuation.Row) error {
	if c.asJSON {
		return c.printJSON(map[string]any{"columns": valuation.Columns, "rows": rows})
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(valuation.Columns, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r.Cells(), "\t"))
	}
	return tw.Flush()
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
