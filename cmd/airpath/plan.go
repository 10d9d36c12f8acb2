// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/airpath/network"
	"github.com/katalvlaran/airpath/refine"
	"github.com/katalvlaran/airpath/report"
)

type planFlags struct {
	mode    string
	from    string
	to      string
	geojson string
	verbose bool
}

func newPlanCmd(a *app) *cobra.Command {
	var pf planFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan one route and print its summary as JSON",
		Example: `  airpath plan --from 52.4800,-1.9000 --to 52.4862,-1.8904
  airpath plan -c airpath.toml --mode bike --from 52.48,-1.90 --to 52.49,-1.88 --geojson route.geojson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPlan(cmd, pf)
		},
	}
	f := cmd.Flags()
	f.StringVar(&pf.mode, "mode", "walk", "travel mode: walk or bike")
	f.StringVar(&pf.from, "from", "", "origin as lat,lon")
	f.StringVar(&pf.to, "to", "", "destination as lat,lon")
	f.StringVar(&pf.geojson, "geojson", "", "also write the routes as GeoJSON to this file")
	f.BoolVarP(&pf.verbose, "verbose", "v", false, "log every refinement attempt")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (a *app) runPlan(cmd *cobra.Command, pf planFlags) error {
	ctx := cmd.Context()
	mode, err := network.ParseTravelMode(pf.mode)
	if err != nil {
		return err
	}
	from, err := parseLatLon(pf.from)
	if err != nil {
		return err
	}
	to, err := parseLatLon(pf.to)
	if err != nil {
		return err
	}

	air, err := buildOracle(a.cfg)
	if err != nil {
		return err
	}
	g, err := buildRegistry(a.cfg, a.log).Get(ctx, mode)
	if err != nil {
		return err
	}
	source, d, err := network.NearestNode(g, from)
	if err != nil {
		return err
	}
	a.log.Debug("snapped origin", "node", source, "distance_m", d)
	target, d, err := network.NearestNode(g, to)
	if err != nil {
		return err
	}
	a.log.Debug("snapped destination", "node", target, "distance_m", d)

	opts := append(refineOptions(a.cfg), refine.WithLogger(a.log))
	if pf.verbose {
		opts = append(opts, refine.WithObserver(func(at refine.Attempt) {
			a.log.Info("attempt",
				"round", at.Round,
				"tolerance", at.Tolerance,
				"excluded", len(at.Excluded),
				"reachable", at.Reachable,
				"violations", at.Violations,
				"escalated", at.Escalated,
			)
		}))
	}
	res, err := refine.Plan(ctx, g, source, target, a.cfg.Limits, air, opts...)
	if err != nil {
		return err
	}
	if res.Status != refine.Found {
		return res.Err()
	}

	summary, err := report.Summarize(ctx, g, res, report.SampleCache(g, res, air))
	if err != nil {
		return err
	}
	if summary.SamePath {
		fmt.Fprintln(cmd.ErrOrStderr(), "The shortest route already meets the pollution limits.")
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}

	if pf.geojson == "" {
		return nil
	}
	fc, err := report.GeoJSON(g, summary)
	if err != nil {
		return err
	}
	raw, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(pf.geojson, raw, 0o644)
}
