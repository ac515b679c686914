package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"consumption-sim/internal/config"
	"consumption-sim/internal/data"
	"consumption-sim/internal/experiment"
	"consumption-sim/internal/model"
	"consumption-sim/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli run --config examples/config.yaml --out results/agents.csv")
	fmt.Println("  cli sweep --scenarios scenarios.json --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - run solves and simulates one experiment, then prints the aggregates")
	fmt.Println("  - sweep runs every scenario in a JSON batch and prints a comparison table")
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional; defaults to baseline)")
	outPath := fs.String("out", "results/agents.csv", "Output CSV path for the per-agent ledger")
	lorenzOut := fs.String("lorenz-out", "", "Optional CSV path for the Lorenz curve")
	corrAct := fs.Float64("corr-act", 0, "Override: actual income persistence")
	corrPcvd := fs.Float64("corr-pcvd", 0, "Override: perceived income persistence")
	_ = fs.Parse(args)

	base, spec, lorenzPoints := loadConfig(*cfgPath)
	if *corrAct != 0 {
		spec.CorrAct = *corrAct
	}
	if *corrPcvd != 0 {
		spec.CorrPcvd = *corrPcvd
	}

	runner := experiment.New(base)
	res, err := runner.Run(spec)
	if err != nil {
		panic(err)
	}
	summary, err := report.BuildSummary(res, lorenzPoints)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := report.WriteAgentCSV(*outPath, res); err != nil {
		panic(err)
	}
	if *lorenzOut != "" {
		if err := report.WriteLorenzCSV(*lorenzOut, summary); err != nil {
			panic(err)
		}
	}

	fmt.Printf("Wrote %d agents to %s\n", res.AgentCount(), *outPath)
	printSummary(summary)
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	scenariosPath := fs.String("scenarios", "", "Path to a scenarios JSON batch")
	cfgPath := fs.String("config", "", "Path to YAML config (optional; defaults to baseline)")
	_ = fs.Parse(args)

	if *scenariosPath == "" {
		fmt.Println("--scenarios is required")
		os.Exit(2)
	}

	base, defaults, lorenzPoints := loadConfig(*cfgPath)
	batch, err := data.LoadScenarioBatch(*scenariosPath)
	if err != nil {
		panic(err)
	}

	// Scenarios within a sweep often share a belief; cache solved rules.
	cache := data.NewRuleCache(30 * time.Minute)
	runner := experiment.New(base).WithCache(cache)

	fmt.Printf("%-28s %-10s %-8s %-10s %s\n", "scenario", "wealth", "gini", "mpc(q1)", "mpc(q5)")
	for _, sc := range batch.Scenarios {
		spec := experiment.Spec{
			CorrAct:       sc.CorrAct,
			CorrPcvd:      sc.CorrPcvd,
			DiscFacCenter: sc.DiscFacCenter,
			DiscFacSpread: sc.DiscFacSpread,
			EnsembleSize:  defaults.EnsembleSize,
			SimPeriods:    defaults.SimPeriods,
		}
		res, err := runner.Run(spec)
		if err != nil {
			panic(fmt.Errorf("scenario %q: %w", sc.Name, err))
		}
		summary, err := report.BuildSummary(res, lorenzPoints)
		if err != nil {
			panic(fmt.Errorf("scenario %q: %w", sc.Name, err))
		}
		fmt.Printf(
			"%-28s %-10.4f %-8.4f %-10.4f %.4f\n",
			sc.Name,
			summary.WealthRatio,
			summary.Gini,
			summary.AvgMPCQuintile[0],
			summary.AvgMPCQuintile[len(summary.AvgMPCQuintile)-1],
		)
	}
}

func loadConfig(path string) (model.Params, experiment.Spec, int) {
	if path == "" {
		base := model.DefaultParams()
		return base, experiment.Spec{
			CorrAct:       base.Corr,
			CorrPcvd:      base.Corr,
			DiscFacCenter: base.DiscFac,
			DiscFacSpread: 0,
		}, report.DefaultLorenzPoints
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	lorenzPoints := cfg.Experiment.LorenzPoints
	if lorenzPoints == 0 {
		lorenzPoints = report.DefaultLorenzPoints
	}
	return cfg.ToModelParams(), cfg.ToSpec(), lorenzPoints
}

func printSummary(s *report.Summary) {
	fmt.Printf("Agents=%d Wealth/Income=%.4f Gini=%.4f\n", s.AgentCount, s.WealthRatio, s.Gini)
	fmt.Printf("%-10s %s\n", "quintile", "avg MPC")
	for i, v := range s.AvgMPCQuintile {
		fmt.Printf("%-10d %.4f\n", i+1, v)
	}
}
