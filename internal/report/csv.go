package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"consumption-sim/internal/experiment"
)

// WriteAgentCSV writes the pooled per-agent cross-section, one row per
// simulated agent in ensemble order. This is the primary artifact for
// "what happened" in an experiment.
func WriteAgentCSV(path string, res *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"disc_fac",
		"perm_income",
		"assets",
		"consumption",
		"mpc",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < res.AgentCount(); i++ {
		row := []string{
			strconv.Itoa(i),
			fmtFloat(res.DiscFac[i]),
			fmtFloat(res.PermIncome[i]),
			fmtFloat(res.Assets[i]),
			fmtFloat(res.Consumption[i]),
			fmtFloat(res.MPC[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteLorenzCSV writes the Lorenz curve of a summary, boundary points
// included.
func WriteLorenzCSV(path string, s *Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"percentile", "cumulative_share"}); err != nil {
		return err
	}
	for i := 0; i < s.Lorenz.Points(); i++ {
		row := []string{
			fmtFloat(s.Lorenz.Percentiles[i]),
			fmtFloat(s.Lorenz.Shares[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
