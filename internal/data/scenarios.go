package data

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scenario is one named experiment quadruple in a batch file.
type Scenario struct {
	Name          string  `json:"name"`
	CorrAct       float64 `json:"corr_act"`
	CorrPcvd      float64 `json:"corr_pcvd"`
	DiscFacCenter float64 `json:"discfac_center"`
	DiscFacSpread float64 `json:"discfac_spread"`
}

// ScenarioBatch matches the JSON shape of a sweep input file.
//
// Example:
//
//	{
//	  "scenarios": [
//	    {"name": "correct beliefs", "corr_act": 0.97, "corr_pcvd": 0.97,
//	     "discfac_center": 0.9867, "discfac_spread": 0.0067}
//	  ]
//	}
type ScenarioBatch struct {
	Scenarios []Scenario `json:"scenarios"`
}

// LoadScenarioBatch reads and parses a sweep batch file.
func LoadScenarioBatch(path string) (*ScenarioBatch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch ScenarioBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, err
	}
	if len(batch.Scenarios) == 0 {
		return nil, fmt.Errorf("%s contains no scenarios", path)
	}
	return &batch, nil
}
