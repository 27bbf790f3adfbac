package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
)

type cachedStep struct {
	Step   int     `json:"step"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason,omitempty"`
}

type cachedOutcome struct {
	Steps   []cachedStep `json:"steps"`
	Summary *FitSummary  `json:"summary,omitempty"`
}

// EncodeOutcome serialises every step of o, failures included, with its fit
// summary.
func EncodeOutcome(o *Outcome) ([]byte, error) {
	c := cachedOutcome{Steps: make([]cachedStep, len(o.Steps)), Summary: o.Summary}
	for i, s := range o.Steps {
		c.Steps[i] = cachedStep{Step: s.Step, Value: s.Value}
		if s.Err != nil {
			c.Steps[i] = cachedStep{Step: s.Step, Reason: s.Err.Error()}
		}
	}
	return json.Marshal(c)
}

// DecodeOutcome rebuilds an Outcome written by EncodeOutcome for the given
// input history. Failed steps carry their original error text.
func DecodeOutcome(data []byte, history []float64) (*Outcome, error) {
	var c cachedOutcome
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cached outcome: %w", err)
	}

	out := &Outcome{
		Predictions: make([]float64, 0, len(c.Steps)),
		Steps:       make([]StepResult, 0, len(c.Steps)),
		Summary:     c.Summary,
	}
	for _, s := range c.Steps {
		res := StepResult{Step: s.Step, Value: s.Value}
		if s.Reason != "" {
			res = StepResult{Step: s.Step, Err: errors.New(s.Reason)}
		} else {
			out.Predictions = append(out.Predictions, s.Value)
		}
		out.Steps = append(out.Steps, res)
	}
	out.History = append(append(make([]float64, 0, len(history)+len(out.Predictions)), history...), out.Predictions...)
	return out, nil
}
