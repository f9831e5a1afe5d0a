package models

// ScoredWord is a (word, zipf) pair, the unit both calibration and
// extraction traffic in.
type ScoredWord struct {
	Word      string  `json:"word"`
	ZipfScore float64 `json:"zipf_score"`
}

type CalibrationSampleResponse struct {
	Words []ScoredWord `json:"words"`
}

// CalibrateRequest carries either positional known/unknown answers for the
// sample, or an explicit threshold override. When Threshold is set the
// answers are ignored.
type CalibrateRequest struct {
	Answers   []bool   `json:"answers,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type CalibrateResponse struct {
	Threshold  float64 `json:"threshold"`
	Percentile float64 `json:"percentile"`
}
