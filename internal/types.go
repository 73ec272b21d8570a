package internal

// AnalysisResult is the structured outcome of one annotation request. Both
// fields are always set; Translation may hold a placeholder when the generated
// response could not be split, and is empty when generation failed.
type AnalysisResult struct {
	Explanation string `json:"explanation"`
	Translation string `json:"translation"`
}
