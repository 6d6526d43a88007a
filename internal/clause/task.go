package clause

// ClassificationTask is the bounded unit of work sent to the model service
// for a single clause: the clause text, the full ordered category list, and
// the composed prompts instructing the model to return a label, a confidence
// in [0,1], and a short plain-language summary.
type ClassificationTask struct {
	Clause     Clause
	Categories CategorySet
	System     string
	Prompt     string
}

// RawModelResult is the unvalidated structured output of a model invocation.
// Label membership and confidence range are checked by the pipeline, not here.
type RawModelResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// BuildTask constructs the classification task for one clause. Pure data
// transformation; the category set is validated before any prompt is built.
func BuildTask(c Clause, categories CategorySet) (ClassificationTask, error) {
	if err := categories.Validate(); err != nil {
		return ClassificationTask{}, err
	}

	return ClassificationTask{
		Clause:     c,
		Categories: categories,
		System:     systemPrompt,
		Prompt:     composePrompt(c, categories),
	}, nil
}
