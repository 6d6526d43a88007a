package clause

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert in legal contract analysis and clause classification."

const promptInstructions = `Classify the legal clause below into one of the following categories:
%s

If the clause does not clearly fit any category, classify it as the closest match and adjust the confidence score accordingly.

Respond with a single JSON object containing exactly these fields:
- label: the most appropriate category from the list above
- confidence: a number between 0 and 1 representing your confidence in this classification
  - 0.9-1.0: very high confidence, clear and unambiguous classification
  - 0.7-0.9: high confidence, strong indicators of the category
  - 0.5-0.7: moderate confidence, some indicators but potential ambiguity
  - 0.3-0.5: low confidence, weak indicators or multiple possible categories
  - 0.0-0.3: very low confidence, unclear or unusual clause
- summary: a concise explanation of the clause in plain English

Respond with JSON only. Do not include any other text.`

const promptExamples = `Example 1:
Clause: "This agreement shall terminate upon 30 days written notice by either party."
Response: {"label": "Termination", "confidence": 0.95, "summary": "Either party can end the agreement with 30 days written notice."}

Example 2:
Clause: "All information shared during the course of this agreement shall be kept confidential for a period of 5 years."
Response: {"label": "Confidentiality", "confidence": 0.98, "summary": "Information shared must be kept secret for 5 years."}

Example 3:
Clause: "This agreement shall be governed by the laws of the State of California."
Response: {"label": "Governing Law", "confidence": 0.97, "summary": "California law applies to this agreement."}`

func composePrompt(c Clause, categories CategorySet) string {
	var b strings.Builder

	fmt.Fprintf(&b, promptInstructions, strings.Join(categories, ", "))
	b.WriteString("\n\n")
	b.WriteString(promptExamples)
	b.WriteString("\n\nClause to classify:\n")
	b.WriteString(c.Text)

	return b.String()
}
