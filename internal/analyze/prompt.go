// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import "fmt"

// analysisPrompt asks for three labeled plain-text sections. The labels
// must match the parser's; markdown decoration around them would break the
// substring search.
func analysisPrompt(paperText string) string {
	return fmt.Sprintf(`Analyze the research paper text provided below. Extract the following information and present it clearly under the specified headings.

Summary:
Provide a concise summary (3-5 sentences) covering the paper's main objectives, methods, and key conclusions.

Methodology:
Briefly describe the core methodology, algorithms, or experimental approach used.

Key Findings:
List the 2-3 most significant findings, results, or outcomes reported in the paper.

--- START OF PAPER TEXT ---
%s
--- END OF PAPER TEXT ---

Provide the output clearly structured under the headings "Summary:", "Methodology:", and "Key Findings:". Ensure each section is clearly separated. Do NOT use markdown formatting like asterisks for bolding in your response text.`, paperText)
}
