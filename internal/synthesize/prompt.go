// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

// analysisDigest renders the per-paper analyses as the prompt's input block.
func analysisDigest(analyses []types.PaperAnalysis) string {
	var b strings.Builder
	b.WriteString("Analysis details from the retrieved papers:\n\n")
	for i, a := range analyses {
		fmt.Fprintf(&b, "--- Paper %d (%s) ---\n", i+1, a.Title)
		fmt.Fprintf(&b, "Summary: %s\n", a.Summary)
		fmt.Fprintf(&b, "Methodology: %s\n", a.Methodology)
		fmt.Fprintf(&b, "Key Findings: %s\n\n", a.KeyFindings)
	}
	return b.String()
}

// synthesisPrompt asks for both labeled sections from two or more analyses.
func synthesisPrompt(topic string, analyses []types.PaperAnalysis) string {
	return fmt.Sprintf(`Based only on the provided analysis details from the retrieved papers below, generate two distinct sections: "Topic Overview" and "Detailed Comparative Analysis".

%s--- Analysis Tasks ---

1. Topic Overview:
Synthesize insights from ALL provided papers to give a high-level overview of the research topic '%s'. Use bullet points for lists where appropriate. Address the current state and focus of the field, the methods in use, key quantitative results, collective accomplishments, and common directions for future work.

2. Detailed Comparative Analysis:
Provide a point-by-point comparison between the papers. Use bullet points within each comparison category where appropriate. Compare their core objectives and scope, methodology and approach, key findings and performance, relation to the state of the art, stated limitations, and overall contributions.

Structure your entire response clearly with the exact headings "Topic Overview:" followed by its content, and then "Detailed Comparative Analysis:" followed by its content. Do NOT use markdown formatting like asterisks for bolding within the generated text content itself. Ensure lists naturally use bullet points or numbered formats.`,
		analysisDigest(analyses), topic)
}

// overviewPrompt is the single-paper variant. The comparison section is not
// requested; comparing one paper to itself yields filler.
func overviewPrompt(topic string, analyses []types.PaperAnalysis) string {
	return fmt.Sprintf(`Based only on the provided analysis details from the retrieved paper below, generate one section: "Topic Overview".

%s--- Analysis Task ---

Topic Overview:
Synthesize insights from the paper to give a high-level overview of the research topic '%s'. Use bullet points for lists where appropriate. Address the current state and focus of the field, the methods in use, key results, and directions for future work.

Structure your response with the exact heading "Topic Overview:" followed by its content. Do NOT use markdown formatting like asterisks for bolding within the generated text content itself.`,
		analysisDigest(analyses), topic)
}
