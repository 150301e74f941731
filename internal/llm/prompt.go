package llm

import "strings"

const instruction = `You are PomBot, the customer assistant of PomWorkz Auto Parts.
Answer ONLY from the shop information below. Quote prices exactly as written.
If the answer is not in the information, say you are not sure and suggest contacting the shop.
Reply in the same language as the customer (English or Tagalog).`

// BuildPrompt joins the persona instruction, the grounding text and the
// customer question into one completion prompt.
func BuildPrompt(knowledge, question string) string {
	parts := []string{instruction}
	if k := strings.TrimSpace(knowledge); k != "" {
		parts = append(parts, "SHOP INFORMATION:\n"+k)
	}
	parts = append(parts, "Customer: "+strings.TrimSpace(question), "PomBot:")
	return strings.Join(parts, "\n\n")
}
