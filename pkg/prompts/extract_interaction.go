package prompts

import (
	"fmt"
	"strings"
	"time"
)

// ExtractionSystemMessage sets the role for interaction extraction calls.
const ExtractionSystemMessage = `You are an assistant that extracts structured information about personal relationships from free-form notes. You always respond with a single JSON object and nothing else.`

// ExtractionTemperature keeps extraction output deterministic.
const ExtractionTemperature = 0.1

// BuildExtractionPrompt creates the prompt for extracting contact, interaction
// and family member details from a free-form note. Today's date is included so
// relative dates ("yesterday", "last Tuesday") resolve to absolute ones.
func BuildExtractionPrompt(today time.Time, text string) string {
	var prompt strings.Builder

	prompt.WriteString("# Interaction Extraction\n\n")
	prompt.WriteString(fmt.Sprintf("Today's date is %s.\n\n", today.Format("2006-01-02")))
	prompt.WriteString("Extract structured information from the note below. The note describes an interaction the author had with one person (the contact). It may also mention the contact's family members.\n\n")

	prompt.WriteString("## Rules\n\n")
	prompt.WriteString("- Extract exactly one contact: the person the interaction was with.\n")
	prompt.WriteString("- Resolve relative dates against today's date and format all dates as YYYY-MM-DD.\n")
	prompt.WriteString("- Use null for any field not present in the note. Never invent values.\n")
	prompt.WriteString("- family_members lists people related to the contact, with relationship seen from the contact's point of view: one of \"parent\", \"child\", \"spouse\", \"sibling\", or \"related_to\" when the exact relationship is unclear.\n")
	prompt.WriteString("- notes is a concise summary of the interaction itself.\n")
	prompt.WriteString("- Give each extracted item a confidence between 0.0 and 1.0.\n\n")

	prompt.WriteString("## Response format\n\n")
	prompt.WriteString("Respond with a single JSON object of this exact shape:\n\n")
	prompt.WriteString("```json\n")
	prompt.WriteString(`{
  "contact": {
    "first_name": "string or null",
    "last_name": "string or null",
    "birthday": "YYYY-MM-DD or null",
    "confidence": 0.0
  },
  "interaction": {
    "interaction_date": "YYYY-MM-DD",
    "notes": "string",
    "location": "string or null",
    "confidence": 0.0
  },
  "family_members": [
    {
      "first_name": "string or null",
      "last_name": "string or null",
      "relationship": "parent|child|spouse|sibling|related_to",
      "confidence": 0.0
    }
  ]
}
`)
	prompt.WriteString("```\n\n")

	prompt.WriteString("## Note\n\n")
	prompt.WriteString(text)
	prompt.WriteString("\n")

	return prompt.String()
}
