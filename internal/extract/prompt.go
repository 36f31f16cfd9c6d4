package extract

import "fmt"

// SystemPrompt frames the model as a reader of hierarchical documents.
const SystemPrompt = "You are an assistant skilled in parsing hierarchical documents. " +
	"Identify and extract a specific section and all its nested subsections."

// DefaultMaxTokens caps the completion length.
const DefaultMaxTokens = 4000

// BuildUserPrompt asks for the named section out of the given body text.
func BuildUserPrompt(title, body string) string {
	return fmt.Sprintf("Extract the section titled '%s' and all relevant nested subsections. "+
		"Here is the document text:\n\n%s", title, body)
}
