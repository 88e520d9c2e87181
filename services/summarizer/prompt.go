package summarizer

import "strings"

const summarizePrompt = `Your job is to summarize the given YouTube video transcript.

- Make your summary concise and information-dense.
- Organize it into a list of bullet points.
- Do not include any additional text or formatting.
- Only use the information provided in the transcript.

Transcript:
{transcript}`

// BuildPrompt interpolates the transcript into the fixed instruction
// template.
func BuildPrompt(transcript string) string {
	return strings.Replace(summarizePrompt, "{transcript}", transcript, 1)
}
