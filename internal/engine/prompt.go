package engine

import "fmt"

// Prompt templates. Tool prompts are built from the raw joined transcript;
// the MCP prompt surfaces additionally embed video metadata and timestamps.

const summarizePrompt = `Summarize this YouTube video transcript in 3-5 bullet points:

%s`

const queryPrompt = `The following is a transcript from a YouTube video:

Transcript:
%s

Based only on the information in this transcript, please answer the following question:
%s

If the transcript doesn't contain information to answer this question, please state that clearly.`

// summaryTemplate is the youtube/summarize prompt surface: metadata block plus
// timestamped transcript, asking for a structured digest.
const summaryTemplate = `Summarize this YouTube video based on its transcript:

%s

Transcript:
%s

Please provide:
1. A concise 2-3 sentence summary of the video
2. The 3-5 most important points as bullet points
3. Any technical details or tools mentioned
4. The main takeaway for viewers`

// questionTemplate is the youtube/query prompt surface.
const questionTemplate = `Answer a question about this YouTube video using only its transcript:

%s

Transcript:
%s

Question: %s

If the transcript doesn't contain information to answer this question, please state that clearly.`

// BuildSummarizePrompt renders the transcript summarization prompt.
func BuildSummarizePrompt(transcript string) string {
	return fmt.Sprintf(summarizePrompt, transcript)
}

// BuildQueryPrompt renders the transcript question-answering prompt.
func BuildQueryPrompt(transcript, question string) string {
	return fmt.Sprintf(queryPrompt, transcript, question)
}

// BuildSummaryTemplate renders the summarize prompt surface from a formatted
// metadata block and a timestamped transcript.
func BuildSummaryTemplate(metadata, transcript string) string {
	return fmt.Sprintf(summaryTemplate, metadata, transcript)
}

// BuildQuestionTemplate renders the query prompt surface.
func BuildQuestionTemplate(metadata, transcript, question string) string {
	return fmt.Sprintf(questionTemplate, metadata, transcript, question)
}
