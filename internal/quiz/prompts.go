package quiz

import "fmt"

const (
	summaryMaxTokens  = 500
	classifyMaxTokens = 10
	generateMaxTokens = 2000

	classifyContentLimit = 2000
	generateContentLimit = 3000

	// PlaceholderExplanation stands in for an explanation the model omitted.
	PlaceholderExplanation = "No explanation provided."
)

const summaryPrimer = "I summarize AWS technical articles concisely."

func summaryPrompt(content string) string {
	return fmt.Sprintf("Summarize the following article in about 300 characters, "+
		"in the same language as the article:\n%s", content)
}

func classifyPrompt(syllabus *Syllabus, content string) string {
	return fmt.Sprintf(`Decide whether the following article covers topics tested on the exam below.

Exam outline:
%s
Article:
%s

Answer with exactly one word: YES or NO.`, syllabus.Outline(), truncate(content, classifyContentLimit))
}

func generatePrompt(content string) string {
	return fmt.Sprintf(`Write one multiple-choice practice question for the AWS Certified Solutions Architect - Associate exam based on the article below.
Use the same language as the article. Provide exactly four options and exactly one correct answer.

Article:
%s

Respond with JSON only, in this format:
{
  "question_text": "the question",
  "options": ["option 1", "option 2", "option 3", "option 4"],
  "correct_option_index": 1,
  "explanation_correct": "why the correct option is right",
  "explanation_others": "why the other options are wrong"
}

correct_option_index is 1-based: 1 means the first option.`, truncate(content, generateContentLimit))
}

// truncate returns at most n characters of s without splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
