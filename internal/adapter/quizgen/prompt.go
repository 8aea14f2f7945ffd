package quizgen

import "fmt"

const promptTemplate = `
You are an expert exam question creator for Indian civil service competitive exams. Generate %d high-quality multiple-choice questions suitable for the Assistant Central Intelligence Officer-Grade-II/Executive (ACIO-II/Executive) Exam.

The questions should cover a diverse mix of the following topics:
1.  General Knowledge: Current affairs (national and international), Indian History, Indian Polity & Constitution, Geography, Science & Technology.
2.  English Language: Synonyms, Antonyms, Idioms & Phrases, One-word substitution, Sentence completion, Spotting errors.

For each question, provide the required JSON fields. Ensure the difficulty level is appropriate for a graduate-level competitive exam. The options should be plausible to make the questions challenging. Do not repeat questions.

Every question must have exactly 4 options and "correctAnswer" must be copied exactly from one of them.
Respond with a single JSON array and nothing else. The array must validate against this JSON schema:
%s
`

func buildPrompt(count int, schema []byte) string {
	return fmt.Sprintf(promptTemplate, count, schema)
}
