package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"

	"exam-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "mem://quizgen/questions.json"

// QuestionSchema is the structured output declared to the model and enforced
// on its response.
var QuestionSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text.",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    domain.OptionsPerQuestion,
				"maxItems":    domain.OptionsPerQuestion,
				"description": "An array of 4 multiple-choice options.",
			},
			"correctAnswer": map[string]any{
				"type":        "string",
				"description": "The correct answer, which must be one of the provided options.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A brief explanation of why the answer is correct.",
			},
		},
		"required": []any{"question", "options", "correctAnswer", "explanation"},
	},
}

// questionOutput is one generated item before validation.
type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

func (o questionOutput) toDomain() domain.Question {
	return domain.Question{
		Prompt:        o.Question,
		Options:       o.Options,
		CorrectAnswer: o.CorrectAnswer,
		Explanation:   o.Explanation,
	}
}

func schemaJSON() ([]byte, error) {
	return json.Marshal(QuestionSchema)
}

func compileSchema() (*jsonschema.Schema, error) {
	raw, err := schemaJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal question schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add question schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}
	return schema, nil
}

// decodeQuestions parses raw model output and checks it against schema.
func decodeQuestions(schema *jsonschema.Schema, raw string) ([]questionOutput, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: trailing data after array")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("response does not match schema: %w", err)
	}

	var out []questionOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("invalid question array: %w", err)
	}
	return out, nil
}
