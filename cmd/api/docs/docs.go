// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/sessions": {
            "post": {
                "description": "Creates a session and starts generating questions in the background. Poll the session until it leaves LOADING.",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start a quiz session",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "description": "Returns the current state, question and score of a session",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get a quiz session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Discard a quiz session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/answer": {
            "post": {
                "description": "Scores the choice against the current question. Repeating the call before advancing returns the first result.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Answer the current question",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Chosen option", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AnswerResultResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/next": {
            "post": {
                "description": "Moves past an answered question, or completes the quiz after the last one",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Move to the next question",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/restart": {
            "post": {
                "description": "Discards the current attempt and fetches a fresh question set. Allowed after an error or once the quiz is completed.",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Restart a quiz session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "value": {}
            }
        },
        "dto.AnswerRequest": {
            "type": "object",
            "properties": {"choice": {"type": "string"}}
        },
        "dto.AnswerResponse": {
            "type": "object",
            "properties": {
                "choice": {"type": "string"},
                "correct": {"type": "boolean"},
                "correct_answer": {"type": "string"},
                "explanation": {"type": "string"}
            }
        },
        "dto.AnswerResultResponse": {
            "type": "object",
            "properties": {
                "result": {"$ref": "#/definitions/dto.AnswerResponse"},
                "session": {"$ref": "#/definitions/dto.SessionResponse"}
            }
        },
        "dto.QuestionResponse": {
            "type": "object",
            "properties": {
                "is_last": {"type": "boolean"},
                "number": {"type": "integer"},
                "options": {"type": "array", "items": {"type": "string"}},
                "prompt": {"type": "string"},
                "total": {"type": "integer"}
            }
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "answer": {"$ref": "#/definitions/dto.AnswerResponse"},
                "answered": {"type": "boolean"},
                "error": {"type": "string"},
                "feedback": {"type": "string"},
                "id": {"type": "string"},
                "percentage": {"type": "integer"},
                "question": {"$ref": "#/definitions/dto.QuestionResponse"},
                "score": {"type": "integer"},
                "state": {"type": "string", "example": "READY"},
                "total": {"type": "integer"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Exam Quiz API",
	Description:      "Generates ACIO exam practice quizzes and runs them one question at a time.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
