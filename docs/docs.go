// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "List the caller's habits",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Habit"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Create a habit",
                "parameters": [
                    {"description": "Habit", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createHabitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/habits/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Get one habit",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Update a habit",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.updateHabitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Delete a habit and its history",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/habits/{id}/completions/{date}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["completions"],
                "summary": "Flip the completion of one day",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Day (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["completions"],
                "summary": "Mark one day as completed",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Day (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["completions"],
                "summary": "Remove the completion of one day",
                "parameters": [
                    {"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Day (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Evaluated over the 30 days ending on today (default: the server's current day).",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Streaks, success rate and achievements",
                "parameters": [
                    {"type": "string", "description": "Reference day (YYYY-MM-DD)", "name": "today", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StatsReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/stats/calendar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Per-day completion levels for one month",
                "parameters": [
                    {"type": "string", "description": "Month (YYYY-MM), defaults to the current one", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CalendarMonth"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Achievements": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "week_warrior": {"type": "boolean"},
                "consistency_king": {"type": "boolean"},
                "habit_master": {"type": "boolean"}
            }
        },
        "domain.CalendarDay": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "completed": {"type": "integer"},
                "total": {"type": "integer"},
                "level": {"type": "string"}
            }
        },
        "domain.CalendarMonth": {
            "type": "object",
            "properties": {
                "month": {"type": "string"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/domain.CalendarDay"}}
            }
        },
        "domain.Habit": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "frequency": {"type": "string"},
                "color": {"type": "string"},
                "completed_dates": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.HabitStreak": {
            "type": "object",
            "properties": {
                "habit_id": {"type": "string"},
                "name": {"type": "string"},
                "frequency": {"type": "string"},
                "color": {"type": "string"},
                "current_streak": {"type": "integer"},
                "best_streak": {"type": "integer"},
                "completed_today": {"type": "boolean"},
                "completions_in_window": {"type": "integer"}
            }
        },
        "domain.Statistics": {
            "type": "object",
            "properties": {
                "longest_streak": {"type": "integer"},
                "success_rate": {"type": "integer"},
                "achievements": {"$ref": "#/definitions/domain.Achievements"}
            }
        },
        "domain.StatsReport": {
            "type": "object",
            "properties": {
                "today": {"type": "string"},
                "total_habits": {"type": "integer"},
                "statistics": {"$ref": "#/definitions/domain.Statistics"},
                "habits": {"type": "array", "items": {"$ref": "#/definitions/domain.HabitStreak"}}
            }
        },
        "http.createHabitRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Read 20 pages"},
                "description": {"type": "string"},
                "frequency": {"type": "string", "example": "daily"},
                "color": {"type": "string", "example": "blue"}
            }
        },
        "http.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "habit not found"}
            }
        },
        "http.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "ada@example.com"},
                "password": {"type": "string", "example": "correct-horse"}
            }
        },
        "http.registerRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "ada@example.com"},
                "password": {"type": "string", "minLength": 8, "example": "correct-horse"}
            }
        },
        "http.tokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "http.updateHabitRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "frequency": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "http.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Habits API",
	Description:      "Habit tracking with streaks, success rate and achievements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
