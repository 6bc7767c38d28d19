// Package docs serves the OpenAPI description of the HTTP API at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Create an account", "security": [], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}], "responses": {"201": {"description": "token and user"}, "400": {"description": "invalid username or password"}, "409": {"description": "username already exists"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "security": [], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}], "responses": {"200": {"description": "token and user"}, "401": {"description": "invalid credentials"}}}},
        "/me": {"get": {"tags": ["me"], "summary": "Current user", "responses": {"200": {"description": "user"}}}},
        "/me/profile": {"put": {"tags": ["me"], "summary": "Update name, gender, birth date and height", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Profile"}}], "responses": {"200": {"description": "user"}, "400": {"description": "field error"}}}},
        "/me/current-routine": {"put": {"tags": ["me"], "summary": "Select or clear the current routine", "responses": {"204": {"description": "updated"}, "404": {"description": "routine not found"}}}},
        "/me/today": {"get": {"tags": ["me"], "summary": "Exercises of the current routine for today", "responses": {"200": {"description": "today"}}}},
        "/routines": {
            "get": {"tags": ["routines"], "summary": "List routines", "responses": {"200": {"description": "routines", "schema": {"type": "array", "items": {"$ref": "#/definitions/Routine"}}}}},
            "post": {"tags": ["routines"], "summary": "Create a routine", "responses": {"201": {"description": "routine", "schema": {"$ref": "#/definitions/Routine"}}, "409": {"description": "duplicate routine id"}}}
        },
        "/routines/{id}": {
            "get": {"tags": ["routines"], "summary": "Get a routine", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "routine"}, "404": {"description": "not found"}}},
            "patch": {"tags": ["routines"], "summary": "Rename a routine", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "routine"}}},
            "delete": {"tags": ["routines"], "summary": "Delete a routine", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "deleted"}}}
        },
        "/routines/{id}/days/{day}/exercises": {"post": {"tags": ["routines"], "summary": "Append an exercise to a day", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/day"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ExerciseItem"}}], "responses": {"200": {"description": "routine"}, "400": {"description": "field error"}}}},
        "/routines/{id}/days/{day}/exercises/{index}": {"delete": {"tags": ["routines"], "summary": "Remove an exercise", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/day"}, {"in": "path", "name": "index", "type": "integer", "required": true}], "responses": {"200": {"description": "routine"}}}},
        "/routines/{id}/days/{day}/reorder": {"post": {"tags": ["routines"], "summary": "Move an exercise within a day", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/day"}], "responses": {"200": {"description": "routine"}}}},
        "/records": {"get": {"tags": ["records"], "summary": "List completion records", "parameters": [{"in": "query", "name": "from", "type": "string"}, {"in": "query", "name": "to", "type": "string"}], "responses": {"200": {"description": "records"}}}},
        "/records/{date}": {
            "get": {"tags": ["records"], "summary": "Get the record of a date", "parameters": [{"$ref": "#/parameters/date"}], "responses": {"200": {"description": "record"}, "404": {"description": "no record"}}},
            "put": {"tags": ["records"], "summary": "Record what was performed on a date", "parameters": [{"$ref": "#/parameters/date"}], "responses": {"200": {"description": "record"}}}
        },
        "/calendar": {"get": {"tags": ["records"], "summary": "Month grid", "parameters": [{"in": "query", "name": "year", "type": "integer"}, {"in": "query", "name": "month", "type": "integer"}], "responses": {"200": {"description": "grid"}}}},
        "/exercises": {"get": {"tags": ["catalog"], "summary": "Filter the exercise catalog", "parameters": [{"in": "query", "name": "category", "type": "string"}, {"in": "query", "name": "q", "type": "string"}], "responses": {"200": {"description": "exercises"}}}},
        "/stats": {"get": {"tags": ["stats"], "summary": "Volume and frequency over a period", "parameters": [{"in": "query", "name": "start_date", "type": "string"}, {"in": "query", "name": "end_date", "type": "string"}], "responses": {"200": {"description": "stats"}}}}
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "type": "string", "required": true},
        "day": {"in": "path", "name": "day", "type": "integer", "minimum": 0, "maximum": 6, "required": true},
        "date": {"in": "path", "name": "date", "type": "string", "format": "date", "required": true}
    },
    "definitions": {
        "Credentials": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "Profile": {"type": "object", "properties": {"name": {"type": "string"}, "gender": {"type": "string"}, "birth": {"type": "string", "format": "date"}, "height": {"type": "integer"}}},
        "ExerciseItem": {"type": "object", "properties": {"exercise": {"type": "string"}, "weight": {"type": "integer", "maximum": 999}, "number_of_times": {"type": "integer", "maximum": 999}, "number_of_sets": {"type": "integer", "maximum": 20}}},
        "Routine": {"type": "object", "properties": {"routine_id": {"type": "string"}, "title": {"type": "string"}, "last_modified": {"type": "string", "format": "date-time"}, "week_routine": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/ExerciseItem"}}}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Routine Engine API",
	Description:      "Weekly workout routines, completion records and calendar.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
