// Package docs registers the OpenAPI document served under /swagger.
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
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login form data",
                "parameters": [
                    {"type": "string", "name": "redirectTo", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "already logged in"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "redirectTo", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "session cookie set"},
                    "400": {"description": "formError or fieldErrors", "schema": {"$ref": "#/definitions/actionData"}},
                    "500": {"description": "internal error"}
                }
            }
        },
        "/signup": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Signup form data",
                "parameters": [
                    {"type": "string", "name": "redirectTo", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "redirectTo", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "session cookie set"},
                    "400": {"description": "formError or fieldErrors", "schema": {"$ref": "#/definitions/actionData"}},
                    "500": {"description": "internal error"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {"302": {"description": "session cookie cleared"}}
            }
        },
        "/tasks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Task board of the logged in user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Board"}},
                    "302": {"description": "not logged in"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Create a task",
                "description": "HTML forms may send _method=patch or _method=delete to update or delete instead.",
                "parameters": [
                    {"type": "string", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "name": "deadline", "in": "formData", "required": true},
                    {"type": "string", "name": "_method", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "invalid form", "schema": {"$ref": "#/definitions/actionData"}},
                    "401": {"description": "unauthorized"}
                }
            },
            "patch": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Update a task",
                "parameters": [
                    {"type": "string", "name": "task_id", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "name": "deadline", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "invalid form", "schema": {"$ref": "#/definitions/actionData"}},
                    "401": {"description": "unauthorized"},
                    "404": {"description": "task not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [
                    {"type": "string", "name": "task_id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "unauthorized"},
                    "404": {"description": "task not found"}
                }
            }
        }
    },
    "definitions": {
        "actionData": {
            "type": "object",
            "properties": {
                "formError": {"type": "string"},
                "fieldErrors": {"type": "object", "additionalProperties": {"type": "string"}},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "models.Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string", "enum": ["ToDo", "InProgress", "Done", "Backlog"]},
                "deadline": {"type": "string", "format": "date-time"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.Board": {
            "type": "object",
            "properties": {
                "user": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string"},
                        "email": {"type": "string"},
                        "name": {"type": "string"}
                    }
                },
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "category": {"type": "string"},
                            "tasks": {"type": "array", "items": {"$ref": "#/definitions/models.Task"}}
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TaskMate API",
	Description:      "Multi-user task board with cookie sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
