// Package docs registers the Gatekeeper OpenAPI document with swag.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Version"],
                "summary": "Build information",
                "responses": {"200": {"description": "version info"}}
            }
        },
        "/api/v1/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Exchange credentials for a token",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"$ref": "#/definitions/response.LoginResponse"}},
                    "400": {"description": "invalid payload", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/forgotten-password/{email}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Issue a password reset token",
                "parameters": [
                    {"type": "string", "in": "path", "name": "email", "required": true}
                ],
                "responses": {
                    "200": {"description": "reset token", "schema": {"$ref": "#/definitions/response.PasswordResetResponse"}},
                    "404": {"description": "unknown user", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/update-password/{token}": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["Auth"],
                "summary": "Set a new password with a reset token",
                "parameters": [
                    {"type": "string", "in": "path", "name": "token", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.UpdatePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "password updated"},
                    "404": {"description": "unknown or expired token", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "in": "query", "name": "page"},
                    {"type": "integer", "in": "query", "name": "limit"},
                    {"type": "string", "in": "query", "name": "sort"}
                ],
                "responses": {
                    "200": {"description": "users", "schema": {"type": "array", "items": {"$ref": "#/definitions/response.UserResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create a user",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.UserRequest"}}
                ],
                "responses": {
                    "200": {"description": "created user", "schema": {"$ref": "#/definitions/response.UserResponse"}},
                    "409": {"description": "username taken", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a user",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "user", "schema": {"$ref": "#/definitions/response.UserResponse"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.UserRequest"}}
                ],
                "responses": {
                    "200": {"description": "updated user", "schema": {"$ref": "#/definitions/response.UserResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Delete a user (ADMIN)",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "204": {"description": "deleted"},
                    "403": {"description": "forbidden", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperrors.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        },
        "request.LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "request.UpdatePasswordRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "request.UserRequest": {
            "type": "object",
            "properties": {
                "lastname": {"type": "string"},
                "firstname": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "roles": {"type": "string"},
                "rate_limit": {"type": "integer"}
            }
        },
        "response.LoginResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lastname": {"type": "string"},
                "firstname": {"type": "string"},
                "username": {"type": "string"},
                "roles": {"type": "string"},
                "token": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "response.PasswordResetResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expired_at": {"type": "string"}}
        },
        "response.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lastname": {"type": "string"},
                "firstname": {"type": "string"},
                "username": {"type": "string"},
                "roles": {"type": "string"},
                "rate_limit": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
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
	Title:            "Gatekeeper API",
	Description:      "User management, authentication and rate limiting gateway.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
