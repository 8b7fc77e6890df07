// Package docs registers the OpenAPI description served under /swagger.
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
        "/auth/email": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Request a confirmation code",
                "parameters": [
                    {"description": "Email", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SignupRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/auth/token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange a confirmation code for an access token",
                "parameters": [
                    {"description": "Email and confirmation code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create a user", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}}, "400": {"description": "Bad Request"}}}
        },
        "/users/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Current user's profile", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}, "401": {"description": "Unauthorized"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Edit the current user's profile", "description": "The role field is ignored.", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}, "400": {"description": "Bad Request"}}}
        },
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CategoryResponse"}}, "400": {"description": "Bad Request"}}}
        },
        "/categories/{slug}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Delete a category", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/genres": {
            "get": {"tags": ["genres"], "summary": "List genres", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["genres"], "summary": "Create a genre", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.GenreResponse"}}, "400": {"description": "Bad Request"}}}
        },
        "/titles": {
            "get": {
                "tags": ["titles"],
                "summary": "List titles",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "genre", "in": "query"},
                    {"type": "string", "name": "name", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {"security": [{"BearerAuth": []}], "tags": ["titles"], "summary": "Create a title", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TitleResponse"}}, "400": {"description": "Bad Request"}}}
        },
        "/titles/{title_id}": {
            "get": {"tags": ["titles"], "summary": "Get a title", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TitleResponse"}}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["titles"], "summary": "Partially update a title", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TitleResponse"}}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/titles/{title_id}/reviews": {
            "get": {"tags": ["reviews"], "summary": "List reviews of a title", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Review a title", "description": "A user may review each title once.", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ReviewResponse"}}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}
        },
        "/titles/{title_id}/reviews/{review_id}": {
            "get": {"tags": ["reviews"], "summary": "Get a review", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReviewResponse"}}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Edit a review", "description": "Allowed for the author, moderators and admins.", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReviewResponse"}}, "403": {"description": "Forbidden"}}}
        },
        "/titles/{title_id}/reviews/{review_id}/comments": {
            "get": {"tags": ["comments"], "summary": "List comments on a review", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Comment on a review", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CommentResponse"}}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        }
    },
    "definitions": {
        "dto.SignupRequest": {"type": "object", "required": ["email"], "properties": {"email": {"type": "string", "maxLength": 254}}},
        "dto.TokenRequest": {"type": "object", "required": ["confirmation_code", "email"], "properties": {"confirmation_code": {"type": "string"}, "email": {"type": "string", "maxLength": 254}}},
        "dto.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "bio": {"type": "string"}, "role": {"type": "string", "enum": ["user", "moderator", "admin"]}}},
        "dto.CategoryResponse": {"type": "object", "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}},
        "dto.GenreResponse": {"type": "object", "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}},
        "dto.TitleResponse": {"type": "object", "properties": {
            "id": {"type": "integer"},
            "name": {"type": "string"},
            "year": {"type": "integer"},
            "rating": {"type": "number", "x-nullable": true},
            "description": {"type": "string"},
            "genre": {"type": "array", "items": {"$ref": "#/definitions/dto.GenreResponse"}},
            "category": {"$ref": "#/definitions/dto.CategoryResponse"}
        }},
        "dto.ReviewResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "author": {"type": "string"}, "text": {"type": "string"}, "score": {"type": "integer", "minimum": 1, "maximum": 10}, "pub_date": {"type": "string"}}},
        "dto.CommentResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "author": {"type": "string"}, "text": {"type": "string"}, "pub_date": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and the access token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "YaMDb API",
	Description:      "Reviews and ratings for films, books and music.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
