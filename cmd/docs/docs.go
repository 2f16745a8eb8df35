// Package docs holds the OpenAPI description served at /swagger. Regenerate with
// `swag init -g cmd/fintrack/main.go -o cmd/docs`.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Owner login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too many attempts"}}
            }
        },
        "/uploads": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["uploads"],
                "summary": "List uploads",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["uploads"],
                "summary": "Upload a bank statement",
                "consumes": ["multipart/form-data"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input or no transactions found"}, "413": {"description": "File too large"}}
            }
        },
        "/uploads/{uploadID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["uploads"],
                "summary": "Get an upload",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Upload not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["uploads"],
                "summary": "Discard an upload",
                "responses": {"204": {"description": "No Content"}, "409": {"description": "Upload already committed"}}
            }
        },
        "/uploads/{uploadID}/commit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["uploads"],
                "summary": "Commit an upload",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Upload already committed"}}
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List committed transactions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transactions/{transactionID}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Edit a transaction",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Upload already committed"}}
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create a category",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Name already taken"}}
            }
        },
        "/categories/{categoryID}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Update a category",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Delete a category",
                "responses": {"204": {"description": "No Content"}, "409": {"description": "Default category"}}
            }
        },
        "/stats/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Monthly summary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/by-category": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Spending by category",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/top-merchants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Top merchants",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fintrack API",
	Description:      "Bank statement ingestion, review and monthly reporting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
