// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/fichedesk/main.go
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
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successResponse"}}
                }
            }
        },
        "/fiches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["fiches"],
                "summary": "List fiches",
                "parameters": [
                    {"type": "integer", "description": "1-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "exact status", "name": "status", "in": "query"},
                    {"type": "string", "description": "exact product", "name": "product", "in": "query"},
                    {"type": "string", "description": "client name substring", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listFichesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/fiches/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["fiches"],
                "summary": "Get fiche",
                "parameters": [{"type": "string", "description": "Fiche ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ficheResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fiches"],
                "summary": "Update fiche",
                "parameters": [
                    {"type": "string", "description": "Fiche ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.patchFicheRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ficheResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["fiches"],
                "summary": "Delete fiche",
                "parameters": [{"type": "string", "description": "Fiche ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List advisors",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.advisorResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/analytics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Dashboard analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.analyticsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "ADVISOR"]}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.User"}, "token": {"type": "string"}}
        },
        "handler.successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "handler.patchFicheRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["NEW", "ASSIGNED", "IN_PROGRESS", "CLOSED"]},
                "advisorId": {"type": "string", "x-nullable": true}
            }
        },
        "handler.ficheResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "clientName": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "product": {"type": "string"},
                "status": {"type": "string"},
                "advisorId": {"type": "string", "x-nullable": true},
                "type": {"type": "string"},
                "garanties": {"type": "array", "items": {"type": "string"}},
                "prime": {"type": "number"},
                "createdAt": {"type": "string"}
            }
        },
        "handler.ficheListItemResponse": {
            "allOf": [
                {"$ref": "#/definitions/handler.ficheResponse"},
                {"type": "object", "properties": {"advisorName": {"type": "string"}}}
            ]
        },
        "handler.paginationResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "handler.listFichesResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.ficheListItemResponse"}},
                "meta": {"$ref": "#/definitions/handler.paginationResponse"}
            }
        },
        "handler.advisorResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}
        },
        "handler.monthlyResponse": {
            "type": "object",
            "properties": {"month": {"type": "string"}, "mois": {"type": "string"}, "fiches": {"type": "integer"}}
        },
        "handler.advisorCountResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "nom": {"type": "string"}, "count": {"type": "integer"}}
        },
        "ports.RecentFiche": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "clientName": {"type": "string"}, "status": {"type": "string"}}
        },
        "handler.analyticsResponse": {
            "type": "object",
            "properties": {
                "totalFiches": {"type": "integer"},
                "activeFiches": {"type": "integer"},
                "statusCounts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "productCounts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "totalPrimes": {"type": "number"},
                "monthlyData": {"type": "array", "items": {"$ref": "#/definitions/handler.monthlyResponse"}},
                "conseillerCounts": {"type": "array", "items": {"$ref": "#/definitions/handler.advisorCountResponse"}},
                "recentFiches": {"type": "array", "items": {"$ref": "#/definitions/ports.RecentFiche"}}
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
	Title:            "Fichedesk API",
	Description:      "Role-based dashboard over insurance client records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
