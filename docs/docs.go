// Package docs holds the OpenAPI description served at /swagger. Regenerate
// with `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/address": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "List every stored record",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Store one property record",
                "parameters": [{"name": "record", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Delete every record",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}}
                }
            }
        },
        "/address/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Store many raw rows",
                "parameters": [{"name": "rows", "in": "body", "required": true, "schema": {"type": "array", "items": {"type": "object"}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BatchResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/address/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Ingest a CSV or XLSX file",
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UploadResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/address/view": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Map markers, viewport and list rows for every record",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/address/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Get one record",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Delete one record",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/address/{id}/detail": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Get the labelled detail view of one record",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/geocode/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Geocode"],
                "summary": "Geocode the stored address of a record",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GeocodeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "message": {"type": "string"},
                        "code": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        },
        "models.Rejection": {
            "type": "object",
            "properties": {
                "row": {"type": "integer"},
                "reason": {"type": "string", "enum": ["MissingAddress", "StoreUnavailable", "RateLimited", "Cancelled"]},
                "message": {"type": "string"}
            }
        },
        "models.BatchResult": {
            "type": "object",
            "properties": {
                "batchId": {"type": "string"},
                "accepted": {"type": "integer"},
                "ids": {"type": "array", "items": {"type": "string"}},
                "rejected": {"type": "array", "items": {"$ref": "#/definitions/models.Rejection"}}
            }
        },
        "models.UploadResult": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "rows": {"type": "integer"},
                "dropped": {"type": "integer"},
                "droppedRows": {"type": "array", "items": {"type": "integer"}},
                "result": {"$ref": "#/definitions/models.BatchResult"}
            }
        },
        "models.GeocodeResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "geocode": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "GeoCortex Property API",
	Description:      "Ingests property listing rows, normalizes addresses and coordinates, and serves them for mapping.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
