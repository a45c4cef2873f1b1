// Package docs registers the gateway OpenAPI document with swag
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/pages/home": {
            "get": {
                "tags": ["pages"],
                "summary": "Home page data",
                "description": "Full app listing from the workshop backend",
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HomePage"}}}},
                    "502": {"description": "Backend error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "Backend unreachable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/pages/apps/{id}": {
            "get": {
                "tags": ["pages"],
                "summary": "App page data",
                "description": "App detail and the filtered item listing, fetched concurrently. Each half carries its own outcome",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}},
                    {"name": "language", "in": "query", "schema": {"type": "string"}, "example": "en"},
                    {"name": "tags", "in": "query", "schema": {"type": "array", "items": {"type": "string"}}, "style": "form", "explode": true},
                    {"name": "order_by", "in": "query", "schema": {"type": "string", "enum": ["Alphabetical", "LastUpdated", "Score", "Dependents"]}},
                    {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 0, "maximum": 100}},
                    {"name": "title", "in": "query", "schema": {"type": "string"}},
                    {"name": "last_updated", "in": "query", "schema": {"type": "string"}, "example": "2021-01-01T00:00:00Z"}
                ],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AppPage"}}}},
                    "422": {"description": "Invalid filter", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/pages/items/{item}": {
            "get": {
                "tags": ["pages"],
                "summary": "Item page data",
                "parameters": [
                    {"name": "item", "in": "path", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ItemPage"}}}},
                    "404": {"description": "Unknown item", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/pages/admin": {
            "get": {
                "tags": ["pages"],
                "summary": "Admin page data",
                "description": "Users and properties, each soft failing on its own",
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AdminPage"}}}}
                }
            }
        },
        "/query": {
            "get": {
                "tags": ["query"],
                "summary": "Preview the backend list query",
                "parameters": [
                    {"name": "app", "in": "query", "schema": {"type": "string"}},
                    {"name": "language", "in": "query", "schema": {"type": "string"}},
                    {"name": "tags", "in": "query", "schema": {"type": "array", "items": {"type": "string"}}, "style": "form", "explode": true},
                    {"name": "order_by", "in": "query", "schema": {"type": "string"}},
                    {"name": "limit", "in": "query", "schema": {"type": "integer"}},
                    {"name": "title", "in": "query", "schema": {"type": "string"}},
                    {"name": "last_updated", "in": "query", "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueryPreview"}}}}
                }
            }
        },
        "/meta/health": {
            "get": {
                "tags": ["meta"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["meta"],
                "summary": "Readiness check against the workshop backend",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["meta"],
                "summary": "Service info and uptime",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["meta"],
                "summary": "Build info",
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VersionResponse"}}}}
                }
            }
        }
    },
    "components": {
        "schemas": {
            "Failure": {
                "type": "object",
                "properties": {
                    "status": {"type": "integer"},
                    "statusText": {"type": "string"},
                    "body": {"type": "string"}
                }
            },
            "WireError": {
                "type": "object",
                "properties": {
                    "code": {"type": "integer"},
                    "message": {"type": "string"},
                    "field": {"type": "string"}
                }
            },
            "Section": {
                "type": "object",
                "properties": {
                    "data": {},
                    "error": {"$ref": "#/components/schemas/WireError"}
                }
            },
            "Listing": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean"},
                    "payload": {},
                    "failure": {"$ref": "#/components/schemas/Failure"},
                    "error": {"$ref": "#/components/schemas/WireError"}
                }
            },
            "AdminSection": {
                "type": "object",
                "properties": {
                    "data": {},
                    "available": {"type": "boolean"},
                    "error": {"$ref": "#/components/schemas/WireError"}
                }
            },
            "HomePage": {
                "type": "object",
                "properties": {"apps": {}}
            },
            "AppPage": {
                "type": "object",
                "properties": {
                    "id": {"type": "string"},
                    "query": {"type": "string"},
                    "app": {"$ref": "#/components/schemas/Section"},
                    "listing": {"$ref": "#/components/schemas/Listing"}
                }
            },
            "ItemPage": {
                "type": "object",
                "properties": {"id": {"type": "string"}, "item": {}}
            },
            "AdminPage": {
                "type": "object",
                "properties": {
                    "users": {"$ref": "#/components/schemas/AdminSection"},
                    "properties": {"$ref": "#/components/schemas/AdminSection"}
                }
            },
            "QueryPreview": {
                "type": "object",
                "properties": {
                    "query": {"type": "string"},
                    "url": {"type": "string"},
                    "params": {"type": "array", "items": {"type": "object", "properties": {"key": {"type": "string"}, "value": {"type": "string"}}}}
                }
            },
            "VersionResponse": {
                "type": "object",
                "properties": {
                    "service": {"type": "string"},
                    "version": {"type": "string"},
                    "commit": {"type": "string"},
                    "date": {"type": "string"},
                    "started": {"type": "string"},
                    "uptime_sec": {"type": "integer"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "workshopdex gateway",
	Description:      "Read-only JSON gateway over the workshop backend page loads",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
