package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Eventos API",
        "description": "Event query service for the school administration backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Eventos", "description": "Event queries"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/eventos": {
            "get": {
                "tags": ["Eventos"],
                "summary": "Unified event search",
                "parameters": [
                    {"name": "Mes", "in": "query", "type": "integer"},
                    {"name": "Año", "in": "query", "type": "integer"},
                    {"name": "Limit", "in": "query", "type": "integer"},
                    {"name": "Offset", "in": "query", "type": "integer"},
                    {"name": "X-Instancia", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No events matched", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Eventos"],
                "summary": "Create an event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlapping event", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/eventos/mes": {
            "get": {
                "tags": ["Eventos"],
                "summary": "Month search",
                "parameters": [
                    {"name": "Mes", "in": "query", "required": true, "type": "integer"},
                    {"name": "Año", "in": "query", "type": "integer"},
                    {"name": "Limit", "in": "query", "type": "integer"},
                    {"name": "Offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/eventos/mes/total": {
            "get": {
                "tags": ["Eventos"],
                "summary": "Month event count",
                "parameters": [
                    {"name": "Mes", "in": "query", "required": true, "type": "integer"},
                    {"name": "Año", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/eventos/anio": {
            "get": {
                "tags": ["Eventos"],
                "summary": "Full-year search (directive role)",
                "parameters": [
                    {"name": "Año", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/eventos/rango": {
            "get": {
                "tags": ["Eventos"],
                "summary": "Date-range search (directive role)",
                "parameters": [
                    {"name": "Fecha_Inicio", "in": "query", "required": true, "type": "string"},
                    {"name": "Fecha_Conclusion", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/eventos/export": {
            "get": {
                "tags": ["Eventos"],
                "summary": "Export events as csv or pdf (directive role)",
                "parameters": [
                    {"name": "Mes", "in": "query", "type": "integer"},
                    {"name": "Año", "in": "query", "type": "integer"},
                    {"name": "formato", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Document"}
                }
            }
        },
        "/eventos/{id}": {
            "get": {
                "tags": ["Eventos"],
                "summary": "Get event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EventPayload": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "Nombre": {"type": "string"},
                "Fecha_Inicio": {"type": "string"},
                "Fecha_Conclusion": {"type": "string"}
            }
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "Nombre": {"type": "string"},
                "Fecha_Inicio": {"type": "string"},
                "Fecha_Conclusion": {"type": "string"}
            },
            "required": ["Nombre", "Fecha_Inicio", "Fecha_Conclusion"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "total": {"type": "integer"},
                "errorType": {"type": "string"},
                "details": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
