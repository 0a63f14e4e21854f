package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Scheduler API",
        "description": "Greedy class-session placement: labs first, theory second, validation alerts last",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Schedule generation, run replay and export"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A backing service is unreachable"}
                }
            }
        },
        "/api/v1/schedule/sample": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Sample scheduling payload",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/generate": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Generate a schedule",
                "description": "Runs the three-phase placement over the submitted rooms, professors and courses. Infeasible sessions are reported as alerts, never as errors.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/runs": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List archived schedule runs",
                "parameters": [
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "perPage", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/runs/{id}": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Replay a schedule run",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Run not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/runs/{id}/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Export a schedule run",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["xlsx", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Artifact bytes"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Run not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ScheduleRequest": {
            "type": "object",
            "required": ["semester", "rooms", "courses"],
            "properties": {
                "semester": {"type": "string", "example": "April-August"},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/Room"}},
                "professors": {"type": "array", "items": {"$ref": "#/definitions/Professor"}},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}},
                "assistants": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Room": {
            "type": "object",
            "required": ["id", "faculty", "kind", "capacity"],
            "properties": {
                "id": {"type": "string"},
                "faculty": {"type": "string"},
                "kind": {"type": "string", "enum": ["theory", "lab"]},
                "capacity": {"type": "integer"}
            }
        },
        "Professor": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "enabledFromCycle": {"type": "integer", "default": 1},
                "labCapable": {"type": "boolean", "default": true},
                "availability": {
                    "type": "object",
                    "description": "Weekday name to list of [start, end] HH:MM pairs",
                    "additionalProperties": {
                        "type": "array",
                        "items": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "Course": {
            "type": "object",
            "required": ["code", "name", "faculty", "cycle"],
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "faculty": {"type": "string"},
                "cycle": {"type": "integer"},
                "enrolledTheory": {"type": "integer"},
                "enrolledLab": {"type": "integer"},
                "theoryHours": {"type": "integer", "default": 2},
                "labHours": {"type": "integer", "default": 2},
                "professorId": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "perPage": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
