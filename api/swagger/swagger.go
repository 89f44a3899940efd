package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GCO Office API",
        "description": "Guidance and campus office services: document requests, help-desk tickets, visitor logbook, appointments, surveys, and reporting",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Registration and login"},
        {"name": "DocumentRequests", "description": "Document request lifecycle and tracking"},
        {"name": "Imports", "description": "Spreadsheet imports"},
        {"name": "Exports", "description": "Spreadsheet and PDF exports"},
        {"name": "Tickets", "description": "Help-desk tickets"},
        {"name": "Logbook", "description": "Visitor logbook"},
        {"name": "Appointments", "description": "Appointment booking"},
        {"name": "Surveys", "description": "Satisfaction surveys"},
        {"name": "Dashboard", "description": "Staff dashboard"},
        {"name": "Reports", "description": "Monthly summary reports"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["DocumentRequests"],
                "summary": "List document requests",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["DocumentRequests"],
                "summary": "Submit a document request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDocumentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/track/{trackingNumber}": {
            "get": {
                "tags": ["DocumentRequests"],
                "summary": "Track a request by tracking number",
                "parameters": [
                    {"name": "trackingNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown tracking number"}
                }
            }
        },
        "/requests/{id}/status": {
            "put": {
                "tags": ["DocumentRequests"],
                "summary": "Update a request's status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/imports/requests": {
            "post": {
                "tags": ["Imports"],
                "summary": "Import document requests from a CSV or XLSX file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ImportResult"}},
                    "400": {"description": "Invalid file type or missing columns"}
                }
            }
        },
        "/exports/requests": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export document requests",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/tickets": {
            "get": {
                "tags": ["Tickets"],
                "summary": "List tickets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Tickets"],
                "summary": "Open a help-desk ticket",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTicketRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/logbook/check-in": {
            "post": {
                "tags": ["Logbook"],
                "summary": "Record a visitor arrival",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckInRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/appointments": {
            "post": {
                "tags": ["Appointments"],
                "summary": "Book an appointment slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot already taken"}
                }
            }
        },
        "/appointments/slots": {
            "get": {
                "tags": ["Appointments"],
                "summary": "List open time slots for a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/surveys/{id}/responses": {
            "post": {
                "tags": ["Surveys"],
                "summary": "Submit answers to an active survey",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitSurveyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard overview counters and distributions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{year}/{month}/generate": {
            "post": {
                "tags": ["Reports"],
                "summary": "Generate or regenerate a monthly report",
                "parameters": [
                    {"name": "year", "in": "path", "required": true, "type": "integer"},
                    {"name": "month", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "first_name": {"type": "string"},
                "middle_initial": {"type": "string"},
                "last_name": {"type": "string"}
            },
            "required": ["username", "email", "password", "first_name", "last_name"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "CreateDocumentRequest": {
            "type": "object",
            "properties": {
                "requester_name": {"type": "string"},
                "requester_email": {"type": "string"},
                "document_type": {"type": "string"},
                "purpose": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["requester_name", "document_type"]
        },
        "UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["status"]
        },
        "CreateTicketRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "description": {"type": "string"},
                "requester_name": {"type": "string"},
                "requester_email": {"type": "string"},
                "priority": {"type": "string"}
            },
            "required": ["subject", "requester_name"]
        },
        "CheckInRequest": {
            "type": "object",
            "properties": {
                "visitor_name": {"type": "string"},
                "purpose": {"type": "string"},
                "remarks": {"type": "string"},
                "document_request_id": {"type": "integer"}
            },
            "required": ["visitor_name"]
        },
        "BookAppointmentRequest": {
            "type": "object",
            "properties": {
                "requester_name": {"type": "string"},
                "requester_email": {"type": "string"},
                "requester_phone": {"type": "string"},
                "appointment_type": {"type": "string"},
                "purpose": {"type": "string"},
                "preferred_date": {"type": "string"},
                "preferred_time": {"type": "string"}
            },
            "required": ["requester_name", "requester_email", "appointment_type", "preferred_date", "preferred_time"]
        },
        "SubmitSurveyRequest": {
            "type": "object",
            "properties": {
                "respondent_id": {"type": "string"},
                "answers": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SurveyAnswer"}
                }
            },
            "required": ["answers"]
        },
        "SurveyAnswer": {
            "type": "object",
            "properties": {
                "question_id": {"type": "integer"},
                "value": {"type": "number"},
                "text": {"type": "string"}
            },
            "required": ["question_id"]
        },
        "ImportResult": {
            "type": "object",
            "properties": {
                "imported": {"type": "integer"},
                "failed": {"type": "integer"}
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
                "pagination": {"type": "object"},
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
