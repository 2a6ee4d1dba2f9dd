// Package docs registers the OpenAPI document served under /swagger/.
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
        "/events": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Create a new event",
                "parameters": [{"name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateEventRequest"}}],
                "responses": {
                    "201": {"description": "data contains the created event", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "422": {"description": "error.code: invalid_reg_stop", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Get an event by ID",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the event", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/draws": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draws"],
                "summary": "Run the lottery for an event",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the draw outcome", "schema": {"$ref": "#/definitions/controllers.DrawOutcomeSuccessResponse"}},
                    "409": {"description": "error.code: already_drawn", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "422": {"description": "error.code: invalid_quota, missing_reg_stop, invalid_reg_stop, registration_open", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/replacements": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draws"],
                "summary": "Draw replacement entrants",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ReplacementRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the draw outcome", "schema": {"$ref": "#/definitions/controllers.DrawOutcomeSuccessResponse"}}
                }
            }
        },
        "/events/{eventID}/redraw": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draws"],
                "summary": "Fill every open seat",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the draw outcome", "schema": {"$ref": "#/definitions/controllers.DrawOutcomeSuccessResponse"}}
                }
            }
        },
        "/events/{eventID}/unresponsive/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draws"],
                "summary": "Cancel entrants that did not respond",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the cancel count", "schema": {"$ref": "#/definitions/controllers.UnresponsiveSuccessResponse"}}
                }
            }
        },
        "/events/{eventID}/notifications": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Notify an entrant pool",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.NotifyPoolRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains delivery counts", "schema": {"$ref": "#/definitions/controllers.NotifyResultSuccessResponse"}}
                }
            }
        },
        "/events/{eventID}/entries": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Join an event's waiting list",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"name": "location", "in": "body", "schema": {"$ref": "#/definitions/controllers.JoinWaitingListRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the new entry", "schema": {"$ref": "#/definitions/controllers.EntrySuccessResponse"}},
                    "409": {"description": "error.code: already_joined", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/entries/{entryID}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Accept an invitation",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data.entry is the enrolled entry", "schema": {"$ref": "#/definitions/controllers.InvitationSuccessResponse"}}
                }
            }
        },
        "/events/{eventID}/entries/{entryID}/decline": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Decline an invitation",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data.entry is the canceled entry", "schema": {"$ref": "#/definitions/controllers.InvitationSuccessResponse"}}
                }
            }
        },
        "/events/{eventID}/entries/{entryID}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["entries"],
                "summary": "Cancel an enrollment",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data.entry is the canceled entry", "schema": {"$ref": "#/definitions/controllers.InvitationSuccessResponse"}}
                }
            }
        },
        "/me/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "List my notifications",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "data contains notifications", "schema": {"$ref": "#/definitions/controllers.NotificationListSuccessResponse"}}
                }
            }
        },
        "/me/notification-preferences": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Set my notification preference",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.NotificationPreferencesRequest"}}],
                "responses": {
                    "200": {"description": "data contains the updated user", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}}
                }
            }
        },
        "/sweeps": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draws"],
                "summary": "Run one scheduler pass",
                "responses": {
                    "200": {"description": "data contains the sweep report", "schema": {"$ref": "#/definitions/controllers.SweepSuccessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "helpers.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.CreateEventRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "draw_capacity": {"type": "integer"},
                "reg_stop": {"type": "string"},
                "unresponsive_hours": {"type": "integer"}
            }
        },
        "controllers.JoinWaitingListRequest": {
            "type": "object",
            "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}}
        },
        "controllers.ReplacementRequest": {
            "type": "object",
            "properties": {"vacancies": {"type": "integer"}}
        },
        "controllers.NotifyPoolRequest": {
            "type": "object",
            "properties": {"pool": {"type": "string", "enum": ["selected", "not_selected", "waiting", "canceled"]}}
        },
        "controllers.NotificationPreferencesRequest": {
            "type": "object",
            "properties": {"notifications_enabled": {"type": "boolean"}}
        },
        "controllers.EventSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.Event"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.EntrySuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.WaitingListEntry"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.DrawOutcomeSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.DrawOutcome"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.InvitationSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.InvitationResult"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.UnresponsiveSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.UnresponsiveResult"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.NotifyResultSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.NotifyResult"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.SweepSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.SweepReport"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.NotificationListSuccessResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Notification"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "controllers.UserSuccessResponse": {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.User"}, "error": {"$ref": "#/definitions/helpers.APIError"}}},
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "draw_capacity": {"type": "integer"},
                "draw_completed": {"type": "boolean"},
                "draw_date": {"type": "string"},
                "selected_count": {"type": "integer"},
                "reg_stop": {"type": "string"},
                "unresponsive_hours": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.WaitingListEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "event_id": {"type": "string"},
                "user_id": {"type": "string"},
                "status": {"type": "string", "enum": ["waiting", "selected", "enrolled", "canceled"]},
                "joined_date": {"type": "string"},
                "selected_date": {"type": "string"},
                "enrolled_date": {"type": "string"},
                "canceled_date": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "domain.DrawOutcome": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "kind": {"type": "string", "enum": ["lottery", "replacement"]},
                "selected_count": {"type": "integer"},
                "waiting_count": {"type": "integer"},
                "selected_user_ids": {"type": "array", "items": {"type": "string"}},
                "drawn_at": {"type": "string", "format": "date-time"}
            }
        },
        "domain.InvitationResult": {
            "type": "object",
            "properties": {
                "entry": {"$ref": "#/definitions/domain.WaitingListEntry"},
                "replacement": {"$ref": "#/definitions/domain.DrawOutcome"},
                "replacement_error": {"type": "string"}
            }
        },
        "domain.UnresponsiveResult": {
            "type": "object",
            "properties": {
                "canceled": {"type": "integer"},
                "replacement": {"$ref": "#/definitions/domain.DrawOutcome"},
                "replacement_error": {"type": "string"}
            }
        },
        "domain.NotifyResult": {
            "type": "object",
            "properties": {"sent": {"type": "integer"}, "skipped": {"type": "integer"}, "failed": {"type": "integer"}}
        },
        "domain.SweepReport": {
            "type": "object",
            "properties": {
                "scanned": {"type": "integer"},
                "eligible": {"type": "integer"},
                "drawn": {"type": "integer"},
                "skipped": {"type": "integer"},
                "failed": {"type": "integer"},
                "leased": {"type": "boolean"}
            }
        },
        "domain.Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "event_id": {"type": "string"},
                "event_name": {"type": "string"},
                "category": {"type": "string"},
                "title": {"type": "string"},
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "read": {"type": "boolean"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "notifications_enabled": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Event Lottery API",
	Description:      "Waiting lists, lottery draws, and entrant notifications for capacity-limited events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
