// Package docs holds the OpenAPI document served under /swagger. It follows
// the swag annotations on the HTTP handlers and is refreshed with go generate
// after they change.
package docs

//go:generate swag init --dir ../ --generalInfo cmd/server/main.go --output . --outputTypes go

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
        "/": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Root endpoint",
                "description": "Returns API status",
                "tags": [
                    "Health"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/actions": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                },
                "summary": "Register action",
                "description": "Append a ledger entry copying the mission title and points. Admin only unless member actions are allowed.",
                "tags": [
                    "Actions"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Grant",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/actions/recent": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Recent activity",
                "tags": [
                    "Actions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Items to return",
                        "type": "integer",
                        "default": 10
                    },
                    {
                        "name": "month",
                        "in": "query",
                        "required": false,
                        "description": "Only this month (YYYY-MM)",
                        "type": "string"
                    }
                ]
            }
        },
        "/actions/{id}": {
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                },
                "summary": "Delete action",
                "description": "Hard delete with no undo. Requires confirm=true.",
                "tags": [
                    "Actions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Entry ID",
                        "type": "string"
                    },
                    {
                        "name": "confirm",
                        "in": "query",
                        "required": true,
                        "description": "Must be true",
                        "type": "boolean"
                    }
                ]
            }
        },
        "/agents": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "summary": "List agents",
                "description": "List team agents ordered by name",
                "tags": [
                    "Agents"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "active",
                        "in": "query",
                        "required": false,
                        "description": "Only active agents",
                        "type": "boolean",
                        "default": true
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                },
                "summary": "Create agent",
                "tags": [
                    "Agents"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Agent data",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/agents/avatar": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Upload avatar",
                "description": "Upload a png, jpeg, webp or gif image and get its public URL",
                "tags": [
                    "Agents"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "Avatar image",
                        "type": "file"
                    }
                ]
            }
        },
        "/agents/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "summary": "Get agent by ID",
                "tags": [
                    "Agents"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Agent ID",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                },
                "summary": "Update agent",
                "tags": [
                    "Agents"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Agent ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Agent data",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                },
                "summary": "Deactivate agent",
                "tags": [
                    "Agents"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Agent ID",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "API v1 Info",
                "description": "Returns API v1 information",
                "tags": [
                    "Health"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/archives": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "List archives",
                "tags": [
                    "Archives"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/archives/{month}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "summary": "Get archive",
                "tags": [
                    "Archives"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "month",
                        "in": "path",
                        "required": true,
                        "description": "Month (YYYY-MM)",
                        "type": "string"
                    }
                ]
            }
        },
        "/archives/{month}/close": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                },
                "summary": "Close month",
                "description": "Rank every active agent and archive the result. A month can be closed once.",
                "tags": [
                    "Archives"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "month",
                        "in": "path",
                        "required": true,
                        "description": "Month (YYYY-MM)",
                        "type": "string"
                    }
                ]
            }
        },
        "/auth/login": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                },
                "summary": "Login",
                "description": "Authenticate an agent and return an access token",
                "tags": [
                    "Auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Login credentials",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Logout",
                "description": "Clear the access token cookie",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/auth/me": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "summary": "Get current agent",
                "description": "Get the currently authenticated agent",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/dashboard": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Get dashboard",
                "description": "Monthly ranking with bonuses. Closed months are served from the archive.",
                "tags": [
                    "Dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "month",
                        "in": "query",
                        "required": false,
                        "description": "Month (YYYY-MM), defaults to the current month",
                        "type": "string"
                    }
                ]
            }
        },
        "/health": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "Service Unavailable"
                    }
                },
                "summary": "Health check",
                "description": "Check API and data source health",
                "tags": [
                    "Health"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/missions": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "List missions",
                "description": "List active missions, positive first. Admins may include inactive ones.",
                "tags": [
                    "Missions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "type",
                        "in": "query",
                        "required": false,
                        "description": "positive or negative",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "Title search",
                        "type": "string"
                    },
                    {
                        "name": "for_agent",
                        "in": "query",
                        "required": false,
                        "description": "Only missions applicable to this agent",
                        "type": "string"
                    },
                    {
                        "name": "include_inactive",
                        "in": "query",
                        "required": false,
                        "description": "Include inactive missions (admin)",
                        "type": "boolean"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Create mission",
                "description": "Points are normalized to the sign of the type and limited to ±1000000 in magnitude",
                "tags": [
                    "Missions"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Mission data",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/missions/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "summary": "Get mission by ID",
                "tags": [
                    "Missions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Mission ID",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "summary": "Update mission",
                "description": "Existing ledger entries keep their snapshot",
                "tags": [
                    "Missions"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Mission ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Mission data",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "summary": "Deactivate mission",
                "tags": [
                    "Missions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Mission ID",
                        "type": "string"
                    }
                ]
            }
        },
        "/settings": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Get settings",
                "tags": [
                    "Settings"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Update settings",
                "description": "Only the fields present in the body change",
                "tags": [
                    "Settings"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Settings",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
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
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Team Pulse API",
	Description:      "Monthly team performance dashboard: missions, points ledger, rankings and archives.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
