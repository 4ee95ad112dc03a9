// Package docs registers the OpenAPI document of the HTTP API with swag.
// Regenerate it with `go generate ./cmd/server` after changing handler
// annotations.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/expenses": {
            "get": {
                "summary": "Every category with its value for a month",
                "tags": [
                    "expenses"
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
                        "type": "string",
                        "description": "Month (YYYY-MM)",
                        "name": "month",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "put": {
                "summary": "Set a category's value for a month",
                "tags": [
                    "expenses"
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
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/expense.UpsertExpenseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/expenses/categories": {
            "get": {
                "summary": "List the default and custom expense categories",
                "tags": [
                    "expenses"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "summary": "Add a custom expense category",
                "tags": [
                    "expenses"
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
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/expense.CreateCategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/expenses/categories/{id}": {
            "delete": {
                "summary": "Delete a custom expense category and its values",
                "tags": [
                    "expenses"
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
                        "type": "string",
                        "description": "Category ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/expenses/categories/{id}/apply-fixed": {
            "post": {
                "summary": "Copy a fixed category's January value to February through December",
                "tags": [
                    "expenses"
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
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Category ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "tags": [
                    "system"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/materials": {
            "get": {
                "summary": "List materials with their unit cost",
                "tags": [
                    "materials"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "summary": "Add a material",
                "tags": [
                    "materials"
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
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/catalog.SaveMaterialRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/materials/{id}": {
            "put": {
                "summary": "Replace a material's batch data",
                "tags": [
                    "materials"
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
                        "type": "string",
                        "description": "Material ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/catalog.SaveMaterialRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "delete": {
                "summary": "Delete a material",
                "tags": [
                    "materials"
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
                        "type": "string",
                        "description": "Material ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/categories": {
            "get": {
                "summary": "Expense share per category",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/chart": {
            "get": {
                "summary": "Chart-ready series for the dashboard",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/daily": {
            "get": {
                "summary": "Income and expense of one day, today when no date is given",
                "tags": [
                    "reports"
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
                        "type": "string",
                        "description": "Day (YYYY-MM-DD)",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/goals": {
            "get": {
                "summary": "Progress towards the monthly revenue and appointment goals",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/monthly": {
            "get": {
                "summary": "Monthly financial report",
                "tags": [
                    "reports"
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
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Month (1-12)",
                        "name": "month",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/monthly/export": {
            "get": {
                "summary": "Monthly report, trend and expense breakdown as an XLSX workbook",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Month (1-12)",
                        "name": "month",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/operational-comparison": {
            "get": {
                "summary": "Estimated against actual operational cost",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/reports/trend": {
            "get": {
                "summary": "Income, expense and profit for the months ending at the given one",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/services": {
            "get": {
                "summary": "List priced services",
                "tags": [
                    "services"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "summary": "Add a service, pricing it with the current parameters",
                "tags": [
                    "services"
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
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/catalog.SaveServiceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/services/lines/recalculate": {
            "post": {
                "summary": "Re-derive a material line's cost from the current material price",
                "tags": [
                    "services"
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
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/catalog.UpdateLineRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/services/{id}": {
            "get": {
                "summary": "Get a service",
                "tags": [
                    "services"
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
                        "type": "string",
                        "description": "Service ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "put": {
                "summary": "Replace a service and re-price it",
                "tags": [
                    "services"
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
                        "type": "string",
                        "description": "Service ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/catalog.SaveServiceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "delete": {
                "summary": "Delete a service",
                "tags": [
                    "services"
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
                        "type": "string",
                        "description": "Service ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/services/{id}/analysis": {
            "get": {
                "summary": "Frozen pricing next to costs at the current rates",
                "tags": [
                    "services"
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
                        "type": "string",
                        "description": "Service ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/settings": {
            "get": {
                "summary": "The user's business parameters, defaults when never saved",
                "tags": [
                    "settings"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "put": {
                "summary": "Replace the user's business parameters",
                "tags": [
                    "settings"
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
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/settings.UpdateSettingsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/transactions": {
            "get": {
                "summary": "List transactions, newest first",
                "tags": [
                    "transactions"
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
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "default": 1
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query",
                        "default": 20
                    },
                    {
                        "type": "string",
                        "description": "ENTRADA or SAIDA",
                        "name": "kind",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "First day (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Last day (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Matches description or category",
                        "name": "search",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "summary": "Record a transaction",
                "tags": [
                    "transactions"
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
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ledger.CreateTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "summary": "Get a transaction",
                "tags": [
                    "transactions"
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
                        "type": "string",
                        "description": "Transaction ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "put": {
                "summary": "Replace a transaction",
                "tags": [
                    "transactions"
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
                        "type": "string",
                        "description": "Transaction ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ledger.UpdateTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "delete": {
                "summary": "Delete a transaction",
                "tags": [
                    "transactions"
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
                        "type": "string",
                        "description": "Transaction ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        }
    },
    "definitions": {
        "catalog.MaterialLineRequest": {
            "type": "object",
            "properties": {
                "material_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "quantity": {
                    "type": "string",
                    "example": "0.00"
                }
            },
            "required": [
                "material_id"
            ]
        },
        "catalog.SaveMaterialRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "unit": {
                    "type": "string"
                },
                "batch_quantity": {
                    "type": "string",
                    "example": "0.00"
                },
                "batch_price": {
                    "type": "string",
                    "example": "0.00"
                }
            },
            "required": [
                "name",
                "unit"
            ]
        },
        "catalog.SaveServiceRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "sale_price": {
                    "type": "string",
                    "example": "0.00"
                },
                "commission_rate": {
                    "type": "string",
                    "example": "0.00"
                },
                "material_costs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/catalog.MaterialLineRequest"
                    }
                }
            },
            "required": [
                "name"
            ]
        },
        "catalog.UpdateLineRequest": {
            "type": "object",
            "properties": {
                "material_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "quantity": {
                    "type": "string",
                    "example": "0.00"
                },
                "cost": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "expense.CreateCategoryRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "is_fixed": {
                    "type": "boolean"
                }
            },
            "required": [
                "name"
            ]
        },
        "expense.UpsertExpenseRequest": {
            "type": "object",
            "properties": {
                "category_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "month": {
                    "type": "string"
                },
                "value": {
                    "type": "string",
                    "example": "0.00"
                }
            },
            "required": [
                "category_id",
                "month"
            ]
        },
        "ledger.CreateTransactionRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "amount": {
                    "type": "string",
                    "example": "0.00"
                },
                "category": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "payment_method": {
                    "type": "string"
                },
                "commission": {
                    "type": "string",
                    "example": "0.00"
                }
            },
            "required": [
                "date",
                "kind"
            ]
        },
        "ledger.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "amount": {
                    "type": "string",
                    "example": "0.00"
                },
                "category": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "payment_method": {
                    "type": "string"
                },
                "commission": {
                    "type": "string",
                    "example": "0.00"
                }
            },
            "required": [
                "date",
                "kind"
            ]
        },
        "settings.PaymentMethodDTO": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "fee_rate": {
                    "type": "string",
                    "example": "0.00"
                },
                "share": {
                    "type": "string",
                    "example": "0.00"
                }
            },
            "required": [
                "name"
            ]
        },
        "settings.UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "lucro_desejado": {
                    "type": "string",
                    "example": "0.00"
                },
                "despesas_indiretas_depreciacao": {
                    "type": "string",
                    "example": "0.00"
                },
                "impostos_rate": {
                    "type": "string",
                    "example": "0.00"
                },
                "weighted_average_rate": {
                    "type": "string",
                    "example": "0.00"
                },
                "commission_rate": {
                    "type": "string",
                    "example": "0.00"
                },
                "payment_methods": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/settings.PaymentMethodDTO"
                    }
                },
                "working_days": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "holidays": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "team_size": {
                    "type": "integer"
                },
                "depreciacao_valor_mobilizado": {
                    "type": "string",
                    "example": "0.00"
                },
                "depreciacao_total": {
                    "type": "string",
                    "example": "0.00"
                },
                "meta_faturamento_mensal": {
                    "type": "string",
                    "example": "0.00"
                },
                "meta_atendimentos_mensal": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Salon Finance API",
	Description:      "Cash flow, pricing and dashboard reports for beauty salons",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
