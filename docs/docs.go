// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package docs registers the OpenAPI document served at /swagger/doc.json.
//
// Regenerate with:
//
//	swag init -g cmd/server/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/propertyrank"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "API information",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/properties": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Properties"
                ],
                "summary": "List properties",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/properties/details/all": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Properties"
                ],
                "summary": "List properties with details",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/properties/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Properties"
                ],
                "summary": "Get a property",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Property ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/properties/{id}/info": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Properties"
                ],
                "summary": "Get property details",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Property ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/properties/{id}/images": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Properties"
                ],
                "summary": "List property images",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Property ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/recommend": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Recommend properties",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/predict": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "Estimation"
                ],
                "summary": "Estimate a price",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/pricedata": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Estimation"
                ],
                "summary": "Estimator model data",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/comparebyid": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "Comparison"
                ],
                "summary": "Compare two properties",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/compare/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Comparison"
                ],
                "summary": "Comparison statistics",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/findproperties": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "Search"
                ],
                "summary": "Find properties",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/search": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Search"
                ],
                "summary": "Text search",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/search/suggestions": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Search"
                ],
                "summary": "Search suggestions",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/database/status": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "Listing store status",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "Service health",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/performance": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "Request latency by route",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/cache/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cache"
                ],
                "summary": "Score cache statistics",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/cache/clear": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "Cache"
                ],
                "summary": "Clear the score cache",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/cache/cleanup": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "Cache"
                ],
                "summary": "Evict expired cache entries",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "2.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PropertyRank API",
	Description:      "Property listings, personalized recommendations, price estimation and comparison.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
