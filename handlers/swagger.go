package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
// The document's server url is basePath, where the API routes are mounted.
func RegisterSwagger(r *gin.Engine, basePath string) {
	if basePath == "" {
		basePath = "/"
	}
	url, _ := json.Marshal(basePath)
	doc := []byte(strings.Replace(swaggerJSON, basePathPlaceholder, string(url), 1))

	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>qaforum API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const basePathPlaceholder = `"{{basePath}}"`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "qaforum", "version": "v1.0.0" },
  "servers": [ { "url": "{{basePath}}" } ],
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "parameters": {
      "limit": { "name": "limit", "in": "query", "schema": { "type": "integer", "default": 10 } },
      "skip": { "name": "skip", "in": "query", "schema": { "type": "integer", "default": 0 } },
      "id": { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } }
    }
  },
  "paths": {
    "/questions": {
      "get": { "summary": "List questions, newest first, with users and answers expanded", "parameters": [ {"$ref":"#/components/parameters/limit"}, {"$ref":"#/components/parameters/skip"} ], "responses": { "200": { "description": "page of questions" } } },
      "post": { "summary": "Create a question owned by the caller", "security": [ {"bearer": []} ], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"text":{"type":"string"}}}}}}, "responses": { "200": { "description": "created question" }, "401": { "description": "unauthorized" } } }
    },
    "/questions/{id}": {
      "parameters": [ {"$ref":"#/components/parameters/id"} ],
      "get": { "summary": "Get a question", "responses": { "200": { "description": "question" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a question", "security": [ {"bearer": []} ], "responses": { "200": { "description": "updated question" }, "401": { "description": "unauthorized" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a question", "security": [ {"bearer": []} ], "responses": { "200": { "description": "deleted question" }, "401": { "description": "unauthorized" }, "404": { "description": "not found" } } }
    },
    "/questions/{id}/answer": {
      "parameters": [ {"$ref":"#/components/parameters/id"} ],
      "post": { "summary": "Append an answer reference", "security": [ {"bearer": []} ], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"answer":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated question" }, "401": { "description": "unauthorized" }, "404": { "description": "not found" } } }
    },
    "/answers": {
      "get": { "summary": "List answers with users expanded", "parameters": [ {"$ref":"#/components/parameters/limit"}, {"$ref":"#/components/parameters/skip"} ], "responses": { "200": { "description": "page of answers" } } },
      "post": { "summary": "Create an answer", "security": [ {"bearer": []} ], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"text":{"type":"string"},"user":{"type":"string"}}}}}}, "responses": { "200": { "description": "created answer" }, "401": { "description": "unauthorized" } } }
    },
    "/answers/{id}": {
      "parameters": [ {"$ref":"#/components/parameters/id"} ],
      "get": { "summary": "Get an answer", "responses": { "200": { "description": "answer" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update an answer", "security": [ {"bearer": []} ], "responses": { "200": { "description": "updated answer" }, "401": { "description": "unauthorized" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete an answer", "security": [ {"bearer": []} ], "responses": { "200": { "description": "deleted answer" }, "401": { "description": "unauthorized" }, "404": { "description": "not found" } } }
    },
    "/users": {
      "get": { "summary": "List users", "parameters": [ {"$ref":"#/components/parameters/limit"}, {"$ref":"#/components/parameters/skip"} ], "responses": { "200": { "description": "page of users" } } }
    },
    "/users/signup": {
      "post": { "summary": "Register and receive a token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"firstname":{"type":"string"},"lastname":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "user and token" }, "400": { "description": "validation failed" }, "409": { "description": "email taken" } } }
    },
    "/users/login": {
      "post": { "summary": "Exchange credentials for a token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "user and token" }, "401": { "description": "wrong password" }, "404": { "description": "unknown email" } } }
    },
    "/users/profile": {
      "get": { "summary": "Current user", "security": [ {"bearer": []} ], "responses": { "200": { "description": "user" }, "401": { "description": "unauthorized" }, "404": { "description": "not found" } } }
    }
  }
}`
