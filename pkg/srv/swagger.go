/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

// swaggerJSON is the API document served at /swagger.json and rendered
// at /docs. It is validated once at server startup.
const swaggerJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "go-feb API",
    "description": "RESTful APIs to interact with the go-feb register server",
    "version": "1.0.0"
  },
  "host": "localhost:8000",
  "basePath": "/",
  "schemes": ["http"],
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/api/reg/r/{board}/{name}": {
      "get": {
        "operationId": "readReg",
        "summary": "Read a register by name, mask applied",
        "parameters": [
          {"name": "board", "in": "path", "required": true, "type": "string"},
          {"name": "name", "in": "path", "required": true, "type": "string"}
        ],
        "responses": {
          "200": {"description": "register value", "schema": {"$ref": "#/definitions/RegHex"}},
          "404": {"description": "unknown board, table or register"},
          "500": {"description": "malformed address table entry"},
          "502": {"description": "bus fault"}
        }
      }
    },
    "/api/reg/w/{board}": {
      "post": {
        "operationId": "writeReg",
        "summary": "Write a register by name, read-modify-write under its mask",
        "parameters": [
          {"name": "board", "in": "path", "required": true, "type": "string"},
          {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegHex"}}
        ],
        "responses": {
          "200": {"description": "written"},
          "400": {"description": "bad request body"},
          "404": {"description": "unknown board, table or register"},
          "502": {"description": "bus fault"}
        }
      }
    },
    "/api/reg/raw/r/{board}/{name}": {
      "get": {
        "operationId": "readRawReg",
        "summary": "Read the full word at a register's address, mask not applied",
        "parameters": [
          {"name": "board", "in": "path", "required": true, "type": "string"},
          {"name": "name", "in": "path", "required": true, "type": "string"}
        ],
        "responses": {
          "200": {"description": "register value", "schema": {"$ref": "#/definitions/RegHex"}},
          "404": {"description": "unknown board, table or register"},
          "502": {"description": "bus fault"}
        }
      }
    },
    "/api/reg/raw/w/{board}": {
      "post": {
        "operationId": "writeRawReg",
        "summary": "Overwrite the full word at a register's address",
        "parameters": [
          {"name": "board", "in": "path", "required": true, "type": "string"},
          {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegHex"}}
        ],
        "responses": {
          "200": {"description": "written"},
          "400": {"description": "bad request body"},
          "404": {"description": "unknown board, table or register"},
          "502": {"description": "bus fault"}
        }
      }
    },
    "/api/reg/info/{board}/{name}": {
      "get": {
        "operationId": "regInfo",
        "summary": "Resolve a register without touching the hardware",
        "parameters": [
          {"name": "board", "in": "path", "required": true, "type": "string"},
          {"name": "name", "in": "path", "required": true, "type": "string"}
        ],
        "responses": {
          "200": {"description": "resolved entry", "schema": {"$ref": "#/definitions/RegInfo"}},
          "404": {"description": "unknown board, table or register"}
        }
      }
    },
    "/api/mem/r/{board}/{addr}": {
      "get": {
        "operationId": "readRawAddress",
        "summary": "Read one word at a bare address",
        "parameters": [
          {"name": "board", "in": "path", "required": true, "type": "string"},
          {"name": "addr", "in": "path", "required": true, "type": "string"}
        ],
        "responses": {
          "200": {"description": "word value", "schema": {"$ref": "#/definitions/MemHex"}},
          "404": {"description": "unknown board"},
          "502": {"description": "bus fault"}
        }
      }
    },
    "/api/mem/w/{board}": {
      "post": {
        "operationId": "writeRawAddress",
        "summary": "Write one word at a bare address",
        "parameters": [
          {"name": "board", "in": "path", "required": true, "type": "string"},
          {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MemHex"}}
        ],
        "responses": {
          "200": {"description": "written"},
          "400": {"description": "bad request body"},
          "404": {"description": "unknown board"},
          "502": {"description": "bus fault"}
        }
      }
    }
  },
  "definitions": {
    "RegHex": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "value": {"type": "string", "description": "hexadecimal"}
      }
    },
    "MemHex": {
      "type": "object",
      "properties": {
        "addr": {"type": "string", "description": "hexadecimal"},
        "value": {"type": "string", "description": "hexadecimal"}
      }
    },
    "RegInfo": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "address": {"type": "string", "description": "hexadecimal"},
        "mask": {"type": "string", "description": "hexadecimal"},
        "permission": {"type": "string"},
        "width": {"type": "integer"}
      }
    }
  }
}`
