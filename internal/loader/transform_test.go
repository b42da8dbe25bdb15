package loader

import (
	"testing"

	"github.com/elixir-tesla/tesla-openapi/internal/model"
	"github.com/stretchr/testify/require"
)

const petstoreV3 = `{
	"openapi": "3.0.0",
	"info": {"title": "Petstore", "description": "Pets as a service", "version": "1.0.0"},
	"components": {
		"schemas": {
			"Pet": {
				"title": "A pet",
				"properties": {
					"name": {"type": "string"},
					"tag": {"$ref": "#/components/schemas/Tag"}
				}
			},
			"Tag": {"properties": {"name": {"type": "string"}}}
		}
	},
	"paths": {
		"/pets": {
			"parameters": [
				{"name": "verbose", "in": "query", "schema": {"type": "boolean"}}
			],
			"get": {
				"operationId": "listPets",
				"summary": "List pets",
				"externalDocs": {"description": "More", "url": "https://example.com/pets"},
				"parameters": [
					{"name": "limit", "in": "query", "schema": {"type": "integer"}}
				],
				"responses": {
					"200": {"content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Pet"}}}}},
					"default": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}}
				}
			},
			"post": {
				"operationId": "createPet",
				"requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}},
				"responses": {
					"201": {"description": "created"}
				}
			}
		},
		"/pets/{petId}": {
			"get": {
				"summary": "anonymous operation without an id",
				"responses": {"200": {"description": "ok"}}
			}
		}
	}
}`

func TestTransformV3(t *testing.T) {
	result, err := Load([]byte(petstoreV3))
	require.NoError(t, err)
	require.Equal(t, "3.0.0", result.Version)
	require.Empty(t, result.Warnings)

	spec, err := Transform(result)
	require.NoError(t, err)

	require.Equal(t, "Petstore", spec.Info.Title)
	require.Equal(t, "Pets as a service", spec.Info.Description)
	require.Equal(t, "1.0.0", spec.Info.Version)

	require.Len(t, spec.Models, 2)
	require.Equal(t, "Pet", spec.Models[0].Name)
	require.Equal(t, "A pet", spec.Models[0].Title)
	require.Equal(t, "Tag", spec.Models[1].Name)

	pet, ok := spec.Models[0].Schema.(model.Object)
	require.True(t, ok)
	tag, ok := pet.Prop("tag")
	require.True(t, ok)
	require.Equal(t, model.Schema(model.Ref{Name: "Tag", Pointer: "#/components/schemas/Tag"}), tag)

	// the operation without an operationId is dropped
	require.Len(t, spec.Operations, 2)

	list := spec.Operations[0]
	require.Equal(t, "listPets", list.ID)
	require.Equal(t, model.MethodGet, list.Method)
	require.Equal(t, "/pets", list.Path)
	require.Equal(t, "List pets", list.Summary)
	require.NotNil(t, list.ExternalDocs)
	require.Equal(t, "https://example.com/pets", list.ExternalDocs.URL)

	// path-item parameters come first, operation parameters after
	require.Len(t, list.QueryParams, 2)
	require.Equal(t, "verbose", list.QueryParams[0].Name)
	require.Equal(t, model.Schema(model.Prim{Kind: model.KindBoolean}), list.QueryParams[0].Schema)
	require.Equal(t, "limit", list.QueryParams[1].Name)
	require.Empty(t, list.PathParams)
	require.Empty(t, list.BodyParams)
	require.Nil(t, list.RequestBody)

	require.Len(t, list.Responses, 2)
	require.Equal(t, 200, list.Responses[0].Code)
	require.False(t, list.Responses[0].Default)
	require.Equal(t, model.Schema(model.Array{Of: model.Ref{Name: "Pet", Pointer: "#/components/schemas/Pet"}}), list.Responses[0].Schema)
	require.True(t, list.Responses[1].Default)
	require.Equal(t, model.Schema(model.Ref{Name: "Pet", Pointer: "#/components/schemas/Pet"}), list.Responses[1].Schema)

	create := spec.Operations[1]
	require.Equal(t, "createPet", create.ID)
	require.Equal(t, model.MethodPost, create.Method)
	require.Equal(t, model.Schema(model.Ref{Name: "Pet", Pointer: "#/components/schemas/Pet"}), create.RequestBody)
	require.Len(t, create.Responses, 1)
	require.Equal(t, 201, create.Responses[0].Code)
	require.Nil(t, create.Responses[0].Schema)
}

const petstoreV2 = `{
	"swagger": "2.0",
	"info": {"title": "Petstore", "version": "1.0.0"},
	"host": "petstore.example.com",
	"basePath": "/v1",
	"schemes": ["https"],
	"consumes": ["application/json"],
	"parameters": {
		"limitParam": {"name": "limit", "in": "query", "type": "integer"}
	},
	"definitions": {
		"Pet": {"properties": {"name": {"type": "string"}}}
	},
	"paths": {
		"/pets": {
			"get": {
				"operationId": "listPets",
				"parameters": [
					{"$ref": "#/parameters/limitParam"}
				],
				"responses": {
					"200": {"schema": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}}
				}
			},
			"post": {
				"operationId": "createPet",
				"parameters": [
					{"name": "pet", "in": "body", "description": "the pet to add", "schema": {"$ref": "#/definitions/Pet"}}
				],
				"responses": {
					"200": {"schema": {"$ref": "#/definitions/Pet"}}
				}
			}
		},
		"/pets/{petId}": {
			"delete": {
				"operationId": "deletePet",
				"parameters": [
					{"name": "petId", "in": "path", "type": "string"}
				],
				"responses": {"204": {"description": "deleted"}}
			}
		}
	}
}`

func TestTransformV2(t *testing.T) {
	result, err := Load([]byte(petstoreV2))
	require.NoError(t, err)
	require.Equal(t, "2.0", result.Version)
	require.NotEmpty(t, result.Warnings)

	spec, err := Transform(result)
	require.NoError(t, err)

	require.Equal(t, "petstore.example.com", spec.Host)
	require.Equal(t, "/v1", spec.BasePath)
	require.Equal(t, []string{"https"}, spec.Schemes)
	require.Equal(t, []string{"application/json"}, spec.Consumes)

	require.Len(t, spec.Models, 1)
	require.Equal(t, "Pet", spec.Models[0].Name)

	require.Len(t, spec.Operations, 3)

	list := spec.Operations[0]
	require.Equal(t, "listPets", list.ID)
	// $ref parameter dereferenced to its target
	require.Len(t, list.QueryParams, 1)
	require.Equal(t, "limit", list.QueryParams[0].Name)
	require.Equal(t, model.Schema(model.Prim{Kind: model.KindInteger}), list.QueryParams[0].Schema)

	create := spec.Operations[1]
	require.Equal(t, "createPet", create.ID)
	require.Len(t, create.BodyParams, 1)
	require.Equal(t, "pet", create.BodyParams[0].Name)
	require.Equal(t, "the pet to add", create.BodyParams[0].Description)
	require.Equal(t, model.Schema(model.Ref{Name: "Pet", Pointer: "#/definitions/Pet"}), create.BodyParams[0].Schema)

	del := spec.Operations[2]
	require.Equal(t, "deletePet", del.ID)
	require.Len(t, del.PathParams, 1)
	require.Equal(t, "petId", del.PathParams[0].Name)
	require.Equal(t, model.Schema(model.Prim{Kind: model.KindString}), del.PathParams[0].Schema)
	require.Len(t, del.Responses, 1)
	require.Equal(t, 204, del.Responses[0].Code)
	require.Nil(t, del.Responses[0].Schema)
}

func TestTransformParameterOverride(t *testing.T) {
	result, err := Load([]byte(`{
		"swagger": "2.0",
		"paths": {
			"/pets": {
				"parameters": [
					{"name": "limit", "in": "query", "type": "string"}
				],
				"get": {
					"operationId": "listPets",
					"parameters": [
						{"name": "limit", "in": "query", "type": "integer"}
					],
					"responses": {"200": {"description": "ok"}}
				}
			}
		}
	}`))
	require.NoError(t, err)

	spec, err := Transform(result)
	require.NoError(t, err)

	require.Len(t, spec.Operations, 1)
	require.Len(t, spec.Operations[0].QueryParams, 1)
	require.Equal(t, model.Schema(model.Prim{Kind: model.KindInteger}), spec.Operations[0].QueryParams[0].Schema)
}

func TestTransformRootNotObject(t *testing.T) {
	result, err := Load([]byte(`[1, 2, 3]`))
	require.NoError(t, err)

	_, err = Transform(result)
	require.Error(t, err)
}
