package docs

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Info  map[string]interface{}            `json:"info"`
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(doc, &parsed))

	assert.Equal(t, SwaggerInfo.Title, parsed.Info["title"])

	routes := map[string]string{
		"/api/v1/books":                 "get",
		"/api/v1/books/isbn/{isbn}":     "get",
		"/api/v1/books/author/{author}": "get",
		"/api/v1/books/title/{title}":   "get",
		"/api/v1/books/review/{isbn}":   "get",
		"/api/v1/async/books":           "get",
		"/api/v1/async/isbn/{isbn}":     "get",
		"/api/v1/async/author/{author}": "get",
		"/api/v1/async/title/{title}":   "get",
		"/api/v1/users/register":        "post",
	}
	for path, method := range routes {
		ops, ok := parsed.Paths[path]
		if assert.True(t, ok, path) {
			assert.Contains(t, ops, method, path)
		}
	}
}
