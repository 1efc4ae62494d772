// Package api describes the HTTP API: the OpenAPI document, the wire types
// and the route table binding request parameters for a ServerInterface.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pkg/errors"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var rawDocument []byte

var loadDocument = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawDocument)
	if err != nil {
		return nil, errors.Wrap(err, "load openapi document")
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, errors.Wrap(err, "validate openapi document")
	}
	return doc, nil
})

// Document returns the parsed and validated API description.
func Document() (*openapi3.T, error) {
	return loadDocument()
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// RegisterSwagger publishes the document to the swagger UI handler. Only the
// first call registers.
func RegisterSwagger() error {
	return registerSwagger()
}

var registerSwagger = sync.OnceValue(func() error {
	doc, err := Document()
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encode openapi document")
	}
	swag.Register(swag.Name, swaggerDoc{json: string(encoded)})
	return nil
})
