// Package graphql клиент GraphQL бэкенда витрины: предложения товара берутся
// из searchProductOffers, заказ оформляется мутацией createOrder.
package graphql

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	gql "github.com/hasura/go-graphql-client"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

//go:embed schema.graphqls
var schemaSource string

// document запрос, проверенный по схеме бэкенда
type document struct {
	operation string
	text      string
}

// Client ходит в GraphQL бэкенд витрины. Транспорт go-graphql-client,
// запросы заранее проверены gqlparser по встроенной схеме.
type Client struct {
	gql *gql.Client
	log *zap.Logger

	searchOffers document
	createOrder  document
}

// New проверяет документы клиента по встроенной схеме
func New(endpoint, token string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("graphql endpoint is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})
	if err != nil {
		return nil, fmt.Errorf("failed to load graphql schema: %w", err)
	}

	client := gql.NewClient(endpoint, &http.Client{Timeout: timeout})
	if token != "" {
		client = client.WithRequestModifier(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
	}
	c := &Client{gql: client, log: log}
	if c.searchOffers, err = parseDocument(schema, searchProductOffersQuery); err != nil {
		return nil, err
	}
	if c.createOrder, err = parseDocument(schema, createOrderMutation); err != nil {
		return nil, err
	}
	return c, nil
}

func parseDocument(schema *ast.Schema, text string) (document, error) {
	doc, errs := gqlparser.LoadQuery(schema, text)
	if len(errs) > 0 {
		return document{}, fmt.Errorf("invalid graphql document: %w", errs)
	}
	if len(doc.Operations) != 1 {
		return document{}, fmt.Errorf("graphql document must hold one operation, got %d", len(doc.Operations))
	}
	return document{operation: doc.Operations[0].Name, text: text}, nil
}

// do выполняет документ и раскладывает data в out. Ошибки бэкенда
// приходят как gql.Errors, обёрнутые именем операции.
func (c *Client) do(ctx context.Context, doc document, vars map[string]any, out any) error {
	start := time.Now()
	data, err := c.gql.ExecRaw(ctx, doc.text, vars, gql.OperationName(doc.operation))
	c.log.Debug("graphql call",
		zap.String("operation", doc.operation),
		zap.Duration("duration", time.Since(start)),
		zap.Bool("failed", err != nil))
	if err != nil {
		return fmt.Errorf("graphql %s: %w", doc.operation, err)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("graphql %s: decode data: %w", doc.operation, err)
	}
	return nil
}
