package creatoriq

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type graphqlRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Extensions    map[string]any `json:"extensions"`
	Query         string         `json:"query"`
}

type graphqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []any          `json:"errors"`
}

func (c *Client) graphqlQuery(
	ctx context.Context,
	name, query string,
	variables map[string]any,
) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", name))
	defer span.End()

	span.SetAttributes(attribute.KeyValue{
		Key:   "name",
		Value: attribute.StringValue(name),
	})

	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(graphqlRequest{
		OperationName: name,
		Variables:     variables,
		Extensions: map[string]any{
			"clientLibrary": map[string]any{
				"name":    "@apollo/client",
				"version": "4.0.9",
			},
		},
		Query: query,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize json query")
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(body).
		Post(graphqlEndpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.StatusCode() >= 400 {
		err := StatusError{Code: res.StatusCode(), Body: res.String()}
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad status")
		return nil, err
	}

	var parsed graphqlResponse
	err = json.Unmarshal(res.Body(), &parsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return nil, err
	}
	if len(parsed.Errors) > 0 {
		err := fmt.Errorf("creatoriq query error: %v", parsed.Errors)
		span.RecordError(err)
		span.SetStatus(codes.Error, "graphql errors")
		return nil, err
	}

	if parsed.Data == nil {
		return map[string]any{}, nil
	}
	return parsed.Data, nil
}

// firstListNode digs out `lists.edges[0].node` from a query response.
func firstListNode(data map[string]any) map[string]any {
	lists, _ := data["lists"].(map[string]any)
	edges, _ := lists["edges"].([]any)
	if len(edges) == 0 {
		return nil
	}
	edge, _ := edges[0].(map[string]any)
	node, _ := edge["node"].(map[string]any)
	return node
}

func nodeCreators(node map[string]any) []map[string]any {
	items, _ := node["items"].([]any)
	var creators []map[string]any
	for _, item := range items {
		obj, _ := item.(map[string]any)
		creator, _ := obj["creator"].(map[string]any)
		if creator != nil {
			creators = append(creators, creator)
		}
	}
	return creators
}
