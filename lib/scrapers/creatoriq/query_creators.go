package creatoriq

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const getCollectionCreatorsQuery = `
query getCollectionCreators {
  lists {
    edges {
      node {
        id
        items {
          creator {
            id
            listCreatorsId
            fullName
            primaryNetwork
            primarySocialUsername
            profilePictureURL
            source
            totalSocialConnections
            age
            country
            city
            gender
            language
            tags
            categories
            subCategories
            sections
            attributes {
              description
            }
            accounts {
              id
              network
              socialNetworkId
              socialUsername
              followers
              engagementRate
              accountUrl
            }
          }
        }
      }
    }
  }
}
`

// FetchCreators lists every creator in the shared collection. The list
// id is remembered for subsequent detail queries.
func (c *Client) FetchCreators(ctx context.Context) ([]map[string]any, error) {
	ctx, span := tracer.Start(ctx, "FetchCreators")
	defer span.End()

	data, err := c.graphqlQuery(ctx, "getCollectionCreators", getCollectionCreatorsQuery, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch collection creators")
		return nil, err
	}

	node := firstListNode(data)
	if node == nil {
		return nil, nil
	}
	if listId, ok := node["id"]; ok && listId != nil {
		c.listId = fmt.Sprint(listId)
	}

	creators := nodeCreators(node)
	span.SetAttributes(attribute.Int("creator_count", len(creators)))
	return creators, nil
}
