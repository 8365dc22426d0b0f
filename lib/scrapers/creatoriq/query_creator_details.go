package creatoriq

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const getCollectionCreatorDetailsQuery = `
fragment CreatorAttributes on CustomAttributes {
  networkPublisherId
  publisherSize
  subNetworkName
  accountManagerName
  description
  shortDescription
  contentRating
  relationship
}

fragment CreatorProfileSettings on ProfileSettings {
  isHidden
  config {
    field
    isHidden
  }
}

query getCollectionCreatorDetails($filterBy: ListDataFilter, $creatorId: ID!) {
  lists(filterBy: $filterBy) {
    edges {
      node {
        id
        items {
          creator {
            id
            listCreatorsId
            name
            username
            handle
            platform
            primaryPlatform
            sections
            profileUrl
            profileImage
            customFields {
              id
              value
            }
            attributes {
              ...CreatorAttributes
            }
            profileSettings {
              ...CreatorProfileSettings
            }
            audience {
              countries {
                title
                value
              }
              age {
                title
                value
              }
              gender {
                title
                value
              }
              interests {
                title
                value
              }
            }
            statistics {
              followers
              engagementRate
              views
            }
          }
        }
      }
    }
  }
}
`

// FetchCreatorDetail pulls the per-creator detail payload. Returns
// (nil, nil) when the creator is not present in the response.
func (c *Client) FetchCreatorDetail(ctx context.Context, creatorId string) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "FetchCreatorDetail")
	defer span.End()

	span.SetAttributes(attribute.String("creator_id", creatorId))

	variables := map[string]any{"creatorId": creatorId}
	if c.listId != "" {
		variables["filterBy"] = map[string]any{
			"id": map[string]any{"eq": c.listId},
		}
	} else {
		variables["filterBy"] = nil
	}

	data, err := c.graphqlQuery(
		ctx,
		"getCollectionCreatorDetails",
		getCollectionCreatorDetailsQuery,
		variables,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch creator detail")
		return nil, err
	}

	node := firstListNode(data)
	if node == nil {
		return nil, nil
	}
	for _, creator := range nodeCreators(node) {
		if fmt.Sprint(creator["id"]) == creatorId {
			return creator, nil
		}
	}
	return nil, nil
}
