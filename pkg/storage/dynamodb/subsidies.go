package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	"github.com/google/uuid"
)

// GetSubsidy retrieves a subsidy by its UUID.
func (s *Store) GetSubsidy(ctx context.Context, subsidyUUID uuid.UUID) (*models.Subsidy, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.SubsidiesTableName),
		Key: map[string]types.AttributeValue{
			"uuid": &types.AttributeValueMemberS{Value: subsidyUUID.String()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get subsidy from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var subsidy models.Subsidy
	if err := attributevalue.UnmarshalMap(result.Item, &subsidy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subsidy: %w", err)
	}

	return &subsidy, nil
}

// GetOrCreateSubsidy finds the subsidy provisioned for the given reference
// ID, or creates one from the defaults. Internal-only subsidies always get
// a fresh row since their reference IDs are meaningless test values.
func (s *Store) GetOrCreateSubsidy(ctx context.Context, referenceID string, defaults *models.Subsidy) (*models.Subsidy, bool, error) {
	if !defaults.InternalOnly {
		existing, err := s.findSubsidyByReferenceID(ctx, referenceID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	now := time.Now().UTC()
	subsidy := *defaults
	subsidy.UUID = uuid.New()
	subsidy.ReferenceID = referenceID
	if subsidy.ReferenceType == "" {
		subsidy.ReferenceType = models.SubsidyReferenceTypeOpportunityProduct
	}
	subsidy.CreatedAt = now
	subsidy.UpdatedAt = now

	item, err := attributevalue.MarshalMap(&subsidy)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal subsidy: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.SubsidiesTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#uuid)"),
		ExpressionAttributeNames: map[string]string{
			"#uuid": "uuid",
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to put subsidy: %w", err)
	}

	return &subsidy, true, nil
}

func (s *Store) findSubsidyByReferenceID(ctx context.Context, referenceID string) (*models.Subsidy, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.SubsidiesTableName),
		IndexName:              aws.String(referenceIDIndex),
		KeyConditionExpression: aws.String("reference_id = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: referenceID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query subsidy by reference id: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	var subsidy models.Subsidy
	if err := attributevalue.UnmarshalMap(result.Items[0], &subsidy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subsidy: %w", err)
	}

	return &subsidy, nil
}

// ListSubsidies retrieves all subsidies belonging to an enterprise customer.
func (s *Store) ListSubsidies(ctx context.Context, enterpriseCustomerUUID uuid.UUID) ([]models.Subsidy, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.SubsidiesTableName),
		IndexName:              aws.String(customerUUIDIndex),
		KeyConditionExpression: aws.String("enterprise_customer_uuid = :customer"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":customer": &types.AttributeValueMemberS{Value: enterpriseCustomerUUID.String()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query subsidies for customer: %w", err)
	}

	var subsidies []models.Subsidy
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &subsidies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subsidies: %w", err)
	}

	return subsidies, nil
}
