package catalog

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/medbook/doctors-portal/pkg/logging"
)

type dynamoAPI interface {
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store persists the appointment option catalog to DynamoDB. The table is
// keyed by treatment name, which keeps names unique.
type Store struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

// NewStore builds a catalog store backed by the provided DynamoDB client.
func NewStore(client dynamoAPI, tableName string, logger *logging.Logger) *Store {
	if client == nil {
		panic("catalog: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("catalog: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{client: client, tableName: tableName, logger: logger}
}

// List returns every appointment option in the catalog.
func (s *Store) List(ctx context.Context) ([]AppointmentOption, error) {
	var options []AppointmentOption
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("catalog: scan options: %w", err)
		}
		page := make([]AppointmentOption, 0, len(out.Items))
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("catalog: unmarshal options: %w", err)
		}
		options = append(options, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return options, nil
}

// Put inserts or replaces one catalog entry. Used by the bootstrap seeder.
func (s *Store) Put(ctx context.Context, option AppointmentOption) error {
	item, err := attributevalue.MarshalMap(option)
	if err != nil {
		return fmt.Errorf("catalog: marshal option: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("catalog: put option %q: %w", option.Name, err)
	}
	return nil
}
