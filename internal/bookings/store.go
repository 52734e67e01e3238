package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// Index names on the bookings table. The table itself is keyed by the
// conflict key; lookups by id, date, and email go through these GSIs.
const (
	indexByID    = "id-index"
	indexByDate  = "date-index"
	indexByEmail = "email-index"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Store defines the persistence operations bookings need.
type Store interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEmail(ctx context.Context, email string) ([]Booking, error)
	TakenSlots(ctx context.Context, date string) (map[string][]string, error)
	AttachPayment(ctx context.Context, id, transactionID string) error
}

// DynamoStore persists bookings to DynamoDB.
type DynamoStore struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, tableName string, logger *logging.Logger) *DynamoStore {
	if client == nil {
		panic("bookings: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("bookings: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DynamoStore{client: client, tableName: tableName, logger: logger}
}

// Create inserts a booking. The conditional write on the conflict key makes
// the check and the insert one atomic operation: a concurrent duplicate loses
// with ErrDuplicateBooking instead of racing past a separate read.
func (s *DynamoStore) Create(ctx context.Context, booking *Booking) error {
	if booking == nil {
		return errors.New("bookings: booking cannot be nil")
	}

	item, err := attributevalue.MarshalMap(booking)
	if err != nil {
		return fmt.Errorf("bookings: marshal booking: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(conflictKey)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("bookings: persist booking: %w", err)
	}
	return nil
}

// GetByID fetches one booking through the id index.
func (s *DynamoStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String(indexByID),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("bookings: query by id: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, ErrNotFound
	}

	var booking Booking
	if err := attributevalue.UnmarshalMap(out.Items[0], &booking); err != nil {
		return nil, fmt.Errorf("bookings: unmarshal booking: %w", err)
	}
	return &booking, nil
}

// ListByEmail returns every booking whose email matches.
func (s *DynamoStore) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	items, err := s.queryAll(ctx, indexByEmail, "email = :v", email)
	if err != nil {
		return nil, fmt.Errorf("bookings: query by email: %w", err)
	}
	return items, nil
}

// TakenSlots returns the booked slots on a date, grouped by treatment name.
func (s *DynamoStore) TakenSlots(ctx context.Context, date string) (map[string][]string, error) {
	items, err := s.queryAll(ctx, indexByDate, "appointmentDate = :v", date)
	if err != nil {
		return nil, fmt.Errorf("bookings: query by date: %w", err)
	}
	taken := make(map[string][]string)
	for _, booking := range items {
		taken[booking.TreatmentName] = append(taken[booking.TreatmentName], booking.Slot)
	}
	return taken, nil
}

// AttachPayment marks a booking paid. The only mutation a booking sees after
// creation.
func (s *DynamoStore) AttachPayment(ctx context.Context, id, transactionID string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"conflictKey": &types.AttributeValueMemberS{Value: booking.ConflictKey},
		},
		UpdateExpression: aws.String("SET paymentStatus = :status, transactionId = :txn"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: PaymentStatusPaid},
			":txn":    &types.AttributeValueMemberS{Value: transactionID},
		},
		ConditionExpression: aws.String("attribute_exists(conflictKey)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrNotFound
		}
		return fmt.Errorf("bookings: attach payment: %w", err)
	}
	return nil
}

func (s *DynamoStore) queryAll(ctx context.Context, index, keyCondition, value string) ([]Booking, error) {
	var bookings []Booking
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			IndexName:              aws.String(index),
			KeyConditionExpression: aws.String(keyCondition),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: value},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		page := make([]Booking, 0, len(out.Items))
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		bookings = append(bookings, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return bookings, nil
}
