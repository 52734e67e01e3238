package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/medbook/doctors-portal/pkg/logging"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store persists payment records.
type Store interface {
	Record(ctx context.Context, req *RecordRequest) (*Payment, error)
}

// DynamoStore persists payments to DynamoDB, keyed by id.
type DynamoStore struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, tableName string, logger *logging.Logger) *DynamoStore {
	if client == nil {
		panic("payments: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("payments: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DynamoStore{client: client, tableName: tableName, logger: logger}
}

// Record inserts a payment record.
func (s *DynamoStore) Record(ctx context.Context, req *RecordRequest) (*Payment, error) {
	payment := &Payment{
		ID:            uuid.NewString(),
		BookingID:     req.BookingID,
		Email:         req.Email,
		TreatmentName: req.TreatmentName,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	item, err := attributevalue.MarshalMap(payment)
	if err != nil {
		return nil, fmt.Errorf("payments: marshal payment: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("payments: persist payment: %w", err)
	}
	return payment, nil
}

// InMemoryStore implements Store with a map, for tests and local runs.
type InMemoryStore struct {
	mu   sync.Mutex
	byID map[string]*Payment
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty in-memory payment store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]*Payment)}
}

func (s *InMemoryStore) Record(ctx context.Context, req *RecordRequest) (*Payment, error) {
	payment := &Payment{
		ID:            uuid.NewString(),
		BookingID:     req.BookingID,
		Email:         req.Email,
		TreatmentName: req.TreatmentName,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	s.mu.Lock()
	s.byID[payment.ID] = payment
	s.mu.Unlock()

	copied := *payment
	return &copied, nil
}
