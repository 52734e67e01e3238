package payments

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/medbook/doctors-portal/pkg/logging"
)

type mockDynamo struct {
	putInput *dynamodb.PutItemInput
}

func (m *mockDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.putInput = in
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoStoreRecord(t *testing.T) {
	mock := &mockDynamo{}
	store := NewDynamoStore(mock, "payments", logging.Default())

	payment, err := store.Record(context.Background(), &RecordRequest{
		BookingID:     "b-1",
		Email:         "jane@example.com",
		Price:         99.5,
		TransactionID: "pi_tx_1",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if payment.ID == "" {
		t.Fatal("expected generated id")
	}
	if payment.CreatedAt == "" {
		t.Fatal("expected created timestamp")
	}

	var stored Payment
	if err := attributevalue.UnmarshalMap(mock.putInput.Item, &stored); err != nil {
		t.Fatalf("unmarshal stored payment: %v", err)
	}
	if stored.BookingID != "b-1" || stored.TransactionID != "pi_tx_1" || stored.Price != 99.5 {
		t.Fatalf("unexpected stored payment: %+v", stored)
	}
}
