package doctors

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/medbook/doctors-portal/pkg/logging"
)

type mockDynamo struct {
	putInput    *dynamodb.PutItemInput
	scanOutput  *dynamodb.ScanOutput
	deleteInput *dynamodb.DeleteItemInput
	deleteErr   error
}

func (m *mockDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.putInput = in
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if m.scanOutput == nil {
		return &dynamodb.ScanOutput{}, nil
	}
	return m.scanOutput, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.deleteInput = in
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoStoreCreateAssignsID(t *testing.T) {
	mock := &mockDynamo{}
	store := NewDynamoStore(mock, "doctors", logging.Default())

	doctor, err := store.Create(context.Background(), &CreateRequest{Name: "Dr. Strange", Specialty: "Cleaning"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if doctor.ID == "" {
		t.Fatal("expected generated id")
	}
	var stored Doctor
	if err := attributevalue.UnmarshalMap(mock.putInput.Item, &stored); err != nil {
		t.Fatalf("unmarshal stored doctor: %v", err)
	}
	if stored.Specialty != "Cleaning" {
		t.Fatalf("unexpected stored doctor: %+v", stored)
	}
}

func TestDynamoStoreDeleteRequiresExistence(t *testing.T) {
	mock := &mockDynamo{}
	store := NewDynamoStore(mock, "doctors", logging.Default())

	if err := store.Delete(context.Background(), "d-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if expr := mock.deleteInput.ConditionExpression; expr == nil || *expr != "attribute_exists(id)" {
		t.Fatalf("expected existence condition, got %v", expr)
	}
}

func TestDynamoStoreDeleteMissing(t *testing.T) {
	mock := &mockDynamo{deleteErr: &types.ConditionalCheckFailedException{}}
	store := NewDynamoStore(mock, "doctors", logging.Default())

	err := store.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
