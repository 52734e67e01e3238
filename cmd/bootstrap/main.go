// Command bootstrap provisions the DynamoDB tables and seeds the treatment
// catalog. It is idempotent: existing tables are left alone and seeded
// options are overwritten in place.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/joho/godotenv"

	"github.com/medbook/doctors-portal/cmd/mainconfig"
	"github.com/medbook/doctors-portal/internal/catalog"
	appconfig "github.com/medbook/doctors-portal/internal/config"
	"github.com/medbook/doctors-portal/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	client := dynamodb.NewFromConfig(awsCfg)

	tables := []dynamodb.CreateTableInput{
		simpleTable(cfg.OptionsTable, "id"),
		bookingsTable(cfg.BookingsTable),
		usersTable(cfg.UsersTable),
		simpleTable(cfg.DoctorsTable, "id"),
		simpleTable(cfg.PaymentsTable, "id"),
	}
	for i := range tables {
		if err := createTable(ctx, client, &tables[i]); err != nil {
			log.Fatalf("create table %s: %v", aws.ToString(tables[i].TableName), err)
		}
	}

	optionStore := catalog.NewStore(client, cfg.OptionsTable, logger)
	for _, option := range defaultOptions() {
		if err := optionStore.Put(ctx, option); err != nil {
			log.Fatalf("seed option %s: %v", option.Name, err)
		}
	}

	fmt.Println("bootstrap complete")
}

func createTable(ctx context.Context, client *dynamodb.Client, input *dynamodb.CreateTableInput) error {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			fmt.Printf("table %s already exists\n", aws.ToString(input.TableName))
			return nil
		}
		return err
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName}, time.Minute); err != nil {
		return fmt.Errorf("wait for table: %w", err)
	}
	fmt.Printf("created table %s\n", aws.ToString(input.TableName))
	return nil
}

// simpleTable describes a table keyed by a single string attribute.
func simpleTable(name, key string) dynamodb.CreateTableInput {
	return dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(key), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(key), KeyType: types.KeyTypeHash},
		},
	}
}

// bookingsTable is keyed by the booking conflict key so duplicate bookings
// fail at the storage layer. Secondary indexes cover id, date and email
// lookups.
func bookingsTable(name string) dynamodb.CreateTableInput {
	return dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("conflictKey"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("appointmentDate"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("conflictKey"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			globalIndex("id-index", "id"),
			globalIndex("date-index", "appointmentDate"),
			globalIndex("email-index", "email"),
		},
	}
}

// usersTable is keyed by email; the id index serves role grants by user id.
func usersTable(name string) dynamodb.CreateTableInput {
	return dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("email"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			globalIndex("id-index", "id"),
		},
	}
}

func globalIndex(name, key string) types.GlobalSecondaryIndex {
	return types.GlobalSecondaryIndex{
		IndexName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(key), KeyType: types.KeyTypeHash},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

// defaultOptions is the seed treatment catalog. Slot grids match the
// half-hour schedule the booking form presents.
func defaultOptions() []catalog.AppointmentOption {
	slots := []string{
		"8.00 AM - 8.30 AM",
		"8.30 AM - 9.00 AM",
		"9.00 AM - 9.30 AM",
		"9.30 AM - 10.00 AM",
		"10.00 AM - 10.30 AM",
		"10.30 AM - 11.00 AM",
		"11.00 AM - 11.30 AM",
		"11.30 AM - 12.00 PM",
		"1.00 PM - 1.30 PM",
		"1.30 PM - 2.00 PM",
		"2.00 PM - 2.30 PM",
		"2.30 PM - 3.00 PM",
		"3.00 PM - 3.30 PM",
		"3.30 PM - 4.00 PM",
	}
	catalogSeed := []struct {
		id    string
		name  string
		price float64
	}{
		{"option-teeth-orthodontics", "Teeth Orthodontics", 280},
		{"option-cosmetic-dentistry", "Cosmetic Dentistry", 250},
		{"option-teeth-cleaning", "Teeth Cleaning", 99},
		{"option-cavity-protection", "Cavity Protection", 150},
		{"option-pediatric-dental", "Pediatric Dental", 120},
		{"option-oral-surgery", "Oral Surgery", 400},
	}

	options := make([]catalog.AppointmentOption, 0, len(catalogSeed))
	for _, entry := range catalogSeed {
		options = append(options, catalog.AppointmentOption{
			ID:    entry.id,
			Name:  entry.name,
			Price: entry.price,
			Slots: append([]string(nil), slots...),
		})
	}
	return options
}
