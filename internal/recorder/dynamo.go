package recorder

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"CrossSentinel/internal/model"
)

// DynamoAPI is the subset of the DynamoDB client used here.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoRecorder puts one item per scan run, keyed by scan_id.
type DynamoRecorder struct {
	client DynamoAPI
	table  string
}

// NewDynamoRecorder loads the default AWS config. An empty region defers to
// the environment.
func NewDynamoRecorder(ctx context.Context, table, region string) (*DynamoRecorder, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	log.Printf("[INFO] dynamodb recorder using table %s", table)
	return &DynamoRecorder{client: dynamodb.NewFromConfig(cfg), table: table}, nil
}

// NewDynamoRecorderWithClient is used by tests and by callers that share a client.
func NewDynamoRecorderWithClient(client DynamoAPI, table string) *DynamoRecorder {
	return &DynamoRecorder{client: client, table: table}
}

func (r *DynamoRecorder) RecordScan(ctx context.Context, res *model.ScanResult) error {
	item, err := attributevalue.MarshalMap(NewScanRecord(res))
	if err != nil {
		return fmt.Errorf("marshal scan: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put scan in %s: %w", r.table, err)
	}
	return nil
}

func (r *DynamoRecorder) Close() error { return nil }
