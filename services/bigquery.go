package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BigQueryService relays one fixed aggregate query to the warehouse.
// It is stateless beyond the client handle; errors surface to the caller
// untouched, with no retry.
type BigQueryService struct {
	client   *bigquery.Client
	location string
	table    string
}

func NewBigQueryService(ctx context.Context, projectID, credentialsFile, location, table string) (*BigQueryService, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}

	return &BigQueryService{
		client:   client,
		location: location,
		table:    table,
	}, nil
}

// FetchAggregate runs the fixed read-only query and returns the raw rows.
func (s *BigQueryService) FetchAggregate(ctx context.Context) ([]map[string]bigquery.Value, error) {
	query := s.client.Query(fmt.Sprintf("SELECT * FROM `%s` LIMIT 10", s.table))
	query.Location = s.location

	it, err := query.Read(ctx)
	if err != nil {
		return nil, err
	}

	rows := []map[string]bigquery.Value{}
	for {
		var row map[string]bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *BigQueryService) Close() error {
	return s.client.Close()
}
