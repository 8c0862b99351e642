// Package workspace lists Lakebase database instances through the
// Databricks workspace API.
package workspace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/listing"
	"github.com/databricks/databricks-sdk-go/service/database"

	"github.com/builderstack/appserver/internal/model"
)

// Lister returns up to limit database instances.
type Lister interface {
	ListInstances(ctx context.Context, limit int) ([]model.InstanceRecord, error)
}

// ClientFactory builds an authenticated workspace client.
type ClientFactory func() (*databricks.WorkspaceClient, error)

// Client lists database instances with a freshly built workspace client per
// call, so credential changes in the environment are picked up.
type Client struct {
	newClient ClientFactory
}

// NewClient returns a Client that authenticates from ambient credentials
// (environment variables, .databrickscfg or the Apps runtime identity).
func NewClient() *Client {
	return &Client{newClient: func() (*databricks.WorkspaceClient, error) {
		return databricks.NewWorkspaceClient()
	}}
}

// NewClientWithFactory returns a Client using factory to build workspace clients.
func NewClientWithFactory(factory ClientFactory) *Client {
	return &Client{newClient: factory}
}

// ListInstances lists database instances, stopping after limit records.
func (c *Client) ListInstances(ctx context.Context, limit int) ([]model.InstanceRecord, error) {
	w, err := c.newClient()
	if err != nil {
		return nil, fmt.Errorf("create workspace client: %w", err)
	}

	it := w.Database.ListDatabaseInstances(ctx, database.ListDatabaseInstancesRequest{})
	return collect[database.DatabaseInstance](ctx, it, limit)
}

// collect drains at most limit items from it, converting each to a record.
// The iterator is not advanced past the limit so no further pages are fetched.
func collect[T any](ctx context.Context, it listing.Iterator[T], limit int) ([]model.InstanceRecord, error) {
	if limit <= 0 {
		return []model.InstanceRecord{}, nil
	}

	records := make([]model.InstanceRecord, 0, limit)
	for len(records) < limit && it.HasNext(ctx) {
		item, err := it.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("iterate database instances: %w", err)
		}

		record, err := toRecord(item)
		if err != nil {
			return nil, fmt.Errorf("convert database instance: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// toRecord flattens v to plain key/value pairs through its JSON form, which
// honours the SDK's field names and omits unset optional fields.
func toRecord(v any) (model.InstanceRecord, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var record model.InstanceRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	if record == nil {
		record = model.InstanceRecord{}
	}
	return record, nil
}
