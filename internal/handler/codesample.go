package handler

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// CodeSample is the backend snippet displayed by the frontend.
const CodeSample = `// Backend logic (Go / Databricks SDK)
import (
	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/service/database"
)

func listLakebaseInstances(ctx context.Context) ([]database.DatabaseInstance, error) {
	// 1. Initialize the SDK (auto-auth inside Databricks Apps)
	w, err := databricks.NewWorkspaceClient()
	if err != nil {
		return nil, err
	}

	// 2. List database instances (Lakebase)
	it := w.Database.ListDatabaseInstances(ctx, database.ListDatabaseInstancesRequest{})

	// 3. Collect the first 10 results
	var results []database.DatabaseInstance
	for len(results) < 10 && it.HasNext(ctx) {
		db, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, db)
	}
	return results, nil
}
`

// renderCodeSample renders code as a fenced Go block and sanitizes the result.
func renderCodeSample(code string) (string, error) {
	source := "```go\n" + code + "```\n"

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render code sample: %w", err)
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")

	return policy.Sanitize(buf.String()), nil
}
