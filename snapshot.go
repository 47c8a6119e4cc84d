// Package mockql serves mock data over REST and an auto-generated GraphQL
// schema from one JSON configuration, and hot-reloads that configuration
// without ever letting the two views disagree.
package mockql

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/broady/mockql/config"
	"github.com/broady/mockql/mock"
	"github.com/broady/mockql/schema"
)

// Snapshot pairs a configuration with the schemas compiled from it.
// A Snapshot is immutable once built; readers may share it freely.
type Snapshot struct {
	endpoints   []config.Endpoint
	compiled    *schema.Compiled
	executable  *graphql.Schema
	version     uint64
	publishedAt time.Time
}

// NewSnapshot compiles endpoints and builds the executable mock schema.
// Both are derived here and nowhere else, so a snapshot's GraphQL view
// always matches its REST view.
func NewSnapshot(endpoints []config.Endpoint, m *mock.Mocker) (*Snapshot, error) {
	compiled, err := schema.Compile(endpoints)
	if err != nil {
		return nil, err
	}
	executable, err := mock.Executable(compiled, m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrInvalidSchema, err)
	}
	return &Snapshot{
		endpoints:  slices.Clone(endpoints),
		compiled:   compiled,
		executable: executable,
	}, nil
}

// Endpoints returns a copy of the configured endpoints in order.
func (s *Snapshot) Endpoints() []config.Endpoint {
	return slices.Clone(s.endpoints)
}

// Len returns the number of configured endpoints.
func (s *Snapshot) Len() int { return len(s.endpoints) }

// Lookup returns the stored response of the first endpoint named path.
func (s *Snapshot) Lookup(path string) (json.RawMessage, bool) {
	for _, ep := range s.endpoints {
		if ep.Name == path {
			return ep.Response, true
		}
	}
	return nil, false
}

// Compiled returns the compiled schema.
func (s *Snapshot) Compiled() *schema.Compiled { return s.compiled }

// SDL returns the GraphQL schema text.
func (s *Snapshot) SDL() string { return s.compiled.SDL() }

// Version is assigned when the snapshot is published; zero before that.
func (s *Snapshot) Version() uint64 { return s.version }

// PublishedAt is the time the snapshot was published.
func (s *Snapshot) PublishedAt() time.Time { return s.publishedAt }

// QueryRequest is a GraphQL request body.
type QueryRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Execute runs req against the snapshot's mock schema. Parse, validation
// and execution problems are reported in the result's errors.
func (s *Snapshot) Execute(ctx context.Context, req QueryRequest) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         *s.executable,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}
