package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/ctxutil"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/platform/neo4jdb"
)

// CatalogStore is the one gateway to the catalog graph. All queries are
// parameterized; caller-controlled values never reach the query text.
type CatalogStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewCatalogStore(client *neo4jdb.Client, log *logger.Logger) *CatalogStore {
	return &CatalogStore{
		client: client,
		log:    log.With("store", "CatalogStore"),
	}
}

// EnsureSchema creates the per-label id uniqueness constraints. Safe to rerun.
func (s *CatalogStore) EnsureSchema(ctx context.Context) error {
	ctx = ctxutil.Default(ctx)
	session := s.client.WriteSession(ctx)
	defer session.Close(ctx)

	stmts := []string{
		`CREATE CONSTRAINT track_id_unique IF NOT EXISTS FOR (t:Track) REQUIRE t.track_id IS UNIQUE`,
		`CREATE CONSTRAINT subtrack_id_unique IF NOT EXISTS FOR (st:SubTrack) REQUIRE st.subtrack_id IS UNIQUE`,
		`CREATE CONSTRAINT course_id_unique IF NOT EXISTS FOR (c:Course) REQUIRE c.course_id IS UNIQUE`,
		`CREATE CONSTRAINT link_id_unique IF NOT EXISTS FOR (l:Links) REQUIRE l.link_id IS UNIQUE`,
		`CREATE CONSTRAINT question_id_unique IF NOT EXISTS FOR (q:Question) REQUIRE q.question_id IS UNIQUE`,
		`CREATE CONSTRAINT employee_id_unique IF NOT EXISTS FOR (e:Employee) REQUIRE e.employee_id IS UNIQUE`,
	}
	for _, stmt := range stmts {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return apperr.StoreUnavailable("graph_schema_init", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return apperr.StoreUnavailable("graph_schema_init", err)
		}
	}
	return nil
}

// Structural relationship types. These are compiled into query text, so they
// must stay constants, never caller input.
const (
	relHasSubTrack = "has_subtrack"
	relHasCourse   = "has_course"
	relHasLinks    = "has_links"
	relHasQuestion = "has_question"
	relAssignedTo  = "assigned_to"
)

func idProp(kind types.NodeKind) string {
	switch kind {
	case types.KindTrack:
		return "track_id"
	case types.KindSubTrack:
		return "subtrack_id"
	default:
		return "course_id"
	}
}

func nameProp(kind types.NodeKind) string {
	switch kind {
	case types.KindTrack:
		return "track_name"
	case types.KindSubTrack:
		return "subtrack_name"
	default:
		return "course_name"
	}
}

func (s *CatalogStore) NodeExists(ctx context.Context, kind types.NodeKind, id string) (bool, error) {
	ctx = ctxutil.Default(ctx)
	session := s.client.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`MATCH (n:%s {%s: $id}) RETURN count(n) AS n`, kind, idProp(kind))
	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := rec.Get("n")
		count, _ := n.(int64)
		return count > 0, nil
	})
	if err != nil {
		return false, apperr.StoreUnavailable("graph_query_failed", err)
	}
	return out.(bool), nil
}

func stringColumn(records []*neo4j.Record, key string) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		v, ok := rec.Get(key)
		if !ok {
			continue
		}
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func stringValue(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}
