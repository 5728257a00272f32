package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/ctxutil"
)

func (s *CatalogStore) CreateTrack(ctx context.Context, track types.Track) error {
	return s.write(ctx, `
MERGE (t:Track {track_id: $track_id})
SET t.track_name = $track_name
`, map[string]any{
		"track_id":   track.TrackID,
		"track_name": track.TrackName,
	})
}

func (s *CatalogStore) CreateSubTrack(ctx context.Context, subtrack types.SubTrack, trackID string) error {
	exists, err := s.NodeExists(ctx, types.KindTrack, trackID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("track_not_found", "track %s does not exist", trackID)
	}
	return s.write(ctx, `
MATCH (t:Track {track_id: $track_id})
MERGE (st:SubTrack {subtrack_id: $subtrack_id})
SET st.subtrack_name = $subtrack_name
MERGE (t)-[:has_subtrack]->(st)
`, map[string]any{
		"track_id":      trackID,
		"subtrack_id":   subtrack.SubTrackID,
		"subtrack_name": subtrack.SubTrackName,
	})
}

// CreateCourse attaches the course under a Track, SubTrack, or another
// Course. The same course may be attached under several parents.
func (s *CatalogStore) CreateCourse(ctx context.Context, course types.Course, parentID string, parentKind types.NodeKind) error {
	exists, err := s.NodeExists(ctx, parentKind, parentID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("parent_not_found", "%s %s does not exist", parentKind, parentID)
	}
	query := fmt.Sprintf(`
MATCH (p:%s {%s: $parent_id})
MERGE (c:Course {course_id: $course_id})
SET c.course_name = $course_name
MERGE (p)-[:has_course]->(c)
`, parentKind, idProp(parentKind))
	return s.write(ctx, query, map[string]any{
		"parent_id":   parentID,
		"course_id":   course.CourseID,
		"course_name": course.CourseName,
	})
}

func (s *CatalogStore) AddLink(ctx context.Context, link types.Link, courseID string) error {
	exists, err := s.NodeExists(ctx, types.KindCourse, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("course_not_found", "course %s does not exist", courseID)
	}
	return s.write(ctx, `
MATCH (c:Course {course_id: $course_id})
MERGE (l:Links {link_id: $link_id})
SET l.link = $link, l.link_label = $link_label
MERGE (c)-[:has_links]->(l)
`, map[string]any{
		"course_id":  courseID,
		"link_id":    link.LinkID,
		"link":       link.Link,
		"link_label": link.LinkLabel,
	})
}

func (s *CatalogStore) AttachQuestion(ctx context.Context, questionID, courseID string) error {
	exists, err := s.NodeExists(ctx, types.KindCourse, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("course_not_found", "course %s does not exist", courseID)
	}
	return s.write(ctx, `
MATCH (c:Course {course_id: $course_id})
MERGE (q:Question {question_id: $question_id})
MERGE (c)-[:has_question]->(q)
`, map[string]any{
		"course_id":   courseID,
		"question_id": questionID,
	})
}

// RecordAssignment notes the grant itself in the graph. The cascading
// progress rows are the resolver's job, not the store's.
func (s *CatalogStore) RecordAssignment(ctx context.Context, employeeID string, kind types.NodeKind, targetID string) error {
	query := fmt.Sprintf(`
MATCH (n:%s {%s: $target_id})
MERGE (e:Employee {employee_id: $employee_id})
MERGE (e)-[:assigned_to]->(n)
`, kind, idProp(kind))
	return s.write(ctx, query, map[string]any{
		"target_id":   targetID,
		"employee_id": employeeID,
	})
}

// Rename replaces a node's content-addressed id after a name change. The
// conflict check, node creation, edge re-pointing, and old-node delete all
// run inside one write transaction so readers never observe a half-moved
// node.
func (s *CatalogStore) Rename(ctx context.Context, kind types.NodeKind, oldID, newID, newName string) error {
	ctx = ctxutil.Default(ctx)
	session := s.client.WriteSession(ctx)
	defer session.Close(ctx)

	prop := idProp(kind)
	name := nameProp(kind)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		count, err := countNodes(ctx, tx, kind, prop, oldID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("node_not_found", "%s %s does not exist", kind, oldID)
		}

		if oldID == newID {
			query := fmt.Sprintf(`MATCH (n:%s {%s: $id}) SET n.%s = $name`, kind, prop, name)
			return nil, runConsume(ctx, tx, query, map[string]any{"id": oldID, "name": newName})
		}

		count, err = countNodes(ctx, tx, kind, prop, newID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("id_in_use", "%s id %s already belongs to another node", kind, newID)
		}

		query := fmt.Sprintf(`CREATE (n:%s {%s: $id, %s: $name})`, kind, prop, name)
		if err := runConsume(ctx, tx, query, map[string]any{"id": newID, "name": newName}); err != nil {
			return nil, err
		}

		// Re-point every structural edge, both directions, then drop the
		// old node. Relationship types are compiled constants.
		for _, rel := range []string{relHasSubTrack, relHasCourse, relHasLinks, relHasQuestion, relAssignedTo} {
			outQ := fmt.Sprintf(`
MATCH (old:%[1]s {%[2]s: $old_id})-[:%[3]s]->(m)
MATCH (new:%[1]s {%[2]s: $new_id})
MERGE (new)-[:%[3]s]->(m)
`, kind, prop, rel)
			if err := runConsume(ctx, tx, outQ, map[string]any{"old_id": oldID, "new_id": newID}); err != nil {
				return nil, err
			}
			inQ := fmt.Sprintf(`
MATCH (p)-[:%[3]s]->(old:%[1]s {%[2]s: $old_id})
MATCH (new:%[1]s {%[2]s: $new_id})
MERGE (p)-[:%[3]s]->(new)
`, kind, prop, rel)
			if err := runConsume(ctx, tx, inQ, map[string]any{"old_id": oldID, "new_id": newID}); err != nil {
				return nil, err
			}
		}

		deleteQ := fmt.Sprintf(`MATCH (old:%s {%s: $old_id}) DETACH DELETE old`, kind, prop)
		return nil, runConsume(ctx, tx, deleteQ, map[string]any{"old_id": oldID})
	})
	if err != nil {
		if _, ok := err.(*apperr.Error); ok {
			return err
		}
		return apperr.StoreUnavailable("graph_write_failed", err)
	}
	return nil
}

func (s *CatalogStore) write(ctx context.Context, query string, params map[string]any) error {
	ctx = ctxutil.Default(ctx)
	session := s.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, runConsume(ctx, tx, query, params)
	})
	if err != nil {
		return apperr.StoreUnavailable("graph_write_failed", err)
	}
	return nil
}

func countNodes(ctx context.Context, tx neo4j.ManagedTransaction, kind types.NodeKind, prop, id string) (int64, error) {
	query := fmt.Sprintf(`MATCH (n:%s {%s: $id}) RETURN count(n) AS n`, kind, prop)
	res, err := tx.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return 0, err
	}
	rec, err := res.Single(ctx)
	if err != nil {
		return 0, err
	}
	v, _ := rec.Get("n")
	count, _ := v.(int64)
	return count, nil
}

func runConsume(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]any) error {
	res, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}
