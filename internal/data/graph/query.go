package graph

import (
	"context"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/ctxutil"
)

func (s *CatalogStore) ListTracks(ctx context.Context) ([]types.Track, error) {
	records, err := s.read(ctx, `
MATCH (t:Track)
RETURN t.track_id AS track_id, t.track_name AS track_name
ORDER BY t.track_name
`, nil)
	if err != nil {
		return nil, err
	}
	tracks := make([]types.Track, 0, len(records))
	for _, rec := range records {
		tracks = append(tracks, types.Track{
			TrackID:   stringValue(rec, "track_id"),
			TrackName: stringValue(rec, "track_name"),
		})
	}
	return tracks, nil
}

// CourseNames resolves display names for a set of course ids. Ids missing
// from the graph are simply absent from the result.
func (s *CatalogStore) CourseNames(ctx context.Context, courseIDs []string) (map[string]string, error) {
	if len(courseIDs) == 0 {
		return map[string]string{}, nil
	}
	records, err := s.read(ctx, `
UNWIND $ids AS id
MATCH (c:Course {course_id: id})
RETURN c.course_id AS course_id, c.course_name AS course_name
`, map[string]any{"ids": courseIDs})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(records))
	for _, rec := range records {
		names[stringValue(rec, "course_id")] = stringValue(rec, "course_name")
	}
	return names, nil
}

func (s *CatalogStore) CourseLinks(ctx context.Context, courseID string) ([]types.Link, error) {
	records, err := s.read(ctx, `
MATCH (c:Course {course_id: $course_id})-[:has_links]->(l:Links)
RETURN l.link_id AS link_id, l.link AS link, l.link_label AS link_label
ORDER BY l.link_id
`, map[string]any{"course_id": courseID})
	if err != nil {
		return nil, err
	}
	links := make([]types.Link, 0, len(records))
	for _, rec := range records {
		links = append(links, types.Link{
			LinkID:    stringValue(rec, "link_id"),
			Link:      stringValue(rec, "link"),
			LinkLabel: stringValue(rec, "link_label"),
		})
	}
	return links, nil
}

func (s *CatalogStore) CourseQuestionIDs(ctx context.Context, courseID string) ([]string, error) {
	records, err := s.read(ctx, `
MATCH (c:Course {course_id: $course_id})-[:has_question]->(q:Question)
RETURN q.question_id AS question_id
ORDER BY q.question_id
`, map[string]any{"course_id": courseID})
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "question_id"), nil
}

// CoursesReachable runs the traversal that defines what an assignment grants:
//   - track:    courses under the track or any of its subtracks, any depth
//   - subtrack: courses under the subtrack, any depth
//   - course:   the course itself plus all nested descendants
func (s *CatalogStore) CoursesReachable(ctx context.Context, assignmentType, targetID string) ([]string, error) {
	var query string
	switch assignmentType {
	case types.AssignmentTypeTrack:
		query = `
MATCH (t:Track {track_id: $id})-[:has_subtrack*0..1]->(st)-[:has_course*1..]->(c:Course)
RETURN DISTINCT c.course_id AS course_id
`
	case types.AssignmentTypeSubTrack:
		query = `
MATCH (st:SubTrack {subtrack_id: $id})-[:has_course*1..]->(c:Course)
RETURN DISTINCT c.course_id AS course_id
`
	case types.AssignmentTypeCourse:
		query = `
MATCH (c:Course {course_id: $id})-[:has_course*0..]->(child:Course)
RETURN DISTINCT child.course_id AS course_id
`
	default:
		return nil, apperr.Validation("bad_assignment_type", "unknown assignment type %q", assignmentType)
	}

	records, err := s.read(ctx, query, map[string]any{"id": targetID})
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "course_id"), nil
}

// Tree loads the whole catalog for the admin tree view.
func (s *CatalogStore) Tree(ctx context.Context) ([]types.TrackNode, error) {
	tracks, err := s.ListTracks(ctx)
	if err != nil {
		return nil, err
	}

	subtrackRecs, err := s.read(ctx, `
MATCH (t:Track)-[:has_subtrack]->(st:SubTrack)
RETURN t.track_id AS track_id, st.subtrack_id AS subtrack_id, st.subtrack_name AS subtrack_name
ORDER BY st.subtrack_name
`, nil)
	if err != nil {
		return nil, err
	}

	courseRecs, err := s.read(ctx, `
MATCH (p)-[:has_course]->(c:Course)
WHERE p:Track OR p:SubTrack OR p:Course
RETURN head(labels(p)) AS parent_kind,
       coalesce(p.track_id, p.subtrack_id, p.course_id) AS parent_id,
       c.course_id AS course_id, c.course_name AS course_name
ORDER BY c.course_name
`, nil)
	if err != nil {
		return nil, err
	}

	linkRecs, err := s.read(ctx, `
MATCH (c:Course)-[:has_links]->(l:Links)
RETURN c.course_id AS course_id, l.link_id AS link_id, l.link AS link, l.link_label AS link_label
ORDER BY l.link_id
`, nil)
	if err != nil {
		return nil, err
	}

	questionRecs, err := s.read(ctx, `
MATCH (c:Course)-[:has_question]->(q:Question)
RETURN c.course_id AS course_id, q.question_id AS question_id
ORDER BY q.question_id
`, nil)
	if err != nil {
		return nil, err
	}

	courses := map[string]types.Course{}
	childIDs := map[string][]string{} // course -> nested courses
	trackCourses := map[string][]string{}
	subtrackCourses := map[string][]string{}
	for _, rec := range courseRecs {
		course := types.Course{
			CourseID:   stringValue(rec, "course_id"),
			CourseName: stringValue(rec, "course_name"),
		}
		courses[course.CourseID] = course
		parentID := stringValue(rec, "parent_id")
		switch stringValue(rec, "parent_kind") {
		case string(types.KindTrack):
			trackCourses[parentID] = append(trackCourses[parentID], course.CourseID)
		case string(types.KindSubTrack):
			subtrackCourses[parentID] = append(subtrackCourses[parentID], course.CourseID)
		case string(types.KindCourse):
			childIDs[parentID] = append(childIDs[parentID], course.CourseID)
		}
	}

	links := map[string][]types.Link{}
	for _, rec := range linkRecs {
		courseID := stringValue(rec, "course_id")
		links[courseID] = append(links[courseID], types.Link{
			LinkID:    stringValue(rec, "link_id"),
			Link:      stringValue(rec, "link"),
			LinkLabel: stringValue(rec, "link_label"),
		})
	}

	questions := map[string][]string{}
	for _, rec := range questionRecs {
		courseID := stringValue(rec, "course_id")
		questions[courseID] = append(questions[courseID], stringValue(rec, "question_id"))
	}

	var buildCourse func(id string, seen map[string]bool) types.CourseNode
	buildCourse = func(id string, seen map[string]bool) types.CourseNode {
		node := types.CourseNode{
			Course:      courses[id],
			Links:       links[id],
			QuestionIDs: questions[id],
		}
		if node.CourseID == "" {
			node.CourseID = id
		}
		for _, childID := range childIDs[id] {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			node.Children = append(node.Children, buildCourse(childID, seen))
		}
		return node
	}

	subtracksByTrack := map[string][]types.SubTrackNode{}
	for _, rec := range subtrackRecs {
		trackID := stringValue(rec, "track_id")
		stNode := types.SubTrackNode{
			SubTrack: types.SubTrack{
				SubTrackID:   stringValue(rec, "subtrack_id"),
				SubTrackName: stringValue(rec, "subtrack_name"),
			},
		}
		for _, courseID := range subtrackCourses[stNode.SubTrackID] {
			stNode.Courses = append(stNode.Courses, buildCourse(courseID, map[string]bool{courseID: true}))
		}
		subtracksByTrack[trackID] = append(subtracksByTrack[trackID], stNode)
	}

	out := make([]types.TrackNode, 0, len(tracks))
	for _, track := range tracks {
		node := types.TrackNode{
			Track:     track,
			SubTracks: subtracksByTrack[track.TrackID],
		}
		for _, courseID := range trackCourses[track.TrackID] {
			node.Courses = append(node.Courses, buildCourse(courseID, map[string]bool{courseID: true}))
		}
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrackName < out[j].TrackName })
	return out, nil
}

func (s *CatalogStore) read(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	ctx = ctxutil.Default(ctx)
	session := s.client.ReadSession(ctx)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, apperr.StoreUnavailable("graph_query_failed", err)
	}
	return out.([]*neo4j.Record), nil
}
