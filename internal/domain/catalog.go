package domain

// Catalog entities live in the graph store, not Postgres, so these carry no
// GORM tags. Ids are content-addressed from the entity name (pkg/contentid).

type Track struct {
	TrackID   string `json:"track_id"`
	TrackName string `json:"track_name"`
}

type SubTrack struct {
	SubTrackID   string `json:"subtrack_id"`
	SubTrackName string `json:"subtrack_name"`
}

type Course struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
}

type Link struct {
	LinkID    string `json:"link_id"`
	Link      string `json:"link"`
	LinkLabel string `json:"link_label,omitempty"`
}

// CourseNode is one node of the admin tree view: a course with its resources
// and nested child courses.
type CourseNode struct {
	Course
	Links       []Link       `json:"links,omitempty"`
	QuestionIDs []string     `json:"question_ids,omitempty"`
	Children    []CourseNode `json:"children,omitempty"`
}

type SubTrackNode struct {
	SubTrack
	Courses []CourseNode `json:"courses,omitempty"`
}

type TrackNode struct {
	Track
	SubTracks []SubTrackNode `json:"subtracks,omitempty"`
	Courses   []CourseNode   `json:"courses,omitempty"`
}

// NodeKind identifies which catalog label an id refers to.
type NodeKind string

const (
	KindTrack    NodeKind = "Track"
	KindSubTrack NodeKind = "SubTrack"
	KindCourse   NodeKind = "Course"
)

func KindForAssignmentType(t string) (NodeKind, bool) {
	switch t {
	case AssignmentTypeTrack:
		return KindTrack, true
	case AssignmentTypeSubTrack:
		return KindSubTrack, true
	case AssignmentTypeCourse:
		return KindCourse, true
	default:
		return "", false
	}
}
