package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sarun2104/training-app/internal/data/graph"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/contentid"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type CatalogService interface {
	CreateTrack(ctx context.Context, name string) (*types.Track, error)
	CreateSubTrack(ctx context.Context, name, trackID string) (*types.SubTrack, error)
	CreateCourse(ctx context.Context, name, parentID string, parentKind types.NodeKind) (*types.Course, error)
	AddLink(ctx context.Context, courseID, url, label string) (*types.Link, error)
	Rename(ctx context.Context, kind types.NodeKind, oldID, newName string) (string, error)
	ListTracks(ctx context.Context) ([]types.Track, error)
	Tree(ctx context.Context) ([]types.TrackNode, error)
	CourseDetail(ctx context.Context, courseID string) (*types.CourseNode, error)
}

type catalogService struct {
	store *graph.CatalogStore
	log   *logger.Logger
}

func NewCatalogService(store *graph.CatalogStore, log *logger.Logger) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{store: store, log: serviceLog}
}

func (cs *catalogService) CreateTrack(ctx context.Context, name string) (*types.Track, error) {
	name = contentid.Normalize(name)
	if name == "" {
		return nil, apperr.Validation("missing_name", "track name is required")
	}
	track := types.Track{TrackID: contentid.New(name), TrackName: name}
	if err := cs.store.CreateTrack(ctx, track); err != nil {
		return nil, err
	}
	cs.log.Info("Track created", "track_id", track.TrackID)
	return &track, nil
}

func (cs *catalogService) CreateSubTrack(ctx context.Context, name, trackID string) (*types.SubTrack, error) {
	name = contentid.Normalize(name)
	if name == "" {
		return nil, apperr.Validation("missing_name", "subtrack name is required")
	}
	if strings.TrimSpace(trackID) == "" {
		return nil, apperr.Validation("missing_parent", "track_id is required")
	}
	subtrack := types.SubTrack{SubTrackID: contentid.New(name), SubTrackName: name}
	if err := cs.store.CreateSubTrack(ctx, subtrack, trackID); err != nil {
		return nil, err
	}
	cs.log.Info("SubTrack created", "subtrack_id", subtrack.SubTrackID, "track_id", trackID)
	return &subtrack, nil
}

func (cs *catalogService) CreateCourse(ctx context.Context, name, parentID string, parentKind types.NodeKind) (*types.Course, error) {
	name = contentid.Normalize(name)
	if name == "" {
		return nil, apperr.Validation("missing_name", "course name is required")
	}
	switch parentKind {
	case types.KindTrack, types.KindSubTrack, types.KindCourse:
	default:
		return nil, apperr.Validation("bad_parent_kind", "parent kind must be Track, SubTrack or Course")
	}
	if strings.TrimSpace(parentID) == "" {
		return nil, apperr.Validation("missing_parent", "parent id is required")
	}
	course := types.Course{CourseID: contentid.New(name), CourseName: name}
	if err := cs.store.CreateCourse(ctx, course, parentID, parentKind); err != nil {
		return nil, err
	}
	cs.log.Info("Course created", "course_id", course.CourseID, "parent_id", parentID)
	return &course, nil
}

// AddLink ids are random, not content-addressed: the same URL may appear
// under many courses with different labels.
func (cs *catalogService) AddLink(ctx context.Context, courseID, url, label string) (*types.Link, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperr.Validation("missing_link", "link url is required")
	}
	link := types.Link{LinkID: uuid.New().String(), Link: url, LinkLabel: strings.TrimSpace(label)}
	if err := cs.store.AddLink(ctx, link, courseID); err != nil {
		return nil, err
	}
	return &link, nil
}

// Rename recomputes the content-addressed id from the new name and performs
// the atomic node replacement. The new id is returned so the caller can
// follow the moved node.
func (cs *catalogService) Rename(ctx context.Context, kind types.NodeKind, oldID, newName string) (string, error) {
	newName = contentid.Normalize(newName)
	if newName == "" {
		return "", apperr.Validation("missing_name", "new name is required")
	}
	newID := contentid.New(newName)
	if err := cs.store.Rename(ctx, kind, oldID, newID, newName); err != nil {
		return "", err
	}
	cs.log.Info("Catalog node renamed", "kind", string(kind), "old_id", oldID, "new_id", newID)
	return newID, nil
}

func (cs *catalogService) ListTracks(ctx context.Context) ([]types.Track, error) {
	return cs.store.ListTracks(ctx)
}

func (cs *catalogService) Tree(ctx context.Context) ([]types.TrackNode, error) {
	return cs.store.Tree(ctx)
}

func (cs *catalogService) CourseDetail(ctx context.Context, courseID string) (*types.CourseNode, error) {
	exists, err := cs.store.NodeExists(ctx, types.KindCourse, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("course_not_found", "course %s does not exist", courseID)
	}

	names, err := cs.store.CourseNames(ctx, []string{courseID})
	if err != nil {
		return nil, err
	}
	links, err := cs.store.CourseLinks(ctx, courseID)
	if err != nil {
		return nil, err
	}
	questionIDs, err := cs.store.CourseQuestionIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &types.CourseNode{
		Course:      types.Course{CourseID: courseID, CourseName: names[courseID]},
		Links:       links,
		QuestionIDs: questionIDs,
	}, nil
}
