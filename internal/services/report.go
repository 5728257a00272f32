package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/graph"
	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

// EmployeeReportRow summarizes one employee's training standing.
type EmployeeReportRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department,omitempty"`
	Assigned       int64   `json:"assigned"`
	InProgress     int64   `json:"in_progress"`
	Completed      int64   `json:"completed"`
	Failed         int64   `json:"failed"`
	Total          int64   `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
	AvgTimeMinutes float64 `json:"avg_time_minutes"`
}

// CourseStatsRow summarizes one course across all employees.
type CourseStatsRow struct {
	CourseID   string  `json:"course_id"`
	CourseName string  `json:"course_name"`
	Assigned   int64   `json:"assigned"`
	InProgress int64   `json:"in_progress"`
	Completed  int64   `json:"completed"`
	Failed     int64   `json:"failed"`
	Attempts   int64   `json:"attempts"`
	AvgScore   float64 `json:"avg_score"`
	Passes     int64   `json:"passes"`
}

// CourseEmployeeRow is one employee's standing on a single course.
type CourseEmployeeRow struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Status       string   `json:"status"`
	Attempts     int      `json:"attempts"`
	BestScore    *float64 `json:"best_score,omitempty"`
}

// CourseDetailReport is the per-course drill-down behind a stats row.
type CourseDetailReport struct {
	CourseID   string              `json:"course_id"`
	CourseName string              `json:"course_name"`
	Employees  []CourseEmployeeRow `json:"employees"`
}

type ReportService interface {
	EmployeeReport(ctx context.Context) ([]EmployeeReportRow, error)
	CourseStatistics(ctx context.Context) ([]CourseStatsRow, error)
	CourseDetail(ctx context.Context, courseID string) (*CourseDetailReport, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	employeeRepo repos.EmployeeRepo
	progressRepo repos.ProgressRepo
	quizRepo     repos.QuizRepo
	store        *graph.CatalogStore
}

func NewReportService(db *gorm.DB, log *logger.Logger, employeeRepo repos.EmployeeRepo, progressRepo repos.ProgressRepo, quizRepo repos.QuizRepo, store *graph.CatalogStore) ReportService {
	serviceLog := log.With("service", "ReportService")
	return &reportService{
		db:           db,
		log:          serviceLog,
		employeeRepo: employeeRepo,
		progressRepo: progressRepo,
		quizRepo:     quizRepo,
		store:        store,
	}
}

func (rs *reportService) EmployeeReport(ctx context.Context) ([]EmployeeReportRow, error) {
	employees, err := rs.employeeRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.StoreUnavailable("employee_list_failed", err)
	}

	report := make([]EmployeeReportRow, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, employee := range employees {
		i, employee := i, employee
		g.Go(func() error {
			rows, err := rs.progressRepo.GetByEmployee(gctx, nil, employee.EmployeeID)
			if err != nil {
				return err
			}
			row := EmployeeReportRow{
				EmployeeID:   employee.EmployeeID,
				EmployeeName: employee.EmployeeName,
				Department:   employee.Department,
			}
			var timeSum float64
			var timeN int64
			for _, p := range rows {
				row.Total++
				switch p.Status {
				case types.StatusAssigned:
					row.Assigned++
				case types.StatusInProgress:
					row.InProgress++
				case types.StatusCompleted:
					row.Completed++
				case types.StatusFailed:
					row.Failed++
				}
				if p.TimeTakenMinutes != nil {
					timeSum += *p.TimeTakenMinutes
					timeN++
				}
			}
			if row.Total > 0 {
				row.CompletionRate = 100 * float64(row.Completed) / float64(row.Total)
			}
			if timeN > 0 {
				row.AvgTimeMinutes = timeSum / float64(timeN)
			}
			report[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.StoreUnavailable("report_build_failed", err)
	}
	return report, nil
}

func (rs *reportService) CourseStatistics(ctx context.Context) ([]CourseStatsRow, error) {
	statusCounts, err := rs.progressRepo.StatusCountsByCourse(ctx, nil)
	if err != nil {
		return nil, apperr.StoreUnavailable("course_stats_failed", err)
	}
	scoreStats, err := rs.quizRepo.ScoreStatsByCourse(ctx, nil)
	if err != nil {
		return nil, apperr.StoreUnavailable("course_stats_failed", err)
	}

	courseIDs := make([]string, 0, len(statusCounts))
	for id := range statusCounts {
		courseIDs = append(courseIDs, id)
	}
	for id := range scoreStats {
		if _, ok := statusCounts[id]; !ok {
			courseIDs = append(courseIDs, id)
		}
	}
	sort.Strings(courseIDs)

	names, err := rs.store.CourseNames(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	out := make([]CourseStatsRow, 0, len(courseIDs))
	for _, id := range courseIDs {
		counts := statusCounts[id]
		stats := scoreStats[id]
		out = append(out, CourseStatsRow{
			CourseID:   id,
			CourseName: names[id],
			Assigned:   counts[types.StatusAssigned],
			InProgress: counts[types.StatusInProgress],
			Completed:  counts[types.StatusCompleted],
			Failed:     counts[types.StatusFailed],
			Attempts:   stats.Attempts,
			AvgScore:   stats.AvgScore,
			Passes:     stats.Passes,
		})
	}
	return out, nil
}

func (rs *reportService) CourseDetail(ctx context.Context, courseID string) (*CourseDetailReport, error) {
	exists, err := rs.store.NodeExists(ctx, types.KindCourse, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("course_not_found", "course %s does not exist", courseID)
	}

	progressRows, err := rs.progressRepo.GetByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apperr.StoreUnavailable("course_detail_failed", err)
	}
	attempts, err := rs.quizRepo.GetAttemptsByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apperr.StoreUnavailable("course_detail_failed", err)
	}
	employees, err := rs.employeeRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.StoreUnavailable("course_detail_failed", err)
	}
	names, err := rs.store.CourseNames(ctx, []string{courseID})
	if err != nil {
		return nil, err
	}

	nameByEmployee := make(map[string]string, len(employees))
	for _, e := range employees {
		nameByEmployee[e.EmployeeID] = e.EmployeeName
	}
	attemptCount := map[string]int{}
	bestScore := map[string]float64{}
	for _, a := range attempts {
		attemptCount[a.EmployeeID]++
		if best, ok := bestScore[a.EmployeeID]; !ok || a.Score > best {
			bestScore[a.EmployeeID] = a.Score
		}
	}

	out := &CourseDetailReport{
		CourseID:   courseID,
		CourseName: names[courseID],
		Employees:  make([]CourseEmployeeRow, 0, len(progressRows)),
	}
	for _, p := range progressRows {
		row := CourseEmployeeRow{
			EmployeeID:   p.EmployeeID,
			EmployeeName: nameByEmployee[p.EmployeeID],
			Status:       p.Status,
			Attempts:     attemptCount[p.EmployeeID],
		}
		if score, ok := bestScore[p.EmployeeID]; ok {
			row.BestScore = &score
		}
		out.Employees = append(out.Employees, row)
	}
	sort.Slice(out.Employees, func(i, j int) bool {
		return out.Employees[i].EmployeeName < out.Employees[j].EmployeeName
	})
	return out, nil
}

// ExportXLSX builds the admin workbook: one sheet of per-employee progress,
// one of course resources.
func (rs *reportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	var (
		report []EmployeeReportRow
		tree   []types.TrackNode
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report, err = rs.EmployeeReport(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tree, err = rs.store.Tree(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const progressSheet = "Employee Progress"
	const linksSheet = "Course Links"

	f.SetSheetName(f.GetSheetName(0), progressSheet)
	header := []interface{}{"Employee ID", "Name", "Department", "Assigned", "In Progress", "Completed", "Failed", "Completion %", "Avg Time (min)"}
	if err := f.SetSheetRow(progressSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range report {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.EmployeeID, row.EmployeeName, row.Department,
			row.Assigned, row.InProgress, row.Completed, row.Failed,
			row.CompletionRate, row.AvgTimeMinutes,
		}
		if err := f.SetSheetRow(progressSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if _, err := f.NewSheet(linksSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	linkHeader := []interface{}{"Track", "SubTrack", "Course", "Link Label", "URL"}
	if err := f.SetSheetRow(linksSheet, "A1", &linkHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	rowIdx := 2
	writeCourse := func(trackName, subTrackName string, node types.CourseNode) error {
		for _, link := range node.Links {
			cell := fmt.Sprintf("A%d", rowIdx)
			values := []interface{}{trackName, subTrackName, node.CourseName, link.LinkLabel, link.Link}
			if err := f.SetSheetRow(linksSheet, cell, &values); err != nil {
				return err
			}
			rowIdx++
		}
		return nil
	}
	var walk func(trackName, subTrackName string, nodes []types.CourseNode) error
	walk = func(trackName, subTrackName string, nodes []types.CourseNode) error {
		for _, node := range nodes {
			if err := writeCourse(trackName, subTrackName, node); err != nil {
				return err
			}
			if err := walk(trackName, subTrackName, node.Children); err != nil {
				return err
			}
		}
		return nil
	}
	for _, track := range tree {
		if err := walk(track.TrackName, "", track.Courses); err != nil {
			return nil, err
		}
		for _, st := range track.SubTracks {
			if err := walk(track.TrackName, st.SubTrackName, st.Courses); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	rs.log.Info("Report exported", "employees", len(report))
	return buf.Bytes(), nil
}
