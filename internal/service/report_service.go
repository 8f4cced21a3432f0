package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gestion-cours/backend/internal/dto"
	"gestion-cours/backend/internal/repository"
)

// ── 报表模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ReportService 管理端报表业务接口
type ReportService interface {
	// AggregateCourses 全量课程报表：按课程分组的学生与成绩
	// 分组保持 SQL 排序（课程名、学生用户名）；零选课课程以空学生列表出现
	AggregateCourses(ctx context.Context) ([]dto.AdminCourseGroup, error)
	// ExportCourses 将课程报表导出为 Excel (.xlsx)
	// 返回 buf（文件内容）与建议文件名，由 Handler 设置响应头后写出
	ExportCourses(ctx context.Context) (*bytes.Buffer, string, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── AggregateCourses ──────────────────────

func (s *reportService) AggregateCourses(ctx context.Context) ([]dto.AdminCourseGroup, error) {
	rows, err := s.repo.Course.ListReportRows(ctx)
	if err != nil {
		s.logger.Error("查询报表数据失败", zap.Error(err))
		return nil, err
	}

	// 扁平行按 course_id 重组；行序即 SQL 排序，组内顺序天然保持
	groups := make([]dto.AdminCourseGroup, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.CourseID]
		if !ok {
			i = len(groups)
			index[row.CourseID] = i
			groups = append(groups, dto.AdminCourseGroup{
				CourseID:      row.CourseID,
				CourseName:    row.CourseName,
				ProfessorName: row.ProfessorName,
				Students:      make([]dto.AdminCourseStudent, 0),
			})
		}

		// LEFT JOIN 下零选课课程的学生列为 NULL：过滤该行的学生，保留课程本身
		if row.StudentName == nil {
			continue
		}
		groups[i].Students = append(groups[i].Students, dto.AdminCourseStudent{
			StudentName: *row.StudentName,
			Grade:       row.Grade,
		})
	}

	return groups, nil
}

// ────────────────────── ExportCourses ──────────────────────

func (s *reportService) ExportCourses(ctx context.Context) (*bytes.Buffer, string, error) {
	groups, err := s.AggregateCourses(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cours"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Cours", "Professeur", "Étudiant", "Note"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	rowNum := 2
	for _, g := range groups {
		if len(g.Students) == 0 {
			// 零选课课程也单独占一行
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), g.CourseName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), g.ProfessorName)
			rowNum++
			continue
		}
		for _, st := range g.Students {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), g.CourseName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), g.ProfessorName)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), st.StudentName)
			if st.Grade != nil {
				f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), *st.Grade)
			}
			rowNum++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("rapport_cours_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
