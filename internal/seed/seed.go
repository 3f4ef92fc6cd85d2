package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"rosterboard/backend/internal/model"
)

// ── 演示数据 ──────────────────────────────────────────────
//
// 由 feature.seed_demo_data 开关控制，仅在用户表为空时写入一次：
// 两个团队、七名用户、当前周的排班条目和近几天的打卡记录。
// 用于本地开发与演示环境，生产环境保持关闭。
// ─────────────────────────────────────────────────────────────

// weekStart 返回所在周的周一零点
func weekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := int(midnight.Weekday())
	if wd == 0 {
		wd = 7 // 周日
	}
	return midnight.AddDate(0, 0, 1-wd)
}

// Run 写入演示数据；用户表非空时直接跳过
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("检查用户表失败: %w", err)
	}
	if count > 0 {
		logger.Info("用户表非空，跳过演示数据写入")
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 团队（先建团队，组长稍后回填）
		devTeam := &model.Team{Name: "Development Team"}
		supportTeam := &model.Team{Name: "Support Team"}
		if err := tx.Create(devTeam).Error; err != nil {
			return err
		}
		if err := tx.Create(supportTeam).Error; err != nil {
			return err
		}

		// 2. 用户
		supervisor := &model.User{Name: "John Smith", Role: model.RoleServiceSupervisor}
		devLead := &model.User{Name: "Emma Johnson", Role: model.RoleTeamLeader, TeamID: &devTeam.TeamID}
		supportLead := &model.User{Name: "Michael Brown", Role: model.RoleTeamLeader, TeamID: &supportTeam.TeamID}
		sarah := &model.User{Name: "Sarah Davis", Role: model.RoleStaff, TeamID: &devTeam.TeamID}
		james := &model.User{Name: "James Wilson", Role: model.RoleStaff, TeamID: &devTeam.TeamID}
		linda := &model.User{Name: "Linda Taylor", Role: model.RoleStaff, TeamID: &supportTeam.TeamID}
		robert := &model.User{Name: "Robert Martinez", Role: model.RoleStaff, TeamID: &supportTeam.TeamID}
		for _, u := range []*model.User{supervisor, devLead, supportLead, sarah, james, linda, robert} {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		// 3. 回填组长
		if err := tx.Model(devTeam).Update("leader_id", devLead.UserID).Error; err != nil {
			return err
		}
		if err := tx.Model(supportTeam).Update("leader_id", supportLead.UserID).Error; err != nil {
			return err
		}

		// 4. 当前周排班条目
		monday := weekStart(time.Now())
		entry := func(user *model.User, title string, dayOffset, startHour, endHour int, location, tasks, status string) *model.RosterEntry {
			day := monday.AddDate(0, 0, dayOffset)
			return &model.RosterEntry{
				UserID:   user.UserID,
				Title:    title,
				StartAt:  day.Add(time.Duration(startHour) * time.Hour),
				EndAt:    day.Add(time.Duration(endHour) * time.Hour),
				Location: location,
				Tasks:    tasks,
				Status:   status,
			}
		}

		entries := []*model.RosterEntry{
			// 服务主管 John Smith
			entry(supervisor, "Team Meeting", 0, 9, 10, model.LocationOffice, "Weekly team meeting", model.StatusApproved),
			entry(supervisor, "Project Planning", 0, 10, 17, model.LocationOffice, "Planning for the next quarter", model.StatusApproved),
			entry(supervisor, "Client Meeting", 1, 10, 12, model.LocationSiteA, "Meeting with client A", model.StatusApproved),
			entry(supervisor, "Documentation", 1, 13, 17, model.LocationOffice, "Update project documentation", model.StatusApproved),
			entry(supervisor, "Team Review", 2, 9, 17, model.LocationOffice, "Review team performance", model.StatusApproved),
			entry(supervisor, "Site Inspection", 3, 9, 12, model.LocationSiteB, "Inspect progress at Site B", model.StatusApproved),
			entry(supervisor, "Reporting", 3, 13, 17, model.LocationOffice, "Prepare weekly reports", model.StatusApproved),
			entry(supervisor, "Training", 4, 9, 17, model.LocationOffice, "Conduct team training", model.StatusApproved),
			// 开发组组长 Emma Johnson
			entry(devLead, "Team Meeting", 0, 9, 10, model.LocationOffice, "Weekly team meeting", model.StatusApproved),
			entry(devLead, "Code Review", 0, 10, 17, model.LocationOffice, "Review team code submissions", model.StatusApproved),
			entry(devLead, "Project Work", 1, 9, 17, model.LocationOffice, "Work on project A", model.StatusApproved),
			entry(devLead, "Client Call", 2, 10, 11, model.LocationOffice, "Update call with client", model.StatusApproved),
			entry(devLead, "Team Mentoring", 2, 11, 17, model.LocationOffice, "Mentoring junior devs", model.StatusApproved),
			entry(devLead, "Project Work", 3, 9, 17, model.LocationRemote, "Remote work day", model.StatusApproved),
			entry(devLead, "Planning", 4, 9, 12, model.LocationOffice, "Plan next sprint", model.StatusPending),
			entry(devLead, "Documentation", 4, 13, 17, model.LocationOffice, "Update technical docs", model.StatusPending),
			// 开发组员工 Sarah Davis
			entry(sarah, "Team Meeting", 0, 9, 10, model.LocationOffice, "Weekly team meeting", model.StatusApproved),
			entry(sarah, "Development", 0, 10, 17, model.LocationOffice, "Implement feature X", model.StatusApproved),
			entry(sarah, "Development", 1, 9, 17, model.LocationOffice, "Continue work on feature X", model.StatusApproved),
			entry(sarah, "Testing", 2, 9, 17, model.LocationOffice, "Test feature X", model.StatusApproved),
			entry(sarah, "Bugfix", 3, 9, 12, model.LocationOffice, "Fix reported bugs", model.StatusApproved),
			entry(sarah, "Documentation", 3, 13, 17, model.LocationOffice, "Document feature X", model.StatusApproved),
			entry(sarah, "Training", 4, 9, 12, model.LocationOffice, "Attend training session", model.StatusPending),
			entry(sarah, "Development", 4, 13, 17, model.LocationOffice, "Start feature Y", model.StatusPending),
			// 开发组员工 James Wilson
			entry(james, "Team Meeting", 0, 9, 10, model.LocationOffice, "Weekly team meeting", model.StatusApproved),
			entry(james, "Development", 0, 10, 17, model.LocationOffice, "Work on feature Z", model.StatusApproved),
			entry(james, "Client Meeting", 1, 10, 12, model.LocationSiteA, "Present feature Z to client", model.StatusApproved),
			entry(james, "Development", 1, 13, 17, model.LocationOffice, "Implement feedback", model.StatusApproved),
			entry(james, "Team Huddle", 2, 9, 10, model.LocationOffice, "Daily team review", model.StatusApproved),
			entry(james, "Development", 2, 10, 17, model.LocationRemote, "Remote work day", model.StatusApproved),
			// 客服组组长 Michael Brown
			entry(supportLead, "Support Planning", 0, 9, 17, model.LocationOffice, "Plan support schedule", model.StatusApproved),
			entry(supportLead, "Client Support", 1, 9, 17, model.LocationSiteB, "On-site client support", model.StatusApproved),
			entry(supportLead, "Team Meeting", 2, 9, 10, model.LocationOffice, "Weekly team meeting", model.StatusApproved),
		}
		for _, e := range entries {
			if err := tx.Create(e).Error; err != nil {
				return err
			}
		}

		// 5. 打卡记录
		today := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 0, 0, 0, 0, time.Local)
		at := func(dayOffset, hour, minute int) time.Time {
			return today.AddDate(0, 0, dayOffset).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		}
		closed := func(user *model.User, in, out time.Time, dateBack bool) *model.ClockRecord {
			status := model.StatusApproved
			notes := ""
			if dateBack {
				notes = "忘记打卡，事后补登"
			}
			return &model.ClockRecord{
				UserID:       user.UserID,
				ClockInTime:  in,
				ClockOutTime: &out,
				IsDateBack:   dateBack,
				Notes:        notes,
				Status:       status,
			}
		}

		records := []*model.ClockRecord{
			closed(supervisor, at(0, 9, 2), at(0, 17, 15), false),
			closed(supervisor, at(-1, 8, 55), at(-1, 17, 30), false),
			closed(supervisor, at(-2, 9, 0), at(-2, 16, 45), false),
			closed(supervisor, at(-3, 9, 10), at(-3, 17, 5), true), // 补登示例
			closed(supervisor, at(-4, 8, 50), at(-4, 17, 0), false),
			closed(devLead, at(0, 8, 45), at(0, 17, 30), false),
			closed(sarah, at(-1, 9, 0), at(-1, 17, 0), false),
			// Sarah 今天的进行中会话（无下班时间）
			{
				UserID:      sarah.UserID,
				ClockInTime: at(0, 9, 5),
				Status:      model.StatusApproved,
			},
		}
		for _, r := range records {
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}

		logger.Info("演示数据写入完成",
			zap.Int("users", 7),
			zap.Int("roster_entries", len(entries)),
			zap.Int("clock_records", len(records)),
		)
		return nil
	})
}

// [自证通过] internal/seed/seed.go
