package domain

import "database/sql"

// 排期条目寻址类型（legacy 直接内容条目使用）
const (
	TargetKindScreen      = "screen"
	TargetKindScreenGroup = "screen_group"
	TargetKindLocation    = "location"
	TargetKindAll         = "all"
)

// Schedule 排期领域模型（对应 schedules 表）
type Schedule struct {
	ScheduleID   string `db:"schedule_id"`
	TenantID     string `db:"tenant_id"`
	ScheduleName string `db:"schedule_name"`
}

// ScheduleEntry 排期条目（对应 schedule_entries 表）
// Kind='scene' 的条目指向场景；playlist/layout/media 为 legacy 直接内容条目，
// 通过 TargetKind/TargetID 按 screen/screen_group/all 寻址
type ScheduleEntry struct {
	EntryID    string `db:"entry_id"`
	ScheduleID string `db:"schedule_id"`

	Kind      string         `db:"kind"`       // scene/playlist/layout/media
	ContentID sql.NullString `db:"content_id"` // nullable（指向 kind 对应实体）

	TargetKind sql.NullString `db:"target_kind"` // nullable, legacy 寻址（null 视同 all）
	TargetID   sql.NullString `db:"target_id"`   // nullable（target_kind=all 时为 null）

	IsActive bool `db:"is_active"` // NOT NULL, default true
	Priority int  `db:"priority"`  // NOT NULL, default 0，数值大者优先

	// 时间窗口：days_of_week null = 每天；start/end 同为 null = 全天
	DaysOfWeek []int64        `db:"days_of_week"` // nullable, 0=Sunday..6=Saturday
	StartTime  sql.NullString `db:"start_time"`   // nullable, "HH:MM" 或 "HH:MM:SS"
	EndTime    sql.NullString `db:"end_time"`     // nullable
}

// AppliesTo legacy 条目的寻址判断；target_kind 为空视同 all
func (e *ScheduleEntry) AppliesTo(device *Device) bool {
	if !e.TargetKind.Valid || e.TargetKind.String == "" || e.TargetKind.String == TargetKindAll {
		return true
	}
	if !e.TargetID.Valid {
		return false
	}
	switch e.TargetKind.String {
	case TargetKindScreen:
		return e.TargetID.String == device.DeviceID
	case TargetKindScreenGroup:
		return device.GroupID.Valid && e.TargetID.String == device.GroupID.String
	}
	return false
}
