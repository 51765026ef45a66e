package domain

import (
	"time"
)

type DeltaOp string

const (
	DeltaOpApply  DeltaOp = "apply"
	DeltaOpRevert DeltaOp = "revert"
)

type RecordKind string

const (
	RecordKindMission RecordKind = "mission"
	RecordKindShift   RecordKind = "shift"
)

// AccumulatorDelta 是一次任务/班次变更对某个用户累计值的增量记录。
// 变更提交成功后由调用方投递到审计队列，audit worker 落库留痕
type AccumulatorDelta struct {
	UserID        int64      `json:"userID"`
	RecordKind    RecordKind `json:"recordKind"`
	RecordID      int64      `json:"recordID"`
	Op            DeltaOp    `json:"op"`
	HoursDelta    int32      `json:"hoursDelta"`
	MissionsDelta int32      `json:"missionsDelta"`
	DaysDelta     int32      `json:"daysDelta"`
	OccurredAt    time.Time  `json:"occurredAt"`
}
