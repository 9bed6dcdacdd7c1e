package domain

import (
	"sort"
	"strings"
)

// DefaultPointValue is the currency amount paid per point
const DefaultPointValue int64 = 1000

// Scoring holds the conversion rules from points to bonus
type Scoring struct {
	PointValue int64
	// MonthlyPointCap limits the payable points per month, 0 means no cap
	MonthlyPointCap int
}

// RankedAgent is an agent joined to its monthly result
type RankedAgent struct {
	AgentID   string  `json:"agent_id"`
	FullName  string  `json:"full_name"`
	Title     string  `json:"title"`
	AvatarURL *string `json:"avatar_url"`
	Points    int     `json:"points"`
	Bonus     int64   `json:"bonus"`
	Rank      int     `json:"rank"`
}

// ChartPoint is one bar of the performance chart
type ChartPoint struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ComputeMonthlyTotals sums points per target agent for one month.
// Entries tagged with another month are ignored, so callers may pass
// pre-filtered or unfiltered sets. Agents without entries are absent.
func ComputeMonthlyTotals(entries []LedgerEntry, month MonthTag) map[string]int {
	totals := make(map[string]int)
	for _, e := range entries {
		if e.MonthTag != month {
			continue
		}
		totals[e.TargetUserID] += e.Points
	}
	return totals
}

// Bonus converts a monthly total into a payable amount. Negative totals pay nothing.
func Bonus(total int, s Scoring) int64 {
	if total <= 0 {
		return 0
	}
	if s.MonthlyPointCap > 0 && total > s.MonthlyPointCap {
		total = s.MonthlyPointCap
	}
	return int64(total) * s.PointValue
}

// RankAgents joins every active agent to its total (0 when missing) and
// orders by points descending. Equal totals are ordered by full name
// (case-insensitive) and then by id, so the result never depends on the
// input order. Ranks are sequential positions starting at 1.
func RankAgents(agents []Agent, totals map[string]int, s Scoring) []RankedAgent {
	ranked := make([]RankedAgent, 0, len(agents))
	for _, a := range agents {
		if !a.IsActive {
			continue
		}
		points := totals[a.ID]
		ranked = append(ranked, RankedAgent{
			AgentID:   a.ID,
			FullName:  a.FullName,
			Title:     a.Title,
			AvatarURL: a.AvatarURL,
			Points:    points,
			Bonus:     Bonus(points, s),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		ni, nj := strings.ToLower(ranked[i].FullName), strings.ToLower(ranked[j].FullName)
		if ni != nj {
			return ni < nj
		}
		return ranked[i].AgentID < ranked[j].AgentID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// ChartSeries builds the chart bars in ranking order
func ChartSeries(ranked []RankedAgent) []ChartPoint {
	series := make([]ChartPoint, len(ranked))
	for i, r := range ranked {
		series[i] = ChartPoint{Name: firstName(r.FullName), Points: r.Points}
	}
	return series
}

// ArchiveRows freezes a ranking into archive rows for the month
func ArchiveRows(month MonthTag, ranked []RankedAgent) []MonthlyArchiveRow {
	rows := make([]MonthlyArchiveRow, len(ranked))
	for i, r := range ranked {
		rows[i] = MonthlyArchiveRow{
			MonthTag:    month,
			UserID:      r.AgentID,
			PointsTotal: r.Points,
			BonusAmount: r.Bonus,
			Rank:        r.Rank,
			FullName:    r.FullName,
			Title:       r.Title,
			AvatarURL:   r.AvatarURL,
		}
	}
	return rows
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "User"
	}
	return fields[0]
}
