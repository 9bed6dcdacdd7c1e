package handlers

import (
	"time"

	"teampulse/internal/core/domain"
	"teampulse/internal/core/services"
)

// AgentResponse is the public view of an agent. Password hashes never leave the server.
type AgentResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Title     string    `json:"title"`
	AvatarURL *string   `json:"avatar_url"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toAgentResponse(a *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:        a.ID,
		FullName:  a.FullName,
		Role:      string(a.Role),
		Title:     a.Title,
		AvatarURL: a.AvatarURL,
		Email:     a.Email,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func toAgentResponses(agents []domain.Agent) []AgentResponse {
	out := make([]AgentResponse, len(agents))
	for i := range agents {
		out[i] = toAgentResponse(&agents[i])
	}
	return out
}

// MissionResponse is the public view of a mission
type MissionResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Points      int       `json:"points"`
	Type        string    `json:"type"`
	TargetTitle *string   `json:"target_title"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMissionResponse(m *domain.Mission) MissionResponse {
	return MissionResponse{
		ID:          m.ID,
		Title:       m.Title,
		Points:      m.Points,
		Type:        string(m.Type),
		TargetTitle: m.TargetTitle,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// LedgerEntryResponse is the public view of a ledger entry
type LedgerEntryResponse struct {
	ID           string    `json:"id"`
	TargetUserID string    `json:"target_user_id"`
	TargetName   string    `json:"target_name,omitempty"`
	MissionID    *string   `json:"mission_id"`
	MissionTitle string    `json:"mission_title_snapshot"`
	Points       int       `json:"points"`
	Note         *string   `json:"note"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	MonthTag     string    `json:"month_tag"`
}

func toLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:           e.ID,
		TargetUserID: e.TargetUserID,
		TargetName:   e.TargetName,
		MissionID:    e.MissionID,
		MissionTitle: e.MissionTitle,
		Points:       e.Points,
		Note:         e.Note,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
		MonthTag:     e.MonthTag.String(),
	}
}

// ArchiveResponse is the header of a closed month
type ArchiveResponse struct {
	ID       string    `json:"id"`
	MonthTag string    `json:"month_tag"`
	ClosedBy *string   `json:"closed_by"`
	ClosedAt time.Time `json:"closed_at"`
}

// ArchiveRowResponse is one frozen agent result
type ArchiveRowResponse struct {
	UserID      string  `json:"user_id"`
	FullName    string  `json:"full_name"`
	Title       string  `json:"title"`
	AvatarURL   *string `json:"avatar_url"`
	PointsTotal int     `json:"points_total"`
	BonusAmount int64   `json:"bonus_amount"`
	Rank        int     `json:"rank"`
}

// ArchiveDetailResponse is a closed month with its rows
type ArchiveDetailResponse struct {
	Archive ArchiveResponse      `json:"archive"`
	Rows    []ArchiveRowResponse `json:"rows"`
}

func toArchiveResponse(a *domain.MonthlyArchive) ArchiveResponse {
	return ArchiveResponse{
		ID:       a.ID,
		MonthTag: a.MonthTag.String(),
		ClosedBy: a.ClosedBy,
		ClosedAt: a.ClosedAt,
	}
}

func toArchiveDetailResponse(d *services.ArchiveDetail) ArchiveDetailResponse {
	rows := make([]ArchiveRowResponse, len(d.Rows))
	for i, r := range d.Rows {
		rows[i] = ArchiveRowResponse{
			UserID:      r.UserID,
			FullName:    r.FullName,
			Title:       r.Title,
			AvatarURL:   r.AvatarURL,
			PointsTotal: r.PointsTotal,
			BonusAmount: r.BonusAmount,
			Rank:        r.Rank,
		}
	}
	return ArchiveDetailResponse{Archive: toArchiveResponse(&d.Archive), Rows: rows}
}

// SettingsResponse is the public view of the dashboard rules
type SettingsResponse struct {
	PointValue         int64     `json:"point_value"`
	MonthlyPointCap    int       `json:"monthly_point_cap"`
	Currency           string    `json:"currency"`
	DashboardQuote     string    `json:"dashboard_quote"`
	StrictPenaltyMode  bool      `json:"strict_penalty_mode"`
	AllowMemberActions bool      `json:"allow_member_actions"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

func toSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		PointValue:         s.PointValue,
		MonthlyPointCap:    s.MonthlyPointCap,
		Currency:           s.Currency,
		DashboardQuote:     s.DashboardQuote,
		StrictPenaltyMode:  s.StrictPenaltyMode,
		AllowMemberActions: s.AllowMemberActions,
		UpdatedAt:          s.UpdatedAt,
	}
}
