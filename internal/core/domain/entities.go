package domain

import "time"

// Role represents an agent's role in the team
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether the role belongs to the closed role set
func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

// MissionType is the polarity tag of a mission
type MissionType string

const (
	MissionPositive MissionType = "positive"
	MissionNegative MissionType = "negative"
)

// IsValid reports whether the mission type is known
func (t MissionType) IsValid() bool {
	return t == MissionPositive || t == MissionNegative
}

// Agent represents a team member who can receive point grants
type Agent struct {
	ID           string
	FullName     string
	Role         Role
	Title        string
	AvatarURL    *string
	Email        *string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin returns true if the agent holds the admin role
func (a *Agent) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Mission is a reusable point rule
type Mission struct {
	ID          string
	Title       string
	Points      int
	Type        MissionType
	TargetTitle *string
	IsActive    bool
	CreatedAt   time.Time
}

// AppliesTo reports whether the mission may be granted to the given agent.
// Missions without a target title apply to everyone.
func (m *Mission) AppliesTo(agent *Agent) bool {
	if m.TargetTitle == nil || *m.TargetTitle == "" {
		return true
	}
	return *m.TargetTitle == agent.Title
}

// LedgerEntry is one immutable grant of points to an agent.
// MissionTitle and Points are snapshots taken at creation time.
type LedgerEntry struct {
	ID           string
	TargetUserID string
	MissionID    *string
	MissionTitle string
	Points       int
	Note         *string
	CreatedBy    string
	CreatedAt    time.Time
	MonthTag     MonthTag

	// TargetName is filled by queries that join the target agent
	TargetName string
}

// MonthlyArchive records who closed a month and when
type MonthlyArchive struct {
	ID       string
	MonthTag MonthTag
	ClosedBy *string
	ClosedAt time.Time
}

// MonthlyArchiveRow is the frozen result of one agent for a closed month
type MonthlyArchiveRow struct {
	ID          string
	MonthTag    MonthTag
	UserID      string
	PointsTotal int
	BonusAmount int64
	Rank        int

	// Filled by queries that join the agent
	FullName  string
	Title     string
	AvatarURL *string
}

// Settings holds the tunable rules of the dashboard
type Settings struct {
	PointValue         int64
	MonthlyPointCap    int
	Currency           string
	DashboardQuote     string
	StrictPenaltyMode  bool
	AllowMemberActions bool
	UpdatedAt          time.Time
}

// Scoring returns the scoring rules derived from the settings
func (s Settings) Scoring() Scoring {
	return Scoring{PointValue: s.PointValue, MonthlyPointCap: s.MonthlyPointCap}
}
