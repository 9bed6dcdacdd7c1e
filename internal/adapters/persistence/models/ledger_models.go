package models

import (
	"time"

	"teampulse/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Ledger Tables
// ============================================================

// ActionLedger represents actions_ledger table.
// Rows are append-only: MissionTitleSnapshot and Points never change after insert.
type ActionLedger struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	TargetUserID         string    `gorm:"size:36;not null;index" json:"target_user_id"`
	MissionID            *string   `gorm:"size:36;index" json:"mission_id"`
	MissionTitleSnapshot string    `gorm:"size:200;not null" json:"mission_title_snapshot"`
	Points               int       `gorm:"not null" json:"points"`
	Note                 *string   `gorm:"type:text" json:"note"`
	CreatedBy            string    `gorm:"size:36;not null" json:"created_by"`
	CreatedAt            time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	MonthTag             string    `gorm:"size:7;not null;index" json:"month_tag"`

	// Relations
	Target *Agent `gorm:"foreignKey:TargetUserID" json:"target,omitempty"`
}

func (ActionLedger) TableName() string {
	return "actions_ledger"
}

func (l *ActionLedger) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// ToDomain converts the row into a domain ledger entry
func (l *ActionLedger) ToDomain() *domain.LedgerEntry {
	e := &domain.LedgerEntry{
		ID:           l.ID,
		TargetUserID: l.TargetUserID,
		MissionID:    l.MissionID,
		MissionTitle: l.MissionTitleSnapshot,
		Points:       l.Points,
		Note:         l.Note,
		CreatedBy:    l.CreatedBy,
		CreatedAt:    l.CreatedAt,
		MonthTag:     domain.MonthTag(l.MonthTag),
	}
	if l.Target != nil {
		e.TargetName = l.Target.FullName
	}
	return e
}

// LedgerFromDomain builds a row from a domain ledger entry
func LedgerFromDomain(e *domain.LedgerEntry) *ActionLedger {
	return &ActionLedger{
		ID:                   e.ID,
		TargetUserID:         e.TargetUserID,
		MissionID:            e.MissionID,
		MissionTitleSnapshot: e.MissionTitle,
		Points:               e.Points,
		Note:                 e.Note,
		CreatedBy:            e.CreatedBy,
		CreatedAt:            e.CreatedAt,
		MonthTag:             string(e.MonthTag),
	}
}

// ============================================================
// Archive Tables
// ============================================================

// MonthlyArchive represents monthly_archives table (one row per closed month)
type MonthlyArchive struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	MonthTag string    `gorm:"size:7;not null;uniqueIndex" json:"month_tag"`
	ClosedBy *string   `gorm:"size:36" json:"closed_by"`
	ClosedAt time.Time `gorm:"not null" json:"closed_at"`
}

func (MonthlyArchive) TableName() string {
	return "monthly_archives"
}

func (a *MonthlyArchive) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *MonthlyArchive) ToDomain() *domain.MonthlyArchive {
	return &domain.MonthlyArchive{
		ID:       a.ID,
		MonthTag: domain.MonthTag(a.MonthTag),
		ClosedBy: a.ClosedBy,
		ClosedAt: a.ClosedAt,
	}
}

// MonthlyArchiveRow represents monthly_archive_rows table
type MonthlyArchiveRow struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	MonthTag    string `gorm:"size:7;not null;uniqueIndex:idx_archive_month_user" json:"month_tag"`
	UserID      string `gorm:"size:36;not null;uniqueIndex:idx_archive_month_user" json:"user_id"`
	PointsTotal int    `gorm:"not null" json:"points_total"`
	BonusAmount int64  `gorm:"not null" json:"bonus_amount"`
	Rank        int    `gorm:"not null" json:"rank"`

	// Relations
	Agent *Agent `gorm:"foreignKey:UserID" json:"agent,omitempty"`
}

func (MonthlyArchiveRow) TableName() string {
	return "monthly_archive_rows"
}

func (r *MonthlyArchiveRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *MonthlyArchiveRow) ToDomain() *domain.MonthlyArchiveRow {
	row := &domain.MonthlyArchiveRow{
		ID:          r.ID,
		MonthTag:    domain.MonthTag(r.MonthTag),
		UserID:      r.UserID,
		PointsTotal: r.PointsTotal,
		BonusAmount: r.BonusAmount,
		Rank:        r.Rank,
	}
	if r.Agent != nil {
		row.FullName = r.Agent.FullName
		row.Title = r.Agent.Title
		row.AvatarURL = r.Agent.AvatarURL
	}
	return row
}

func ArchiveRowFromDomain(r *domain.MonthlyArchiveRow) *MonthlyArchiveRow {
	return &MonthlyArchiveRow{
		ID:          r.ID,
		MonthTag:    string(r.MonthTag),
		UserID:      r.UserID,
		PointsTotal: r.PointsTotal,
		BonusAmount: r.BonusAmount,
		Rank:        r.Rank,
	}
}
