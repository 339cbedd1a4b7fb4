package handlers

import (
	"vaktdata.no/vaktdata/web/common"
)

type StaffingSearchDTO struct {
	StartDate  *common.DateOnly `json:"startDate" binding:"required"`
	EndDate    *common.DateOnly `json:"endDate" binding:"required"`
	PersonIDs  []string         `json:"personIds"`
	ProjectIDs []string         `json:"projectIds"`
}

type ApproveDTO struct {
	EntryIDs []string `json:"entryIds" binding:"required,min=1"`
}

type ExportDTO struct {
	EntryIDs []string `json:"entryIds" binding:"required,min=1"`
	DryRun   bool     `json:"dryRun"`
}

type SessionTokenRequestDTO struct {
	SessionID string `json:"sessionId" binding:"required"`
	UserID    string `json:"userId"`
}
