package usecase

import (
	"context"
	"net/http"
	"strings"

	"electromart/internal/domain/model"
	repo "electromart/internal/repository"
)

// AuditUsecase は管理者向けの監査ログ閲覧。
type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

// DI
func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

// 絞り込みはすべて任意。日時はRFC3339の文字列で受ける。
type ListAuditLogsInput struct {
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	CreatedFrom  string
	CreatedTo    string
	Limit        int
	Offset       int
}

func (u *AuditUsecase) ListAuditLogs(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if in.Limit < 1 || in.Limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	f := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}

	if s := strings.TrimSpace(in.Action); s != "" {
		a := model.AuditAction(s)
		f.Action = &a
	}
	if s := strings.TrimSpace(in.ResourceType); s != "" {
		rt := model.AuditResourceType(s)
		f.ResourceType = &rt
	}
	if t, ok := parseDateTimeRFC3339(in.CreatedFrom); ok {
		f.CreatedFrom = t
	} else if strings.TrimSpace(in.CreatedFrom) != "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid from")
	}
	if t, ok := parseDateTimeRFC3339(in.CreatedTo); ok {
		f.CreatedTo = t
	} else if strings.TrimSpace(in.CreatedTo) != "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid to")
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
