package rbac

import (
	"context"
	"errors"

	rbacerrors "go-logistics/internal/rbac/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// syncChunkSize bounds how many group members are resynced per page so
// a large group never holds row locks for its whole member list at once.
const syncChunkSize = 200

// SyncService rebuilds group-derived role assignments. Callers invoke
// it explicitly after changing group membership or a group's roles;
// nothing is triggered implicitly by writes.
//
//go:generate mockgen -source=sync_service.go -destination=mock/sync_service_mock.go -package=mock
type SyncService interface {
	SyncUser(ctx context.Context, companyID, userID string) error
	SyncGroup(ctx context.Context, companyID, groupID string) (int, error)
}

type syncService struct {
	repo   Repository
	cache  PolicyInvalidator
	logger *zap.Logger
}

func NewSyncService(repo Repository, cache PolicyInvalidator, logger ...*zap.Logger) SyncService {
	l := zap.L().Named("rbac.sync.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.sync.service")
	}
	return &syncService{repo: repo, cache: cache, logger: l}
}

// SyncUser recomputes the user's derived roles from their current group
// memberships and replaces the stored rows in one locked transaction.
func (s *syncService) SyncUser(ctx context.Context, companyID, userID string) error {
	groupIDs, err := s.repo.GetUserGroupIDs(companyID, userID)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	roleIDs := make([]string, 0)
	for _, groupID := range groupIDs {
		ids, err := s.repo.GetGroupRoleIDs(groupID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			roleIDs = append(roleIDs, id)
		}
	}

	if err := s.repo.ReplaceDerivedUserRoles(userID, roleIDs); err != nil {
		return err
	}
	s.cache.Invalidate(companyID)

	s.logger.Info("user roles synced",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
		zap.Int("groups", len(groupIDs)),
		zap.Int("derived_roles", len(roleIDs)),
	)
	return nil
}

// SyncGroup resyncs every member of the group in pages and returns how
// many users were processed. A failing member aborts the run; rows
// already replaced stay consistent because each user is synced in its
// own transaction.
func (s *syncService) SyncGroup(ctx context.Context, companyID, groupID string) (int, error) {
	if _, err := s.repo.GetGroupByID(companyID, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, rbacerrors.ErrGroupNotFound
		}
		return 0, err
	}

	total := 0
	for offset := 0; ; offset += syncChunkSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		members, err := s.repo.ListGroupMemberIDs(groupID, offset, syncChunkSize)
		if err != nil {
			return total, err
		}
		if len(members) == 0 {
			break
		}

		for _, userID := range members {
			if err := s.SyncUser(ctx, companyID, userID); err != nil {
				return total, err
			}
			total++
		}

		if len(members) < syncChunkSize {
			break
		}
	}

	s.logger.Info("group roles synced",
		zap.String("company_id", companyID),
		zap.String("group_id", groupID),
		zap.Int("members", total),
	)
	return total, nil
}
