package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolio-backend-go/internal/db"
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/models"
	"portfolio-backend-go/pkg/cache"
)

// favoriteSetTTL bounds staleness of a cached favorite-ID set if an
// invalidation is ever lost.
const favoriteSetTTL = 10 * time.Minute

// favoriteService implements the FavoriteService interface. The cache is
// optional: when present it holds each user's favorite-ID set so the
// existence check that backs every listing row does not hit Firestore.
// Cache failures only ever degrade to store reads.
type favoriteService struct {
	favorites db.FavoriteRepository
	cache     cache.Cache
	logger    *zap.Logger
}

// NewFavoriteService creates a new FavoriteService instance. c may be nil
// to run without caching.
func NewFavoriteService(favorites db.FavoriteRepository, c cache.Cache, logger *zap.Logger) FavoriteService {
	return &favoriteService{favorites: favorites, cache: c, logger: logger}
}

func favoriteSetKey(uid string) string {
	return "favorites:" + uid
}

// Toggle flips the favorite state for (identity, project) and returns the
// new state: true if the favorite now exists. The store toggle is atomic;
// the cached set for the user is invalidated afterwards.
func (s *favoriteService) Toggle(ctx context.Context, ident *identity.Identity, projectID string, data models.ProjectData) (bool, error) {
	if ident == nil {
		return false, ErrSignInRequired
	}

	nowFavorited, err := s.favorites.Toggle(ctx, ident.UID, projectID, data)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite '%s': %w", projectID, err)
	}

	s.invalidate(ctx, ident.UID)
	s.logger.Info("favorite toggled",
		zap.String("uid", ident.UID),
		zap.String("project", projectID),
		zap.Bool("favorited", nowFavorited))
	return nowFavorited, nil
}

// Check reports whether a project is favorited by a user. Served from the
// cached ID set when possible; read failures degrade to false.
func (s *favoriteService) Check(ctx context.Context, uid, projectID string) (bool, error) {
	if uid == "" {
		return false, nil
	}

	if ids, ok := s.cachedSet(ctx, uid); ok {
		_, favorited := ids[projectID]
		return favorited, nil
	}

	exists, err := s.favorites.Exists(ctx, uid, projectID)
	if err != nil {
		s.logger.Error("failed to check favorite", zap.String("uid", uid), zap.String("project", projectID), zap.Error(err))
		return false, nil
	}
	return exists, nil
}

// ListForUser returns a user's favorites, most recently saved first, and
// refreshes the cached ID set as a side effect. Read failures degrade to
// an empty list.
func (s *favoriteService) ListForUser(ctx context.Context, uid string) ([]*models.Favorite, error) {
	if uid == "" {
		return []*models.Favorite{}, nil
	}

	favorites, err := s.favorites.ListByUser(ctx, uid)
	if err != nil {
		s.logger.Error("failed to list favorites", zap.String("uid", uid), zap.Error(err))
		return []*models.Favorite{}, nil
	}

	s.storeSet(ctx, uid, favorites)
	return favorites, nil
}

// cachedSet loads the favorite-ID set from the cache. ok is false on any
// miss or failure.
func (s *favoriteService) cachedSet(ctx context.Context, uid string) (map[string]struct{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, favoriteSetKey(uid))
	if err != nil {
		s.logger.Warn("favorite cache read failed", zap.String("uid", uid), zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("favorite cache entry corrupt", zap.String("uid", uid), zap.Error(err))
		return nil, false
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, true
}

func (s *favoriteService) storeSet(ctx context.Context, uid string, favorites []*models.Favorite) {
	if s.cache == nil {
		return
	}
	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ProjectID)
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, favoriteSetKey(uid), string(raw), favoriteSetTTL); err != nil {
		s.logger.Warn("favorite cache write failed", zap.String("uid", uid), zap.Error(err))
	}
}

func (s *favoriteService) invalidate(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, favoriteSetKey(uid)); err != nil {
		s.logger.Warn("favorite cache invalidation failed", zap.String("uid", uid), zap.Error(err))
	}
}
