package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
)

// IndexBatch is the result of one indexing submission.
type IndexBatch struct {
	Reference string   `json:"reference"`
	Accepted  []string `json:"accepted"`
	Rejected  []string `json:"rejected"`
	Charged   int64    `json:"charged"`
	Estimate  int64    `json:"estimate"`
}

// IndexService is the indexing feature consumer: it estimates from the
// submitted URL count, passes the points gate, and charges for the URLs
// actually accepted.
type IndexService struct {
	db         *gorm.DB
	points     *PointsService
	costPerURL int64
}

func NewIndexService(db *gorm.DB, points *PointsService, costPerURL int64) *IndexService {
	if costPerURL <= 0 {
		costPerURL = 1
	}
	return &IndexService{db: db, points: points, costPerURL: costPerURL}
}

// normalizeURLs splits submissions into accepted and rejected. Only absolute
// http/https URLs with a host qualify; duplicates collapse.
func normalizeURLs(raw []string) (accepted, rejected []string) {
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		trimmed := strings.TrimSpace(r)
		u, err := url.Parse(trimmed)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			rejected = append(rejected, r)
			continue
		}
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		accepted = append(accepted, trimmed)
	}
	return accepted, rejected
}

// CreateBatch submits URLs for indexing on the user's account.
// The estimate is the upper bound over everything submitted; the charge is
// for the URLs actually inserted. Both use the multiplier resolved once from
// the user's tier, so a mid-flight tier change cannot skew the accounting.
func (s *IndexService) CreateBatch(ctx context.Context, user *model.User, urls []string) (*IndexBatch, error) {
	multiplier := model.TierMultiplier(user.Tier)
	estimate := int64(len(urls)) * s.costPerURL * multiplier

	// Fast fail before touching the consumption transaction.
	gate, err := s.points.CheckUserPoints(ctx, user, estimate)
	if err != nil {
		return nil, err
	}
	if gate.IsExpired {
		return nil, errno.ErrSubscriptionExpired
	}
	if !gate.IsEnough {
		return nil, errno.ErrInsufficientPoints
	}

	accepted, rejected := normalizeURLs(urls)
	if len(accepted) == 0 {
		return nil, errno.ErrNoValidURLs
	}

	reference := uuid.NewString()
	charged, err := s.points.Consume(ctx, user.ID, estimate, "indexing", reference,
		func(tx *gorm.DB) (int64, string, error) {
			rows := make([]model.IndexRequest, 0, len(accepted))
			for _, u := range accepted {
				rows = append(rows, model.IndexRequest{
					UserID:    user.ID,
					URL:       u,
					Reference: reference,
					Status:    model.IndexRequestQueued,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return 0, "", errno.ErrDatabase.WithMessage(err.Error())
			}
			actual := int64(len(accepted)) * s.costPerURL * multiplier
			return actual, "url indexing batch", nil
		})
	if err != nil {
		return nil, err
	}

	return &IndexBatch{
		Reference: reference,
		Accepted:  accepted,
		Rejected:  rejected,
		Charged:   charged,
		Estimate:  estimate,
	}, nil
}
