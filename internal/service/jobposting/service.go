package jobposting

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/jobposting"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/database"
	"github.com/workhive-hq/workhive-backend-go/internal/repository/postgresql"
)

const publishedCacheTTL = 5 * time.Minute

type JobPostingServiceImpl struct {
	db               *database.DB
	jobPostingRepo   jobposting.JobPostingRepository
	subscriptionRepo subscription.SubscriptionRepository
	cache            *redis.Client
	logger           *slog.Logger
}

func NewJobPostingService(
	db *database.DB,
	jobPostingRepo jobposting.JobPostingRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	cache *redis.Client,
	logger *slog.Logger,
) jobposting.JobPostingService {
	return &JobPostingServiceImpl{
		db:               db,
		jobPostingRepo:   jobPostingRepo,
		subscriptionRepo: subscriptionRepo,
		cache:            cache,
		logger:           logger,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func toResponse(p *jobposting.JobPosting) jobposting.JobPostingResponse {
	return jobposting.JobPostingResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Employment:  string(p.Employment),
		SalaryMin:   p.SalaryMin,
		SalaryMax:   p.SalaryMax,
		Status:      string(p.Status),
		PostedAt:    p.PostedAt,
		ClosedAt:    p.ClosedAt,
	}
}

func publishedCacheKey(companyID string) string {
	return "job_postings:published:" + companyID
}

// Create runs the quota decrement and the posting insert in one transaction.
// The insert only happens after the decrement reported success, so an
// exhausted quota can never produce a posting and a failed insert rolls the
// decrement back.
func (s *JobPostingServiceImpl) Create(ctx context.Context, req jobposting.CreateJobPostingRequest) (jobposting.CreateJobPostingResponse, error) {
	if err := req.Validate(); err != nil {
		return jobposting.CreateJobPostingResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return jobposting.CreateJobPostingResponse{}, err
	}

	posting := &jobposting.JobPosting{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Employment:  jobposting.EmploymentType(req.Employment),
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Status:      jobposting.PostingStatusPublished,
		PostedBy:    userID,
		PostedAt:    time.Now(),
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ok, err := s.subscriptionRepo.TryConsumeJobPosting(txCtx, companyID)
		if err != nil {
			return err
		}
		if !ok {
			return subscription.ErrQuotaExhausted
		}
		return s.jobPostingRepo.Create(txCtx, posting)
	})
	if err != nil {
		return jobposting.CreateJobPostingResponse{}, err
	}

	s.invalidatePublished(ctx, companyID)

	sub, err := s.subscriptionRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return jobposting.CreateJobPostingResponse{}, err
	}

	return jobposting.CreateJobPostingResponse{
		Posting:           toResponse(posting),
		PostingsRemaining: sub.JobPostingsRemaining,
	}, nil
}

func (s *JobPostingServiceImpl) List(ctx context.Context) ([]jobposting.JobPostingResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	postings, err := s.jobPostingRepo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]jobposting.JobPostingResponse, 0, len(postings))
	for i := range postings {
		responses = append(responses, toResponse(&postings[i]))
	}

	return responses, nil
}

// ListPublished is the public job-board read path: cache hit serves straight
// from Redis, miss falls through to the database and repopulates.
func (s *JobPostingServiceImpl) ListPublished(ctx context.Context, companyID string) ([]jobposting.JobPostingResponse, error) {
	key := publishedCacheKey(companyID)

	if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var responses []jobposting.JobPostingResponse
		if err := json.Unmarshal(cached, &responses); err == nil {
			return responses, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("job posting cache read failed", slog.String("error", err.Error()))
	}

	postings, err := s.jobPostingRepo.ListPublishedByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]jobposting.JobPostingResponse, 0, len(postings))
	for i := range postings {
		responses = append(responses, toResponse(&postings[i]))
	}

	if encoded, err := json.Marshal(responses); err == nil {
		if err := s.cache.Set(ctx, key, encoded, publishedCacheTTL).Err(); err != nil {
			s.logger.Warn("job posting cache write failed", slog.String("error", err.Error()))
		}
	}

	return responses, nil
}

func (s *JobPostingServiceImpl) Get(ctx context.Context, id string) (jobposting.JobPostingResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return jobposting.JobPostingResponse{}, err
	}

	posting, err := s.jobPostingRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return jobposting.JobPostingResponse{}, err
	}

	return toResponse(posting), nil
}

func (s *JobPostingServiceImpl) Close(ctx context.Context, id string) (jobposting.JobPostingResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return jobposting.JobPostingResponse{}, err
	}

	if err := s.jobPostingRepo.Close(ctx, id, companyID); err != nil {
		return jobposting.JobPostingResponse{}, err
	}

	s.invalidatePublished(ctx, companyID)

	posting, err := s.jobPostingRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return jobposting.JobPostingResponse{}, err
	}

	return toResponse(posting), nil
}

func (s *JobPostingServiceImpl) invalidatePublished(ctx context.Context, companyID string) {
	if err := s.cache.Del(ctx, publishedCacheKey(companyID)).Err(); err != nil {
		s.logger.Warn("job posting cache invalidation failed", slog.String("error", err.Error()))
	}
}
