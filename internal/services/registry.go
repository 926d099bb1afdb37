package services

import (
	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/config"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/storage"
)

// ServiceContainer holds every service the handlers use.
type ServiceContainer struct {
	AuthService      AuthService
	ClaimService     ClaimService
	CandidateService CandidateService
	EmployerService  EmployerService
	JobService       JobService
	VideoService     VideoService
	QuestionService  QuestionService

	Tokens *auth.TokenService
	Async  *Dispatcher
}

// Dependencies are the outside-world pieces the services need. Clock and
// Notifier may be nil.
type Dependencies struct {
	Config   *config.Config
	Storage  storage.Storage
	Mailer   AccountMailer
	Notifier StatusNotifier
	Clock    auth.Clock
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	cfg := deps.Config

	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL.Std(),
		RefreshTTL:    cfg.JWT.RefreshTTL.Std(),
		VerifyTTL:     cfg.JWT.VerifyTTL.Std(),
	}, deps.Clock)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	async := NewDispatcher(0)

	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	resetRepo := repositories.NewPasswordResetRepository()
	candidateRepo := repositories.NewCandidateRepository()
	companyRepo := repositories.NewCompanyRepository()
	jobRepo := repositories.NewJobRepository()
	videoRepo := repositories.NewVideoRepository()

	return &ServiceContainer{
		AuthService: NewAuthService(userRepo, sessionRepo, resetRepo, candidateRepo, tokens, hasher, deps.Mailer, async, AuthOptions{
			ResetTokenTTL:            cfg.Auth.ResetTokenTTL.Std(),
			RequireVerificationToken: cfg.Auth.RequireVerificationToken,
			RevokeOnPasswordReset:    cfg.Auth.RevokeOnPasswordReset,
		}),
		ClaimService:     NewClaimService(userRepo, sessionRepo, candidateRepo, companyRepo, tokens, hasher, deps.Mailer, async),
		CandidateService: NewCandidateService(candidateRepo, videoRepo, deps.Storage),
		EmployerService:  NewEmployerService(companyRepo, jobRepo),
		JobService:       NewJobService(companyRepo, jobRepo),
		VideoService:     NewVideoService(videoRepo, candidateRepo, deps.Storage, deps.Notifier, cfg.Upload),
		QuestionService:  NewQuestionService(),
		Tokens:           tokens,
		Async:            async,
	}
}
