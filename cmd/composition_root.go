package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/attemptrepo"
	"fulfillment/internal/adapters/out/s3storage"
	"fulfillment/internal/adapters/out/sms"
	"fulfillment/internal/adapters/out/staffdir"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/principal"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   *sms.Notifier
	photos     ports.PhotoStorage
	staff      ports.StaffDirectory
}

func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	staff, err := staffdir.Parse(cfg.StaffDirectory)
	if err != nil {
		return nil, err
	}

	photos, err := s3storage.New(ctx, s3storage.Config{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.AWSS3Bucket,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Endpoint:        cfg.AWSEndpoint,
		PublicBaseURL:   cfg.PhotoPublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("photo storage: %w", err)
	}

	notifier := sms.NewDisabled(logger)
	if cfg.SMSEnabled() {
		notifier, err = sms.New(sms.Config{
			AccessKeyID:     cfg.SMSAccessKeyID,
			AccessKeySecret: cfg.SMSAccessKeySecret,
			Endpoint:        cfg.SMSEndpoint,
			SignName:        cfg.SMSSignName,
			Templates:       cfg.SMSTemplates,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("sms notifier: %w", err)
		}
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		photos:     photos,
		staff:      staff,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) unitOfWorkFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	f := c.unitOfWorkFactory()
	return httpadapter.Handlers{
		RegisterOrder:         commands.NewRegisterOrderCommandHandler(c.orderUoWFactory()),
		OpenAttempt:           commands.NewOpenAttemptCommandHandler(f),
		ClaimAttempt:          commands.NewClaimAttemptCommandHandler(f),
		TransitionAttempt:     commands.NewTransitionAttemptCommandHandler(f, c.notifier),
		CancelAttempt:         commands.NewCancelAttemptCommandHandler(f),
		CreateBatch:           commands.NewCreateBatchCommandHandler(f),
		PickupBatch:           commands.NewPickupBatchCommandHandler(f, c.notifier),
		BulkUpdateBatch:       commands.NewBulkUpdateBatchCommandHandler(f, c.notifier),
		CompleteBatch:         commands.NewCompleteBatchCommandHandler(f),
		RecordCollection:      commands.NewRecordCollectionCommandHandler(f),
		RecordTransfer:        commands.NewRecordTransferCommandHandler(f),
		OpenReturnRequest:     commands.NewOpenReturnRequestCommandHandler(f),
		ReviewReturnRequest:   commands.NewReviewReturnRequestCommandHandler(f, c.notifier),
		AssignReturnRequest:   commands.NewAssignReturnRequestCommandHandler(f),
		CompleteReturnRequest: commands.NewCompleteReturnRequestCommandHandler(f, c.notifier),
		CancelReturnRequest:   commands.NewCancelReturnRequestCommandHandler(f),

		GetOrder:              queries.NewGetOrderQueryHandler(c.gormDB),
		ListAvailableAttempts: queries.NewListAvailableAttemptsQueryHandler(c.gormDB),
		ListAttemptsByStaff:   queries.NewListAttemptsByStaffQueryHandler(c.gormDB),
		SuggestBatch:          queries.NewSuggestBatchQueryHandler(attemptrepo.NewGormAttemptRepository(c.gormDB, nil)),
		GetBatch:              queries.NewGetBatchQueryHandler(c.gormDB),
		ListBatches:           queries.NewListBatchesQueryHandler(c.gormDB),
		CODReport:             queries.NewCODReportQueryHandler(c.gormDB),
		GetReturnRequest:      queries.NewGetReturnRequestQueryHandler(c.gormDB),
		ListReturnRequests:    queries.NewListReturnRequestsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.CreateHTTPHandlers(), c.photos, c.cfg.MaxPhotoBytes)
}

func (c *CompositionRoot) CreateVerifier() principal.Verifier {
	return principal.NewVerifier(c.cfg.JWTSecret)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := commands.NewAutoAssignAttemptsCommandHandler(c.unitOfWorkFactory(), c.staff)
	autoAssign := jobs.NewAutoAssignJob(&handler, jobs.AutoAssignConfig{
		Schedule:  c.cfg.AutoAssignSchedule,
		OlderThan: c.cfg.AutoAssignOlderThan,
		Limit:     c.cfg.AutoAssignLimit,
	}, c.logger)
	return jobs.NewJobManager(autoAssign, c.logger)
}

// DrainNotifications waits for notifications still being sent.
func (c *CompositionRoot) DrainNotifications() {
	c.notifier.Wait()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
